package persistence

import (
	"context"

	"gorm.io/gorm"

	"github.com/erp/shipping/internal/domain/shipping"
	"github.com/erp/shipping/internal/infrastructure/persistence/models"
)

// GormShipmentRepository implements shipping.ShipmentWriter using GORM
type GormShipmentRepository struct {
	db *gorm.DB
}

// NewGormShipmentRepository creates a new GormShipmentRepository
func NewGormShipmentRepository(db *gorm.DB) *GormShipmentRepository {
	return &GormShipmentRepository{db: db}
}

// ApplyShipmentResult writes the carrier booking result onto the shipment
// document and moves it to Booked.
func (r *GormShipmentRepository) ApplyShipmentResult(ctx context.Context, shipmentName string, result shipping.ShipmentResult) error {
	updates := map[string]any{
		"service_provider": string(result.ServiceProvider),
		"shipment_id":      result.ShipmentID,
		"carrier":          result.Carrier,
		"carrier_service":  result.CarrierService,
		"shipment_amount":  result.ShipmentAmount,
		"awb_number":       result.AWBNumber,
		"status":           shipping.StatusBooked,
	}

	res := r.db.WithContext(ctx).
		Model(&models.ShipmentModel{}).
		Where("name = ?", shipmentName).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return shipping.ErrShipmentNotFound
	}
	return nil
}

// GormDeliveryNoteRepository implements shipping.DeliveryNoteWriter using GORM
type GormDeliveryNoteRepository struct {
	db *gorm.DB
}

// NewGormDeliveryNoteRepository creates a new GormDeliveryNoteRepository
func NewGormDeliveryNoteRepository(db *gorm.DB) *GormDeliveryNoteRepository {
	return &GormDeliveryNoteRepository{db: db}
}

// UpdateTracking writes the tracking fields onto a delivery note
func (r *GormDeliveryNoteRepository) UpdateTracking(ctx context.Context, noteName string, info shipping.TrackingInfo) error {
	res := r.db.WithContext(ctx).
		Model(&models.DeliveryNoteModel{}).
		Where("name = ?", noteName).
		Updates(map[string]any{
			"tracking_number":      info.AWBNumber,
			"tracking_url":         info.TrackingURL,
			"tracking_status":      info.TrackingStatus,
			"tracking_status_info": info.TrackingStatusInfo,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return shipping.ErrDeliveryNoteNotFound
	}
	return nil
}

// Ensure the repositories implement the writer interfaces
var (
	_ shipping.ShipmentWriter     = (*GormShipmentRepository)(nil)
	_ shipping.DeliveryNoteWriter = (*GormDeliveryNoteRepository)(nil)
)
