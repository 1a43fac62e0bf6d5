package persistence

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/erp/shipping/internal/domain/shipping"
	"github.com/erp/shipping/internal/infrastructure/persistence/models"
)

// GormShipmentLabelRepository implements shipping.LabelStore using GORM
type GormShipmentLabelRepository struct {
	db *gorm.DB
}

// NewGormShipmentLabelRepository creates a new GormShipmentLabelRepository
func NewGormShipmentLabelRepository(db *gorm.DB) *GormShipmentLabelRepository {
	return &GormShipmentLabelRepository{db: db}
}

// Upsert inserts or updates the label record keyed by the vendor shipment
// id. On update only the populated fields of the record overwrite the stored
// row; fields the carrier left out keep their previous values. The shipment
// id itself is never rewritten.
func (r *GormShipmentLabelRepository) Upsert(ctx context.Context, record shipping.ShipmentRecord) error {
	var existing models.ShipmentLabelModel
	err := r.db.WithContext(ctx).
		First(&existing, "shipment_id = ?", record.ShipmentID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return r.db.WithContext(ctx).Create(models.NewShipmentLabelModel(record)).Error
		}
		return err
	}

	updates := presentFields(record)
	if len(updates) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&models.ShipmentLabelModel{}).
		Where("shipment_id = ?", record.ShipmentID).
		Updates(updates).Error
}

// LabelData returns the stored label data for a shipment
func (r *GormShipmentLabelRepository) LabelData(ctx context.Context, shipmentID string) (string, error) {
	model, err := r.find(ctx, shipmentID)
	if err != nil {
		return "", err
	}
	if model.LabelData == nil {
		return "", shipping.ErrLabelNotFound
	}
	return *model.LabelData, nil
}

// TrackingNumber returns the stored tracking number for a shipment
func (r *GormShipmentLabelRepository) TrackingNumber(ctx context.Context, shipmentID string) (string, error) {
	model, err := r.find(ctx, shipmentID)
	if err != nil {
		return "", err
	}
	if model.TrackingNumber == nil {
		return "", shipping.ErrLabelNotFound
	}
	return *model.TrackingNumber, nil
}

// Get returns the full label record for a shipment
func (r *GormShipmentLabelRepository) Get(ctx context.Context, shipmentID string) (shipping.ShipmentRecord, error) {
	model, err := r.find(ctx, shipmentID)
	if err != nil {
		return shipping.ShipmentRecord{}, err
	}
	return model.ToDomain(), nil
}

func (r *GormShipmentLabelRepository) find(ctx context.Context, shipmentID string) (*models.ShipmentLabelModel, error) {
	var model models.ShipmentLabelModel
	if err := r.db.WithContext(ctx).
		First(&model, "shipment_id = ?", shipmentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shipping.ErrLabelNotFound
		}
		return nil, err
	}
	return &model, nil
}

// presentFields maps the populated record fields to their columns
func presentFields(record shipping.ShipmentRecord) map[string]any {
	updates := make(map[string]any)
	if record.OrderID != nil {
		updates["order_id"] = *record.OrderID
	}
	if record.OrderKey != nil {
		updates["order_key"] = *record.OrderKey
	}
	if record.UserID != nil {
		updates["user_id"] = *record.UserID
	}
	if record.ShipDate != nil {
		updates["ship_date"] = *record.ShipDate
	}
	if record.ShipmentCost != nil {
		updates["shipment_cost"] = *record.ShipmentCost
	}
	if record.InsuranceCost != nil {
		updates["insurance_cost"] = *record.InsuranceCost
	}
	if record.TrackingNumber != nil {
		updates["tracking_number"] = *record.TrackingNumber
	}
	if record.CarrierCode != nil {
		updates["carrier_code"] = *record.CarrierCode
	}
	if record.ServiceCode != nil {
		updates["service_code"] = *record.ServiceCode
	}
	if record.LabelData != nil {
		updates["label_data"] = *record.LabelData
	}
	if record.URLReference != nil {
		updates["url_reference"] = *record.URLReference
	}
	return updates
}

// Ensure GormShipmentLabelRepository implements LabelStore
var _ shipping.LabelStore = (*GormShipmentLabelRepository)(nil)
