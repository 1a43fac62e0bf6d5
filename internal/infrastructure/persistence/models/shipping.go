package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/erp/shipping/internal/domain/shipping"
)

// ShipmentLabelModel is the persistence model for a booked carrier shipment.
// The vendor shipment id is the primary key; all other columns are nullable
// because the carrier response only carries the fields it chooses to send.
type ShipmentLabelModel struct {
	ShipmentID     string           `gorm:"type:varchar(100);primary_key"`
	OrderID        *string          `gorm:"type:varchar(100)"`
	OrderKey       *string          `gorm:"type:varchar(100)"`
	UserID         *string          `gorm:"type:varchar(100)"`
	ShipDate       *string          `gorm:"type:varchar(50)"`
	ShipmentCost   *decimal.Decimal `gorm:"type:decimal(18,4)"`
	InsuranceCost  *decimal.Decimal `gorm:"type:decimal(18,4)"`
	TrackingNumber *string          `gorm:"type:varchar(100);index"`
	CarrierCode    *string          `gorm:"type:varchar(50)"`
	ServiceCode    *string          `gorm:"type:varchar(50)"`
	LabelData      *string          `gorm:"type:text"`
	URLReference   *string          `gorm:"type:text;column:url_reference"`
	CreatedAt      time.Time        `gorm:"not null"`
	UpdatedAt      time.Time        `gorm:"not null"`
}

// TableName returns the table name for GORM
func (ShipmentLabelModel) TableName() string {
	return "shipment_labels"
}

// ToDomain converts the persistence model to a domain ShipmentRecord.
func (m *ShipmentLabelModel) ToDomain() shipping.ShipmentRecord {
	return shipping.ShipmentRecord{
		ShipmentID:     m.ShipmentID,
		OrderID:        m.OrderID,
		OrderKey:       m.OrderKey,
		UserID:         m.UserID,
		ShipDate:       m.ShipDate,
		ShipmentCost:   m.ShipmentCost,
		InsuranceCost:  m.InsuranceCost,
		TrackingNumber: m.TrackingNumber,
		CarrierCode:    m.CarrierCode,
		ServiceCode:    m.ServiceCode,
		LabelData:      m.LabelData,
		URLReference:   m.URLReference,
	}
}

// NewShipmentLabelModel creates a persistence model from a domain record.
func NewShipmentLabelModel(record shipping.ShipmentRecord) *ShipmentLabelModel {
	return &ShipmentLabelModel{
		ShipmentID:     record.ShipmentID,
		OrderID:        record.OrderID,
		OrderKey:       record.OrderKey,
		UserID:         record.UserID,
		ShipDate:       record.ShipDate,
		ShipmentCost:   record.ShipmentCost,
		InsuranceCost:  record.InsuranceCost,
		TrackingNumber: record.TrackingNumber,
		CarrierCode:    record.CarrierCode,
		ServiceCode:    record.ServiceCode,
		LabelData:      record.LabelData,
		URLReference:   record.URLReference,
	}
}

// CarrierSettingsModel is the persistence model for per-provider carrier
// credentials. One row per service provider.
type CarrierSettingsModel struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key"`
	ServiceProvider string    `gorm:"type:varchar(50);not null;uniqueIndex"`
	Enabled         bool      `gorm:"not null;default:false"`
	APIID           string    `gorm:"type:varchar(255);column:api_id"`
	APIPassword     string    `gorm:"type:varchar(255)"`
	CreatedAt       time.Time `gorm:"not null"`
	UpdatedAt       time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (CarrierSettingsModel) TableName() string {
	return "carrier_settings"
}

// ToDomain converts the persistence model to domain CarrierSettings.
func (m *CarrierSettingsModel) ToDomain() shipping.CarrierSettings {
	return shipping.CarrierSettings{
		Enabled:     m.Enabled,
		APIID:       m.APIID,
		APIPassword: m.APIPassword,
	}
}

// AddressModel is the persistence model for an address book entry. Entries
// are looked up by their document name.
type AddressModel struct {
	Name         string    `gorm:"type:varchar(255);primary_key"`
	AddressTitle string    `gorm:"type:varchar(255)"`
	AddressLine1 string    `gorm:"type:varchar(255);not null"`
	AddressLine2 string    `gorm:"type:varchar(255)"`
	City         string    `gorm:"type:varchar(100);not null"`
	State        string    `gorm:"type:varchar(100)"`
	Country      string    `gorm:"type:varchar(10)"`
	Pincode      string    `gorm:"type:varchar(20)"`
	CreatedAt    time.Time `gorm:"not null"`
	UpdatedAt    time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (AddressModel) TableName() string {
	return "addresses"
}

// ToDomain converts the persistence model to a domain Address.
func (m *AddressModel) ToDomain() shipping.Address {
	return shipping.Address{
		Name:         m.Name,
		Title:        m.AddressTitle,
		AddressLine1: m.AddressLine1,
		AddressLine2: m.AddressLine2,
		City:         m.City,
		State:        m.State,
		CountryCode:  m.Country,
		Pincode:      m.Pincode,
	}
}

// ContactModel is the persistence model for an address book contact. The
// User column links the contact to an ERP user and backs company contact
// lookups.
type ContactModel struct {
	Name      string    `gorm:"type:varchar(255);primary_key"`
	FirstName string    `gorm:"type:varchar(100)"`
	LastName  string    `gorm:"type:varchar(100)"`
	Phone     string    `gorm:"type:varchar(50)"`
	Email     string    `gorm:"type:varchar(255)"`
	Gender    string    `gorm:"type:varchar(20)"`
	User      string    `gorm:"type:varchar(255);index"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (ContactModel) TableName() string {
	return "contacts"
}

// ToDomain converts the persistence model to a domain Contact.
func (m *ContactModel) ToDomain() shipping.Contact {
	return shipping.Contact{
		Name:      m.Name,
		FirstName: m.FirstName,
		LastName:  m.LastName,
		Phone:     m.Phone,
		Email:     m.Email,
		Gender:    m.Gender,
	}
}

// ShipmentModel is the persistence model for an ERP shipment document. The
// carrier booking result is written back onto it.
type ShipmentModel struct {
	Name            string          `gorm:"type:varchar(255);primary_key"`
	ServiceProvider string          `gorm:"type:varchar(50)"`
	ShipmentID      string          `gorm:"type:varchar(100);index"`
	Carrier         string          `gorm:"type:varchar(50)"`
	CarrierService  string          `gorm:"type:varchar(50)"`
	ShipmentAmount  decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	AWBNumber       string          `gorm:"type:varchar(100);column:awb_number"`
	Status          string          `gorm:"type:varchar(20);not null;default:'Draft'"`
	CreatedAt       time.Time       `gorm:"not null"`
	UpdatedAt       time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (ShipmentModel) TableName() string {
	return "shipments"
}

// DeliveryNoteModel is the persistence model for a delivery note. Only the
// tracking columns are owned by the shipping workflow.
type DeliveryNoteModel struct {
	Name               string    `gorm:"type:varchar(255);primary_key"`
	TrackingNumber     string    `gorm:"type:varchar(100)"`
	TrackingURL        string    `gorm:"type:text;column:tracking_url"`
	TrackingStatus     string    `gorm:"type:varchar(50)"`
	TrackingStatusInfo string    `gorm:"type:varchar(255)"`
	CreatedAt          time.Time `gorm:"not null"`
	UpdatedAt          time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (DeliveryNoteModel) TableName() string {
	return "delivery_notes"
}
