package shipping

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// PartyTypeCompany is the trip-endpoint type for a company-side party.
// Non-company endpoints carry a regular contact record.
const PartyTypeCompany = "Company"

// StatusBooked is written onto the host shipment once a label is created.
const StatusBooked = "Booked"

// Address is a resolved ERP address. Title is subject to the vendor's
// 30-character company-field limit before transmission.
type Address struct {
	Name         string `json:"name"`
	Title        string `json:"address_title"`
	AddressLine1 string `json:"address_line1"`
	AddressLine2 string `json:"address_line2"`
	City         string `json:"city"`
	State        string `json:"state"`
	CountryCode  string `json:"country_code"`
	Pincode      string `json:"pincode"`
}

// Contact is a resolved ERP contact.
type Contact struct {
	Name      string `json:"name"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
	Gender    string `json:"gender"`
}

// DerivedContact is a Contact extended with the carrier-specific fields
// computed by DeriveContact. The source Contact is never modified.
type DerivedContact struct {
	Contact
	PhonePrefix string
	Title       string
}

// Parcel is one package of a shipment.
type Parcel struct {
	Height float64 `json:"height"`
	Width  float64 `json:"width"`
	Length float64 `json:"length"`
	Weight float64 `json:"weight"`
	Count  int     `json:"count"`
}

// ParcelItem is a parcel in the carrier wire shape.
type ParcelItem struct {
	Height             float64 `json:"height"`
	Width              float64 `json:"width"`
	Length             float64 `json:"length"`
	Weight             float64 `json:"weight"`
	Quantity           int     `json:"quantity"`
	ContentDescription string  `json:"contentDescription"`
}

// ParseParcels decodes the raw parcel JSON handed to the callable operations.
func ParseParcels(raw string) ([]Parcel, error) {
	var parcels []Parcel
	if err := json.Unmarshal([]byte(raw), &parcels); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidParcelPayload, err)
	}
	return parcels, nil
}

// RateQuote is a normalized priced service offer from a carrier.
type RateQuote struct {
	ServiceProvider ServiceProvider `json:"service_provider"`
	ServiceCode     string          `json:"service_code"`
	ServiceName     string          `json:"servicename"`
	CarrierName     string          `json:"carriername"`
	IsPreferred     bool            `json:"is_preferred"`
	TotalPrice      decimal.Decimal `json:"total_price"`
	PriceInfo       decimal.Decimal `json:"price_info"`
	OtherCost       decimal.Decimal `json:"other_cost"`
}

// ShipmentRecord is the persisted label record keyed by the vendor shipment
// id. Pointer fields carry upsert semantics: only set fields overwrite an
// existing row, and an inserted row gets exactly the set fields. ShipmentID
// is the immutable identity and is never reassigned.
type ShipmentRecord struct {
	ShipmentID     string
	OrderID        *string
	OrderKey       *string
	UserID         *string
	ShipDate       *string
	ShipmentCost   *decimal.Decimal
	InsuranceCost  *decimal.Decimal
	TrackingNumber *string
	CarrierCode    *string
	ServiceCode    *string
	LabelData      *string
	URLReference   *string
}

// ShipmentResult is the booking outcome returned to the caller.
type ShipmentResult struct {
	ServiceProvider ServiceProvider `json:"service_provider"`
	ShipmentID      string          `json:"shipment_id"`
	Carrier         string          `json:"carrier"`
	CarrierService  string          `json:"carrier_service"`
	ShipmentAmount  decimal.Decimal `json:"shipment_amount"`
	AWBNumber       string          `json:"awb_number"`
}

// TrackingInfo carries tracking fields for a delivery-note update.
type TrackingInfo struct {
	AWBNumber          string `json:"awb_number"`
	TrackingURL        string `json:"tracking_url"`
	TrackingStatus     string `json:"tracking_status"`
	TrackingStatusInfo string `json:"tracking_status_info"`
}

// ServiceSelection is the caller-chosen service from a prior rate fetch.
type ServiceSelection struct {
	ServiceProvider ServiceProvider `json:"service_provider"`
	ServiceCode     string          `json:"service_code"`
	CarrierName     string          `json:"carriername"`
	TotalPrice      decimal.Decimal `json:"total_price"`
}

// ParseServiceSelection decodes the raw service_data JSON handed to
// create_shipment.
func ParseServiceSelection(raw string) (ServiceSelection, error) {
	var sel ServiceSelection
	if err := json.Unmarshal([]byte(raw), &sel); err != nil {
		return ServiceSelection{}, fmt.Errorf("%w: %v", ErrInvalidServiceData, err)
	}
	return sel, nil
}

// RateRequest is the input to a carrier rate fetch.
type RateRequest struct {
	PickupFromType     string
	DeliveryToType     string
	PickupAddress      Address
	DeliveryAddress    Address
	Parcels            []Parcel
	ContentDescription string
	PickupDate         string
	ValueOfGoods       decimal.Decimal
	PickupContact      *Contact
	DeliveryContact    *Contact
}

// ShipmentRequest is the input to a carrier label creation.
type ShipmentRequest struct {
	PickupFromType     string
	DeliveryToType     string
	PickupAddress      Address
	DeliveryAddress    Address
	Parcels            []Parcel
	ContentDescription string
	PickupDate         string
	ValueOfGoods       decimal.Decimal
	Service            ServiceSelection
	PickupContact      *Contact
	DeliveryContact    *Contact
}
