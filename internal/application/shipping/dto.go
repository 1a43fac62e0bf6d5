package shipping

import (
	"github.com/shopspring/decimal"
)

// FetchRatesInput carries the parameters of a rate-quote request. Address
// and contact parameters are document names resolved through the address
// book; the parcel payload arrives as raw JSON.
type FetchRatesInput struct {
	PickupFromType       string
	DeliveryToType       string
	PickupAddressName    string
	DeliveryAddressName  string
	ShipmentParcel       string
	DescriptionOfContent string
	PickupDate           string
	ValueOfGoods         decimal.Decimal
	PickupContactName    string
	DeliveryContactName  string
}

// CreateShipmentInput carries the parameters of a shipment booking.
// ServiceData is the JSON-encoded service selection the caller picked from
// a prior rate fetch. The notification emails are accepted for interface
// compatibility; mail dispatch is handled outside this module.
type CreateShipmentInput struct {
	ShipmentName         string
	PickupFromType       string
	DeliveryToType       string
	PickupAddressName    string
	DeliveryAddressName  string
	ShipmentParcel       string
	DescriptionOfContent string
	PickupDate           string
	ValueOfGoods         decimal.Decimal
	ServiceData          string
	ShipmentNotificEmail string
	TrackingNotificEmail string
	PickupContactName    string
	DeliveryContactName  string
	DeliveryNotes        []string
}

// ShowTrackingInput carries the parameters of a tracking lookup
type ShowTrackingInput struct {
	ShipmentName    string
	ServiceProvider string
	ShipmentID      string
	DeliveryNotes   []string
}
