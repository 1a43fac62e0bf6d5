package shipping

import (
	"context"
	"errors"
)

// ---------------------------------------------------------------------------
// Carrier Errors
// ---------------------------------------------------------------------------

var (
	// Carrier errors
	ErrCarrierUnavailable     = errors.New("shipping: carrier temporarily unavailable")
	ErrCarrierInvalidResponse = errors.New("shipping: invalid carrier response")
	ErrRateRequestRejected    = errors.New("shipping: carrier rejected rate request")
	ErrShipmentRejected       = errors.New("shipping: carrier rejected shipment creation")

	// Store errors
	ErrSettingsNotFound     = errors.New("shipping: carrier settings not found")
	ErrLabelNotFound        = errors.New("shipping: shipment label not found")
	ErrAddressNotFound      = errors.New("shipping: address not found")
	ErrContactNotFound      = errors.New("shipping: contact not found")
	ErrShipmentNotFound     = errors.New("shipping: shipment not found")
	ErrDeliveryNoteNotFound = errors.New("shipping: delivery note not found")

	// Input errors
	ErrInvalidParcelPayload = errors.New("shipping: invalid parcel payload")
	ErrNoParcels            = errors.New("shipping: shipment has no parcels")
	ErrInvalidServiceData   = errors.New("shipping: invalid service selection data")
)

// ---------------------------------------------------------------------------
// ServiceProvider identifies an integrated carrier-rate/label vendor
// ---------------------------------------------------------------------------

// ServiceProvider identifies an integrated carrier-rate/label vendor.
type ServiceProvider string

// ProviderShipStation is the ShipStation rate/label vendor.
const ProviderShipStation ServiceProvider = "ShipStation"

// String returns the string representation of ServiceProvider
func (p ServiceProvider) String() string {
	return string(p)
}

// ---------------------------------------------------------------------------
// Ports
// ---------------------------------------------------------------------------

// CarrierSettings holds the decrypted credentials and enabled flag for a
// provider. Loaded fresh on every carrier call, never cached.
type CarrierSettings struct {
	Enabled     bool
	APIID       string
	APIPassword string
}

// SettingsStore supplies per-provider integration settings.
type SettingsStore interface {
	Get(ctx context.Context, provider ServiceProvider) (CarrierSettings, error)
}

// AddressResolver resolves an ERP address name into a structured address.
type AddressResolver interface {
	Resolve(ctx context.Context, name string) (Address, error)
}

// ContactResolver resolves ERP contact names into structured contacts.
// Company-side parties are resolved by the owning user instead of a
// contact record.
type ContactResolver interface {
	Resolve(ctx context.Context, name string) (Contact, error)
	ResolveCompanyContact(ctx context.Context, user string) (Contact, error)
}

// LabelStore persists shipment label records keyed by the vendor shipment id.
type LabelStore interface {
	// Upsert writes the record: an existing row keeps its shipment id and
	// only fields set on the record overwrite stored values; a missing row
	// is inserted with exactly the fields set on the record.
	Upsert(ctx context.Context, record ShipmentRecord) error
	LabelData(ctx context.Context, shipmentID string) (string, error)
	TrackingNumber(ctx context.Context, shipmentID string) (string, error)
}

// AlertSink reports a failed carrier interaction to the operator without
// failing the calling operation.
type AlertSink interface {
	Alert(ctx context.Context, activity string, err error)
}

// ShipmentWriter writes a booking result back onto the host shipment entity.
type ShipmentWriter interface {
	ApplyShipmentResult(ctx context.Context, shipmentName string, result ShipmentResult) error
}

// DeliveryNoteWriter writes tracking fields onto a delivery note.
type DeliveryNoteWriter interface {
	UpdateTracking(ctx context.Context, noteName string, info TrackingInfo) error
}

// CarrierProvider is the per-vendor rate/label client.
type CarrierProvider interface {
	// Code returns the provider this client integrates.
	Code() ServiceProvider

	// IsEnabled reports whether the integration is switched on and has
	// usable credentials.
	IsEnabled(ctx context.Context) (bool, error)

	// GetAvailableServices fetches rate quotes for the given trip. A
	// disabled integration or a transport failure yields an empty list and
	// a nil error; a vendor rejection is returned as an error wrapping
	// ErrRateRequestRejected.
	GetAvailableServices(ctx context.Context, req RateRequest) ([]RateQuote, error)

	// CreateShipment books a shipment with the chosen service, persists
	// the label record and returns the booking result. A disabled
	// integration or a transport failure yields (nil, nil); a vendor
	// rejection is returned as an error wrapping ErrShipmentRejected.
	CreateShipment(ctx context.Context, req ShipmentRequest) (*ShipmentResult, error)

	// Label returns the persisted label data for a booked shipment.
	Label(ctx context.Context, shipmentID string) (string, error)

	// TrackingNumber returns the persisted tracking number for a booked
	// shipment.
	TrackingNumber(ctx context.Context, shipmentID string) (string, error)
}
