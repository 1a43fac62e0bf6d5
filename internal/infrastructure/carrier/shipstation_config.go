package carrier

import "errors"

// ShipStationConfig holds the static configuration for the ShipStation
// integration. Credentials are not part of it: they are read fresh from the
// settings store on every carrier call.
type ShipStationConfig struct {
	// APIBaseURL is the base URL for the ShipStation API
	APIBaseURL string
	// CarrierCode is the fixed carrier the integration books with
	CarrierCode string
	// CarrierName is the display name reported on rate quotes
	CarrierName string
	// TestLabel requests test labels instead of billable ones
	TestLabel bool
	// TimeoutSeconds is the HTTP request timeout
	TimeoutSeconds int
}

const (
	// ShipStationAPIURL is the production API endpoint
	ShipStationAPIURL = "https://ssapi.shipstation.com"
	// ShipStationCarrierCode is the carrier all shipments are booked with
	ShipStationCarrierCode = "stamps_com"
	// ShipStationCarrierName is the display name for that carrier
	ShipStationCarrierName = "Stamps.com"
)

// ErrShipStationConfigMissingBaseURL indicates an empty API base URL
var ErrShipStationConfigMissingBaseURL = errors.New("shipstation: api base url is required")

// NewShipStationConfig creates a ShipStation configuration with defaults.
// TestLabel defaults to true; flip it deliberately once the account is
// cleared for billable labels.
func NewShipStationConfig() *ShipStationConfig {
	return &ShipStationConfig{
		APIBaseURL:     ShipStationAPIURL,
		CarrierCode:    ShipStationCarrierCode,
		CarrierName:    ShipStationCarrierName,
		TestLabel:      true,
		TimeoutSeconds: 30,
	}
}

// Validate validates the configuration and fills defaults
func (c *ShipStationConfig) Validate() error {
	if c.APIBaseURL == "" {
		return ErrShipStationConfigMissingBaseURL
	}
	if c.CarrierCode == "" {
		c.CarrierCode = ShipStationCarrierCode
	}
	if c.CarrierName == "" {
		c.CarrierName = ShipStationCarrierName
	}
	if c.TimeoutSeconds <= 0 {
		c.TimeoutSeconds = 30
	}
	return nil
}
