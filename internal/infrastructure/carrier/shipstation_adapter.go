package carrier

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/erp/shipping/internal/domain/shipping"
)

// maxResponseSize is the maximum allowed response size from the ShipStation
// API (10MB)
const maxResponseSize = 10 * 1024 * 1024

const (
	ratesPath = "/shipments/getrates"
	labelPath = "/shipments/createlabel"

	// confirmationDelivery is the confirmation level on every request
	confirmationDelivery = "delivery"
	// packageCodeDefault is the package code on every label request
	packageCodeDefault = "package"

	fetchRatesActivity = "fetching ShipStation prices"
)

// ShipStationAdapter implements shipping.CarrierProvider against the
// ShipStation REST API. Credentials are read from the settings store on
// every call so a settings change takes effect immediately.
type ShipStationAdapter struct {
	config     *ShipStationConfig
	settings   shipping.SettingsStore
	labels     shipping.LabelStore
	alerts     shipping.AlertSink
	logger     *zap.Logger
	httpClient *http.Client
}

// NewShipStationAdapter creates a new ShipStation adapter
func NewShipStationAdapter(
	config *ShipStationConfig,
	settings shipping.SettingsStore,
	labels shipping.LabelStore,
	alerts shipping.AlertSink,
	logger *zap.Logger,
) (*ShipStationAdapter, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &ShipStationAdapter{
		config:   config,
		settings: settings,
		labels:   labels,
		alerts:   alerts,
		logger:   logger,
		httpClient: &http.Client{
			Timeout: time.Duration(config.TimeoutSeconds) * time.Second,
		},
	}, nil
}

// Code returns the provider this adapter integrates
func (a *ShipStationAdapter) Code() shipping.ServiceProvider {
	return shipping.ProviderShipStation
}

// IsEnabled reports whether the integration is enabled and has credentials
func (a *ShipStationAdapter) IsEnabled(ctx context.Context) (bool, error) {
	settings, err := a.settings.Get(ctx, shipping.ProviderShipStation)
	if err != nil {
		return false, nil
	}
	return usableSettings(settings), nil
}

// usableSettings reports whether the settings allow carrier calls at all
func usableSettings(s shipping.CarrierSettings) bool {
	return s.Enabled && s.APIID != "" && s.APIPassword != ""
}

// ---------------------------------------------------------------------------
// Rate Client
// ---------------------------------------------------------------------------

// GetAvailableServices fetches rate quotes for the given trip. Disabled or
// unconfigured integrations yield an empty list; transport and parse
// failures are routed to the alert sink and also yield an empty list. Only a
// vendor rejection surfaces as an error.
func (a *ShipStationAdapter) GetAvailableServices(ctx context.Context, req shipping.RateRequest) ([]shipping.RateQuote, error) {
	settings, err := a.settings.Get(ctx, shipping.ProviderShipStation)
	if err != nil || !usableSettings(settings) {
		return nil, nil
	}

	items := shipping.ParcelItems(req.Parcels, req.ContentDescription)
	if len(items) == 0 {
		a.alerts.Alert(ctx, fetchRatesActivity, shipping.ErrNoParcels)
		return nil, nil
	}

	pickup := req.PickupAddress
	pickup.Title = shipping.TrimAddressTitle(pickup.Title)
	delivery := req.DeliveryAddress
	delivery.Title = shipping.TrimAddressTitle(delivery.Title)

	// Weight is sent in grams, dimensions in centimeters, always from the
	// first parcel. The residential flag follows the legacy rule: true when
	// the delivery side is a company.
	body := rateRequest{
		CarrierCode:    a.config.CarrierCode,
		FromPostalCode: pickup.Pincode,
		ToState:        delivery.State,
		ToCountry:      delivery.CountryCode,
		ToPostalCode:   delivery.Pincode,
		ToCity:         delivery.City,
		Weight:         weightSpec{Value: items[0].Weight * 1000, Units: "grams"},
		Dimensions: dimensionsSpec{
			Units:  "centimeters",
			Length: items[0].Length,
			Width:  items[0].Width,
			Height: items[0].Height,
		},
		Confirmation: confirmationDelivery,
		Residential:  req.DeliveryToType == shipping.PartyTypeCompany,
	}

	respBody, err := a.doRequest(ctx, settings, ratesPath, body)
	if err != nil {
		a.alerts.Alert(ctx, fetchRatesActivity, err)
		return nil, nil
	}

	trimmed := bytes.TrimSpace(respBody)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var offers []rateOffer
		if err := json.Unmarshal(trimmed, &offers); err != nil {
			a.alerts.Alert(ctx, fetchRatesActivity,
				fmt.Errorf("%w: %v", shipping.ErrCarrierInvalidResponse, err))
			return nil, nil
		}
		quotes := make([]shipping.RateQuote, 0, len(offers))
		for _, offer := range offers {
			quotes = append(quotes, offer.toQuote(a.config.CarrierName))
		}
		return quotes, nil
	}

	var vendorErr vendorError
	if err := json.Unmarshal(trimmed, &vendorErr); err != nil {
		a.alerts.Alert(ctx, fetchRatesActivity,
			fmt.Errorf("%w: %v", shipping.ErrCarrierInvalidResponse, err))
		return nil, nil
	}
	if vendorErr.ExceptionMessage != nil {
		message := ""
		if vendorErr.Message != nil {
			message = *vendorErr.Message
		}
		return nil, fmt.Errorf("%w: %s", shipping.ErrRateRequestRejected, message)
	}

	a.alerts.Alert(ctx, fetchRatesActivity, shipping.ErrCarrierInvalidResponse)
	return nil, nil
}

// ---------------------------------------------------------------------------
// Shipment Client
// ---------------------------------------------------------------------------

// CreateShipment books a shipment with the chosen service, persists the
// label record and returns the booking result. Disabled or unconfigured
// integrations yield (nil, nil). Transport and parse failures are only
// logged and also yield (nil, nil); no partial record is written.
func (a *ShipStationAdapter) CreateShipment(ctx context.Context, req shipping.ShipmentRequest) (*shipping.ShipmentResult, error) {
	settings, err := a.settings.Get(ctx, shipping.ProviderShipStation)
	if err != nil || !usableSettings(settings) {
		return nil, nil
	}

	items := shipping.ParcelItems(req.Parcels, req.ContentDescription)
	if len(items) == 0 {
		a.logger.Error("creating ShipStation shipment failed",
			zap.Error(shipping.ErrNoParcels))
		return nil, nil
	}

	pickup := req.PickupAddress
	pickup.Title = shipping.TrimAddressTitle(pickup.Title)
	delivery := req.DeliveryAddress
	delivery.Title = shipping.TrimAddressTitle(delivery.Title)

	var pickupContact, deliveryContact shipping.DerivedContact
	if req.PickupContact != nil {
		pickupContact = shipping.DeriveContact(*req.PickupContact)
	}
	if req.DeliveryContact != nil {
		deliveryContact = shipping.DeriveContact(*req.DeliveryContact)
	}

	shipFrom := buildShipParty(pickup, pickupContact)
	// State comes from the raw address input, not the trimmed copy.
	shipFrom.State = req.PickupAddress.State
	shipTo := buildShipParty(delivery, deliveryContact)
	shipTo.State = req.DeliveryAddress.State

	body := labelRequest{
		CarrierCode:  a.config.CarrierCode,
		ServiceCode:  req.Service.ServiceCode,
		PackageCode:  packageCodeDefault,
		Confirmation: confirmationDelivery,
		ShipDate:     req.PickupDate,
		Weight:       weightSpec{Value: items[0].Weight * 1000, Units: "grams"},
		Dimensions: dimensionsSpec{
			Units:  "centimeters",
			Length: items[0].Length,
			Width:  items[0].Width,
			Height: items[0].Height,
		},
		ShipFrom:  shipFrom,
		ShipTo:    shipTo,
		TestLabel: a.config.TestLabel,
	}

	respBody, err := a.doRequest(ctx, settings, labelPath, body)
	if err != nil {
		a.logger.Error("creating ShipStation shipment failed", zap.Error(err))
		return nil, nil
	}

	var resp labelResponse
	if err := json.Unmarshal(bytes.TrimSpace(respBody), &resp); err != nil {
		a.logger.Error("creating ShipStation shipment failed",
			zap.Error(fmt.Errorf("%w: %v", shipping.ErrCarrierInvalidResponse, err)))
		return nil, nil
	}

	if resp.ShipmentID == nil {
		if resp.Message != nil {
			// The rejection quotes ExceptionMessage even though the branch
			// keys off Message. A payload carrying only Message matches the
			// silent path below, not the user-facing one.
			if resp.ExceptionMessage != nil {
				return nil, fmt.Errorf("%w: %s", shipping.ErrShipmentRejected, *resp.ExceptionMessage)
			}
			a.logger.Error("creating ShipStation shipment failed",
				zap.String("vendor_message", *resp.Message))
			return nil, nil
		}
		return nil, nil
	}

	record := resp.toRecord()
	if err := a.labels.Upsert(ctx, record); err != nil {
		a.logger.Error("persisting ShipStation label failed",
			zap.String("shipment_id", record.ShipmentID), zap.Error(err))
		return nil, nil
	}

	result := &shipping.ShipmentResult{
		ServiceProvider: shipping.ProviderShipStation,
		ShipmentID:      *resp.ShipmentID,
		Carrier:         a.config.CarrierCode,
		CarrierService:  req.Service.ServiceCode,
		AWBNumber:       resp.awbNumber(),
	}
	if resp.ShipmentCost != nil {
		result.ShipmentAmount = *resp.ShipmentCost
	}
	return result, nil
}

// ---------------------------------------------------------------------------
// Label Store Lookups
// ---------------------------------------------------------------------------

// Label returns the persisted label data for a booked shipment
func (a *ShipStationAdapter) Label(ctx context.Context, shipmentID string) (string, error) {
	return a.labels.LabelData(ctx, shipmentID)
}

// TrackingNumber returns the persisted tracking number for a booked shipment
func (a *ShipStationAdapter) TrackingNumber(ctx context.Context, shipmentID string) (string, error) {
	return a.labels.TrackingNumber(ctx, shipmentID)
}

// ---------------------------------------------------------------------------
// Internal Helpers
// ---------------------------------------------------------------------------

// buildShipParty maps a resolved address and derived contact into the
// shipFrom/shipTo wire shape. Label parties are never flagged residential.
func buildShipParty(addr shipping.Address, contact shipping.DerivedContact) shipParty {
	return shipParty{
		Name:        contact.FirstName + " " + contact.LastName,
		Company:     addr.Title,
		Street1:     addr.AddressLine1,
		Street2:     addr.AddressLine2,
		Street3:     nil,
		City:        addr.City,
		State:       addr.State,
		PostalCode:  addr.Pincode,
		Country:     addr.CountryCode,
		Phone:       contact.PhonePrefix + " " + contact.Phone,
		Residential: false,
	}
}

// doRequest performs an authenticated POST against the ShipStation API and
// returns the body regardless of HTTP status: the vendor reports rejections
// as error objects in the body.
func (a *ShipStationAdapter) doRequest(ctx context.Context, settings shipping.CarrierSettings, path string, body any) ([]byte, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("shipstation: failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.config.APIBaseURL+path, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("shipstation: failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Basic "+basicAuth(settings.APIID, settings.APIPassword))

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shipping.ErrCarrierUnavailable, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("shipstation: failed to read response: %w", err)
	}
	return respBody, nil
}

// basicAuth encodes id:password for the Authorization header
func basicAuth(id, password string) string {
	return base64.StdEncoding.EncodeToString([]byte(id + ":" + password))
}

// Ensure ShipStationAdapter implements CarrierProvider interface
var _ shipping.CarrierProvider = (*ShipStationAdapter)(nil)
