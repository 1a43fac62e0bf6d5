package carrier

import (
	"encoding/json"

	"github.com/shopspring/decimal"

	"github.com/erp/shipping/internal/domain/shipping"
)

// ---------------------------------------------------------------------------
// Request Types
// ---------------------------------------------------------------------------

// weightSpec is the weight block of rate and label requests
type weightSpec struct {
	Value float64 `json:"value"`
	Units string  `json:"units"`
}

// dimensionsSpec is the dimensions block of rate and label requests
type dimensionsSpec struct {
	Units  string  `json:"units"`
	Length float64 `json:"length"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// rateRequest is the body of POST /shipments/getrates
type rateRequest struct {
	CarrierCode    string         `json:"carrierCode"`
	ServiceCode    *string        `json:"serviceCode"`
	PackageCode    *string        `json:"packageCode"`
	FromPostalCode string         `json:"fromPostalCode"`
	ToState        string         `json:"toState"`
	ToCountry      string         `json:"toCountry"`
	ToPostalCode   string         `json:"toPostalCode"`
	ToCity         string         `json:"toCity"`
	Weight         weightSpec     `json:"weight"`
	Dimensions     dimensionsSpec `json:"dimensions"`
	Confirmation   string         `json:"confirmation"`
	Residential    bool           `json:"residential"`
}

// shipParty is the shipFrom/shipTo block of a label request
type shipParty struct {
	Name        string  `json:"name"`
	Company     string  `json:"company"`
	Street1     string  `json:"street1"`
	Street2     string  `json:"street2"`
	Street3     *string `json:"street3"`
	City        string  `json:"city"`
	State       string  `json:"state"`
	PostalCode  string  `json:"postalCode"`
	Country     string  `json:"country"`
	Phone       string  `json:"phone"`
	Residential bool    `json:"residential"`
}

// labelRequest is the body of POST /shipments/createlabel
type labelRequest struct {
	CarrierCode          string         `json:"carrierCode"`
	ServiceCode          string         `json:"serviceCode"`
	PackageCode          string         `json:"packageCode"`
	Confirmation         string         `json:"confirmation"`
	ShipDate             string         `json:"shipDate"`
	Weight               weightSpec     `json:"weight"`
	Dimensions           dimensionsSpec `json:"dimensions"`
	ShipFrom             shipParty      `json:"shipFrom"`
	ShipTo               shipParty      `json:"shipTo"`
	InsuranceOptions     *struct{}      `json:"insuranceOptions"`
	InternationalOptions *struct{}      `json:"internationalOptions"`
	AdvancedOptions      *struct{}      `json:"advancedOptions"`
	TestLabel            bool           `json:"testLabel"`
}

// ---------------------------------------------------------------------------
// Response Types
// ---------------------------------------------------------------------------

// rateOffer is one element of the getrates response array
type rateOffer struct {
	ServiceName  string          `json:"serviceName"`
	ServiceCode  string          `json:"serviceCode"`
	ShipmentCost decimal.Decimal `json:"shipmentCost"`
	OtherCost    decimal.Decimal `json:"otherCost"`
}

// toQuote maps a vendor offer into a normalized rate quote
func (o rateOffer) toQuote(carrierName string) shipping.RateQuote {
	return shipping.RateQuote{
		ServiceProvider: shipping.ProviderShipStation,
		ServiceCode:     o.ServiceCode,
		ServiceName:     o.ServiceName,
		CarrierName:     carrierName,
		IsPreferred:     false,
		TotalPrice:      o.ShipmentCost,
		PriceInfo:       o.ShipmentCost,
		OtherCost:       o.OtherCost,
	}
}

// vendorError is the object ShipStation returns instead of a result when a
// request is rejected. Both message fields are carried: the rate call keys
// off ExceptionMessage being present and quotes Message, while the label
// call keys off Message being present and quotes ExceptionMessage.
type vendorError struct {
	Message          *string `json:"Message"`
	ExceptionMessage *string `json:"ExceptionMessage"`
}

// labelResponse is the body of a createlabel response. Pointer fields
// distinguish absent keys so the upsert only touches returned fields.
// TrackingNumber stays raw because the vendor returns either a plain string
// or a nested tracking object.
type labelResponse struct {
	ShipmentID     *string          `json:"shipmentId"`
	OrderID        *string          `json:"orderId"`
	OrderKey       *string          `json:"orderKey"`
	UserID         *string          `json:"userId"`
	ShipDate       *string          `json:"shipDate"`
	ShipmentCost   *decimal.Decimal `json:"shipmentCost"`
	InsuranceCost  *decimal.Decimal `json:"insuranceCost"`
	TrackingNumber json.RawMessage  `json:"trackingNumber"`
	CarrierCode    *string          `json:"carrierCode"`
	ServiceCode    *string          `json:"serviceCode"`
	LabelData      *string          `json:"labelData"`
	URLReference   *string          `json:"urlReference"`

	vendorError
}

// trackingDetail is the nested shape TrackingNumber may take
type trackingDetail struct {
	TrackingData *struct {
		ParcelList []struct {
			AWBNumber string `json:"awbNumber"`
		} `json:"parcelList"`
	} `json:"trackingData"`
}

// awbNumber descends into trackingData.parcelList[*].awbNumber if that shape
// exists; otherwise it returns the empty string.
func (r *labelResponse) awbNumber() string {
	if len(r.TrackingNumber) == 0 {
		return ""
	}
	var detail trackingDetail
	if err := json.Unmarshal(r.TrackingNumber, &detail); err != nil {
		return ""
	}
	if detail.TrackingData == nil {
		return ""
	}
	awb := ""
	for _, parcel := range detail.TrackingData.ParcelList {
		if parcel.AWBNumber != "" {
			awb = parcel.AWBNumber
		}
	}
	return awb
}

// trackingNumberString flattens TrackingNumber for persistence: a JSON
// string yields its value, any other shape is stored as raw JSON text.
func (r *labelResponse) trackingNumberString() *string {
	if len(r.TrackingNumber) == 0 {
		return nil
	}
	var s string
	if err := json.Unmarshal(r.TrackingNumber, &s); err == nil {
		return &s
	}
	raw := string(r.TrackingNumber)
	return &raw
}

// toRecord builds the persisted label record from the returned fields
func (r *labelResponse) toRecord() shipping.ShipmentRecord {
	record := shipping.ShipmentRecord{
		OrderID:        r.OrderID,
		OrderKey:       r.OrderKey,
		UserID:         r.UserID,
		ShipDate:       r.ShipDate,
		ShipmentCost:   r.ShipmentCost,
		InsuranceCost:  r.InsuranceCost,
		TrackingNumber: r.trackingNumberString(),
		CarrierCode:    r.CarrierCode,
		ServiceCode:    r.ServiceCode,
		LabelData:      r.LabelData,
		URLReference:   r.URLReference,
	}
	if r.ShipmentID != nil {
		record.ShipmentID = *r.ShipmentID
	}
	return record
}
