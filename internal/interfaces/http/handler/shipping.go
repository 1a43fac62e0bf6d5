package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	shippingapp "github.com/erp/shipping/internal/application/shipping"
	"github.com/erp/shipping/internal/domain/shipping"
	"github.com/erp/shipping/internal/interfaces/http/dto"
)

// ShippingHandler handles carrier rate, booking, label and tracking endpoints
type ShippingHandler struct {
	BaseHandler
	shippingService *shippingapp.Service
}

// NewShippingHandler creates a new ShippingHandler
func NewShippingHandler(shippingService *shippingapp.Service) *ShippingHandler {
	return &ShippingHandler{
		shippingService: shippingService,
	}
}

// =============================================================================
// Request/Response Types
// =============================================================================

// FetchRatesRequest represents a request for carrier service offers
type FetchRatesRequest struct {
	PickupFromType       string          `json:"pickup_from_type" binding:"required" example:"Company"`
	DeliveryToType       string          `json:"delivery_to_type" binding:"required" example:"Customer"`
	PickupAddressName    string          `json:"pickup_address_name" binding:"required"`
	DeliveryAddressName  string          `json:"delivery_address_name" binding:"required"`
	ShipmentParcel       string          `json:"shipment_parcel" binding:"required"`
	DescriptionOfContent string          `json:"description_of_content"`
	PickupDate           string          `json:"pickup_date"`
	ValueOfGoods         decimal.Decimal `json:"value_of_goods"`
	PickupContactName    string          `json:"pickup_contact_name"`
	DeliveryContactName  string          `json:"delivery_contact_name"`
}

// CreateShipmentRequest represents a request to book a shipment with the
// carrier chosen from a prior rate fetch
type CreateShipmentRequest struct {
	ShipmentName         string          `json:"shipment" binding:"required"`
	PickupFromType       string          `json:"pickup_from_type" binding:"required"`
	DeliveryToType       string          `json:"delivery_to_type" binding:"required"`
	PickupAddressName    string          `json:"pickup_address_name" binding:"required"`
	DeliveryAddressName  string          `json:"delivery_address_name" binding:"required"`
	ShipmentParcel       string          `json:"shipment_parcel" binding:"required"`
	DescriptionOfContent string          `json:"description_of_content"`
	PickupDate           string          `json:"pickup_date"`
	ValueOfGoods         decimal.Decimal `json:"value_of_goods"`
	ServiceData          string          `json:"service_data" binding:"required"`
	ShipmentNotificEmail string          `json:"shipment_notific_email"`
	TrackingNotificEmail string          `json:"tracking_notific_email"`
	PickupContactName    string          `json:"pickup_contact_name"`
	DeliveryContactName  string          `json:"delivery_contact_name"`
	DeliveryNotes        []string        `json:"delivery_notes"`
}

// TrackingQuery represents the query parameters of a tracking lookup
type TrackingQuery struct {
	ShipmentName  string   `form:"shipment"`
	DeliveryNotes []string `form:"delivery_note"`
}

// LabelResponse carries the stored label payload for printing
type LabelResponse struct {
	ShipmentID string `json:"shipment_id"`
	LabelData  string `json:"label_data"`
}

// TrackingResponse carries the carrier tracking number for a shipment
type TrackingResponse struct {
	ShipmentID     string `json:"shipment_id"`
	TrackingNumber string `json:"tracking_number"`
}

// =============================================================================
// Endpoints
// =============================================================================

// FetchRates godoc
//
//	@ID				fetchShippingRates
//
//	@Summary		Fetch carrier service offers
//	@Description	Query all enabled carriers for priced service offers, merged and sorted by total price
//	@Tags			shipping
//	@Accept			json
//	@Produce		json
//	@Param			request	body		FetchRatesRequest	true	"Rate request"
//	@Success		200		{object}	dto.Response
//	@Failure		400		{object}	dto.Response
//	@Failure		422		{object}	dto.Response
//	@Router			/shipping/rates [post]
func (h *ShippingHandler) FetchRates(c *gin.Context) {
	var req FetchRatesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	quotes, err := h.shippingService.FetchShippingRates(c.Request.Context(), shippingapp.FetchRatesInput{
		PickupFromType:       req.PickupFromType,
		DeliveryToType:       req.DeliveryToType,
		PickupAddressName:    req.PickupAddressName,
		DeliveryAddressName:  req.DeliveryAddressName,
		ShipmentParcel:       req.ShipmentParcel,
		DescriptionOfContent: req.DescriptionOfContent,
		PickupDate:           req.PickupDate,
		ValueOfGoods:         req.ValueOfGoods,
		PickupContactName:    req.PickupContactName,
		DeliveryContactName:  req.DeliveryContactName,
	})
	if err != nil {
		h.handleShippingError(c, err)
		return
	}

	if quotes == nil {
		quotes = []shipping.RateQuote{}
	}
	h.Success(c, quotes)
}

// CreateShipment godoc
//
//	@ID				createShipping
//
//	@Summary		Book a shipment
//	@Description	Create the shipment and label with the selected carrier and write the outcome back onto the ERP shipment
//	@Tags			shipping
//	@Accept			json
//	@Produce		json
//	@Param			request	body		CreateShipmentRequest	true	"Booking request"
//	@Success		200		{object}	dto.Response
//	@Failure		400		{object}	dto.Response
//	@Failure		422		{object}	dto.Response
//	@Router			/shipping/shipments [post]
func (h *ShippingHandler) CreateShipment(c *gin.Context) {
	var req CreateShipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.shippingService.CreateShipment(c.Request.Context(), shippingapp.CreateShipmentInput{
		ShipmentName:         req.ShipmentName,
		PickupFromType:       req.PickupFromType,
		DeliveryToType:       req.DeliveryToType,
		PickupAddressName:    req.PickupAddressName,
		DeliveryAddressName:  req.DeliveryAddressName,
		ShipmentParcel:       req.ShipmentParcel,
		DescriptionOfContent: req.DescriptionOfContent,
		PickupDate:           req.PickupDate,
		ValueOfGoods:         req.ValueOfGoods,
		ServiceData:          req.ServiceData,
		ShipmentNotificEmail: req.ShipmentNotificEmail,
		TrackingNotificEmail: req.TrackingNotificEmail,
		PickupContactName:    req.PickupContactName,
		DeliveryContactName:  req.DeliveryContactName,
		DeliveryNotes:        req.DeliveryNotes,
	})
	if err != nil {
		h.handleShippingError(c, err)
		return
	}

	// A nil result is a carrier-side failure the workflow treats as
	// non-fatal; the caller gets an empty payload, not an error.
	h.Success(c, result)
}

// GetLabel godoc
//
//	@ID				getShippingLabel
//
//	@Summary		Get shipping label
//	@Description	Return the stored label payload for a booked shipment
//	@Tags			shipping
//	@Produce		json
//	@Param			provider	path		string	true	"Service provider"
//	@Param			shipment_id	path		string	true	"Carrier shipment ID"
//	@Success		200			{object}	dto.Response
//	@Failure		404			{object}	dto.Response
//	@Router			/shipping/labels/{provider}/{shipment_id} [get]
func (h *ShippingHandler) GetLabel(c *gin.Context) {
	provider := c.Param("provider")
	shipmentID := c.Param("shipment_id")

	labelData, err := h.shippingService.PrintShippingLabel(c.Request.Context(), provider, shipmentID)
	if err != nil {
		h.handleShippingError(c, err)
		return
	}

	h.Success(c, LabelResponse{
		ShipmentID: shipmentID,
		LabelData:  labelData,
	})
}

// GetTracking godoc
//
//	@ID				getShippingTracking
//
//	@Summary		Get tracking number
//	@Description	Return the carrier tracking number for a booked shipment and push it onto the linked delivery notes
//	@Tags			shipping
//	@Produce		json
//	@Param			provider	path		string		true	"Service provider"
//	@Param			shipment_id	path		string		true	"Carrier shipment ID"
//	@Param			shipment	query		string		false	"ERP shipment name"
//	@Param			delivery_note	query	[]string	false	"Linked delivery note names"
//	@Success		200			{object}	dto.Response
//	@Failure		404			{object}	dto.Response
//	@Router			/shipping/tracking/{provider}/{shipment_id} [get]
func (h *ShippingHandler) GetTracking(c *gin.Context) {
	provider := c.Param("provider")
	shipmentID := c.Param("shipment_id")

	var query TrackingQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	tracking, err := h.shippingService.ShowTracking(c.Request.Context(), shippingapp.ShowTrackingInput{
		ShipmentName:    query.ShipmentName,
		ServiceProvider: provider,
		ShipmentID:      shipmentID,
		DeliveryNotes:   query.DeliveryNotes,
	})
	if err != nil {
		h.handleShippingError(c, err)
		return
	}

	h.Success(c, TrackingResponse{
		ShipmentID:     shipmentID,
		TrackingNumber: tracking,
	})
}

// handleShippingError maps shipping domain errors to HTTP responses
func (h *ShippingHandler) handleShippingError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, shipping.ErrInvalidParcelPayload),
		errors.Is(err, shipping.ErrInvalidServiceData):
		h.BadRequest(c, err.Error())
	case errors.Is(err, shipping.ErrAddressNotFound),
		errors.Is(err, shipping.ErrContactNotFound),
		errors.Is(err, shipping.ErrLabelNotFound),
		errors.Is(err, shipping.ErrSettingsNotFound),
		errors.Is(err, shipping.ErrShipmentNotFound),
		errors.Is(err, shipping.ErrDeliveryNoteNotFound):
		h.NotFound(c, err.Error())
	case errors.Is(err, shipping.ErrRateRequestRejected),
		errors.Is(err, shipping.ErrShipmentRejected):
		h.UnprocessableEntity(c, dto.ErrCodeBusinessRule, err.Error())
	default:
		h.InternalError(c, "An unexpected error occurred")
	}
}
