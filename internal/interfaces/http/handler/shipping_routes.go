package handler

import (
	"github.com/erp/shipping/internal/interfaces/http/router"
)

// ShippingRoutes creates the route group for shipping endpoints
func ShippingRoutes(handler *ShippingHandler) *router.DomainGroup {
	group := router.NewDomainGroup("shipping", "/shipping")

	// Rate fetch and booking
	group.POST("/rates", handler.FetchRates)
	group.POST("/shipments", handler.CreateShipment)

	// Label and tracking lookups for booked shipments
	group.GET("/labels/:provider/:shipment_id", handler.GetLabel)
	group.GET("/tracking/:provider/:shipment_id", handler.GetTracking)

	return group
}
