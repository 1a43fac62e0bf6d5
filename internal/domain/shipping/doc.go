// Package shipping contains the Shipping bounded context.
// This context integrates the ERP shipment workflow with external
// carrier-rate/label vendors.
//
// Key concepts:
//   - CarrierProvider: Port interface for a rate/label vendor (ShipStation)
//   - RateQuote: Value object for a priced shipping-service offer
//   - ShipmentRecord: Persisted label record keyed by the vendor shipment id
//   - ShipmentResult: Booking outcome written back onto the host shipment
//
// Design Pattern: Ports & Adapters
//   - Ports (interfaces) are defined here in the domain layer
//   - Adapters (implementations) are in the infrastructure layer
package shipping
