// Package shipping orchestrates the ERP shipment workflow against the
// registered carrier providers: rate fetching, label booking, label and
// tracking lookups, and the shipment/delivery-note writebacks.
package shipping

import (
	"context"
	"sort"

	"go.uber.org/zap"

	"github.com/erp/shipping/internal/domain/shipping"
)

// ServiceMatcher tags a rate quote with carrier metadata before it is
// returned to the caller. The default implementation passes quotes through
// unchanged; deployments with carrier-specific display rules plug in their
// own.
type ServiceMatcher interface {
	Match(quote shipping.RateQuote) shipping.RateQuote
}

// PassthroughMatcher returns quotes unchanged
type PassthroughMatcher struct{}

// Match implements ServiceMatcher
func (PassthroughMatcher) Match(quote shipping.RateQuote) shipping.RateQuote {
	return quote
}

// Service coordinates the callable shipping operations across the
// registered carrier providers
type Service struct {
	providers map[shipping.ServiceProvider]shipping.CarrierProvider
	order     []shipping.ServiceProvider
	addresses shipping.AddressResolver
	contacts  shipping.ContactResolver
	shipments shipping.ShipmentWriter
	notes     shipping.DeliveryNoteWriter
	matcher   ServiceMatcher
	logger    *zap.Logger
}

// NewService creates a new shipping Service
func NewService(
	addresses shipping.AddressResolver,
	contacts shipping.ContactResolver,
	shipments shipping.ShipmentWriter,
	notes shipping.DeliveryNoteWriter,
	matcher ServiceMatcher,
	logger *zap.Logger,
) *Service {
	if matcher == nil {
		matcher = PassthroughMatcher{}
	}
	return &Service{
		providers: make(map[shipping.ServiceProvider]shipping.CarrierProvider),
		addresses: addresses,
		contacts:  contacts,
		shipments: shipments,
		notes:     notes,
		matcher:   matcher,
		logger:    logger,
	}
}

// Register adds a carrier provider. Registration order determines fan-out
// order on rate fetches.
func (s *Service) Register(provider shipping.CarrierProvider) {
	code := provider.Code()
	if _, exists := s.providers[code]; !exists {
		s.order = append(s.order, code)
	}
	s.providers[code] = provider
}

// FetchShippingRates resolves the trip inputs once, fans out across the
// enabled providers and returns the merged quote list sorted ascending by
// total price. A provider rejection aborts the whole fetch; disabled
// providers are skipped silently.
func (s *Service) FetchShippingRates(ctx context.Context, input FetchRatesInput) ([]shipping.RateQuote, error) {
	req, err := s.resolveRateRequest(ctx, input)
	if err != nil {
		return nil, err
	}

	var quotes []shipping.RateQuote
	for _, code := range s.order {
		provider := s.providers[code]
		enabled, err := provider.IsEnabled(ctx)
		if err != nil {
			return nil, err
		}
		if !enabled {
			continue
		}

		offered, err := provider.GetAvailableServices(ctx, req)
		if err != nil {
			return nil, err
		}
		for _, quote := range offered {
			quotes = append(quotes, s.matcher.Match(quote))
		}
	}

	sort.SliceStable(quotes, func(i, j int) bool {
		return quotes[i].TotalPrice.LessThan(quotes[j].TotalPrice)
	})
	return quotes, nil
}

// CreateShipment books a shipment with the provider named in the service
// selection, writes the booking result onto the host shipment and forwards
// it to any supplied delivery notes. An unknown provider or a silent
// provider failure yields (nil, nil).
func (s *Service) CreateShipment(ctx context.Context, input CreateShipmentInput) (*shipping.ShipmentResult, error) {
	selection, err := shipping.ParseServiceSelection(input.ServiceData)
	if err != nil {
		return nil, err
	}

	provider, ok := s.providers[selection.ServiceProvider]
	if !ok {
		s.logger.Warn("no provider registered for service selection",
			zap.String("service_provider", string(selection.ServiceProvider)))
		return nil, nil
	}

	req, err := s.resolveShipmentRequest(ctx, input, selection)
	if err != nil {
		return nil, err
	}

	result, err := provider.CreateShipment(ctx, req)
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, nil
	}

	if err := s.shipments.ApplyShipmentResult(ctx, input.ShipmentName, *result); err != nil {
		return nil, err
	}

	if len(input.DeliveryNotes) > 0 {
		if err := s.UpdateDeliveryNotes(ctx, input.DeliveryNotes, result, nil); err != nil {
			return nil, err
		}
	}
	return result, nil
}

// PrintShippingLabel returns the persisted label data for a booked
// shipment. An unknown provider yields an empty label without error.
func (s *Service) PrintShippingLabel(ctx context.Context, serviceProvider, shipmentID string) (string, error) {
	provider, ok := s.providers[shipping.ServiceProvider(serviceProvider)]
	if !ok {
		return "", nil
	}
	return provider.Label(ctx, shipmentID)
}

// ShowTracking returns the persisted tracking number for a booked shipment
// and forwards it to any supplied delivery notes. An unknown provider
// yields an empty tracking number without error.
func (s *Service) ShowTracking(ctx context.Context, input ShowTrackingInput) (string, error) {
	provider, ok := s.providers[shipping.ServiceProvider(input.ServiceProvider)]
	if !ok {
		return "", nil
	}

	tracking, err := provider.TrackingNumber(ctx, input.ShipmentID)
	if err != nil {
		return "", err
	}

	if tracking != "" && len(input.DeliveryNotes) > 0 {
		info := &shipping.TrackingInfo{AWBNumber: tracking}
		if err := s.UpdateDeliveryNotes(ctx, input.DeliveryNotes, nil, info); err != nil {
			return "", err
		}
	}
	return tracking, nil
}

// UpdateDeliveryNotes writes tracking fields onto each of the given notes,
// de-duplicated while preserving order. The shipmentInfo parameter is
// accepted but copies no fields onto the notes; only trackingInfo results
// in writes.
func (s *Service) UpdateDeliveryNotes(ctx context.Context, noteNames []string, shipmentInfo *shipping.ShipmentResult, trackingInfo *shipping.TrackingInfo) error {
	seen := make(map[string]struct{}, len(noteNames))
	for _, name := range noteNames {
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}

		if trackingInfo == nil {
			continue
		}
		if err := s.notes.UpdateTracking(ctx, name, *trackingInfo); err != nil {
			return err
		}
	}
	return nil
}

// resolveRateRequest resolves the address and contact names of a rate fetch
// into a carrier request
func (s *Service) resolveRateRequest(ctx context.Context, input FetchRatesInput) (shipping.RateRequest, error) {
	pickup, delivery, err := s.resolveAddresses(ctx, input.PickupAddressName, input.DeliveryAddressName)
	if err != nil {
		return shipping.RateRequest{}, err
	}

	parcels, err := shipping.ParseParcels(input.ShipmentParcel)
	if err != nil {
		return shipping.RateRequest{}, err
	}

	pickupContact, deliveryContact, err := s.resolveContacts(ctx,
		input.PickupFromType, input.DeliveryToType,
		input.PickupContactName, input.DeliveryContactName)
	if err != nil {
		return shipping.RateRequest{}, err
	}

	return shipping.RateRequest{
		PickupFromType:     input.PickupFromType,
		DeliveryToType:     input.DeliveryToType,
		PickupAddress:      pickup,
		DeliveryAddress:    delivery,
		Parcels:            parcels,
		ContentDescription: input.DescriptionOfContent,
		PickupDate:         input.PickupDate,
		ValueOfGoods:       input.ValueOfGoods,
		PickupContact:      pickupContact,
		DeliveryContact:    deliveryContact,
	}, nil
}

// resolveShipmentRequest resolves the address and contact names of a
// booking into a carrier request
func (s *Service) resolveShipmentRequest(ctx context.Context, input CreateShipmentInput, selection shipping.ServiceSelection) (shipping.ShipmentRequest, error) {
	pickup, delivery, err := s.resolveAddresses(ctx, input.PickupAddressName, input.DeliveryAddressName)
	if err != nil {
		return shipping.ShipmentRequest{}, err
	}

	parcels, err := shipping.ParseParcels(input.ShipmentParcel)
	if err != nil {
		return shipping.ShipmentRequest{}, err
	}

	pickupContact, deliveryContact, err := s.resolveContacts(ctx,
		input.PickupFromType, input.DeliveryToType,
		input.PickupContactName, input.DeliveryContactName)
	if err != nil {
		return shipping.ShipmentRequest{}, err
	}

	return shipping.ShipmentRequest{
		PickupFromType:     input.PickupFromType,
		DeliveryToType:     input.DeliveryToType,
		PickupAddress:      pickup,
		DeliveryAddress:    delivery,
		Parcels:            parcels,
		ContentDescription: input.DescriptionOfContent,
		PickupDate:         input.PickupDate,
		ValueOfGoods:       input.ValueOfGoods,
		Service:            selection,
		PickupContact:      pickupContact,
		DeliveryContact:    deliveryContact,
	}, nil
}

func (s *Service) resolveAddresses(ctx context.Context, pickupName, deliveryName string) (shipping.Address, shipping.Address, error) {
	pickup, err := s.addresses.Resolve(ctx, pickupName)
	if err != nil {
		return shipping.Address{}, shipping.Address{}, err
	}
	delivery, err := s.addresses.Resolve(ctx, deliveryName)
	if err != nil {
		return shipping.Address{}, shipping.Address{}, err
	}
	return pickup, delivery, nil
}

// resolveContacts resolves both trip contacts. Company-side parties resolve
// their contact through the company-contact lookup; the delivery side keys
// that lookup off the pickup contact name, matching the long-standing
// workflow behavior.
func (s *Service) resolveContacts(ctx context.Context, pickupFromType, deliveryToType, pickupContactName, deliveryContactName string) (*shipping.Contact, *shipping.Contact, error) {
	var pickupContact *shipping.Contact
	if pickupFromType != shipping.PartyTypeCompany {
		if pickupContactName != "" {
			contact, err := s.contacts.Resolve(ctx, pickupContactName)
			if err != nil {
				return nil, nil, err
			}
			pickupContact = &contact
		}
	} else if pickupContactName != "" {
		contact, err := s.contacts.ResolveCompanyContact(ctx, pickupContactName)
		if err != nil {
			return nil, nil, err
		}
		pickupContact = &contact
	}

	var deliveryContact *shipping.Contact
	if deliveryToType != shipping.PartyTypeCompany {
		if deliveryContactName != "" {
			contact, err := s.contacts.Resolve(ctx, deliveryContactName)
			if err != nil {
				return nil, nil, err
			}
			deliveryContact = &contact
		}
	} else if pickupContactName != "" {
		contact, err := s.contacts.ResolveCompanyContact(ctx, pickupContactName)
		if err != nil {
			return nil, nil, err
		}
		deliveryContact = &contact
	}

	return pickupContact, deliveryContact, nil
}
