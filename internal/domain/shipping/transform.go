package shipping

import "regexp"

// addressTitleLimit is the vendor's length limit for the company field.
const addressTitleLimit = 30

var nonAlphanumeric = regexp.MustCompile(`[^A-Za-z0-9]+`)

// DeriveContact computes the carrier-specific contact fields: the phone
// prefix is the first three characters of the raw phone, the phone is the
// remainder with all non-alphanumeric characters stripped, and the title is
// MR for male contacts and MS otherwise. The input contact is left untouched.
func DeriveContact(c Contact) DerivedContact {
	derived := DerivedContact{Contact: c}

	prefix := c.Phone
	rest := ""
	if len(c.Phone) >= 3 {
		prefix = c.Phone[:3]
		rest = c.Phone[3:]
	}
	derived.PhonePrefix = prefix
	derived.Phone = nonAlphanumeric.ReplaceAllString(rest, "")

	derived.Title = "MS"
	if c.Gender == "Male" {
		derived.Title = "MR"
	}
	return derived
}

// TrimAddressTitle truncates an address title to the vendor's 30-character
// company-field limit.
func TrimAddressTitle(title string) string {
	runes := []rune(title)
	if len(runes) > addressTitleLimit {
		return string(runes[:addressTitleLimit])
	}
	return title
}

// ParcelItems maps shipment parcels into the carrier wire shape, attaching
// the content description to every item.
func ParcelItems(parcels []Parcel, contentDescription string) []ParcelItem {
	items := make([]ParcelItem, 0, len(parcels))
	for _, p := range parcels {
		items = append(items, ParcelItem{
			Height:             p.Height,
			Width:              p.Width,
			Length:             p.Length,
			Weight:             p.Weight,
			Quantity:           p.Count,
			ContentDescription: contentDescription,
		})
	}
	return items
}
