package enums

import "fmt"

// OfferAvailability represents the stock states of a sellable item.
type OfferAvailability string

const (
	OfferAvailabilityAvailable  OfferAvailability = "available"
	OfferAvailabilityOutOfStock OfferAvailability = "out_of_stock"
	OfferAvailabilitySeasonal   OfferAvailability = "seasonal"
	OfferAvailabilityOnDemand   OfferAvailability = "on_demand"
)

var validOfferAvailabilities = []OfferAvailability{
	OfferAvailabilityAvailable,
	OfferAvailabilityOutOfStock,
	OfferAvailabilitySeasonal,
	OfferAvailabilityOnDemand,
}

// String implements fmt.Stringer.
func (a OfferAvailability) String() string {
	return string(a)
}

// IsValid reports whether the value is a known OfferAvailability.
func (a OfferAvailability) IsValid() bool {
	for _, candidate := range validOfferAvailabilities {
		if candidate == a {
			return true
		}
	}
	return false
}

// ParseOfferAvailability converts raw input into an OfferAvailability.
func ParseOfferAvailability(value string) (OfferAvailability, error) {
	for _, candidate := range validOfferAvailabilities {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid offer availability %q", value)
}

// OfferSort enumerates the sortable columns exposed by catalog listings.
type OfferSort string

const (
	OfferSortCreatedAt OfferSort = "created_at"
	OfferSortName      OfferSort = "name"
	OfferSortPrice     OfferSort = "price"
	OfferSortViewCount OfferSort = "view_count"
)

var validOfferSorts = []OfferSort{
	OfferSortCreatedAt,
	OfferSortName,
	OfferSortPrice,
	OfferSortViewCount,
}

// String implements fmt.Stringer.
func (s OfferSort) String() string {
	return string(s)
}

// IsValid reports whether the value is a known OfferSort.
func (s OfferSort) IsValid() bool {
	for _, candidate := range validOfferSorts {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseOfferSort converts raw input into an OfferSort. Unknown or empty values
// fall back to the latest-first default instead of failing, per the public API
// contract.
func ParseOfferSort(value string) OfferSort {
	for _, candidate := range validOfferSorts {
		if string(candidate) == value {
			return candidate
		}
	}
	return OfferSortCreatedAt
}
