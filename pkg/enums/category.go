package enums

import "fmt"

// CategoryType scopes a category to the entity family it classifies.
type CategoryType string

const (
	CategoryTypeSme     CategoryType = "sme"
	CategoryTypeTourism CategoryType = "tourism"
)

var validCategoryTypes = []CategoryType{
	CategoryTypeSme,
	CategoryTypeTourism,
}

// String implements fmt.Stringer.
func (t CategoryType) String() string {
	return string(t)
}

// IsValid reports whether the value is a known CategoryType.
func (t CategoryType) IsValid() bool {
	for _, candidate := range validCategoryTypes {
		if candidate == t {
			return true
		}
	}
	return false
}

// ParseCategoryType converts raw input into a CategoryType.
func ParseCategoryType(value string) (CategoryType, error) {
	for _, candidate := range validCategoryTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid category type %q", value)
}

// SmeType distinguishes product businesses from service businesses.
type SmeType string

const (
	SmeTypeProduct SmeType = "product"
	SmeTypeService SmeType = "service"
)

var validSmeTypes = []SmeType{SmeTypeProduct, SmeTypeService}

// String implements fmt.Stringer.
func (t SmeType) String() string {
	return string(t)
}

// IsValid reports whether the value is a known SmeType.
func (t SmeType) IsValid() bool {
	for _, candidate := range validSmeTypes {
		if candidate == t {
			return true
		}
	}
	return false
}

// ParseSmeType converts raw input into an SmeType.
func ParseSmeType(value string) (SmeType, error) {
	for _, candidate := range validSmeTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid sme type %q", value)
}
