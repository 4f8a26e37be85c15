package enums

import "fmt"

// Gender selects the WHO growth-standard table used by the stunting calculator.
type Gender string

const (
	GenderBoys  Gender = "boys"
	GenderGirls Gender = "girls"
)

var validGenders = []Gender{GenderBoys, GenderGirls}

// String implements fmt.Stringer.
func (g Gender) String() string {
	return string(g)
}

// IsValid reports whether the value is a known Gender.
func (g Gender) IsValid() bool {
	for _, candidate := range validGenders {
		if candidate == g {
			return true
		}
	}
	return false
}

// ParseGender converts raw input into a Gender.
func ParseGender(value string) (Gender, error) {
	for _, candidate := range validGenders {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid gender %q", value)
}

// StuntingStatus is the height-for-age classification.
type StuntingStatus string

const (
	StuntingStatusSeverelyStunted StuntingStatus = "severely_stunted"
	StuntingStatusStunted         StuntingStatus = "stunted"
	StuntingStatusNormal          StuntingStatus = "normal"
	StuntingStatusTall            StuntingStatus = "tall"
)

// String implements fmt.Stringer.
func (s StuntingStatus) String() string {
	return string(s)
}
