package enums

import "fmt"

// LocationType distinguishes dock/staging locations from storage bins.
type LocationType string

const (
	LocationTypeDock    LocationType = "dock"
	LocationTypeStorage LocationType = "storage"
	LocationTypeStaging LocationType = "staging"
	LocationTypePacking LocationType = "packing"
)

var validLocationTypes = []LocationType{
	LocationTypeDock,
	LocationTypeStorage,
	LocationTypeStaging,
	LocationTypePacking,
}

// String implements fmt.Stringer.
func (l LocationType) String() string {
	return string(l)
}

// IsValid reports whether the value is a known LocationType.
func (l LocationType) IsValid() bool {
	for _, candidate := range validLocationTypes {
		if candidate == l {
			return true
		}
	}
	return false
}

// ParseLocationType converts raw input into a LocationType.
func ParseLocationType(value string) (LocationType, error) {
	for _, candidate := range validLocationTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid location type %q", value)
}
