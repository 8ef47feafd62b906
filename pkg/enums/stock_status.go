package enums

import "fmt"

// StockStatus describes the disposition of a ledger row's quantity.
type StockStatus string

const (
	StockStatusAvailable  StockStatus = "available"
	StockStatusReserved   StockStatus = "reserved"
	StockStatusDamaged    StockStatus = "damaged"
	StockStatusOnHold     StockStatus = "on_hold"
	StockStatusQuarantine StockStatus = "quarantine"
)

var validStockStatuses = []StockStatus{
	StockStatusAvailable,
	StockStatusReserved,
	StockStatusDamaged,
	StockStatusOnHold,
	StockStatusQuarantine,
}

// String implements fmt.Stringer.
func (s StockStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known StockStatus.
func (s StockStatus) IsValid() bool {
	for _, candidate := range validStockStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseStockStatus converts raw input into a StockStatus.
func ParseStockStatus(value string) (StockStatus, error) {
	for _, candidate := range validStockStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid stock status %q", value)
}
