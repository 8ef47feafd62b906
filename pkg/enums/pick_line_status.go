package enums

import "fmt"

// PickLineStatus is the assignment and completion state machine for pick lines.
// short_picked is terminal and distinct from picked.
type PickLineStatus string

const (
	PickLineStatusPending     PickLineStatus = "pending"
	PickLineStatusInProgress  PickLineStatus = "in_progress"
	PickLineStatusPicked      PickLineStatus = "picked"
	PickLineStatusShortPicked PickLineStatus = "short_picked"
	PickLineStatusCancelled   PickLineStatus = "cancelled"
)

var validPickLineStatuses = []PickLineStatus{
	PickLineStatusPending,
	PickLineStatusInProgress,
	PickLineStatusPicked,
	PickLineStatusShortPicked,
	PickLineStatusCancelled,
}

// String implements fmt.Stringer.
func (p PickLineStatus) String() string {
	return string(p)
}

// IsValid reports whether the value is a known PickLineStatus.
func (p PickLineStatus) IsValid() bool {
	for _, candidate := range validPickLineStatuses {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParsePickLineStatus converts raw input into a PickLineStatus.
func ParsePickLineStatus(value string) (PickLineStatus, error) {
	for _, candidate := range validPickLineStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid pick line status %q", value)
}
