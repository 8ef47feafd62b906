package enums

import "fmt"

// MovementStatus tracks the lifecycle of a movement record.
type MovementStatus string

const (
	MovementStatusPending   MovementStatus = "pending"
	MovementStatusCompleted MovementStatus = "completed"
	MovementStatusFailed    MovementStatus = "failed"
	MovementStatusCancelled MovementStatus = "cancelled"
)

var validMovementStatuses = []MovementStatus{
	MovementStatusPending,
	MovementStatusCompleted,
	MovementStatusFailed,
	MovementStatusCancelled,
}

// String implements fmt.Stringer.
func (m MovementStatus) String() string {
	return string(m)
}

// IsValid reports whether the value is a known MovementStatus.
func (m MovementStatus) IsValid() bool {
	for _, candidate := range validMovementStatuses {
		if candidate == m {
			return true
		}
	}
	return false
}

// ParseMovementStatus converts raw input into a MovementStatus.
func ParseMovementStatus(value string) (MovementStatus, error) {
	for _, candidate := range validMovementStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid movement status %q", value)
}
