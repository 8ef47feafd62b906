package enums

import "fmt"

// MovementType labels the kind of stock mutation a movement records.
type MovementType string

const (
	MovementTypeReceive MovementType = "receive"
	MovementTypePutaway MovementType = "putaway"
	MovementTypePick    MovementType = "pick"
	MovementTypePack    MovementType = "pack"
	MovementTypeShip    MovementType = "ship"
	MovementTypeMove    MovementType = "move"
	MovementTypeAdjust  MovementType = "adjust"
	MovementTypeCount   MovementType = "count"
	MovementTypeReturn  MovementType = "return"
)

var validMovementTypes = []MovementType{
	MovementTypeReceive,
	MovementTypePutaway,
	MovementTypePick,
	MovementTypePack,
	MovementTypeShip,
	MovementTypeMove,
	MovementTypeAdjust,
	MovementTypeCount,
	MovementTypeReturn,
}

// String implements fmt.Stringer.
func (m MovementType) String() string {
	return string(m)
}

// IsValid reports whether the value is a known MovementType.
func (m MovementType) IsValid() bool {
	for _, candidate := range validMovementTypes {
		if candidate == m {
			return true
		}
	}
	return false
}

// ParseMovementType converts raw input into a MovementType.
func ParseMovementType(value string) (MovementType, error) {
	for _, candidate := range validMovementTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid movement type %q", value)
}
