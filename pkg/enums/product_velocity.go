package enums

// ProductVelocity is the coarse pick-frequency class used by the putaway
// location heuristic. Fast movers are slotted closest to the pick path start.
type ProductVelocity string

const (
	ProductVelocityFast   ProductVelocity = "fast"
	ProductVelocityMedium ProductVelocity = "medium"
	ProductVelocitySlow   ProductVelocity = "slow"
)

var validProductVelocities = []ProductVelocity{
	ProductVelocityFast,
	ProductVelocityMedium,
	ProductVelocitySlow,
}

// String implements fmt.Stringer.
func (p ProductVelocity) String() string {
	return string(p)
}

// IsValid reports whether the value is a known ProductVelocity.
func (p ProductVelocity) IsValid() bool {
	for _, candidate := range validProductVelocities {
		if candidate == p {
			return true
		}
	}
	return false
}
