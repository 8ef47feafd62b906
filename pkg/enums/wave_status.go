package enums

import "fmt"

// WaveStatus tracks a wave from planning through completion.
type WaveStatus string

const (
	WaveStatusPlanning  WaveStatus = "planning"
	WaveStatusReleased  WaveStatus = "released"
	WaveStatusPicking   WaveStatus = "picking"
	WaveStatusCompleted WaveStatus = "completed"
	WaveStatusCancelled WaveStatus = "cancelled"
)

var validWaveStatuses = []WaveStatus{
	WaveStatusPlanning,
	WaveStatusReleased,
	WaveStatusPicking,
	WaveStatusCompleted,
	WaveStatusCancelled,
}

// String implements fmt.Stringer.
func (w WaveStatus) String() string {
	return string(w)
}

// IsValid reports whether the value is a known WaveStatus.
func (w WaveStatus) IsValid() bool {
	for _, candidate := range validWaveStatuses {
		if candidate == w {
			return true
		}
	}
	return false
}

// ParseWaveStatus converts raw input into a WaveStatus.
func ParseWaveStatus(value string) (WaveStatus, error) {
	for _, candidate := range validWaveStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid wave status %q", value)
}
