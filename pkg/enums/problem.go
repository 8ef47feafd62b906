package enums

import "fmt"

// ProblemType classifies an exception ticket.
type ProblemType string

const (
	ProblemTypeShortPick ProblemType = "short_pick"
	ProblemTypeDamaged   ProblemType = "damaged"
	ProblemTypeMissing   ProblemType = "missing"
	ProblemTypeOverage   ProblemType = "overage"
)

var validProblemTypes = []ProblemType{
	ProblemTypeShortPick,
	ProblemTypeDamaged,
	ProblemTypeMissing,
	ProblemTypeOverage,
}

// String implements fmt.Stringer.
func (p ProblemType) String() string {
	return string(p)
}

// IsValid reports whether the value is a known ProblemType.
func (p ProblemType) IsValid() bool {
	for _, candidate := range validProblemTypes {
		if candidate == p {
			return true
		}
	}
	return false
}

// ProblemPriority ranks tickets for triage.
type ProblemPriority string

const (
	ProblemPriorityLow    ProblemPriority = "low"
	ProblemPriorityMedium ProblemPriority = "medium"
	ProblemPriorityHigh   ProblemPriority = "high"
)

var validProblemPriorities = []ProblemPriority{
	ProblemPriorityLow,
	ProblemPriorityMedium,
	ProblemPriorityHigh,
}

// String implements fmt.Stringer.
func (p ProblemPriority) String() string {
	return string(p)
}

// IsValid reports whether the value is a known ProblemPriority.
func (p ProblemPriority) IsValid() bool {
	for _, candidate := range validProblemPriorities {
		if candidate == p {
			return true
		}
	}
	return false
}

// ProblemStatus is the ticket lifecycle, independent of the task that spawned it.
type ProblemStatus string

const (
	ProblemStatusOpen          ProblemStatus = "open"
	ProblemStatusInvestigating ProblemStatus = "investigating"
	ProblemStatusResolved      ProblemStatus = "resolved"
	ProblemStatusClosed        ProblemStatus = "closed"
	ProblemStatusEscalated     ProblemStatus = "escalated"
)

var validProblemStatuses = []ProblemStatus{
	ProblemStatusOpen,
	ProblemStatusInvestigating,
	ProblemStatusResolved,
	ProblemStatusClosed,
	ProblemStatusEscalated,
}

// String implements fmt.Stringer.
func (p ProblemStatus) String() string {
	return string(p)
}

// IsValid reports whether the value is a known ProblemStatus.
func (p ProblemStatus) IsValid() bool {
	for _, candidate := range validProblemStatuses {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParseProblemStatus converts raw input into a ProblemStatus.
func ParseProblemStatus(value string) (ProblemStatus, error) {
	for _, candidate := range validProblemStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid problem status %q", value)
}
