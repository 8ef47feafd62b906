package movements

import (
	"time"

	"github.com/dcastano/warehouse-backend/pkg/db/models"
	"github.com/dcastano/warehouse-backend/pkg/enums"
	"github.com/google/uuid"
)

// Filters describe the inputs supported by the movement list.
type Filters struct {
	Type        *enums.MovementType
	ProductID   *uuid.UUID
	ReferenceID *uuid.UUID
	DateFrom    *time.Time
	DateTo      *time.Time
}

// MovementList wraps the paginated log slice plus the next page cursor.
type MovementList struct {
	Movements  []models.Movement `json:"movements"`
	NextCursor string            `json:"next_cursor,omitempty"`
}

// SummaryWindow bounds the summary aggregation.
type SummaryWindow struct {
	From time.Time
	To   time.Time
}

// TypeSummary aggregates log rows per movement type.
type TypeSummary struct {
	Type          enums.MovementType `json:"type"`
	Count         int                `json:"count"`
	TotalQuantity int                `json:"total_quantity"`
}
