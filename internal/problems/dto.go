package problems

import (
	"github.com/dcastano/warehouse-backend/pkg/db/models"
	"github.com/dcastano/warehouse-backend/pkg/enums"
	"github.com/google/uuid"
)

// CreateInput opens a ticket by hand (damaged stock, missing stock, overage).
// Short pick tickets are opened by the picking flow, not through this path.
type CreateInput struct {
	WarehouseID      uuid.UUID
	Type             enums.ProblemType
	Priority         enums.ProblemPriority
	ReferenceType    string
	ReferenceID      uuid.UUID
	ProductID        *uuid.UUID
	ExpectedQuantity int
	ActualQuantity   int
	Notes            *string
	ReportedBy       uuid.UUID
}

// UpdateStatusInput moves a ticket through its lifecycle.
type UpdateStatusInput struct {
	TicketID uuid.UUID
	Status   enums.ProblemStatus
	ActorID  uuid.UUID
}

// Filters describe the inputs supported by the ticket list.
type Filters struct {
	Status   *enums.ProblemStatus
	Type     *enums.ProblemType
	Priority *enums.ProblemPriority
}

// TicketList wraps the paginated tickets plus the next page cursor.
type TicketList struct {
	Tickets    []models.ProblemTicket `json:"tickets"`
	NextCursor string                 `json:"next_cursor,omitempty"`
}
