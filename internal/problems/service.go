package problems

import (
	"context"
	"errors"
	"fmt"

	"github.com/dcastano/warehouse-backend/pkg/db/models"
	"github.com/dcastano/warehouse-backend/pkg/enums"
	pkgerrors "github.com/dcastano/warehouse-backend/pkg/errors"
	"github.com/dcastano/warehouse-backend/pkg/pagination"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// allowedTransitions is the ticket lifecycle. Closed is terminal.
var allowedTransitions = map[enums.ProblemStatus][]enums.ProblemStatus{
	enums.ProblemStatusOpen: {
		enums.ProblemStatusInvestigating,
		enums.ProblemStatusEscalated,
		enums.ProblemStatusResolved,
		enums.ProblemStatusClosed,
	},
	enums.ProblemStatusInvestigating: {
		enums.ProblemStatusEscalated,
		enums.ProblemStatusResolved,
		enums.ProblemStatusClosed,
	},
	enums.ProblemStatusEscalated: {
		enums.ProblemStatusInvestigating,
		enums.ProblemStatusResolved,
		enums.ProblemStatusClosed,
	},
	enums.ProblemStatusResolved: {
		enums.ProblemStatusClosed,
	},
	enums.ProblemStatusClosed: {},
}

func transitionAllowed(from, to enums.ProblemStatus) bool {
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Service defines the problem ticket lifecycle.
type Service interface {
	Create(ctx context.Context, input CreateInput) (*models.ProblemTicket, error)
	Get(ctx context.Context, ticketID uuid.UUID) (*models.ProblemTicket, error)
	List(ctx context.Context, warehouseID uuid.UUID, params pagination.Params, filters Filters) (*TicketList, error)
	UpdateStatus(ctx context.Context, input UpdateStatusInput) (*models.ProblemTicket, error)
}

type service struct {
	repo Repository
}

// NewService builds the problem ticket service.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("problems repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Create(ctx context.Context, input CreateInput) (*models.ProblemTicket, error) {
	if input.WarehouseID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "warehouse id required")
	}
	if !input.Type.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid problem type")
	}
	if input.ReferenceID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "reference id required")
	}
	if input.ReferenceType == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "reference type required")
	}
	if input.ReportedBy == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}

	priority := input.Priority
	if priority == "" {
		priority = enums.ProblemPriorityMedium
	}
	if !priority.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid problem priority")
	}

	shortage := input.ExpectedQuantity - input.ActualQuantity
	if shortage < 0 {
		shortage = 0
	}

	ticket := &models.ProblemTicket{
		WarehouseID:      input.WarehouseID,
		Type:             input.Type,
		Priority:         priority,
		ReferenceType:    input.ReferenceType,
		ReferenceID:      input.ReferenceID,
		ProductID:        input.ProductID,
		ExpectedQuantity: input.ExpectedQuantity,
		ActualQuantity:   input.ActualQuantity,
		ShortageQuantity: shortage,
		Notes:            input.Notes,
		Status:           enums.ProblemStatusOpen,
		ReportedBy:       input.ReportedBy,
	}
	if err := s.repo.Insert(ctx, ticket); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "insert problem ticket")
	}
	return ticket, nil
}

func (s *service) Get(ctx context.Context, ticketID uuid.UUID) (*models.ProblemTicket, error) {
	if ticketID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "ticket id required")
	}
	ticket, err := s.repo.FindByID(ctx, ticketID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "ticket not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load ticket")
	}
	return ticket, nil
}

func (s *service) List(ctx context.Context, warehouseID uuid.UUID, params pagination.Params, filters Filters) (*TicketList, error) {
	if warehouseID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "warehouse id required")
	}
	if filters.Status != nil && !filters.Status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid status filter")
	}

	list, err := s.repo.List(ctx, warehouseID, params, filters)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list tickets")
	}
	return list, nil
}

func (s *service) UpdateStatus(ctx context.Context, input UpdateStatusInput) (*models.ProblemTicket, error) {
	if input.TicketID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "ticket id required")
	}
	if !input.Status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid target status")
	}
	if input.ActorID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}

	ticket, err := s.Get(ctx, input.TicketID)
	if err != nil {
		return nil, err
	}
	if ticket.Status == input.Status {
		return ticket, nil
	}
	if !transitionAllowed(ticket.Status, input.Status) {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict,
			fmt.Sprintf("cannot move ticket from %s to %s", ticket.Status, input.Status))
	}

	affected, err := s.repo.UpdateStatus(ctx, input.TicketID, ticket.Status, input.Status)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update ticket status")
	}
	if affected == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "ticket changed underneath you, reload and retry")
	}

	ticket.Status = input.Status
	return ticket, nil
}
