package problems

import (
	"context"
	"testing"

	"github.com/dcastano/warehouse-backend/pkg/db/models"
	"github.com/dcastano/warehouse-backend/pkg/enums"
	pkgerrors "github.com/dcastano/warehouse-backend/pkg/errors"
	"github.com/dcastano/warehouse-backend/pkg/pagination"
	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:problems_" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&models.ProblemTicket{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func newTestService(t *testing.T) (Service, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	svc, err := NewService(NewRepository(db))
	if err != nil {
		t.Fatalf("build service: %v", err)
	}
	return svc, db
}

func createTicket(t *testing.T, svc Service, warehouseID uuid.UUID) *models.ProblemTicket {
	t.Helper()
	ticket, err := svc.Create(context.Background(), CreateInput{
		WarehouseID:      warehouseID,
		Type:             enums.ProblemTypeDamaged,
		ReferenceType:    "stock_level",
		ReferenceID:      uuid.New(),
		ExpectedQuantity: 10,
		ActualQuantity:   7,
		ReportedBy:       uuid.New(),
	})
	if err != nil {
		t.Fatalf("create ticket: %v", err)
	}
	return ticket
}

func TestCreateDefaultsAndShortage(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	ticket := createTicket(t, svc, uuid.New())

	if ticket.Status != enums.ProblemStatusOpen {
		t.Fatalf("new tickets open as open, got %s", ticket.Status)
	}
	if ticket.Priority != enums.ProblemPriorityMedium {
		t.Fatalf("unset priority defaults to medium, got %s", ticket.Priority)
	}
	if ticket.ShortageQuantity != 3 {
		t.Fatalf("shortage must be expected minus actual, got %d", ticket.ShortageQuantity)
	}
}

func TestCreateRejectsInvalidType(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	_, err := svc.Create(context.Background(), CreateInput{
		WarehouseID:   uuid.New(),
		Type:          enums.ProblemType("mystery"),
		ReferenceType: "stock_level",
		ReferenceID:   uuid.New(),
		ReportedBy:    uuid.New(),
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestStatusTransitions(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		from    enums.ProblemStatus
		to      enums.ProblemStatus
		allowed bool
	}{
		{"open to investigating", enums.ProblemStatusOpen, enums.ProblemStatusInvestigating, true},
		{"open to resolved", enums.ProblemStatusOpen, enums.ProblemStatusResolved, true},
		{"investigating to escalated", enums.ProblemStatusInvestigating, enums.ProblemStatusEscalated, true},
		{"escalated back to investigating", enums.ProblemStatusEscalated, enums.ProblemStatusInvestigating, true},
		{"resolved to closed", enums.ProblemStatusResolved, enums.ProblemStatusClosed, true},
		{"resolved back to open", enums.ProblemStatusResolved, enums.ProblemStatusOpen, false},
		{"closed to anything", enums.ProblemStatusClosed, enums.ProblemStatusOpen, false},
		{"closed to investigating", enums.ProblemStatusClosed, enums.ProblemStatusInvestigating, false},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			svc, db := newTestService(t)
			ticket := createTicket(t, svc, uuid.New())
			if err := db.Model(&models.ProblemTicket{}).
				Where("id = ?", ticket.ID).
				Update("status", tc.from).Error; err != nil {
				t.Fatalf("force status: %v", err)
			}

			updated, err := svc.UpdateStatus(context.Background(), UpdateStatusInput{
				TicketID: ticket.ID,
				Status:   tc.to,
				ActorID:  uuid.New(),
			})
			if tc.allowed {
				if err != nil {
					t.Fatalf("transition %s -> %s should pass: %v", tc.from, tc.to, err)
				}
				if updated.Status != tc.to {
					t.Fatalf("expected %s, got %s", tc.to, updated.Status)
				}
				return
			}
			typed := pkgerrors.As(err)
			if typed == nil || typed.Code() != pkgerrors.CodeStateConflict {
				t.Fatalf("transition %s -> %s should be refused, got %v", tc.from, tc.to, err)
			}
		})
	}
}

func TestUpdateStatusSameStatusIsNoOp(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	ticket := createTicket(t, svc, uuid.New())

	updated, err := svc.UpdateStatus(context.Background(), UpdateStatusInput{
		TicketID: ticket.ID,
		Status:   enums.ProblemStatusOpen,
		ActorID:  uuid.New(),
	})
	if err != nil {
		t.Fatalf("same-status update: %v", err)
	}
	if updated.Status != enums.ProblemStatusOpen {
		t.Fatalf("no-op update must keep the status, got %s", updated.Status)
	}
}

func TestUpdateStatusMissingTicket(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	_, err := svc.UpdateStatus(context.Background(), UpdateStatusInput{
		TicketID: uuid.New(),
		Status:   enums.ProblemStatusInvestigating,
		ActorID:  uuid.New(),
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestListFiltersByStatus(t *testing.T) {
	t.Parallel()

	svc, db := newTestService(t)
	warehouseID := uuid.New()

	open := createTicket(t, svc, warehouseID)
	closed := createTicket(t, svc, warehouseID)
	createTicket(t, svc, uuid.New()) // different warehouse, must not surface

	if err := db.Model(&models.ProblemTicket{}).
		Where("id = ?", closed.ID).
		Update("status", enums.ProblemStatusClosed).Error; err != nil {
		t.Fatalf("force status: %v", err)
	}

	status := enums.ProblemStatusOpen
	list, err := svc.List(context.Background(), warehouseID, pagination.Params{}, Filters{Status: &status})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list.Tickets) != 1 || list.Tickets[0].ID != open.ID {
		t.Fatalf("expected only the open ticket, got %d rows", len(list.Tickets))
	}
}

func TestListPaginatesWithCursor(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	warehouseID := uuid.New()
	for i := 0; i < 5; i++ {
		createTicket(t, svc, warehouseID)
	}

	first, err := svc.List(context.Background(), warehouseID, pagination.Params{Limit: 3}, Filters{})
	if err != nil {
		t.Fatalf("first page: %v", err)
	}
	if len(first.Tickets) != 3 || first.NextCursor == "" {
		t.Fatalf("expected a full first page with a cursor, got %d rows", len(first.Tickets))
	}

	second, err := svc.List(context.Background(), warehouseID,
		pagination.Params{Limit: 3, Cursor: first.NextCursor}, Filters{})
	if err != nil {
		t.Fatalf("second page: %v", err)
	}
	if len(second.Tickets) != 2 || second.NextCursor != "" {
		t.Fatalf("expected the 2 remaining rows and no cursor, got %d rows", len(second.Tickets))
	}

	seen := map[uuid.UUID]bool{}
	for _, ticket := range append(first.Tickets, second.Tickets...) {
		if seen[ticket.ID] {
			t.Fatalf("ticket %s appeared on both pages", ticket.ID)
		}
		seen[ticket.ID] = true
	}
}
