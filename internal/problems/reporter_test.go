package problems

import (
	"context"
	"testing"

	"github.com/dcastano/warehouse-backend/internal/picking"
	"github.com/dcastano/warehouse-backend/pkg/db/models"
	"github.com/dcastano/warehouse-backend/pkg/enums"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

func reportShortPick(t *testing.T, db *gorm.DB, report picking.ShortPickReport) *models.ProblemTicket {
	t.Helper()
	reporter, err := NewReporter(NewRepository(db))
	if err != nil {
		t.Fatalf("build reporter: %v", err)
	}
	err = db.Transaction(func(tx *gorm.DB) error {
		return reporter.ReportShortPick(context.Background(), tx, report)
	})
	if err != nil {
		t.Fatalf("report short pick: %v", err)
	}
	var ticket models.ProblemTicket
	if err := db.First(&ticket, "reference_id = ?", report.LineID).Error; err != nil {
		t.Fatalf("load ticket: %v", err)
	}
	return &ticket
}

func TestReportShortPickOpensHighPriorityTicket(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	ticket := reportShortPick(t, db, picking.ShortPickReport{
		WarehouseID:      uuid.New(),
		LineID:           uuid.New(),
		ProductID:        uuid.New(),
		ExpectedQuantity: 5,
		ActualQuantity:   3,
		ReportedBy:       uuid.New(),
	})

	if ticket.Type != enums.ProblemTypeShortPick || ticket.Status != enums.ProblemStatusOpen {
		t.Fatalf("unexpected ticket: %+v", ticket)
	}
	// partial shortages block a shipment just as hard as empty shelves
	if ticket.Priority != enums.ProblemPriorityHigh {
		t.Fatalf("short pick tickets open at high priority, got %s", ticket.Priority)
	}
	if ticket.ShortageQuantity != 2 {
		t.Fatalf("expected shortage 2, got %d", ticket.ShortageQuantity)
	}
}

func TestReportShortPickEmptyShelfIsHighPriority(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	ticket := reportShortPick(t, db, picking.ShortPickReport{
		WarehouseID:      uuid.New(),
		LineID:           uuid.New(),
		ProductID:        uuid.New(),
		ExpectedQuantity: 8,
		ActualQuantity:   0,
		ReportedBy:       uuid.New(),
	})

	if ticket.Priority != enums.ProblemPriorityHigh {
		t.Fatalf("expected high priority, got %s", ticket.Priority)
	}
	if ticket.ExpectedQuantity != 8 || ticket.ActualQuantity != 0 || ticket.ShortageQuantity != 8 {
		t.Fatalf("unexpected quantities: %+v", ticket)
	}
}

func TestReportShortPickRequiresTransaction(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	reporter, err := NewReporter(NewRepository(db))
	if err != nil {
		t.Fatalf("build reporter: %v", err)
	}
	if err := reporter.ReportShortPick(context.Background(), nil, picking.ShortPickReport{
		WarehouseID: uuid.New(),
		LineID:      uuid.New(),
	}); err == nil {
		t.Fatalf("reporting outside a transaction must fail")
	}
}
