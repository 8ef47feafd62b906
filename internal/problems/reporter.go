package problems

import (
	"context"
	"fmt"

	"github.com/dcastano/warehouse-backend/internal/picking"
	"github.com/dcastano/warehouse-backend/pkg/db/models"
	"github.com/dcastano/warehouse-backend/pkg/enums"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const referenceTypeShipmentLine = "shipment_line"

// Reporter opens short pick tickets on the picking flow's transaction.
type Reporter struct {
	repo Repository
}

// NewReporter builds the short pick reporter.
func NewReporter(repo Repository) (*Reporter, error) {
	if repo == nil {
		return nil, fmt.Errorf("problems repository required")
	}
	return &Reporter{repo: repo}, nil
}

// ReportShortPick inserts an open ticket describing the shortage. Short picks
// mean a shipment leaves incomplete, so every ticket opens at high priority.
func (r *Reporter) ReportShortPick(ctx context.Context, tx *gorm.DB, report picking.ShortPickReport) error {
	if tx == nil {
		return fmt.Errorf("transaction required to report a short pick")
	}
	if report.WarehouseID == uuid.Nil || report.LineID == uuid.Nil {
		return fmt.Errorf("short pick report incomplete")
	}

	productID := report.ProductID
	ticket := &models.ProblemTicket{
		WarehouseID:      report.WarehouseID,
		Type:             enums.ProblemTypeShortPick,
		Priority:         enums.ProblemPriorityHigh,
		ReferenceType:    referenceTypeShipmentLine,
		ReferenceID:      report.LineID,
		ProductID:        &productID,
		ExpectedQuantity: report.ExpectedQuantity,
		ActualQuantity:   report.ActualQuantity,
		ShortageQuantity: report.ExpectedQuantity - report.ActualQuantity,
		Notes:            report.Notes,
		Status:           enums.ProblemStatusOpen,
		ReportedBy:       report.ReportedBy,
	}
	return r.repo.WithTx(tx).Insert(ctx, ticket)
}
