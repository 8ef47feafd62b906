package picking

import (
	"context"
	"errors"
	"fmt"

	"github.com/dcastano/warehouse-backend/internal/inventory"
	"github.com/dcastano/warehouse-backend/pkg/db/models"
	"github.com/dcastano/warehouse-backend/pkg/enums"
	pkgerrors "github.com/dcastano/warehouse-backend/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// pullAttempts bounds how many queue candidates a single Pull inspects.
const pullAttempts = 5

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type stockTaker interface {
	TakeForPick(ctx context.Context, tx *gorm.DB, key inventory.RowKey, qty int) error
}

type movementRecorder interface {
	Record(ctx context.Context, tx *gorm.DB, movement *models.Movement) error
}

// shortPickReporter opens a problem ticket on the caller's transaction so the
// ticket commits together with the truncated line and the ledger decrement.
type shortPickReporter interface {
	ReportShortPick(ctx context.Context, tx *gorm.DB, report ShortPickReport) error
}

// Service defines the pick queue and pick line lifecycle.
type Service interface {
	Queue(ctx context.Context, warehouseID uuid.UUID, limit int) ([]QueueItem, error)
	Pull(ctx context.Context, lineID, workerID uuid.UUID) (*models.ShipmentLine, error)
	PullNext(ctx context.Context, warehouseID, workerID uuid.UUID) (*models.ShipmentLine, error)
	Release(ctx context.Context, lineID, workerID uuid.UUID) error
	Complete(ctx context.Context, input CompleteInput) error
	CompleteWithShortage(ctx context.Context, input ShortageInput) error
}

type service struct {
	repo     Repository
	tx       txRunner
	stock    stockTaker
	recorder movementRecorder
	reporter shortPickReporter
}

// NewService builds the picking service with the required dependencies.
func NewService(repo Repository, tx txRunner, stock stockTaker, recorder movementRecorder, reporter shortPickReporter) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("picking repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if stock == nil {
		return nil, fmt.Errorf("stock taker required")
	}
	if recorder == nil {
		return nil, fmt.Errorf("movement recorder required")
	}
	if reporter == nil {
		return nil, fmt.Errorf("short pick reporter required")
	}
	return &service{
		repo:     repo,
		tx:       tx,
		stock:    stock,
		recorder: recorder,
		reporter: reporter,
	}, nil
}

func (s *service) Queue(ctx context.Context, warehouseID uuid.UUID, limit int) ([]QueueItem, error) {
	if warehouseID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "warehouse id required")
	}
	items, err := s.repo.BuildQueue(ctx, warehouseID, limit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "build pick queue")
	}
	return items, nil
}

// Pull claims the specific line the worker chose off the queue. Losing the
// race to another worker reports a state conflict so the caller re-consults
// the queue.
func (s *service) Pull(ctx context.Context, lineID, workerID uuid.UUID) (*models.ShipmentLine, error) {
	if lineID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "line id required")
	}
	if workerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}

	affected, err := s.repo.ClaimLine(ctx, lineID, workerID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "claim pick line")
	}
	if affected == 0 {
		return nil, s.classifyClaimFailure(ctx, lineID)
	}
	line, err := s.repo.FindLineByID(ctx, lineID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load claimed line")
	}
	if err := s.repo.MarkShipmentPicking(ctx, line.ShipmentID); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "mark shipment picking")
	}
	return line, nil
}

// PullNext claims the next line on the pick path. The status guard on the
// claim makes each line assignable exactly once no matter how many workers
// pull.
func (s *service) PullNext(ctx context.Context, warehouseID, workerID uuid.UUID) (*models.ShipmentLine, error) {
	if warehouseID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "warehouse id required")
	}
	if workerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}

	for attempt := 0; attempt < pullAttempts; attempt++ {
		candidates, err := s.repo.BuildQueue(ctx, warehouseID, pullAttempts)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list claim candidates")
		}
		if len(candidates) == 0 {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "pick queue is empty")
		}

		for _, candidate := range candidates {
			affected, err := s.repo.ClaimLine(ctx, candidate.LineID, workerID)
			if err != nil {
				return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "claim pick line")
			}
			if affected == 0 {
				continue
			}
			if err := s.repo.MarkShipmentPicking(ctx, candidate.ShipmentID); err != nil {
				return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "mark shipment picking")
			}
			line, err := s.repo.FindLineByID(ctx, candidate.LineID)
			if err != nil {
				return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load claimed line")
			}
			return line, nil
		}
	}
	return nil, pkgerrors.New(pkgerrors.CodeConflict, "could not claim a pick line, try again")
}

func (s *service) Release(ctx context.Context, lineID, workerID uuid.UUID) error {
	if lineID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "line id required")
	}
	if workerID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}

	affected, err := s.repo.ReleaseLine(ctx, lineID, workerID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "release pick line")
	}
	if affected == 0 {
		return s.classifyAssignmentFailure(ctx, s.repo, lineID, workerID)
	}
	return nil
}

// Complete picks the full requested quantity: the line flip, the ledger
// decrement, and the movement row commit together or not at all.
func (s *service) Complete(ctx context.Context, input CompleteInput) error {
	if input.LineID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "line id required")
	}
	if input.WorkerID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}

	return s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		line, shipment, err := s.loadLineAndShipment(ctx, repo, input.LineID)
		if err != nil {
			return err
		}
		return s.completeFull(ctx, tx, repo, line, shipment, input.WorkerID)
	})
}

// completeFull flips the line to picked, decrements the ledger for the full
// requested quantity, and appends the pick movement.
func (s *service) completeFull(ctx context.Context, tx *gorm.DB, repo Repository, line *models.ShipmentLine, shipment *models.Shipment, workerID uuid.UUID) error {
	affected, err := repo.CompleteLine(ctx, line.ID, workerID, line.Quantity)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "complete pick line")
	}
	if affected == 0 {
		return s.classifyAssignmentFailure(ctx, repo, line.ID, workerID)
	}

	key := inventory.RowKey{
		WarehouseID: shipment.WarehouseID,
		ProductID:   line.ProductID,
		LocationID:  line.LocationID,
	}
	if err := s.stock.TakeForPick(ctx, tx, key, line.Quantity); err != nil {
		return err
	}

	return s.recordPick(ctx, tx, shipment.WarehouseID, line, workerID, line.Quantity, nil)
}

// CompleteWithShortage picks fewer units than requested. The truncated line,
// the ledger decrement for the actual count, and the problem ticket are one
// atomic commit; on any failure none of them exist.
func (s *service) CompleteWithShortage(ctx context.Context, input ShortageInput) error {
	if input.LineID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "line id required")
	}
	if input.WorkerID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	if input.ActualQuantity < 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "actual quantity cannot be negative")
	}

	return s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		line, shipment, err := s.loadLineAndShipment(ctx, repo, input.LineID)
		if err != nil {
			return err
		}
		if input.ActualQuantity > line.Quantity {
			return pkgerrors.New(pkgerrors.CodeValidation, "actual quantity exceeds the requested quantity")
		}
		if input.ActualQuantity == line.Quantity {
			// the full count was on the shelf after all, no shortage exists
			return s.completeFull(ctx, tx, repo, line, shipment, input.WorkerID)
		}
		expected := line.Quantity
		shortage := expected - input.ActualQuantity

		affected, err := repo.ShortPickLine(ctx, input.LineID, input.WorkerID, input.ActualQuantity, input.Notes)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "short pick line")
		}
		if affected == 0 {
			return s.classifyAssignmentFailure(ctx, repo, input.LineID, input.WorkerID)
		}

		if input.ActualQuantity > 0 {
			key := inventory.RowKey{
				WarehouseID: shipment.WarehouseID,
				ProductID:   line.ProductID,
				LocationID:  line.LocationID,
			}
			if err := s.stock.TakeForPick(ctx, tx, key, input.ActualQuantity); err != nil {
				return err
			}
		}
		// a zero-unit short pick still logs, the movement is the audit trail
		shortageNote := fmt.Sprintf("short picked, %d of %d units short", shortage, expected)
		if err := s.recordPick(ctx, tx, shipment.WarehouseID, line, input.WorkerID, input.ActualQuantity, &shortageNote); err != nil {
			return err
		}

		report := ShortPickReport{
			WarehouseID:      shipment.WarehouseID,
			LineID:           line.ID,
			ProductID:        line.ProductID,
			ExpectedQuantity: expected,
			ActualQuantity:   input.ActualQuantity,
			ReportedBy:       input.WorkerID,
			Notes:            input.Notes,
		}
		if err := s.reporter.ReportShortPick(ctx, tx, report); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "open short pick ticket")
		}
		return nil
	})
}

func (s *service) loadLineAndShipment(ctx context.Context, repo Repository, lineID uuid.UUID) (*models.ShipmentLine, *models.Shipment, error) {
	line, err := repo.FindLineByID(ctx, lineID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, pkgerrors.New(pkgerrors.CodeNotFound, "pick line not found")
		}
		return nil, nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load pick line")
	}
	shipment, err := repo.FindShipmentByID(ctx, line.ShipmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, pkgerrors.New(pkgerrors.CodeNotFound, "shipment not found")
		}
		return nil, nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load shipment")
	}
	return line, shipment, nil
}

func (s *service) recordPick(ctx context.Context, tx *gorm.DB, warehouseID uuid.UUID, line *models.ShipmentLine, workerID uuid.UUID, qty int, notes *string) error {
	lineID := line.ID
	movement := &models.Movement{
		WarehouseID:    warehouseID,
		Type:           enums.MovementTypePick,
		UserID:         workerID,
		ProductID:      line.ProductID,
		FromLocationID: &line.LocationID,
		Quantity:       qty,
		ReferenceID:    &lineID,
		Notes:          notes,
	}
	if err := s.recorder.Record(ctx, tx, movement); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "record pick movement")
	}
	return nil
}

func (s *service) classifyClaimFailure(ctx context.Context, lineID uuid.UUID) error {
	line, err := s.repo.FindLineByID(ctx, lineID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "pick line not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "inspect pick line")
	}
	if line.Status == enums.PickLineStatusInProgress {
		return pkgerrors.New(pkgerrors.CodeStateConflict, "pick line already assigned")
	}
	return pkgerrors.New(pkgerrors.CodeStateConflict, fmt.Sprintf("pick line is %s", line.Status))
}

func (s *service) classifyAssignmentFailure(ctx context.Context, repo Repository, lineID, workerID uuid.UUID) error {
	line, err := repo.FindLineByID(ctx, lineID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "pick line not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "inspect pick line")
	}
	if line.Status != enums.PickLineStatusInProgress {
		return pkgerrors.New(pkgerrors.CodeStateConflict, fmt.Sprintf("pick line is %s", line.Status))
	}
	if line.AssignedTo == nil || *line.AssignedTo != workerID {
		return pkgerrors.New(pkgerrors.CodeStateConflict, "pick line assigned to another worker")
	}
	return pkgerrors.New(pkgerrors.CodeConflict, "pick line state changed, try again")
}
