package inventory

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dcastano/warehouse-backend/pkg/db/models"
	"github.com/dcastano/warehouse-backend/pkg/enums"
	pkgerrors "github.com/dcastano/warehouse-backend/pkg/errors"
	"github.com/dcastano/warehouse-backend/pkg/metrics"
	"github.com/dcastano/warehouse-backend/pkg/pagination"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type movementRecorder interface {
	Record(ctx context.Context, tx *gorm.DB, movement *models.Movement) error
}

// Service defines the stock ledger mutations and reads.
//
// Every accepted mutation commits its ledger change and exactly one movement
// row in the same transaction. A refused mutation commits nothing.
type Service interface {
	Receive(ctx context.Context, input ReceiveInput) (*models.StockLevel, error)
	Move(ctx context.Context, input MoveInput) error
	Adjust(ctx context.Context, input AdjustInput) error
	ListStock(ctx context.Context, warehouseID uuid.UUID, params pagination.Params, filters StockFilters) (*StockList, error)
	TakeForPick(ctx context.Context, tx *gorm.DB, key RowKey, qty int) error
	AvailabilityByProduct(ctx context.Context, warehouseID uuid.UUID, productIDs []uuid.UUID) (map[uuid.UUID]int, error)
}

type service struct {
	repo     Repository
	tx       txRunner
	recorder movementRecorder
	metrics  *metrics.MutationMetrics
}

// NewService builds the stock ledger service with the required dependencies.
func NewService(repo Repository, tx txRunner, recorder movementRecorder, mutationMetrics *metrics.MutationMetrics) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("inventory repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if recorder == nil {
		return nil, fmt.Errorf("movement recorder required")
	}
	return &service{
		repo:     repo,
		tx:       tx,
		recorder: recorder,
		metrics:  mutationMetrics,
	}, nil
}

func (s *service) Receive(ctx context.Context, input ReceiveInput) (*models.StockLevel, error) {
	if err := validateRowKeyInput(input.WarehouseID, input.ProductID, input.LocationID); err != nil {
		return nil, err
	}
	if input.ActorID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	if input.Quantity <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be positive")
	}

	key := RowKey{
		WarehouseID: input.WarehouseID,
		ProductID:   input.ProductID,
		LocationID:  input.LocationID,
		LotNumber:   input.LotNumber,
	}

	var row *models.StockLevel
	err := s.observe(ctx, "receive", func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if err := repo.UpsertAdd(ctx, key, input.Quantity); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "apply receipt")
		}

		movement := &models.Movement{
			WarehouseID:  input.WarehouseID,
			Type:         enums.MovementTypeReceive,
			UserID:       input.ActorID,
			ProductID:    input.ProductID,
			ToLocationID: &input.LocationID,
			Quantity:     input.Quantity,
			ReferenceID:  input.ReferenceID,
			Notes:        input.Notes,
		}
		if err := s.recorder.Record(ctx, tx, movement); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "record receipt movement")
		}

		updated, err := repo.FindRow(ctx, key)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load updated stock row")
		}
		row = updated
		return nil
	})
	if err != nil {
		return nil, err
	}
	return row, nil
}

func (s *service) Move(ctx context.Context, input MoveInput) error {
	if err := validateRowKeyInput(input.WarehouseID, input.ProductID, input.FromLocationID); err != nil {
		return err
	}
	if input.ToLocationID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "destination location required")
	}
	if input.ActorID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	if input.Quantity <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "quantity must be positive")
	}
	if input.FromLocationID == input.ToLocationID {
		return pkgerrors.New(pkgerrors.CodeValidation, "source and destination locations must differ")
	}

	src := RowKey{
		WarehouseID: input.WarehouseID,
		ProductID:   input.ProductID,
		LocationID:  input.FromLocationID,
		LotNumber:   input.LotNumber,
	}
	dst := src
	dst.LocationID = input.ToLocationID

	return s.observe(ctx, "move", func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		// Apply the two row mutations in key order so concurrent moves that
		// touch the same rows cannot deadlock.
		take := func() error { return s.takeOrClassify(ctx, repo, src, input.Quantity) }
		add := func() error {
			if err := repo.UpsertAdd(ctx, dst, input.Quantity); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "credit destination")
			}
			return nil
		}

		ordered := []func() error{take, add}
		if dst.Less(src) {
			ordered = []func() error{add, take}
		}
		for _, step := range ordered {
			if err := step(); err != nil {
				return err
			}
		}

		movement := &models.Movement{
			WarehouseID:    input.WarehouseID,
			Type:           enums.MovementTypeMove,
			UserID:         input.ActorID,
			ProductID:      input.ProductID,
			FromLocationID: &input.FromLocationID,
			ToLocationID:   &input.ToLocationID,
			Quantity:       input.Quantity,
			ReferenceID:    input.ReferenceID,
			Notes:          input.Notes,
		}
		if err := s.recorder.Record(ctx, tx, movement); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "record move movement")
		}
		return nil
	})
}

func (s *service) Adjust(ctx context.Context, input AdjustInput) error {
	if err := validateRowKeyInput(input.WarehouseID, input.ProductID, input.LocationID); err != nil {
		return err
	}
	if input.ActorID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	if input.Delta == 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "adjustment delta must be non-zero")
	}
	reason := strings.TrimSpace(input.Reason)
	if reason == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "adjustment reason required")
	}

	key := RowKey{
		WarehouseID: input.WarehouseID,
		ProductID:   input.ProductID,
		LocationID:  input.LocationID,
		LotNumber:   input.LotNumber,
	}

	return s.observe(ctx, "adjust", func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		if input.Delta > 0 {
			if err := repo.UpsertAdd(ctx, key, input.Delta); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "apply positive adjustment")
			}
		} else {
			affected, err := repo.TakeQuantity(ctx, key, -input.Delta)
			if err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "apply negative adjustment")
			}
			if affected == 0 {
				if _, err := repo.FindRow(ctx, key); err != nil {
					if errors.Is(err, gorm.ErrRecordNotFound) {
						// a negative delta on an absent row would create
						// negative stock, a field error rather than a
						// stale reference
						return pkgerrors.New(pkgerrors.CodeValidation, "cannot create a stock row with negative quantity")
					}
					return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "inspect stock row")
				}
				return pkgerrors.New(pkgerrors.CodeStateConflict, "adjustment would drive quantity negative")
			}
		}

		movement := &models.Movement{
			WarehouseID: input.WarehouseID,
			Type:        enums.MovementTypeAdjust,
			UserID:      input.ActorID,
			ProductID:   input.ProductID,
			Quantity:    input.Delta,
			Notes:       &reason,
		}
		if input.Delta > 0 {
			movement.ToLocationID = &input.LocationID
		} else {
			movement.FromLocationID = &input.LocationID
		}
		if err := s.recorder.Record(ctx, tx, movement); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "record adjustment movement")
		}
		return nil
	})
}

func (s *service) ListStock(ctx context.Context, warehouseID uuid.UUID, params pagination.Params, filters StockFilters) (*StockList, error) {
	if warehouseID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "warehouse id required")
	}
	if filters.Status != nil && !filters.Status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid stock status filter")
	}

	list, err := s.repo.ListByWarehouse(ctx, warehouseID, params, filters)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list stock levels")
	}
	return list, nil
}

// TakeForPick decrements the ledger on the caller's transaction. The picking
// service uses it so a pick's ledger change joins the pick's own writes.
func (s *service) TakeForPick(ctx context.Context, tx *gorm.DB, key RowKey, qty int) error {
	if tx == nil {
		return pkgerrors.New(pkgerrors.CodeInternal, "transaction required")
	}
	if qty <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "quantity must be positive")
	}
	return s.takeOrClassify(ctx, s.repo.WithTx(tx), key, qty)
}

func (s *service) AvailabilityByProduct(ctx context.Context, warehouseID uuid.UUID, productIDs []uuid.UUID) (map[uuid.UUID]int, error) {
	if warehouseID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "warehouse id required")
	}
	totals, err := s.repo.TotalAvailableByProduct(ctx, warehouseID, productIDs)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "sum available stock")
	}
	return totals, nil
}

func (s *service) takeOrClassify(ctx context.Context, repo Repository, key RowKey, qty int) error {
	affected, err := repo.TakeQuantity(ctx, key, qty)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "debit stock row")
	}
	if affected > 0 {
		return nil
	}
	if _, err := repo.FindRow(ctx, key); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "source stock row not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "inspect stock row")
	}
	return pkgerrors.New(pkgerrors.CodeStateConflict, "insufficient stock at source")
}

// observe wraps a mutation transaction with duration and outcome metrics.
func (s *service) observe(ctx context.Context, operation string, fn func(tx *gorm.DB) error) error {
	start := time.Now()
	err := s.tx.WithTx(ctx, fn)
	s.metrics.ObserveDuration(operation, time.Since(start))

	switch {
	case err == nil:
		s.metrics.IncSuccess(operation)
	case isRejection(err):
		s.metrics.IncRejected(operation)
	default:
		s.metrics.IncFailure(operation)
	}
	return err
}

func isRejection(err error) bool {
	typed := pkgerrors.As(err)
	if typed == nil {
		return false
	}
	switch typed.Code() {
	case pkgerrors.CodeValidation, pkgerrors.CodeStateConflict, pkgerrors.CodeNotFound, pkgerrors.CodeConflict:
		return true
	default:
		return false
	}
}

func validateRowKeyInput(warehouseID, productID, locationID uuid.UUID) error {
	if warehouseID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "warehouse id required")
	}
	if productID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "product id required")
	}
	if locationID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "location id required")
	}
	return nil
}
