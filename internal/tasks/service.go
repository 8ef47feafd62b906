package tasks

import (
	"context"
	"errors"
	"fmt"

	"github.com/dcastano/warehouse-backend/pkg/db/models"
	"github.com/dcastano/warehouse-backend/pkg/enums"
	pkgerrors "github.com/dcastano/warehouse-backend/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// pullAttempts bounds how many pending candidates a single Pull inspects
// before reporting contention.
const pullAttempts = 5

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service defines the putaway task lifecycle.
type Service interface {
	Create(ctx context.Context, input CreateInput) (*models.PutawayTask, error)
	ListPending(ctx context.Context, warehouseID uuid.UUID, limit int) ([]models.PutawayTask, error)
	Pull(ctx context.Context, taskID, workerID uuid.UUID) (*models.PutawayTask, error)
	PullNext(ctx context.Context, warehouseID, workerID uuid.UUID) (*models.PutawayTask, error)
	Release(ctx context.Context, taskID, workerID uuid.UUID) error
	Complete(ctx context.Context, taskID, workerID uuid.UUID) (*models.PutawayTask, error)
}

type service struct {
	repo Repository
	tx   txRunner
}

// NewService builds the putaway task service.
func NewService(repo Repository, tx txRunner) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("tasks repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{repo: repo, tx: tx}, nil
}

func (s *service) Create(ctx context.Context, input CreateInput) (*models.PutawayTask, error) {
	if input.WarehouseID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "warehouse id required")
	}
	if input.ProductID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id required")
	}
	if input.FromLocationID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "source location required")
	}
	if input.Quantity <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be positive")
	}
	if input.ActorID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}

	var task *models.PutawayTask
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		toLocation := input.ToLocationID
		if toLocation == nil {
			velocity, err := repo.FindProductVelocity(ctx, input.ProductID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
				}
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product velocity")
			}
			suggestion, err := repo.SuggestStorageLocation(ctx, input.WarehouseID, velocity)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return pkgerrors.New(pkgerrors.CodeStateConflict, "no active storage location available")
				}
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "suggest storage location")
			}
			toLocation = &suggestion.ID
		}

		candidate := &models.PutawayTask{
			WarehouseID:    input.WarehouseID,
			ProductID:      input.ProductID,
			FromLocationID: input.FromLocationID,
			ToLocationID:   *toLocation,
			Quantity:       input.Quantity,
			Status:         enums.TaskStatusPending,
		}
		if err := repo.Insert(ctx, candidate); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "insert putaway task")
		}
		task = candidate
		return nil
	})
	if err != nil {
		return nil, err
	}
	return task, nil
}

func (s *service) ListPending(ctx context.Context, warehouseID uuid.UUID, limit int) ([]models.PutawayTask, error) {
	if warehouseID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "warehouse id required")
	}
	rows, err := s.repo.ListPending(ctx, warehouseID, limit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list pending tasks")
	}
	return rows, nil
}

// Pull claims the specific task the worker chose off the pending list. When
// another worker already holds it the caller learns so and consults the list
// again.
func (s *service) Pull(ctx context.Context, taskID, workerID uuid.UUID) (*models.PutawayTask, error) {
	if taskID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "task id required")
	}
	if workerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}

	affected, err := s.repo.Claim(ctx, taskID, workerID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "claim task")
	}
	if affected == 0 {
		return nil, s.classifyClaimFailure(ctx, taskID)
	}
	claimed, err := s.repo.FindByID(ctx, taskID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load claimed task")
	}
	return claimed, nil
}

// PullNext claims the oldest pending task for the worker. When another worker
// wins the same candidate, the next one is tried; the status guard on the
// update makes each task claimable exactly once.
func (s *service) PullNext(ctx context.Context, warehouseID, workerID uuid.UUID) (*models.PutawayTask, error) {
	if warehouseID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "warehouse id required")
	}
	if workerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}

	for attempt := 0; attempt < pullAttempts; attempt++ {
		candidates, err := s.repo.ListPending(ctx, warehouseID, pullAttempts)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list claim candidates")
		}
		if len(candidates) == 0 {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "no pending tasks")
		}

		for _, candidate := range candidates {
			affected, err := s.repo.Claim(ctx, candidate.ID, workerID)
			if err != nil {
				return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "claim task")
			}
			if affected == 0 {
				continue
			}
			claimed, err := s.repo.FindByID(ctx, candidate.ID)
			if err != nil {
				return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load claimed task")
			}
			return claimed, nil
		}
	}
	return nil, pkgerrors.New(pkgerrors.CodeConflict, "could not claim a task, try again")
}

func (s *service) Release(ctx context.Context, taskID, workerID uuid.UUID) error {
	if taskID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "task id required")
	}
	if workerID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}

	affected, err := s.repo.ReleaseClaim(ctx, taskID, workerID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "release task")
	}
	if affected == 0 {
		return s.classifyAssignmentFailure(ctx, taskID, workerID)
	}
	return nil
}

func (s *service) Complete(ctx context.Context, taskID, workerID uuid.UUID) (*models.PutawayTask, error) {
	if taskID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "task id required")
	}
	if workerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}

	affected, err := s.repo.CompleteTask(ctx, taskID, workerID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "complete task")
	}
	if affected == 0 {
		return nil, s.classifyAssignmentFailure(ctx, taskID, workerID)
	}
	task, err := s.repo.FindByID(ctx, taskID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load completed task")
	}
	return task, nil
}

func (s *service) classifyClaimFailure(ctx context.Context, taskID uuid.UUID) error {
	task, err := s.repo.FindByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "task not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "inspect task")
	}
	if task.Status == enums.TaskStatusInProgress {
		return pkgerrors.New(pkgerrors.CodeStateConflict, "task already assigned")
	}
	return pkgerrors.New(pkgerrors.CodeStateConflict, fmt.Sprintf("task is %s", task.Status))
}

func (s *service) classifyAssignmentFailure(ctx context.Context, taskID, workerID uuid.UUID) error {
	task, err := s.repo.FindByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "task not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "inspect task")
	}
	if task.Status != enums.TaskStatusInProgress {
		return pkgerrors.New(pkgerrors.CodeStateConflict, fmt.Sprintf("task is %s", task.Status))
	}
	if task.AssignedTo == nil || *task.AssignedTo != workerID {
		return pkgerrors.New(pkgerrors.CodeStateConflict, "task assigned to another worker")
	}
	return pkgerrors.New(pkgerrors.CodeConflict, "task state changed, try again")
}
