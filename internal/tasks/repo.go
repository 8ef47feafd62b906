package tasks

import (
	"context"
	"time"

	"github.com/dcastano/warehouse-backend/pkg/db/models"
	"github.com/dcastano/warehouse-backend/pkg/enums"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds a putaway task repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Insert(ctx context.Context, task *models.PutawayTask) error {
	if task.ID == uuid.Nil {
		task.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(task).Error
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.PutawayTask, error) {
	var task models.PutawayTask
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&task).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *repository) ListPending(ctx context.Context, warehouseID uuid.UUID, limit int) ([]models.PutawayTask, error) {
	var rows []models.PutawayTask
	q := r.db.WithContext(ctx).
		Where("warehouse_id = ? AND status = ?", warehouseID, enums.TaskStatusPending).
		Order("created_at ASC, id ASC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Claim flips pending to in_progress for exactly one caller. Losers match
// zero rows because the status guard no longer holds.
func (r *repository) Claim(ctx context.Context, taskID, workerID uuid.UUID) (int64, error) {
	now := time.Now().UTC()
	res := r.db.WithContext(ctx).
		Model(&models.PutawayTask{}).
		Where("id = ? AND status = ?", taskID, enums.TaskStatusPending).
		Updates(map[string]any{
			"status":      enums.TaskStatusInProgress,
			"assigned_to": workerID,
			"started_at":  now,
			"updated_at":  now,
		})
	return res.RowsAffected, res.Error
}

func (r *repository) ReleaseClaim(ctx context.Context, taskID, workerID uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&models.PutawayTask{}).
		Where("id = ? AND status = ? AND assigned_to = ?", taskID, enums.TaskStatusInProgress, workerID).
		Updates(map[string]any{
			"status":      enums.TaskStatusPending,
			"assigned_to": nil,
			"started_at":  nil,
			"updated_at":  time.Now().UTC(),
		})
	return res.RowsAffected, res.Error
}

func (r *repository) CompleteTask(ctx context.Context, taskID, workerID uuid.UUID) (int64, error) {
	now := time.Now().UTC()
	res := r.db.WithContext(ctx).
		Model(&models.PutawayTask{}).
		Where("id = ? AND status = ? AND assigned_to = ?", taskID, enums.TaskStatusInProgress, workerID).
		Updates(map[string]any{
			"status":       enums.TaskStatusCompleted,
			"completed_at": now,
			"updated_at":   now,
		})
	return res.RowsAffected, res.Error
}

func (r *repository) FindProductVelocity(ctx context.Context, productID uuid.UUID) (enums.ProductVelocity, error) {
	var product models.Product
	err := r.db.WithContext(ctx).
		Select("velocity").
		Where("id = ?", productID).
		First(&product).Error
	if err != nil {
		return "", err
	}
	return product.Velocity, nil
}

// SuggestStorageLocation picks an active storage slot for the velocity class.
// Fast movers land in low aisles near packing; slow movers in the back.
func (r *repository) SuggestStorageLocation(ctx context.Context, warehouseID uuid.UUID, velocity enums.ProductVelocity) (*models.Location, error) {
	order := "zone ASC, aisle ASC, section ASC"
	switch velocity {
	case enums.ProductVelocityFast:
		order = "aisle ASC, section ASC"
	case enums.ProductVelocitySlow:
		order = "aisle DESC, section DESC"
	}

	var location models.Location
	err := r.db.WithContext(ctx).
		Where("warehouse_id = ? AND type = ? AND active = ?", warehouseID, enums.LocationTypeStorage, true).
		Order(order).
		First(&location).Error
	if err != nil {
		return nil, err
	}
	return &location, nil
}
