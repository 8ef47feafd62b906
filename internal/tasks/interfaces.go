package tasks

import (
	"context"

	"github.com/dcastano/warehouse-backend/pkg/db/models"
	"github.com/dcastano/warehouse-backend/pkg/enums"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository defines persistence operations for putaway tasks.
//
// Claim, ReleaseClaim, and CompleteTask are guarded single-statement updates;
// the returned count tells the service whether this caller won the transition.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Insert(ctx context.Context, task *models.PutawayTask) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.PutawayTask, error)
	ListPending(ctx context.Context, warehouseID uuid.UUID, limit int) ([]models.PutawayTask, error)
	Claim(ctx context.Context, taskID, workerID uuid.UUID) (int64, error)
	ReleaseClaim(ctx context.Context, taskID, workerID uuid.UUID) (int64, error)
	CompleteTask(ctx context.Context, taskID, workerID uuid.UUID) (int64, error)
	FindProductVelocity(ctx context.Context, productID uuid.UUID) (enums.ProductVelocity, error)
	SuggestStorageLocation(ctx context.Context, warehouseID uuid.UUID, velocity enums.ProductVelocity) (*models.Location, error)
}
