package picking

import (
	"context"

	"github.com/dcastano/warehouse-backend/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository defines persistence operations for pick lines and the queue.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	BuildQueue(ctx context.Context, warehouseID uuid.UUID, limit int) ([]QueueItem, error)
	FindLineByID(ctx context.Context, lineID uuid.UUID) (*models.ShipmentLine, error)
	FindShipmentByID(ctx context.Context, shipmentID uuid.UUID) (*models.Shipment, error)
	ClaimLine(ctx context.Context, lineID, workerID uuid.UUID) (int64, error)
	ReleaseLine(ctx context.Context, lineID, workerID uuid.UUID) (int64, error)
	CompleteLine(ctx context.Context, lineID, workerID uuid.UUID, pickedQty int) (int64, error)
	ShortPickLine(ctx context.Context, lineID, workerID uuid.UUID, actualQty int, notes *string) (int64, error)
	MarkShipmentPicking(ctx context.Context, shipmentID uuid.UUID) error
}
