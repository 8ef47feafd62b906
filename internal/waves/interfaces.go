package waves

import (
	"context"

	"github.com/dcastano/warehouse-backend/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository defines persistence operations for waves and their shipments.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	InsertWave(ctx context.Context, wave *models.Wave) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Wave, error)
	ListByWarehouse(ctx context.Context, warehouseID uuid.UUID) ([]models.Wave, error)
	AttachShipments(ctx context.Context, waveID, warehouseID uuid.UUID, shipmentIDs []uuid.UUID) (int64, error)
	DemandByProduct(ctx context.Context, shipmentIDs []uuid.UUID) ([]ProductDemand, error)
	ReleaseWave(ctx context.Context, waveID uuid.UUID) (int64, error)
	MarkShipmentsWaved(ctx context.Context, waveID uuid.UUID) error
}
