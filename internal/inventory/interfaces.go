package inventory

import (
	"context"

	"github.com/dcastano/warehouse-backend/pkg/db/models"
	"github.com/dcastano/warehouse-backend/pkg/pagination"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository defines persistence operations for the stock ledger.
//
// Mutations are single guarded statements. A decrement that would drive a row
// negative simply matches zero rows; callers re-fetch to classify the refusal.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	FindRow(ctx context.Context, key RowKey) (*models.StockLevel, error)
	UpsertAdd(ctx context.Context, key RowKey, qty int) error
	TakeQuantity(ctx context.Context, key RowKey, qty int) (int64, error)
	ListByWarehouse(ctx context.Context, warehouseID uuid.UUID, params pagination.Params, filters StockFilters) (*StockList, error)
	TotalAvailableByProduct(ctx context.Context, warehouseID uuid.UUID, productIDs []uuid.UUID) (map[uuid.UUID]int, error)
}
