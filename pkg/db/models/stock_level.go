package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/dcastano/warehouse-backend/pkg/enums"
)

// StockLevel is one ledger row: how much of a product sits at a location,
// optionally split by lot. The (warehouse, product, location, lot) tuple is
// unique; lot-less stock stores the empty string so the unique index and
// upserts behave the same with and without lots. Quantity never goes
// negative; zero-quantity rows are kept so history stays attributable.
type StockLevel struct {
	ID          uuid.UUID         `gorm:"column:id;type:uuid;primaryKey"`
	WarehouseID uuid.UUID         `gorm:"column:warehouse_id;type:uuid;not null;uniqueIndex:idx_stock_row_identity"`
	ProductID   uuid.UUID         `gorm:"column:product_id;type:uuid;not null;uniqueIndex:idx_stock_row_identity"`
	LocationID  uuid.UUID         `gorm:"column:location_id;type:uuid;not null;uniqueIndex:idx_stock_row_identity"`
	LotNumber   string            `gorm:"column:lot_number;not null;default:'';uniqueIndex:idx_stock_row_identity"`
	Quantity    int               `gorm:"column:quantity;not null;default:0"`
	Status      enums.StockStatus `gorm:"column:status;type:text;not null;default:'available'"`
	CreatedAt   time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}
