package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/dcastano/warehouse-backend/pkg/db/models"
	"github.com/dcastano/warehouse-backend/pkg/enums"
	"github.com/dcastano/warehouse-backend/pkg/pagination"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds a stock ledger repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) FindRow(ctx context.Context, key RowKey) (*models.StockLevel, error) {
	var row models.StockLevel
	err := r.db.WithContext(ctx).
		Where("warehouse_id = ? AND product_id = ? AND location_id = ? AND lot_number = ?",
			key.WarehouseID, key.ProductID, key.LocationID, key.LotNumber).
		First(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// UpsertAdd inserts the row with the given quantity or adds to an existing
// row's quantity in a single statement.
func (r *repository) UpsertAdd(ctx context.Context, key RowKey, qty int) error {
	row := models.StockLevel{
		ID:          uuid.New(),
		WarehouseID: key.WarehouseID,
		ProductID:   key.ProductID,
		LocationID:  key.LocationID,
		LotNumber:   key.LotNumber,
		Quantity:    qty,
		Status:      enums.StockStatusAvailable,
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "warehouse_id"},
			{Name: "product_id"},
			{Name: "location_id"},
			{Name: "lot_number"},
		},
		DoUpdates: clause.Assignments(map[string]any{
			"quantity":   gorm.Expr("stock_levels.quantity + excluded.quantity"),
			"updated_at": time.Now().UTC(),
		}),
	}).Create(&row).Error
}

// TakeQuantity decrements the row only when enough quantity remains. The
// returned count is zero when the row is missing or the guard fails.
func (r *repository) TakeQuantity(ctx context.Context, key RowKey, qty int) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&models.StockLevel{}).
		Where("warehouse_id = ? AND product_id = ? AND location_id = ? AND lot_number = ? AND quantity >= ?",
			key.WarehouseID, key.ProductID, key.LocationID, key.LotNumber, qty).
		Updates(map[string]any{
			"quantity":   gorm.Expr("quantity - ?", qty),
			"updated_at": time.Now().UTC(),
		})
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

func (r *repository) ListByWarehouse(ctx context.Context, warehouseID uuid.UUID, params pagination.Params, filters StockFilters) (*StockList, error) {
	limit := pagination.NormalizeLimit(params.Limit)

	q := r.db.WithContext(ctx).
		Model(&models.StockLevel{}).
		Where("warehouse_id = ?", warehouseID)

	if filters.ProductID != nil {
		q = q.Where("product_id = ?", *filters.ProductID)
	}
	if filters.LocationID != nil {
		q = q.Where("location_id = ?", *filters.LocationID)
	}
	if filters.Status != nil {
		q = q.Where("status = ?", *filters.Status)
	}
	if filters.ExcludeZero {
		q = q.Where("quantity > 0")
	}

	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, fmt.Errorf("parse stock cursor: %w", err)
	}
	if cursor != nil {
		q = q.Where(
			"created_at > ? OR (created_at = ? AND id > ?)",
			cursor.CreatedAt, cursor.CreatedAt, cursor.ID,
		)
	}

	var rows []models.StockLevel
	err = q.Order("created_at ASC, id ASC").
		Limit(pagination.LimitWithBuffer(params.Limit)).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	list := &StockList{Items: rows}
	if len(rows) > limit {
		list.Items = rows[:limit]
		last := list.Items[limit-1]
		list.NextCursor = pagination.EncodeCursor(pagination.Cursor{
			CreatedAt: last.CreatedAt,
			ID:        last.ID,
		})
	}
	return list, nil
}

func (r *repository) TotalAvailableByProduct(ctx context.Context, warehouseID uuid.UUID, productIDs []uuid.UUID) (map[uuid.UUID]int, error) {
	totals := make(map[uuid.UUID]int, len(productIDs))
	if len(productIDs) == 0 {
		return totals, nil
	}

	type productTotal struct {
		ProductID uuid.UUID `gorm:"column:product_id"`
		Total     int       `gorm:"column:total"`
	}

	var rows []productTotal
	err := r.db.WithContext(ctx).
		Model(&models.StockLevel{}).
		Select("product_id, COALESCE(SUM(quantity), 0) AS total").
		Where("warehouse_id = ? AND status = ? AND product_id IN ?",
			warehouseID, enums.StockStatusAvailable, productIDs).
		Group("product_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		totals[row.ProductID] = row.Total
	}
	return totals, nil
}
