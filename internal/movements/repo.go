package movements

import (
	"context"
	"fmt"

	"github.com/dcastano/warehouse-backend/pkg/db/models"
	"github.com/dcastano/warehouse-backend/pkg/pagination"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds a movement log repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) List(ctx context.Context, warehouseID uuid.UUID, params pagination.Params, filters Filters) (*MovementList, error) {
	limit := pagination.NormalizeLimit(params.Limit)

	q := r.db.WithContext(ctx).
		Model(&models.Movement{}).
		Where("warehouse_id = ?", warehouseID)

	if filters.Type != nil {
		q = q.Where("type = ?", *filters.Type)
	}
	if filters.ProductID != nil {
		q = q.Where("product_id = ?", *filters.ProductID)
	}
	if filters.ReferenceID != nil {
		q = q.Where("reference_id = ?", *filters.ReferenceID)
	}
	if filters.DateFrom != nil {
		q = q.Where("created_at >= ?", *filters.DateFrom)
	}
	if filters.DateTo != nil {
		q = q.Where("created_at <= ?", *filters.DateTo)
	}

	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, fmt.Errorf("parse movement cursor: %w", err)
	}
	if cursor != nil {
		q = q.Where(
			"created_at < ? OR (created_at = ? AND id < ?)",
			cursor.CreatedAt, cursor.CreatedAt, cursor.ID,
		)
	}

	var rows []models.Movement
	err = q.Order("created_at DESC, id DESC").
		Limit(pagination.LimitWithBuffer(params.Limit)).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	list := &MovementList{Movements: rows}
	if len(rows) > limit {
		list.Movements = rows[:limit]
		last := list.Movements[limit-1]
		list.NextCursor = pagination.EncodeCursor(pagination.Cursor{
			CreatedAt: last.CreatedAt,
			ID:        last.ID,
		})
	}
	return list, nil
}

func (r *repository) Summary(ctx context.Context, warehouseID uuid.UUID, window SummaryWindow) ([]TypeSummary, error) {
	var rows []TypeSummary
	q := r.db.WithContext(ctx).
		Model(&models.Movement{}).
		Select("type, COUNT(*) AS count, COALESCE(SUM(quantity), 0) AS total_quantity").
		Where("warehouse_id = ?", warehouseID)

	if !window.From.IsZero() {
		q = q.Where("created_at >= ?", window.From)
	}
	if !window.To.IsZero() {
		q = q.Where("created_at <= ?", window.To)
	}

	if err := q.Group("type").Order("type ASC").Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
