package picking

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

// NewRepository builds a picking repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

// BuildQueue joins pending lines of waved shipments with their pick-path
// coordinates. Walking path wins over shipment priority: a picker finishes a
// zone before doubling back for a hotter order.
func (r *repository) BuildQueue(ctx context.Context, warehouseID uuid.UUID, limit int) ([]QueueItem, error) {
	q := r.db.WithContext(ctx).
		Table("shipment_lines").
		Select(`shipment_lines.id AS line_id,
			shipments.id AS shipment_id,
			shipments.order_number,
			shipments.priority,
			shipment_lines.product_id,
			products.sku,
			shipment_lines.location_id,
			locations.barcode,
			locations.zone,
			locations.aisle,
			locations.section,
			shipment_lines.quantity,
			shipments.created_at AS shipment_created_at`).
		Joins("JOIN shipments ON shipments.id = shipment_lines.shipment_id").
		Joins("JOIN locations ON locations.id = shipment_lines.location_id").
		Joins("JOIN products ON products.id = shipment_lines.product_id").
		Where("shipments.warehouse_id = ?", warehouseID).
		Where("shipment_lines.status = ?", enums.PickLineStatusPending).
		Where("shipments.status IN ?", []enums.ShipmentStatus{
			enums.ShipmentStatusWaved,
			enums.ShipmentStatusPicking,
		}).
		Order("locations.zone ASC, locations.aisle ASC, locations.section ASC, shipments.priority DESC, shipments.created_at ASC")

	if limit > 0 {
		q = q.Limit(limit)
	}

	var items []QueueItem
	if err := q.Scan(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repository) FindLineByID(ctx context.Context, lineID uuid.UUID) (*models.ShipmentLine, error) {
	var line models.ShipmentLine
	if err := r.db.WithContext(ctx).Where("id = ?", lineID).First(&line).Error; err != nil {
		return nil, err
	}
	return &line, nil
}

func (r *repository) FindShipmentByID(ctx context.Context, shipmentID uuid.UUID) (*models.Shipment, error) {
	var shipment models.Shipment
	if err := r.db.WithContext(ctx).Where("id = ?", shipmentID).First(&shipment).Error; err != nil {
		return nil, err
	}
	return &shipment, nil
}

// ClaimLine flips pending to in_progress for exactly one caller.
func (r *repository) ClaimLine(ctx context.Context, lineID, workerID uuid.UUID) (int64, error) {
	now := time.Now().UTC()
	res := r.db.WithContext(ctx).
		Model(&models.ShipmentLine{}).
		Where("id = ? AND status = ?", lineID, enums.PickLineStatusPending).
		Updates(map[string]any{
			"status":      enums.PickLineStatusInProgress,
			"assigned_to": workerID,
			"started_at":  now,
			"updated_at":  now,
		})
	return res.RowsAffected, res.Error
}

func (r *repository) ReleaseLine(ctx context.Context, lineID, workerID uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&models.ShipmentLine{}).
		Where("id = ? AND status = ? AND assigned_to = ?", lineID, enums.PickLineStatusInProgress, workerID).
		Updates(map[string]any{
			"status":      enums.PickLineStatusPending,
			"assigned_to": nil,
			"started_at":  nil,
			"updated_at":  time.Now().UTC(),
		})
	return res.RowsAffected, res.Error
}

func (r *repository) CompleteLine(ctx context.Context, lineID, workerID uuid.UUID, pickedQty int) (int64, error) {
	now := time.Now().UTC()
	res := r.db.WithContext(ctx).
		Model(&models.ShipmentLine{}).
		Where("id = ? AND status = ? AND assigned_to = ?", lineID, enums.PickLineStatusInProgress, workerID).
		Updates(map[string]any{
			"status":          enums.PickLineStatusPicked,
			"picked_quantity": pickedQty,
			"picked_at":       now,
			"updated_at":      now,
		})
	return res.RowsAffected, res.Error
}

// ShortPickLine parks the line in short_picked and truncates the requested
// quantity to what was actually on the shelf.
func (r *repository) ShortPickLine(ctx context.Context, lineID, workerID uuid.UUID, actualQty int, notes *string) (int64, error) {
	now := time.Now().UTC()
	updates := map[string]any{
		"status":          enums.PickLineStatusShortPicked,
		"quantity":        actualQty,
		"picked_quantity": actualQty,
		"picked_at":       now,
		"updated_at":      now,
	}
	if notes != nil {
		updates["notes"] = *notes
	}
	res := r.db.WithContext(ctx).
		Model(&models.ShipmentLine{}).
		Where("id = ? AND status = ? AND assigned_to = ?", lineID, enums.PickLineStatusInProgress, workerID).
		Updates(updates)
	return res.RowsAffected, res.Error
}

// MarkShipmentPicking is a best-effort transition; a shipment already in
// picking matches zero rows and that is fine.
func (r *repository) MarkShipmentPicking(ctx context.Context, shipmentID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&models.Shipment{}).
		Where("id = ? AND status = ?", shipmentID, enums.ShipmentStatusWaved).
		Updates(map[string]any{
			"status":     enums.ShipmentStatusPicking,
			"updated_at": time.Now().UTC(),
		}).Error
}
