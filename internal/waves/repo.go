package waves

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

// NewRepository builds a wave repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) InsertWave(ctx context.Context, wave *models.Wave) error {
	if wave.ID == uuid.Nil {
		wave.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(wave).Error
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Wave, error) {
	var wave models.Wave
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&wave).Error; err != nil {
		return nil, err
	}
	return &wave, nil
}

func (r *repository) ListByWarehouse(ctx context.Context, warehouseID uuid.UUID) ([]models.Wave, error) {
	var rows []models.Wave
	err := r.db.WithContext(ctx).
		Where("warehouse_id = ?", warehouseID).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// AttachShipments claims shipments for the wave. The wave_id IS NULL guard
// keeps a shipment from riding two waves; the returned count tells the
// service whether every requested shipment was still free.
func (r *repository) AttachShipments(ctx context.Context, waveID, warehouseID uuid.UUID, shipmentIDs []uuid.UUID) (int64, error) {
	if len(shipmentIDs) == 0 {
		return 0, nil
	}
	res := r.db.WithContext(ctx).
		Model(&models.Shipment{}).
		Where("id IN ? AND warehouse_id = ? AND wave_id IS NULL AND status = ?",
			shipmentIDs, warehouseID, enums.ShipmentStatusPending).
		Updates(map[string]any{
			"wave_id":    waveID,
			"updated_at": time.Now().UTC(),
		})
	return res.RowsAffected, res.Error
}

func (r *repository) DemandByProduct(ctx context.Context, shipmentIDs []uuid.UUID) ([]ProductDemand, error) {
	if len(shipmentIDs) == 0 {
		return nil, nil
	}
	var rows []ProductDemand
	err := r.db.WithContext(ctx).
		Table("shipment_lines").
		Select("shipment_lines.product_id, products.sku, COALESCE(SUM(shipment_lines.quantity), 0) AS required").
		Joins("JOIN products ON products.id = shipment_lines.product_id").
		Where("shipment_lines.shipment_id IN ? AND shipment_lines.status = ?",
			shipmentIDs, enums.PickLineStatusPending).
		Group("shipment_lines.product_id, products.sku").
		Order("products.sku ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repository) ReleaseWave(ctx context.Context, waveID uuid.UUID) (int64, error) {
	now := time.Now().UTC()
	res := r.db.WithContext(ctx).
		Model(&models.Wave{}).
		Where("id = ? AND status = ?", waveID, enums.WaveStatusPlanning).
		Updates(map[string]any{
			"status":      enums.WaveStatusReleased,
			"released_at": now,
			"updated_at":  now,
		})
	return res.RowsAffected, res.Error
}

func (r *repository) MarkShipmentsWaved(ctx context.Context, waveID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&models.Shipment{}).
		Where("wave_id = ? AND status = ?", waveID, enums.ShipmentStatusPending).
		Updates(map[string]any{
			"status":     enums.ShipmentStatusWaved,
			"updated_at": time.Now().UTC(),
		}).Error
}
