package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/dcastano/warehouse-backend/pkg/enums"
)

// Wave groups shipments for coordinated release. Creation is gated by the
// commitment check; the check is advisory and reserves nothing.
type Wave struct {
	ID          uuid.UUID        `gorm:"column:id;type:uuid;primaryKey"`
	WarehouseID uuid.UUID        `gorm:"column:warehouse_id;type:uuid;not null;index"`
	Reference   string           `gorm:"column:reference;not null"`
	Status      enums.WaveStatus `gorm:"column:status;type:text;not null;default:'planning'"`
	ReleasedAt  *time.Time       `gorm:"column:released_at"`
	CompletedAt *time.Time       `gorm:"column:completed_at"`
	CreatedBy   uuid.UUID        `gorm:"column:created_by;type:uuid;not null"`
	CreatedAt   time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}
