package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/dcastano/warehouse-backend/pkg/enums"
)

// Shipment is an outbound order to fulfill. It belongs to at most one wave
// at a time.
type Shipment struct {
	ID          uuid.UUID            `gorm:"column:id;type:uuid;primaryKey"`
	WarehouseID uuid.UUID            `gorm:"column:warehouse_id;type:uuid;not null;index"`
	OrderNumber string               `gorm:"column:order_number;not null;uniqueIndex"`
	Priority    int                  `gorm:"column:priority;not null;default:0"`
	Status      enums.ShipmentStatus `gorm:"column:status;type:text;not null;default:'pending';index"`
	WaveID      *uuid.UUID           `gorm:"column:wave_id;type:uuid;index"`
	Lines       []ShipmentLine       `gorm:"foreignKey:ShipmentID"`
	CreatedAt   time.Time            `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time            `gorm:"column:updated_at;autoUpdateTime"`
}
