package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/dcastano/warehouse-backend/pkg/enums"
)

// ShipmentLine is a pick line: one product picked from one location for one
// shipment. Its pick target is implicit (the shipment). PickedQuantity stays
// zero until the line completes; a short pick truncates Quantity to the
// actual count and parks the line in short_picked.
type ShipmentLine struct {
	ID             uuid.UUID            `gorm:"column:id;type:uuid;primaryKey"`
	ShipmentID     uuid.UUID            `gorm:"column:shipment_id;type:uuid;not null;index"`
	ProductID      uuid.UUID            `gorm:"column:product_id;type:uuid;not null"`
	LocationID     uuid.UUID            `gorm:"column:location_id;type:uuid;not null"`
	Quantity       int                  `gorm:"column:quantity;not null"`
	PickedQuantity int                  `gorm:"column:picked_quantity;not null;default:0"`
	Status         enums.PickLineStatus `gorm:"column:status;type:text;not null;default:'pending';index"`
	AssignedTo     *uuid.UUID           `gorm:"column:assigned_to;type:uuid"`
	StartedAt      *time.Time           `gorm:"column:started_at"`
	PickedAt       *time.Time           `gorm:"column:picked_at"`
	Notes          *string              `gorm:"column:notes"`
	CreatedAt      time.Time            `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time            `gorm:"column:updated_at;autoUpdateTime"`
}
