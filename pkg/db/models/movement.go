package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/dcastano/warehouse-backend/pkg/enums"
)

// Movement is one row of the append-only audit log. Exactly one movement is
// committed per accepted mutation, inside the same transaction. Rows are
// never updated after creation.
type Movement struct {
	ID             uuid.UUID            `gorm:"column:id;type:uuid;primaryKey"`
	WarehouseID    uuid.UUID            `gorm:"column:warehouse_id;type:uuid;not null;index"`
	Type           enums.MovementType   `gorm:"column:type;type:text;not null;index"`
	UserID         uuid.UUID            `gorm:"column:user_id;type:uuid;not null"`
	ProductID      uuid.UUID            `gorm:"column:product_id;type:uuid;not null;index"`
	FromLocationID *uuid.UUID           `gorm:"column:from_location_id;type:uuid"`
	ToLocationID   *uuid.UUID           `gorm:"column:to_location_id;type:uuid"`
	Quantity       int                  `gorm:"column:quantity;not null"`
	ReferenceID    *uuid.UUID           `gorm:"column:reference_id;type:uuid;index"`
	Notes          *string              `gorm:"column:notes"`
	Status         enums.MovementStatus `gorm:"column:status;type:text;not null;default:'completed'"`
	CreatedAt      time.Time            `gorm:"column:created_at;autoCreateTime;index"`
}
