package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/dcastano/warehouse-backend/pkg/enums"
)

// PutawayTask moves received stock from a dock location to storage. At most
// one worker holds a task at a time; assignment is a conditional update on
// status, never a read-then-write.
type PutawayTask struct {
	ID             uuid.UUID        `gorm:"column:id;type:uuid;primaryKey"`
	WarehouseID    uuid.UUID        `gorm:"column:warehouse_id;type:uuid;not null;index"`
	ProductID      uuid.UUID        `gorm:"column:product_id;type:uuid;not null"`
	FromLocationID uuid.UUID        `gorm:"column:from_location_id;type:uuid;not null"`
	ToLocationID   uuid.UUID        `gorm:"column:to_location_id;type:uuid;not null"`
	Quantity       int              `gorm:"column:quantity;not null"`
	Status         enums.TaskStatus `gorm:"column:status;type:text;not null;default:'pending';index"`
	AssignedTo     *uuid.UUID       `gorm:"column:assigned_to;type:uuid"`
	StartedAt      *time.Time       `gorm:"column:started_at"`
	CompletedAt    *time.Time       `gorm:"column:completed_at"`
	CreatedAt      time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}
