package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/dcastano/warehouse-backend/pkg/enums"
)

// Location is a named slot in a warehouse. Zone, aisle, and section drive the
// pick-path ordering.
type Location struct {
	ID          uuid.UUID          `gorm:"column:id;type:uuid;primaryKey"`
	WarehouseID uuid.UUID          `gorm:"column:warehouse_id;type:uuid;not null;index"`
	Barcode     string             `gorm:"column:barcode;not null;uniqueIndex"`
	Zone        string             `gorm:"column:zone;not null"`
	Aisle       int                `gorm:"column:aisle;not null"`
	Section     int                `gorm:"column:section;not null"`
	Shelf       *string            `gorm:"column:shelf"`
	Type        enums.LocationType `gorm:"column:type;type:text;not null;default:'storage'"`
	Active      bool               `gorm:"column:active;not null;default:true"`
	CreatedAt   time.Time          `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time          `gorm:"column:updated_at;autoUpdateTime"`
}
