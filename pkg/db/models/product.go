package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/dcastano/warehouse-backend/pkg/enums"
)

// Product is the catalog surface the core reads; it owns no catalog logic.
type Product struct {
	ID            uuid.UUID             `gorm:"column:id;type:uuid;primaryKey"`
	SKU           string                `gorm:"column:sku;not null;uniqueIndex"`
	Name          string                `gorm:"column:name;not null"`
	Description   *string               `gorm:"column:description"`
	UnitOfMeasure string                `gorm:"column:unit_of_measure;not null;default:'each'"`
	Velocity      enums.ProductVelocity `gorm:"column:velocity;type:text;not null;default:'medium'"`
	CreatedAt     time.Time             `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time             `gorm:"column:updated_at;autoUpdateTime"`
}
