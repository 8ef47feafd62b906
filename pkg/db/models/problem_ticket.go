package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/dcastano/warehouse-backend/pkg/enums"
)

// ProblemTicket records a fulfillment exception. Short picks create one in
// the same transaction as the ledger decrement; its lifecycle is independent
// of the task that spawned it.
type ProblemTicket struct {
	ID               uuid.UUID             `gorm:"column:id;type:uuid;primaryKey"`
	WarehouseID      uuid.UUID             `gorm:"column:warehouse_id;type:uuid;not null;index"`
	Type             enums.ProblemType     `gorm:"column:type;type:text;not null"`
	Priority         enums.ProblemPriority `gorm:"column:priority;type:text;not null;default:'medium'"`
	ReferenceType    string                `gorm:"column:reference_type;not null"`
	ReferenceID      uuid.UUID             `gorm:"column:reference_id;type:uuid;not null;index"`
	ProductID        *uuid.UUID            `gorm:"column:product_id;type:uuid"`
	ExpectedQuantity int                   `gorm:"column:expected_quantity;not null;default:0"`
	ActualQuantity   int                   `gorm:"column:actual_quantity;not null;default:0"`
	ShortageQuantity int                   `gorm:"column:shortage_quantity;not null;default:0"`
	Notes            *string               `gorm:"column:notes"`
	Status           enums.ProblemStatus   `gorm:"column:status;type:text;not null;default:'open';index"`
	ReportedBy       uuid.UUID             `gorm:"column:reported_by;type:uuid;not null"`
	CreatedAt        time.Time             `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt        time.Time             `gorm:"column:updated_at;autoUpdateTime"`
}
