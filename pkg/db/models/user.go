package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/dcastano/warehouse-backend/pkg/enums"
)

// User is the directory surface: the core reads identifiers and roles but
// owns no account logic.
type User struct {
	ID        uuid.UUID        `gorm:"column:id;type:uuid;primaryKey"`
	Email     string           `gorm:"column:email;not null;uniqueIndex"`
	Name      string           `gorm:"column:name;not null"`
	Role      enums.MemberRole `gorm:"column:role;type:text;not null;default:'picker'"`
	Active    bool             `gorm:"column:active;not null;default:true"`
	CreatedAt time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}
