package movements

import (
	"context"
	"fmt"

	"github.com/dcastano/warehouse-backend/pkg/db/models"
	"github.com/dcastano/warehouse-backend/pkg/enums"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Recorder appends movement rows on the caller's transaction so the log row
// commits or rolls back together with the ledger mutation it describes.
type Recorder struct{}

// NewRecorder builds a movement log recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Record inserts one movement row on the supplied transaction.
func (r *Recorder) Record(ctx context.Context, tx *gorm.DB, movement *models.Movement) error {
	if tx == nil {
		return fmt.Errorf("transaction required to record a movement")
	}
	if movement == nil {
		return fmt.Errorf("movement required")
	}
	if !movement.Type.IsValid() {
		return fmt.Errorf("invalid movement type %q", movement.Type)
	}
	if movement.ID == uuid.Nil {
		movement.ID = uuid.New()
	}
	if movement.Status == "" {
		movement.Status = enums.MovementStatusCompleted
	}
	return tx.WithContext(ctx).Create(movement).Error
}
