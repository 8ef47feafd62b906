package movements

import (
	"context"

	"github.com/dcastano/warehouse-backend/pkg/pagination"
	"github.com/google/uuid"
)

// Repository defines read access to the movement log. Writes go through the
// Recorder so they always ride the caller's transaction.
type Repository interface {
	List(ctx context.Context, warehouseID uuid.UUID, params pagination.Params, filters Filters) (*MovementList, error)
	Summary(ctx context.Context, warehouseID uuid.UUID, window SummaryWindow) ([]TypeSummary, error)
}
