package problems

import (
	"context"

	"github.com/dcastano/warehouse-backend/pkg/db/models"
	"github.com/dcastano/warehouse-backend/pkg/enums"
	"github.com/dcastano/warehouse-backend/pkg/pagination"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository defines persistence operations for problem tickets.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Insert(ctx context.Context, ticket *models.ProblemTicket) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.ProblemTicket, error)
	List(ctx context.Context, warehouseID uuid.UUID, params pagination.Params, filters Filters) (*TicketList, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to enums.ProblemStatus) (int64, error)
}
