package movements

import (
	"context"
	"fmt"
	"time"

	pkgerrors "github.com/dcastano/warehouse-backend/pkg/errors"
	"github.com/dcastano/warehouse-backend/pkg/pagination"
	"github.com/google/uuid"
)

// Service exposes read-only projections over the movement log.
type Service interface {
	List(ctx context.Context, warehouseID uuid.UUID, params pagination.Params, filters Filters) (*MovementList, error)
	Summary(ctx context.Context, warehouseID uuid.UUID, window SummaryWindow) ([]TypeSummary, error)
}

type service struct {
	repo Repository
}

// NewService builds the movement log read service.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("movements repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) List(ctx context.Context, warehouseID uuid.UUID, params pagination.Params, filters Filters) (*MovementList, error) {
	if warehouseID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "warehouse id required")
	}
	if filters.Type != nil && !filters.Type.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid movement type filter")
	}
	if filters.DateFrom != nil && filters.DateTo != nil && filters.DateTo.Before(*filters.DateFrom) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "date range is inverted")
	}

	list, err := s.repo.List(ctx, warehouseID, params, filters)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list movements")
	}
	return list, nil
}

func (s *service) Summary(ctx context.Context, warehouseID uuid.UUID, window SummaryWindow) ([]TypeSummary, error) {
	if warehouseID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "warehouse id required")
	}
	if window.From.IsZero() && window.To.IsZero() {
		// default to the trailing 24 hours
		now := time.Now().UTC()
		window = SummaryWindow{From: now.Add(-24 * time.Hour), To: now}
	}

	rows, err := s.repo.Summary(ctx, warehouseID, window)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "summarize movements")
	}
	return rows, nil
}
