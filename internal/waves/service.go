package waves

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dcastano/warehouse-backend/pkg/db/models"
	"github.com/dcastano/warehouse-backend/pkg/enums"
	pkgerrors "github.com/dcastano/warehouse-backend/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type availabilityReader interface {
	AvailabilityByProduct(ctx context.Context, warehouseID uuid.UUID, productIDs []uuid.UUID) (map[uuid.UUID]int, error)
}

// Service defines wave planning and release.
type Service interface {
	CheckCommitment(ctx context.Context, warehouseID uuid.UUID, shipmentIDs []uuid.UUID) (*CommitmentReport, error)
	Create(ctx context.Context, input CreateInput) (*models.Wave, error)
	Release(ctx context.Context, waveID, actorID uuid.UUID) (*models.Wave, error)
	Get(ctx context.Context, waveID uuid.UUID) (*models.Wave, error)
	List(ctx context.Context, warehouseID uuid.UUID) ([]models.Wave, error)
}

type service struct {
	repo  Repository
	tx    txRunner
	stock availabilityReader
}

// NewService builds the wave service with the required dependencies.
func NewService(repo Repository, tx txRunner, stock availabilityReader) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("waves repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if stock == nil {
		return nil, fmt.Errorf("availability reader required")
	}
	return &service{repo: repo, tx: tx, stock: stock}, nil
}

// CheckCommitment compares the wave's summed demand against available stock.
// The answer is advisory: nothing is reserved and stock keeps moving.
func (s *service) CheckCommitment(ctx context.Context, warehouseID uuid.UUID, shipmentIDs []uuid.UUID) (*CommitmentReport, error) {
	if warehouseID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "warehouse id required")
	}
	if len(shipmentIDs) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "at least one shipment required")
	}
	return s.buildReport(ctx, s.repo, warehouseID, shipmentIDs)
}

func (s *service) buildReport(ctx context.Context, repo Repository, warehouseID uuid.UUID, shipmentIDs []uuid.UUID) (*CommitmentReport, error) {
	demand, err := repo.DemandByProduct(ctx, shipmentIDs)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "sum wave demand")
	}

	productIDs := make([]uuid.UUID, 0, len(demand))
	for _, d := range demand {
		productIDs = append(productIDs, d.ProductID)
	}
	available, err := s.stock.AvailabilityByProduct(ctx, warehouseID, productIDs)
	if err != nil {
		return nil, err
	}

	report := &CommitmentReport{CanFulfill: true}
	for _, d := range demand {
		line := CommitmentLine{
			ProductID: d.ProductID,
			SKU:       d.SKU,
			Required:  d.Required,
			Available: available[d.ProductID],
		}
		if line.Available < line.Required {
			line.Shortage = line.Required - line.Available
			report.CanFulfill = false
		}
		report.Lines = append(report.Lines, line)
	}
	return report, nil
}

// Create gates the wave on the commitment check, then claims the shipments.
// Either every requested shipment joins the wave or the wave does not exist.
func (s *service) Create(ctx context.Context, input CreateInput) (*models.Wave, error) {
	if input.WarehouseID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "warehouse id required")
	}
	if strings.TrimSpace(input.Reference) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "wave reference required")
	}
	if len(input.ShipmentIDs) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "at least one shipment required")
	}
	if input.ActorID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}

	var wave *models.Wave
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		report, err := s.buildReport(ctx, repo, input.WarehouseID, input.ShipmentIDs)
		if err != nil {
			return err
		}
		if !report.CanFulfill && !input.Force {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "wave cannot be fulfilled from current stock").
				WithDetails(map[string]any{"shortages": report.Shortages()})
		}

		candidate := &models.Wave{
			WarehouseID: input.WarehouseID,
			Reference:   strings.TrimSpace(input.Reference),
			Status:      enums.WaveStatusPlanning,
			CreatedBy:   input.ActorID,
		}
		if err := repo.InsertWave(ctx, candidate); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "insert wave")
		}

		attached, err := repo.AttachShipments(ctx, candidate.ID, input.WarehouseID, input.ShipmentIDs)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "attach shipments")
		}
		if attached != int64(len(input.ShipmentIDs)) {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "some shipments are already waved or not pending")
		}

		wave = candidate
		return nil
	})
	if err != nil {
		return nil, err
	}
	return wave, nil
}

// Release flips the wave to released and its shipments to waved, which makes
// their lines visible to the pick queue.
func (s *service) Release(ctx context.Context, waveID, actorID uuid.UUID) (*models.Wave, error) {
	if waveID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "wave id required")
	}
	if actorID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}

	var wave *models.Wave
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		affected, err := repo.ReleaseWave(ctx, waveID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "release wave")
		}
		if affected == 0 {
			existing, err := repo.FindByID(ctx, waveID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return pkgerrors.New(pkgerrors.CodeNotFound, "wave not found")
				}
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "inspect wave")
			}
			return pkgerrors.New(pkgerrors.CodeStateConflict, fmt.Sprintf("wave is %s", existing.Status))
		}

		if err := repo.MarkShipmentsWaved(ctx, waveID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "mark shipments waved")
		}

		released, err := repo.FindByID(ctx, waveID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load released wave")
		}
		wave = released
		return nil
	})
	if err != nil {
		return nil, err
	}
	return wave, nil
}

func (s *service) Get(ctx context.Context, waveID uuid.UUID) (*models.Wave, error) {
	if waveID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "wave id required")
	}
	wave, err := s.repo.FindByID(ctx, waveID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "wave not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load wave")
	}
	return wave, nil
}

func (s *service) List(ctx context.Context, warehouseID uuid.UUID) ([]models.Wave, error) {
	if warehouseID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "warehouse id required")
	}
	rows, err := s.repo.ListByWarehouse(ctx, warehouseID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list waves")
	}
	return rows, nil
}
