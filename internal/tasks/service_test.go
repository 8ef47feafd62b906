package tasks

import (
	"context"
	"sync"
	"testing"

	"github.com/dcastano/warehouse-backend/pkg/db/models"
	"github.com/dcastano/warehouse-backend/pkg/enums"
	pkgerrors "github.com/dcastano/warehouse-backend/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type gormTxRunner struct {
	db *gorm.DB
}

func (r gormTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(fn)
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:tasks_" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&models.PutawayTask{}, &models.Product{}, &models.Location{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	// serialize sqlite access so concurrent claims contend on the status
	// guard instead of on the file lock
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	return db
}

func newTestService(t *testing.T, db *gorm.DB) Service {
	t.Helper()
	svc, err := NewService(NewRepository(db), gormTxRunner{db: db})
	if err != nil {
		t.Fatalf("build service: %v", err)
	}
	return svc
}

func seedTask(t *testing.T, db *gorm.DB, warehouseID uuid.UUID) *models.PutawayTask {
	t.Helper()
	task := &models.PutawayTask{
		ID:             uuid.New(),
		WarehouseID:    warehouseID,
		ProductID:      uuid.New(),
		FromLocationID: uuid.New(),
		ToLocationID:   uuid.New(),
		Quantity:       5,
		Status:         enums.TaskStatusPending,
	}
	if err := db.Create(task).Error; err != nil {
		t.Fatalf("seed task: %v", err)
	}
	return task
}

func seedLocation(t *testing.T, db *gorm.DB, warehouseID uuid.UUID, zone string, aisle int, locType enums.LocationType) *models.Location {
	t.Helper()
	loc := &models.Location{
		ID:          uuid.New(),
		WarehouseID: warehouseID,
		Barcode:     "LOC-" + uuid.NewString(),
		Zone:        zone,
		Aisle:       aisle,
		Section:     1,
		Type:        locType,
		Active:      true,
	}
	if err := db.Create(loc).Error; err != nil {
		t.Fatalf("seed location: %v", err)
	}
	return loc
}

func TestCreateSuggestsLocationByVelocity(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := newTestService(t, db)
	ctx := context.Background()

	warehouseID := uuid.New()
	front := seedLocation(t, db, warehouseID, "A", 1, enums.LocationTypeStorage)
	back := seedLocation(t, db, warehouseID, "A", 9, enums.LocationTypeStorage)
	seedLocation(t, db, warehouseID, "D", 1, enums.LocationTypeDock)

	fastProduct := &models.Product{ID: uuid.New(), SKU: "FAST-1", Name: "fast", Velocity: enums.ProductVelocityFast}
	slowProduct := &models.Product{ID: uuid.New(), SKU: "SLOW-1", Name: "slow", Velocity: enums.ProductVelocitySlow}
	for _, p := range []*models.Product{fastProduct, slowProduct} {
		if err := db.Create(p).Error; err != nil {
			t.Fatalf("seed product: %v", err)
		}
	}

	fastTask, err := svc.Create(ctx, CreateInput{
		WarehouseID:    warehouseID,
		ProductID:      fastProduct.ID,
		FromLocationID: uuid.New(),
		Quantity:       3,
		ActorID:        uuid.New(),
	})
	if err != nil {
		t.Fatalf("create fast task: %v", err)
	}
	if fastTask.ToLocationID != front.ID {
		t.Fatalf("fast mover should land in the front aisle")
	}

	slowTask, err := svc.Create(ctx, CreateInput{
		WarehouseID:    warehouseID,
		ProductID:      slowProduct.ID,
		FromLocationID: uuid.New(),
		Quantity:       3,
		ActorID:        uuid.New(),
	})
	if err != nil {
		t.Fatalf("create slow task: %v", err)
	}
	if slowTask.ToLocationID != back.ID {
		t.Fatalf("slow mover should land in the back aisle")
	}
}

func TestCreateHonorsExplicitDestination(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := newTestService(t, db)

	dest := uuid.New()
	task, err := svc.Create(context.Background(), CreateInput{
		WarehouseID:    uuid.New(),
		ProductID:      uuid.New(),
		FromLocationID: uuid.New(),
		ToLocationID:   &dest,
		Quantity:       1,
		ActorID:        uuid.New(),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if task.ToLocationID != dest {
		t.Fatalf("explicit destination must win over the suggestion")
	}
}

func TestPullNextClaimsOldestPending(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := newTestService(t, db)
	ctx := context.Background()

	warehouseID := uuid.New()
	first := seedTask(t, db, warehouseID)
	seedTask(t, db, warehouseID)

	workerID := uuid.New()
	claimed, err := svc.PullNext(ctx, warehouseID, workerID)
	if err != nil {
		t.Fatalf("pull: %v", err)
	}
	if claimed.ID != first.ID {
		t.Fatalf("expected oldest task first")
	}
	if claimed.Status != enums.TaskStatusInProgress {
		t.Fatalf("expected in_progress, got %s", claimed.Status)
	}
	if claimed.AssignedTo == nil || *claimed.AssignedTo != workerID {
		t.Fatalf("expected assignment to worker")
	}
	if claimed.StartedAt == nil {
		t.Fatalf("expected started_at to be set")
	}
}

func TestPullIsExactlyOnceUnderContention(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := newTestService(t, db)
	ctx := context.Background()

	warehouseID := uuid.New()
	task := seedTask(t, db, warehouseID)

	const workers = 8
	var wg sync.WaitGroup
	winners := make(chan uuid.UUID, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			workerID := uuid.New()
			claimed, err := svc.PullNext(ctx, warehouseID, workerID)
			if err != nil {
				return
			}
			if claimed.ID == task.ID {
				winners <- workerID
			}
		}()
	}
	wg.Wait()
	close(winners)

	won := 0
	for range winners {
		won++
	}
	if won != 1 {
		t.Fatalf("exactly one worker must win the claim, got %d", won)
	}
}

func TestReleaseReturnsTaskToQueue(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := newTestService(t, db)
	ctx := context.Background()

	warehouseID := uuid.New()
	task := seedTask(t, db, warehouseID)
	workerID := uuid.New()

	if _, err := svc.PullNext(ctx, warehouseID, workerID); err != nil {
		t.Fatalf("pull: %v", err)
	}
	if err := svc.Release(ctx, task.ID, workerID); err != nil {
		t.Fatalf("release: %v", err)
	}

	var reloaded models.PutawayTask
	if err := db.First(&reloaded, "id = ?", task.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if reloaded.Status != enums.TaskStatusPending || reloaded.AssignedTo != nil || reloaded.StartedAt != nil {
		t.Fatalf("release must fully reset assignment: %+v", reloaded)
	}

	// a different worker can now claim it
	other := uuid.New()
	claimed, err := svc.PullNext(ctx, warehouseID, other)
	if err != nil {
		t.Fatalf("re-pull: %v", err)
	}
	if claimed.ID != task.ID {
		t.Fatalf("released task should be claimable again")
	}
}

func TestCompleteRequiresAssignee(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := newTestService(t, db)
	ctx := context.Background()

	warehouseID := uuid.New()
	task := seedTask(t, db, warehouseID)
	workerID := uuid.New()

	if _, err := svc.PullNext(ctx, warehouseID, workerID); err != nil {
		t.Fatalf("pull: %v", err)
	}

	_, err := svc.Complete(ctx, task.ID, uuid.New())
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("stranger completing a task must fail with state conflict, got %v", err)
	}

	done, err := svc.Complete(ctx, task.ID, workerID)
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if done.Status != enums.TaskStatusCompleted || done.CompletedAt == nil {
		t.Fatalf("unexpected completed state: %+v", done)
	}

	// completing twice is a state conflict
	_, err = svc.Complete(ctx, task.ID, workerID)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("double complete must fail with state conflict, got %v", err)
	}
}

func TestCompleteUnassignedTaskIsStateConflict(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := newTestService(t, db)

	task := seedTask(t, db, uuid.New())
	_, err := svc.Complete(context.Background(), task.ID, uuid.New())
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("expected state conflict on pending task, got %v", err)
	}
}

func TestCompleteMissingTaskIsNotFound(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := newTestService(t, db)

	_, err := svc.Complete(context.Background(), uuid.New(), uuid.New())
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestPullEmptyQueueIsNotFound(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := newTestService(t, db)

	_, err := svc.PullNext(context.Background(), uuid.New(), uuid.New())
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found on empty queue, got %v", err)
	}
}

func TestPullSpecificTask(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := newTestService(t, db)
	ctx := context.Background()

	warehouseID := uuid.New()
	seedTask(t, db, warehouseID)
	chosen := seedTask(t, db, warehouseID)

	workerID := uuid.New()
	claimed, err := svc.Pull(ctx, chosen.ID, workerID)
	if err != nil {
		t.Fatalf("pull: %v", err)
	}
	if claimed.ID != chosen.ID || claimed.Status != enums.TaskStatusInProgress {
		t.Fatalf("unexpected claimed task: %+v", claimed)
	}
	if claimed.AssignedTo == nil || *claimed.AssignedTo != workerID {
		t.Fatalf("task must be assigned to the puller")
	}
}

func TestPullSpecificTaskLosesRace(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := newTestService(t, db)
	ctx := context.Background()

	task := seedTask(t, db, uuid.New())
	if _, err := svc.Pull(ctx, task.ID, uuid.New()); err != nil {
		t.Fatalf("first pull: %v", err)
	}

	_, err := svc.Pull(ctx, task.ID, uuid.New())
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("losing the claim race must be a state conflict, got %v", err)
	}
}

func TestPullSpecificMissingTaskIsNotFound(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := newTestService(t, db)

	_, err := svc.Pull(context.Background(), uuid.New(), uuid.New())
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}
