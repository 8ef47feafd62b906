package picking

import (
	"context"
	"strings"
	"testing"

	"github.com/dcastano/warehouse-backend/internal/inventory"
	"github.com/dcastano/warehouse-backend/internal/movements"
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

// ticketWriter stands in for the exception desk: it inserts the ticket row on
// the caller's transaction exactly as the production reporter does, without
// importing it (the production reporter lives downstream of this package).
type ticketWriter struct{}

func (ticketWriter) ReportShortPick(ctx context.Context, tx *gorm.DB, report ShortPickReport) error {
	productID := report.ProductID
	ticket := &models.ProblemTicket{
		ID:               uuid.New(),
		WarehouseID:      report.WarehouseID,
		Type:             enums.ProblemTypeShortPick,
		Priority:         enums.ProblemPriorityHigh,
		ReferenceType:    "shipment_line",
		ReferenceID:      report.LineID,
		ProductID:        &productID,
		ExpectedQuantity: report.ExpectedQuantity,
		ActualQuantity:   report.ActualQuantity,
		ShortageQuantity: report.ExpectedQuantity - report.ActualQuantity,
		Notes:            report.Notes,
		Status:           enums.ProblemStatusOpen,
		ReportedBy:       report.ReportedBy,
	}
	return tx.WithContext(ctx).Create(ticket).Error
}

type fixture struct {
	db          *gorm.DB
	svc         Service
	warehouseID uuid.UUID
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	dsn := "file:picking_" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	err = db.AutoMigrate(
		&models.StockLevel{},
		&models.Movement{},
		&models.Shipment{},
		&models.ShipmentLine{},
		&models.Location{},
		&models.Product{},
		&models.ProblemTicket{},
	)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}

	runner := gormTxRunner{db: db}
	stock, err := inventory.NewService(inventory.NewRepository(db), runner, movements.NewRecorder(), nil)
	if err != nil {
		t.Fatalf("build inventory service: %v", err)
	}
	svc, err := NewService(NewRepository(db), runner, stock, movements.NewRecorder(), ticketWriter{})
	if err != nil {
		t.Fatalf("build picking service: %v", err)
	}
	return &fixture{db: db, svc: svc, warehouseID: uuid.New()}
}

func (f *fixture) seedLocation(t *testing.T, zone string, aisle, section int) *models.Location {
	t.Helper()
	loc := &models.Location{
		ID:          uuid.New(),
		WarehouseID: f.warehouseID,
		Barcode:     "LOC-" + uuid.NewString(),
		Zone:        zone,
		Aisle:       aisle,
		Section:     section,
		Type:        enums.LocationTypeStorage,
		Active:      true,
	}
	if err := f.db.Create(loc).Error; err != nil {
		t.Fatalf("seed location: %v", err)
	}
	return loc
}

func (f *fixture) seedProduct(t *testing.T, sku string) *models.Product {
	t.Helper()
	p := &models.Product{ID: uuid.New(), SKU: sku, Name: sku}
	if err := f.db.Create(p).Error; err != nil {
		t.Fatalf("seed product: %v", err)
	}
	return p
}

func (f *fixture) seedShipment(t *testing.T, orderNumber string, priority int, status enums.ShipmentStatus) *models.Shipment {
	t.Helper()
	s := &models.Shipment{
		ID:          uuid.New(),
		WarehouseID: f.warehouseID,
		OrderNumber: orderNumber,
		Priority:    priority,
		Status:      status,
	}
	if err := f.db.Create(s).Error; err != nil {
		t.Fatalf("seed shipment: %v", err)
	}
	return s
}

func (f *fixture) seedLine(t *testing.T, shipment *models.Shipment, product *models.Product, location *models.Location, qty int) *models.ShipmentLine {
	t.Helper()
	line := &models.ShipmentLine{
		ID:         uuid.New(),
		ShipmentID: shipment.ID,
		ProductID:  product.ID,
		LocationID: location.ID,
		Quantity:   qty,
		Status:     enums.PickLineStatusPending,
	}
	if err := f.db.Create(line).Error; err != nil {
		t.Fatalf("seed line: %v", err)
	}
	return line
}

func (f *fixture) seedStock(t *testing.T, product *models.Product, location *models.Location, qty int) {
	t.Helper()
	row := &models.StockLevel{
		ID:          uuid.New(),
		WarehouseID: f.warehouseID,
		ProductID:   product.ID,
		LocationID:  location.ID,
		Quantity:    qty,
		Status:      enums.StockStatusAvailable,
	}
	if err := f.db.Create(row).Error; err != nil {
		t.Fatalf("seed stock: %v", err)
	}
}

func (f *fixture) claimLine(t *testing.T, line *models.ShipmentLine, workerID uuid.UUID) {
	t.Helper()
	affected, err := NewRepository(f.db).ClaimLine(context.Background(), line.ID, workerID)
	if err != nil || affected != 1 {
		t.Fatalf("claim line: affected=%d err=%v", affected, err)
	}
}

func TestQueueOrdersByPickPathThenPriority(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()

	locA1 := f.seedLocation(t, "A", 1, 1)
	locA2 := f.seedLocation(t, "A", 2, 1)
	locB1 := f.seedLocation(t, "B", 1, 1)
	product := f.seedProduct(t, "SKU-1")

	// walking path beats shipment priority: A1(prio 5), A2(prio 1), B1(prio 9)
	shipA1 := f.seedShipment(t, "ORD-1", 5, enums.ShipmentStatusWaved)
	shipA2 := f.seedShipment(t, "ORD-2", 1, enums.ShipmentStatusWaved)
	shipB1 := f.seedShipment(t, "ORD-3", 9, enums.ShipmentStatusWaved)

	lineB1 := f.seedLine(t, shipB1, product, locB1, 1)
	lineA2 := f.seedLine(t, shipA2, product, locA2, 1)
	lineA1 := f.seedLine(t, shipA1, product, locA1, 1)

	queue, err := f.svc.Queue(ctx, f.warehouseID, 0)
	if err != nil {
		t.Fatalf("queue: %v", err)
	}
	if len(queue) != 3 {
		t.Fatalf("expected 3 queue items, got %d", len(queue))
	}
	want := []uuid.UUID{lineA1.ID, lineA2.ID, lineB1.ID}
	for i, item := range queue {
		if item.LineID != want[i] {
			t.Fatalf("position %d: expected line %s, got %s", i, want[i], item.LineID)
		}
	}
}

func TestQueuePriorityBreaksTiesAtSameLocation(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()

	loc := f.seedLocation(t, "A", 1, 1)
	product := f.seedProduct(t, "SKU-1")

	low := f.seedShipment(t, "ORD-LOW", 1, enums.ShipmentStatusWaved)
	high := f.seedShipment(t, "ORD-HIGH", 9, enums.ShipmentStatusWaved)

	f.seedLine(t, low, product, loc, 1)
	hotLine := f.seedLine(t, high, product, loc, 1)

	queue, err := f.svc.Queue(ctx, f.warehouseID, 0)
	if err != nil {
		t.Fatalf("queue: %v", err)
	}
	if len(queue) != 2 || queue[0].LineID != hotLine.ID {
		t.Fatalf("higher priority shipment must come first at the same slot")
	}
}

func TestQueueSkipsUnwavedShipments(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()

	loc := f.seedLocation(t, "A", 1, 1)
	product := f.seedProduct(t, "SKU-1")
	pendingShipment := f.seedShipment(t, "ORD-1", 1, enums.ShipmentStatusPending)
	f.seedLine(t, pendingShipment, product, loc, 1)

	queue, err := f.svc.Queue(ctx, f.warehouseID, 0)
	if err != nil {
		t.Fatalf("queue: %v", err)
	}
	if len(queue) != 0 {
		t.Fatalf("unwaved shipments must not feed the queue")
	}
}

func TestPullClaimsHeadOfQueue(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()

	loc := f.seedLocation(t, "A", 1, 1)
	product := f.seedProduct(t, "SKU-1")
	shipment := f.seedShipment(t, "ORD-1", 1, enums.ShipmentStatusWaved)
	line := f.seedLine(t, shipment, product, loc, 2)

	workerID := uuid.New()
	claimed, err := f.svc.PullNext(ctx, f.warehouseID, workerID)
	if err != nil {
		t.Fatalf("pull: %v", err)
	}
	if claimed.ID != line.ID || claimed.Status != enums.PickLineStatusInProgress {
		t.Fatalf("unexpected claimed line: %+v", claimed)
	}
	if claimed.AssignedTo == nil || *claimed.AssignedTo != workerID {
		t.Fatalf("line must be assigned to the puller")
	}

	var reloaded models.Shipment
	if err := f.db.First(&reloaded, "id = ?", shipment.ID).Error; err != nil {
		t.Fatalf("reload shipment: %v", err)
	}
	if reloaded.Status != enums.ShipmentStatusPicking {
		t.Fatalf("first claim must move the shipment to picking, got %s", reloaded.Status)
	}

	// the claimed line is gone from the queue
	if _, err := f.svc.PullNext(ctx, f.warehouseID, uuid.New()); err == nil {
		t.Fatalf("second pull on a single-line queue must find nothing")
	}
}

func TestCompleteDecrementsStockAndLogs(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()

	loc := f.seedLocation(t, "A", 1, 1)
	product := f.seedProduct(t, "SKU-1")
	shipment := f.seedShipment(t, "ORD-1", 1, enums.ShipmentStatusPicking)
	line := f.seedLine(t, shipment, product, loc, 4)
	f.seedStock(t, product, loc, 10)

	workerID := uuid.New()
	f.claimLine(t, line, workerID)

	if err := f.svc.Complete(ctx, CompleteInput{LineID: line.ID, WorkerID: workerID}); err != nil {
		t.Fatalf("complete: %v", err)
	}

	var reloadedLine models.ShipmentLine
	if err := f.db.First(&reloadedLine, "id = ?", line.ID).Error; err != nil {
		t.Fatalf("reload line: %v", err)
	}
	if reloadedLine.Status != enums.PickLineStatusPicked || reloadedLine.PickedQuantity != 4 {
		t.Fatalf("unexpected line state: %+v", reloadedLine)
	}

	var stock models.StockLevel
	if err := f.db.First(&stock, "product_id = ?", product.ID).Error; err != nil {
		t.Fatalf("reload stock: %v", err)
	}
	if stock.Quantity != 6 {
		t.Fatalf("expected stock 6, got %d", stock.Quantity)
	}

	var movement models.Movement
	if err := f.db.First(&movement, "type = ?", enums.MovementTypePick).Error; err != nil {
		t.Fatalf("load pick movement: %v", err)
	}
	if movement.Quantity != 4 || movement.ReferenceID == nil || *movement.ReferenceID != line.ID {
		t.Fatalf("unexpected movement: %+v", movement)
	}
}

func TestCompleteInsufficientStockRollsBackEverything(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()

	loc := f.seedLocation(t, "A", 1, 1)
	product := f.seedProduct(t, "SKU-1")
	shipment := f.seedShipment(t, "ORD-1", 1, enums.ShipmentStatusPicking)
	line := f.seedLine(t, shipment, product, loc, 5)
	f.seedStock(t, product, loc, 3)

	workerID := uuid.New()
	f.claimLine(t, line, workerID)

	err := f.svc.Complete(ctx, CompleteInput{LineID: line.ID, WorkerID: workerID})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("expected state conflict, got %v", err)
	}

	var reloadedLine models.ShipmentLine
	if err := f.db.First(&reloadedLine, "id = ?", line.ID).Error; err != nil {
		t.Fatalf("reload line: %v", err)
	}
	if reloadedLine.Status != enums.PickLineStatusInProgress {
		t.Fatalf("failed complete must roll the line back to in_progress, got %s", reloadedLine.Status)
	}

	var stock models.StockLevel
	if err := f.db.First(&stock, "product_id = ?", product.ID).Error; err != nil {
		t.Fatalf("reload stock: %v", err)
	}
	if stock.Quantity != 3 {
		t.Fatalf("failed complete must not touch stock, got %d", stock.Quantity)
	}

	var movementCount int64
	if err := f.db.Model(&models.Movement{}).Count(&movementCount).Error; err != nil {
		t.Fatalf("count movements: %v", err)
	}
	if movementCount != 0 {
		t.Fatalf("failed complete must not log a movement")
	}
}

func TestCompleteWithShortageIsAtomic(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()

	loc := f.seedLocation(t, "A", 1, 1)
	product := f.seedProduct(t, "SKU-1")
	shipment := f.seedShipment(t, "ORD-1", 1, enums.ShipmentStatusPicking)
	line := f.seedLine(t, shipment, product, loc, 20)
	f.seedStock(t, product, loc, 15)

	workerID := uuid.New()
	f.claimLine(t, line, workerID)

	err := f.svc.CompleteWithShortage(ctx, ShortageInput{
		LineID:         line.ID,
		WorkerID:       workerID,
		ActualQuantity: 15,
	})
	if err != nil {
		t.Fatalf("shortage complete: %v", err)
	}

	var reloadedLine models.ShipmentLine
	if err := f.db.First(&reloadedLine, "id = ?", line.ID).Error; err != nil {
		t.Fatalf("reload line: %v", err)
	}
	if reloadedLine.Status != enums.PickLineStatusShortPicked {
		t.Fatalf("expected short_picked, got %s", reloadedLine.Status)
	}
	if reloadedLine.Quantity != 15 || reloadedLine.PickedQuantity != 15 {
		t.Fatalf("short pick must truncate to the actual count: %+v", reloadedLine)
	}

	var stock models.StockLevel
	if err := f.db.First(&stock, "product_id = ?", product.ID).Error; err != nil {
		t.Fatalf("reload stock: %v", err)
	}
	if stock.Quantity != 0 {
		t.Fatalf("expected stock 0, got %d", stock.Quantity)
	}

	var ticket models.ProblemTicket
	if err := f.db.First(&ticket, "reference_id = ?", line.ID).Error; err != nil {
		t.Fatalf("load ticket: %v", err)
	}
	if ticket.Type != enums.ProblemTypeShortPick || ticket.Status != enums.ProblemStatusOpen {
		t.Fatalf("unexpected ticket: %+v", ticket)
	}
	if ticket.ExpectedQuantity != 20 || ticket.ActualQuantity != 15 || ticket.ShortageQuantity != 5 {
		t.Fatalf("ticket must record expected 20 / actual 15 / shortage 5: %+v", ticket)
	}

	var movement models.Movement
	if err := f.db.First(&movement, "type = ?", enums.MovementTypePick).Error; err != nil {
		t.Fatalf("load movement: %v", err)
	}
	if movement.Quantity != 15 {
		t.Fatalf("movement must log the actual pick, got %d", movement.Quantity)
	}
	if movement.Notes == nil || !strings.Contains(*movement.Notes, "5 of 20") {
		t.Fatalf("movement must note the shortage, got %v", movement.Notes)
	}
}

func TestShortageWithNothingOnShelf(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()

	loc := f.seedLocation(t, "A", 1, 1)
	product := f.seedProduct(t, "SKU-1")
	shipment := f.seedShipment(t, "ORD-1", 1, enums.ShipmentStatusPicking)
	line := f.seedLine(t, shipment, product, loc, 8)

	workerID := uuid.New()
	f.claimLine(t, line, workerID)

	err := f.svc.CompleteWithShortage(ctx, ShortageInput{
		LineID:         line.ID,
		WorkerID:       workerID,
		ActualQuantity: 0,
	})
	if err != nil {
		t.Fatalf("zero shortage complete: %v", err)
	}

	var ticket models.ProblemTicket
	if err := f.db.First(&ticket, "reference_id = ?", line.ID).Error; err != nil {
		t.Fatalf("load ticket: %v", err)
	}
	if ticket.Priority != enums.ProblemPriorityHigh {
		t.Fatalf("expected a high priority ticket, got %s", ticket.Priority)
	}

	// even a zero-unit pick commits exactly one log row
	var pickMovements []models.Movement
	if err := f.db.Find(&pickMovements, "type = ?", enums.MovementTypePick).Error; err != nil {
		t.Fatalf("load movements: %v", err)
	}
	if len(pickMovements) != 1 {
		t.Fatalf("expected exactly one pick movement, got %d", len(pickMovements))
	}
	if pickMovements[0].Quantity != 0 {
		t.Fatalf("movement must log the actual count of 0, got %d", pickMovements[0].Quantity)
	}
	if pickMovements[0].Notes == nil || !strings.Contains(*pickMovements[0].Notes, "8 of 8") {
		t.Fatalf("movement must note the full shortage, got %v", pickMovements[0].Notes)
	}
}

func TestShortageAtFullQuantityCompletesNormally(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()

	loc := f.seedLocation(t, "A", 1, 1)
	product := f.seedProduct(t, "SKU-1")
	shipment := f.seedShipment(t, "ORD-1", 1, enums.ShipmentStatusPicking)
	line := f.seedLine(t, shipment, product, loc, 5)
	f.seedStock(t, product, loc, 10)

	workerID := uuid.New()
	f.claimLine(t, line, workerID)

	// the worker hedged with the shortage flow but the shelf held everything
	err := f.svc.CompleteWithShortage(ctx, ShortageInput{
		LineID:         line.ID,
		WorkerID:       workerID,
		ActualQuantity: 5,
	})
	if err != nil {
		t.Fatalf("full-quantity shortage must complete the pick: %v", err)
	}

	var reloadedLine models.ShipmentLine
	if err := f.db.First(&reloadedLine, "id = ?", line.ID).Error; err != nil {
		t.Fatalf("reload line: %v", err)
	}
	if reloadedLine.Status != enums.PickLineStatusPicked || reloadedLine.PickedQuantity != 5 {
		t.Fatalf("expected a normally picked line: %+v", reloadedLine)
	}

	var stock models.StockLevel
	if err := f.db.First(&stock, "product_id = ?", product.ID).Error; err != nil {
		t.Fatalf("reload stock: %v", err)
	}
	if stock.Quantity != 5 {
		t.Fatalf("expected stock 5, got %d", stock.Quantity)
	}

	var ticketCount int64
	if err := f.db.Model(&models.ProblemTicket{}).Count(&ticketCount).Error; err != nil {
		t.Fatalf("count tickets: %v", err)
	}
	if ticketCount != 0 {
		t.Fatalf("no shortage means no ticket, got %d", ticketCount)
	}

	var movement models.Movement
	if err := f.db.First(&movement, "type = ?", enums.MovementTypePick).Error; err != nil {
		t.Fatalf("load movement: %v", err)
	}
	if movement.Quantity != 5 || movement.Notes != nil {
		t.Fatalf("expected a plain full-pick movement: %+v", movement)
	}
}

func TestShortageRejectsQuantityAboveRequest(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()

	loc := f.seedLocation(t, "A", 1, 1)
	product := f.seedProduct(t, "SKU-1")
	shipment := f.seedShipment(t, "ORD-1", 1, enums.ShipmentStatusPicking)
	line := f.seedLine(t, shipment, product, loc, 5)
	f.seedStock(t, product, loc, 10)

	workerID := uuid.New()
	f.claimLine(t, line, workerID)

	err := f.svc.CompleteWithShortage(ctx, ShortageInput{
		LineID:         line.ID,
		WorkerID:       workerID,
		ActualQuantity: 6,
	})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("over-request shortage must be a validation error, got %v", err)
	}
}

func TestReleasePutsLineBackInQueue(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()

	loc := f.seedLocation(t, "A", 1, 1)
	product := f.seedProduct(t, "SKU-1")
	shipment := f.seedShipment(t, "ORD-1", 1, enums.ShipmentStatusWaved)
	line := f.seedLine(t, shipment, product, loc, 2)

	workerID := uuid.New()
	if _, err := f.svc.PullNext(ctx, f.warehouseID, workerID); err != nil {
		t.Fatalf("pull: %v", err)
	}
	if err := f.svc.Release(ctx, line.ID, workerID); err != nil {
		t.Fatalf("release: %v", err)
	}

	queue, err := f.svc.Queue(ctx, f.warehouseID, 0)
	if err != nil {
		t.Fatalf("queue: %v", err)
	}
	if len(queue) != 1 || queue[0].LineID != line.ID {
		t.Fatalf("released line must reappear in the queue")
	}
}

func TestCompleteByStrangerIsStateConflict(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()

	loc := f.seedLocation(t, "A", 1, 1)
	product := f.seedProduct(t, "SKU-1")
	shipment := f.seedShipment(t, "ORD-1", 1, enums.ShipmentStatusPicking)
	line := f.seedLine(t, shipment, product, loc, 2)
	f.seedStock(t, product, loc, 2)

	f.claimLine(t, line, uuid.New())

	err := f.svc.Complete(ctx, CompleteInput{LineID: line.ID, WorkerID: uuid.New()})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("expected state conflict, got %v", err)
	}
}

func TestPullSpecificLine(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()

	loc := f.seedLocation(t, "A", 1, 1)
	product := f.seedProduct(t, "SKU-1")
	shipment := f.seedShipment(t, "ORD-1", 1, enums.ShipmentStatusWaved)
	f.seedLine(t, shipment, product, loc, 1)
	chosen := f.seedLine(t, shipment, product, loc, 2)

	workerID := uuid.New()
	claimed, err := f.svc.Pull(ctx, chosen.ID, workerID)
	if err != nil {
		t.Fatalf("pull: %v", err)
	}
	if claimed.ID != chosen.ID || claimed.Status != enums.PickLineStatusInProgress {
		t.Fatalf("unexpected claimed line: %+v", claimed)
	}
	if claimed.AssignedTo == nil || *claimed.AssignedTo != workerID {
		t.Fatalf("line must be assigned to the puller")
	}

	var reloaded models.Shipment
	if err := f.db.First(&reloaded, "id = ?", shipment.ID).Error; err != nil {
		t.Fatalf("reload shipment: %v", err)
	}
	if reloaded.Status != enums.ShipmentStatusPicking {
		t.Fatalf("claiming a line must move the shipment to picking, got %s", reloaded.Status)
	}
}

func TestPullSpecificLineLosesRace(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()

	loc := f.seedLocation(t, "A", 1, 1)
	product := f.seedProduct(t, "SKU-1")
	shipment := f.seedShipment(t, "ORD-1", 1, enums.ShipmentStatusWaved)
	line := f.seedLine(t, shipment, product, loc, 1)

	if _, err := f.svc.Pull(ctx, line.ID, uuid.New()); err != nil {
		t.Fatalf("first pull: %v", err)
	}

	_, err := f.svc.Pull(ctx, line.ID, uuid.New())
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("losing the claim race must be a state conflict, got %v", err)
	}
}

func TestPullSpecificMissingLineIsNotFound(t *testing.T) {
	t.Parallel()

	f := newFixture(t)

	_, err := f.svc.Pull(context.Background(), uuid.New(), uuid.New())
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}
