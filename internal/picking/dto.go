package picking

import (
	"time"

	"github.com/google/uuid"
)

// QueueItem is one row of the pick queue: a pending line joined with its
// shipment and pick-path coordinates. The queue orders by walking path first
// (zone, aisle, section), then shipment priority, then age.
type QueueItem struct {
	LineID            uuid.UUID `gorm:"column:line_id" json:"line_id"`
	ShipmentID        uuid.UUID `gorm:"column:shipment_id" json:"shipment_id"`
	OrderNumber       string    `gorm:"column:order_number" json:"order_number"`
	Priority          int       `gorm:"column:priority" json:"priority"`
	ProductID         uuid.UUID `gorm:"column:product_id" json:"product_id"`
	SKU               string    `gorm:"column:sku" json:"sku"`
	LocationID        uuid.UUID `gorm:"column:location_id" json:"location_id"`
	Barcode           string    `gorm:"column:barcode" json:"barcode"`
	Zone              string    `gorm:"column:zone" json:"zone"`
	Aisle             int       `gorm:"column:aisle" json:"aisle"`
	Section           int       `gorm:"column:section" json:"section"`
	Quantity          int       `gorm:"column:quantity" json:"quantity"`
	ShipmentCreatedAt time.Time `gorm:"column:shipment_created_at" json:"shipment_created_at"`
}

// CompleteInput finishes a claimed line at the full requested quantity.
type CompleteInput struct {
	LineID   uuid.UUID
	WorkerID uuid.UUID
}

// ShortageInput finishes a claimed line below the requested quantity.
type ShortageInput struct {
	LineID         uuid.UUID
	WorkerID       uuid.UUID
	ActualQuantity int
	Notes          *string
}

// ShortPickReport carries the facts a short pick hands to the exception desk.
type ShortPickReport struct {
	WarehouseID      uuid.UUID
	LineID           uuid.UUID
	ProductID        uuid.UUID
	ExpectedQuantity int
	ActualQuantity   int
	ReportedBy       uuid.UUID
	Notes            *string
}
