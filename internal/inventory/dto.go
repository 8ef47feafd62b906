package inventory

import (
	"strings"

	"github.com/dcastano/warehouse-backend/pkg/db/models"
	"github.com/dcastano/warehouse-backend/pkg/enums"
	"github.com/google/uuid"
)

// RowKey is the ledger row identity. Lot-less stock uses the empty string.
type RowKey struct {
	WarehouseID uuid.UUID
	ProductID   uuid.UUID
	LocationID  uuid.UUID
	LotNumber   string
}

// Less orders two row keys deterministically so concurrent multi-row
// transactions always lock rows in the same order.
func (k RowKey) Less(other RowKey) bool {
	if c := strings.Compare(k.LocationID.String(), other.LocationID.String()); c != 0 {
		return c < 0
	}
	if c := strings.Compare(k.ProductID.String(), other.ProductID.String()); c != 0 {
		return c < 0
	}
	return k.LotNumber < other.LotNumber
}

// ReceiveInput captures an inbound receipt into a single location.
type ReceiveInput struct {
	WarehouseID uuid.UUID
	ProductID   uuid.UUID
	LocationID  uuid.UUID
	LotNumber   string
	Quantity    int
	ActorID     uuid.UUID
	ReferenceID *uuid.UUID
	Notes       *string
}

// MoveInput transfers quantity between two locations for the same product/lot.
type MoveInput struct {
	WarehouseID    uuid.UUID
	ProductID      uuid.UUID
	FromLocationID uuid.UUID
	ToLocationID   uuid.UUID
	LotNumber      string
	Quantity       int
	ActorID        uuid.UUID
	ReferenceID    *uuid.UUID
	Notes          *string
}

// AdjustInput corrects a ledger row by a signed delta. Reason is mandatory.
type AdjustInput struct {
	WarehouseID uuid.UUID
	ProductID   uuid.UUID
	LocationID  uuid.UUID
	LotNumber   string
	Delta       int
	Reason      string
	ActorID     uuid.UUID
}

// StockFilters describe the inputs supported by the stock list.
type StockFilters struct {
	ProductID   *uuid.UUID
	LocationID  *uuid.UUID
	Status      *enums.StockStatus
	ExcludeZero bool
}

// StockList wraps the paginated ledger rows plus the next page cursor.
type StockList struct {
	Items      []models.StockLevel `json:"items"`
	NextCursor string              `json:"next_cursor,omitempty"`
}
