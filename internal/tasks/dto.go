package tasks

import "github.com/google/uuid"

// CreateInput describes a new putaway task. When ToLocationID is nil the
// service suggests a storage slot from the product's velocity class.
type CreateInput struct {
	WarehouseID    uuid.UUID
	ProductID      uuid.UUID
	FromLocationID uuid.UUID
	ToLocationID   *uuid.UUID
	Quantity       int
	ActorID        uuid.UUID
}
