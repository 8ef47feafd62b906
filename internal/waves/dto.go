package waves

import "github.com/google/uuid"

// CreateInput groups shipments into a new wave. Creation is gated by the
// commitment check unless Force is set by a supervisor.
type CreateInput struct {
	WarehouseID uuid.UUID
	Reference   string
	ShipmentIDs []uuid.UUID
	ActorID     uuid.UUID
	Force       bool
}

// ProductDemand is the summed pending demand for one product.
type ProductDemand struct {
	ProductID uuid.UUID `gorm:"column:product_id" json:"product_id"`
	SKU       string    `gorm:"column:sku" json:"sku"`
	Required  int       `gorm:"column:required" json:"required"`
}

// CommitmentLine compares demand against available stock for one product.
type CommitmentLine struct {
	ProductID uuid.UUID `json:"product_id"`
	SKU       string    `json:"sku"`
	Required  int       `json:"required"`
	Available int       `json:"available"`
	Shortage  int       `json:"shortage"`
}

// CommitmentReport is the advisory answer to "can this wave be fulfilled
// right now". It reserves nothing; stock can change before picking starts.
type CommitmentReport struct {
	CanFulfill bool             `json:"can_fulfill"`
	Lines      []CommitmentLine `json:"lines"`
}

// Shortages returns only the lines that cannot be covered.
func (r *CommitmentReport) Shortages() []CommitmentLine {
	var short []CommitmentLine
	for _, line := range r.Lines {
		if line.Shortage > 0 {
			short = append(short, line)
		}
	}
	return short
}
