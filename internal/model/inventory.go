package model

import (
	"github.com/google/uuid"
)

type MovementType string

const (
	MovementTypeIn     MovementType = "in"
	MovementTypeOut    MovementType = "out"
	MovementTypeAdjust MovementType = "adjust"
)

type InventoryItem struct {
	Base
	ClinicID     uuid.UUID  `db:"clinic_id" json:"clinic_id"`
	SupplierID   *uuid.UUID `db:"supplier_id" json:"supplier_id,omitempty"`
	Name         string     `db:"name" json:"name"`
	SKU          string     `db:"sku" json:"sku"`
	Unit         string     `db:"unit" json:"unit"`
	CurrentStock int        `db:"current_stock" json:"current_stock"`
	MinimumStock int        `db:"minimum_stock" json:"minimum_stock"`
	UnitCost     float64    `db:"unit_cost" json:"unit_cost"`
}

// LowStock reports whether the item has fallen to or below its minimum.
func (i *InventoryItem) LowStock() bool {
	return i.CurrentStock <= i.MinimumStock
}

// StockMovement is an append-only record of a stock change. Quantity is
// positive for in and out movements, with the type giving direction; adjust
// movements carry a signed, non-zero quantity.
type StockMovement struct {
	Base
	ItemID    uuid.UUID    `db:"item_id" json:"item_id"`
	Type      MovementType `db:"type" json:"type"`
	Quantity  int          `db:"quantity" json:"quantity"`
	Reference string       `db:"reference" json:"reference,omitempty"`
	Notes     string       `db:"notes" json:"notes,omitempty"`
	CreatedBy uuid.UUID    `db:"created_by" json:"created_by"`
}

type CreateInventoryItemRequest struct {
	ClinicID     uuid.UUID  `json:"clinic_id" binding:"required"`
	SupplierID   *uuid.UUID `json:"supplier_id"`
	Name         string     `json:"name" binding:"required"`
	SKU          string     `json:"sku" binding:"required"`
	Unit         string     `json:"unit" binding:"required"`
	CurrentStock int        `json:"current_stock" binding:"min=0"`
	MinimumStock int        `json:"minimum_stock" binding:"min=0"`
	UnitCost     float64    `json:"unit_cost" binding:"min=0"`
}

type UpdateInventoryItemRequest struct {
	SupplierID   *uuid.UUID `json:"supplier_id"`
	Name         *string    `json:"name"`
	Unit         *string    `json:"unit"`
	MinimumStock *int       `json:"minimum_stock" binding:"omitempty,min=0"`
	UnitCost     *float64   `json:"unit_cost" binding:"omitempty,min=0"`
}

type CreateMovementRequest struct {
	Type      MovementType `json:"type" binding:"required,oneof=in out adjust"`
	Quantity  int          `json:"quantity" binding:"required"`
	Reference string       `json:"reference"`
	Notes     string       `json:"notes"`
}

type InventoryFilters struct {
	ClinicID   uuid.UUID
	SearchTerm string
	LowStock   bool
}
