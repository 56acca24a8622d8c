package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados posibles de un ítem según su cantidad vs. cantidad mínima.
// El status es SIEMPRE derivado (ver stock.DeriveStatus); nunca se acepta como input.
const (
	ItemStatusInStock    = "in_stock"
	ItemStatusLowStock   = "low_stock"
	ItemStatusOutOfStock = "out_of_stock"
)

// Item representa un ítem del catálogo de stock con su cantidad on-hand actual.
type Item struct {
	ID            string
	Name          string
	Description   string
	Quantity      int             // on-hand, invariante: >= 0
	UnitPrice     decimal.Decimal // >= 0
	MinQuantity   int             // umbral de low_stock, >= 0
	Status        string          // derivado de (Quantity, MinQuantity)
	Barcode       string          // único
	CategoryID    string
	SubcategoryID string
	LocationID    string
	SupplierID    *string // nil = sin proveedor (no hay sentinel strings en el core)
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
