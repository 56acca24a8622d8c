package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de proveedor. Un proveedor con asociaciones vivas no se borra:
// se desactiva.
const (
	SupplierStatusActive   = "active"
	SupplierStatusInactive = "inactive"
)

// Supplier representa un proveedor de ítems.
type Supplier struct {
	ID          string
	Name        string
	Code        string // único; la violación sale como Conflict
	ContactName string
	Email       string
	Phone       string
	Address     string
	CreditLimit decimal.Decimal // default 0
	Status      string          // active, inactive
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
