package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de stock.
const (
	MovementTypeIN  = "IN"  // entrada
	MovementTypeOUT = "OUT" // salida
)

// Movement representa un movimiento de stock (IN u OUT) sobre un ítem.
// Nunca se muta fuera del Applier: editar o borrar un movimiento pasa por la
// reversión de su delta dentro de la misma transacción.
type Movement struct {
	ID              string
	ItemID          string
	Type            string // IN u OUT
	Quantity        int    // siempre > 0; el signo lo da el tipo
	UnitPrice       *decimal.Decimal
	TotalValue      *decimal.Decimal // Quantity × UnitPrice (2 decimales); ausente si no hay precio
	ReferenceNumber string
	SupplierID      *string // semánticamente solo IN
	Customer        string  // semánticamente solo OUT
	Notes           string
	LocationID      *string
	UserID          string // actor que registró el movimiento
	ReceivedBy      string
	MovementDate    time.Time // fecha del movimiento (la pone el caller)
	CreatedAt       time.Time
}

// Delta devuelve el cambio con signo que este movimiento aplica al on-hand
// del ítem: +Quantity para IN, -Quantity para OUT.
func (m *Movement) Delta() int {
	if m.Type == MovementTypeOUT {
		return -m.Quantity
	}
	return m.Quantity
}
