package stock

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/stock-control/internal/domain"
	"github.com/tu-usuario/stock-control/internal/domain/entity"
)

// MovementRequest es la propuesta de movimiento tal como llega del caller,
// antes de validar contra el ítem.
type MovementRequest struct {
	ItemID          string
	Type            string // IN u OUT
	Quantity        int
	UnitPrice       *decimal.Decimal
	ReferenceNumber string
	SupplierID      *string
	Customer        string
	Notes           string
	LocationID      *string
	ReceivedBy      string
	MovementDate    time.Time
}

// ValidatedMovement es un movimiento que pasó la validación: cantidades
// verificadas y TotalValue ya calculado. Listo para que el Applier lo persista.
type ValidatedMovement struct {
	ItemID          string
	Type            string
	Quantity        int
	UnitPrice       *decimal.Decimal
	TotalValue      *decimal.Decimal
	ReferenceNumber string
	SupplierID      *string
	Customer        string
	Notes           string
	LocationID      *string
	ReceivedBy      string
	MovementDate    time.Time
}

// Validate verifica una propuesta de movimiento contra el snapshot actual del
// ítem. Es pura: no toca almacenamiento, no tiene efectos.
//
// Reglas:
//   - item nil -> ErrNotFound.
//   - Quantity debe ser entero positivo.
//   - MovementDate debe estar presente.
//   - Type debe ser IN u OUT.
//   - OUT: Quantity <= item.Quantity, si no InsufficientStockError{requested, available}.
//   - IN: sin cota superior.
//   - TotalValue = Quantity × UnitPrice redondeado a 2 decimales cuando hay
//     precio; ausente (no cero) cuando no lo hay.
func Validate(item *entity.Item, req MovementRequest) (*ValidatedMovement, error) {
	if item == nil {
		return nil, domain.ErrNotFound
	}
	if req.Quantity <= 0 {
		return nil, &domain.ValidationError{Field: "quantity", Reason: "debe ser un entero positivo"}
	}
	if req.MovementDate.IsZero() {
		return nil, &domain.ValidationError{Field: "movement_date", Reason: "fecha ausente o no parseable"}
	}
	switch req.Type {
	case entity.MovementTypeIN:
		// sin cota superior
	case entity.MovementTypeOUT:
		if req.Quantity > item.Quantity {
			return nil, &domain.InsufficientStockError{Requested: req.Quantity, Available: item.Quantity}
		}
	default:
		return nil, &domain.ValidationError{Field: "movement_type", Reason: "debe ser IN u OUT"}
	}
	if req.UnitPrice != nil && req.UnitPrice.IsNegative() {
		return nil, &domain.ValidationError{Field: "unit_price", Reason: "no puede ser negativo"}
	}

	v := &ValidatedMovement{
		ItemID:          item.ID,
		Type:            req.Type,
		Quantity:        req.Quantity,
		UnitPrice:       req.UnitPrice,
		ReferenceNumber: req.ReferenceNumber,
		SupplierID:      req.SupplierID,
		Customer:        req.Customer,
		Notes:           req.Notes,
		LocationID:      req.LocationID,
		ReceivedBy:      req.ReceivedBy,
		MovementDate:    req.MovementDate,
	}
	if req.UnitPrice != nil {
		total := decimal.NewFromInt(int64(req.Quantity)).Mul(*req.UnitPrice).Round(2)
		v.TotalValue = &total
	}
	return v, nil
}

// Delta devuelve el cambio con signo que el movimiento validado aplicará al
// on-hand del ítem.
func (v *ValidatedMovement) Delta() int {
	if v.Type == entity.MovementTypeOUT {
		return -v.Quantity
	}
	return v.Quantity
}
