package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/stock-control/internal/domain"
	"github.com/tu-usuario/stock-control/internal/domain/entity"
	"github.com/tu-usuario/stock-control/internal/domain/stock"
)

// Formatos aceptados para movement_date.
var movementDateLayouts = []string{time.RFC3339, "2006-01-02"}

// MovementRequest entrada para crear o editar un movimiento de stock.
// MovementDate viaja como string y se parsea aquí: una fecha no parseable es
// error de validación, nunca un default silencioso.
type MovementRequest struct {
	ItemID          string           `json:"item_id" validate:"required"`
	MovementType    string           `json:"movement_type" validate:"required,oneof=IN OUT"`
	Quantity        int              `json:"quantity" validate:"required,gt=0"`
	UnitPrice       *decimal.Decimal `json:"unit_price"`
	ReferenceNumber string           `json:"reference_number"`
	SupplierID      *string          `json:"supplier_id"`
	Customer        string           `json:"customer"`
	Notes           string           `json:"notes"`
	LocationID      *string          `json:"location_id"`
	ReceivedBy      string           `json:"received_by"`
	MovementDate    string           `json:"movement_date" validate:"required"`
}

// ToDomain parsea y convierte la petición al tipo del validador de stock.
func (r MovementRequest) ToDomain() (stock.MovementRequest, error) {
	var date time.Time
	var err error
	for _, layout := range movementDateLayouts {
		if date, err = time.Parse(layout, r.MovementDate); err == nil {
			break
		}
	}
	if err != nil {
		return stock.MovementRequest{}, &domain.ValidationError{
			Field: "movement_date", Reason: "fecha ausente o no parseable",
		}
	}
	return stock.MovementRequest{
		ItemID:          r.ItemID,
		Type:            r.MovementType,
		Quantity:        r.Quantity,
		UnitPrice:       r.UnitPrice,
		ReferenceNumber: r.ReferenceNumber,
		SupplierID:      r.SupplierID,
		Customer:        r.Customer,
		Notes:           r.Notes,
		LocationID:      r.LocationID,
		ReceivedBy:      r.ReceivedBy,
		MovementDate:    date,
	}, nil
}

// MovementResponse salida de un movimiento.
type MovementResponse struct {
	ID              string           `json:"id"`
	ItemID          string           `json:"item_id"`
	MovementType    string           `json:"movement_type"`
	Quantity        int              `json:"quantity"`
	UnitPrice       *decimal.Decimal `json:"unit_price,omitempty"`
	TotalValue      *decimal.Decimal `json:"total_value,omitempty"`
	ReferenceNumber string           `json:"reference_number"`
	SupplierID      *string          `json:"supplier_id"`
	Customer        string           `json:"customer,omitempty"`
	Notes           string           `json:"notes,omitempty"`
	LocationID      *string          `json:"location_id"`
	UserID          string           `json:"user_id"`
	ReceivedBy      string           `json:"received_by,omitempty"`
	MovementDate    time.Time        `json:"movement_date"`
	CreatedAt       time.Time        `json:"created_at"`
}

// MovementListResponse lista paginada de movimientos.
type MovementListResponse struct {
	Items []MovementResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// MovementToResponse mapea la entidad a su DTO.
func MovementToResponse(m *entity.Movement) MovementResponse {
	return MovementResponse{
		ID:              m.ID,
		ItemID:          m.ItemID,
		MovementType:    m.Type,
		Quantity:        m.Quantity,
		UnitPrice:       m.UnitPrice,
		TotalValue:      m.TotalValue,
		ReferenceNumber: m.ReferenceNumber,
		SupplierID:      m.SupplierID,
		Customer:        m.Customer,
		Notes:           m.Notes,
		LocationID:      m.LocationID,
		UserID:          m.UserID,
		ReceivedBy:      m.ReceivedBy,
		MovementDate:    m.MovementDate,
		CreatedAt:       m.CreatedAt,
	}
}

// MovementsToResponse mapea una lista de entidades.
func MovementsToResponse(list []*entity.Movement) []MovementResponse {
	out := make([]MovementResponse, 0, len(list))
	for _, m := range list {
		out = append(out, MovementToResponse(m))
	}
	return out
}
