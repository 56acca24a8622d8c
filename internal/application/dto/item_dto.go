package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/stock-control/internal/domain/entity"
	"github.com/tu-usuario/stock-control/internal/domain/stock"
)

// CreateItemRequest entrada para crear un ítem. Status no se acepta: es
// siempre derivado de (quantity, min_quantity).
type CreateItemRequest struct {
	Name          string           `json:"name" validate:"required,min=1,max=200"`
	Description   string           `json:"description"`
	Quantity      int              `json:"quantity" validate:"min=0"`
	UnitPrice     *decimal.Decimal `json:"unit_price"`
	MinQuantity   int              `json:"min_quantity" validate:"min=0"`
	Barcode       string           `json:"barcode" validate:"required,min=1,max=100"`
	CategoryID    string           `json:"category_id"`
	SubcategoryID string           `json:"subcategory_id"`
	LocationID    string           `json:"location_id"`
	SupplierID    *string          `json:"supplier_id"`
}

// UpdateItemRequest entrada para actualizar un ítem. Campos nil no se tocan.
// Quantity no aparece: el on-hand solo cambia vía movimientos.
type UpdateItemRequest struct {
	Name          *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Description   *string          `json:"description"`
	UnitPrice     *decimal.Decimal `json:"unit_price"`
	MinQuantity   *int             `json:"min_quantity" validate:"omitempty,min=0"`
	Barcode       *string          `json:"barcode" validate:"omitempty,min=1,max=100"`
	CategoryID    *string          `json:"category_id"`
	SubcategoryID *string          `json:"subcategory_id"`
	LocationID    *string          `json:"location_id"`
	SupplierID    *string          `json:"supplier_id"`
}

// ItemResponse salida de un ítem. TotalValue y Critical son derivados
// read-side; TotalValue está ausente si el ítem no tiene precio.
type ItemResponse struct {
	ID            string           `json:"id"`
	Name          string           `json:"name"`
	Description   string           `json:"description"`
	Quantity      int              `json:"quantity"`
	UnitPrice     decimal.Decimal  `json:"unit_price"`
	TotalValue    *decimal.Decimal `json:"total_value,omitempty"`
	MinQuantity   int              `json:"min_quantity"`
	Status        string           `json:"status"`
	Critical      bool             `json:"critical"`
	Barcode       string           `json:"barcode"`
	CategoryID    string           `json:"category_id"`
	SubcategoryID string           `json:"subcategory_id"`
	LocationID    string           `json:"location_id"`
	SupplierID    *string          `json:"supplier_id"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
}

// ItemListResponse lista paginada de ítems.
type ItemListResponse struct {
	Items []ItemResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}

// ItemToResponse mapea la entidad a su DTO calculando los derivados.
func ItemToResponse(i *entity.Item) ItemResponse {
	resp := ItemResponse{
		ID:            i.ID,
		Name:          i.Name,
		Description:   i.Description,
		Quantity:      i.Quantity,
		UnitPrice:     i.UnitPrice,
		MinQuantity:   i.MinQuantity,
		Status:        i.Status,
		Critical:      stock.IsCritical(i.Quantity, i.MinQuantity),
		Barcode:       i.Barcode,
		CategoryID:    i.CategoryID,
		SubcategoryID: i.SubcategoryID,
		LocationID:    i.LocationID,
		SupplierID:    i.SupplierID,
		CreatedAt:     i.CreatedAt,
		UpdatedAt:     i.UpdatedAt,
	}
	if !i.UnitPrice.IsZero() {
		total := decimal.NewFromInt(int64(i.Quantity)).Mul(i.UnitPrice).Round(2)
		resp.TotalValue = &total
	}
	return resp
}

// ItemsToResponse mapea una lista de entidades.
func ItemsToResponse(items []*entity.Item) []ItemResponse {
	out := make([]ItemResponse, 0, len(items))
	for _, i := range items {
		out = append(out, ItemToResponse(i))
	}
	return out
}
