package dto

import (
	"time"

	"github.com/tu-usuario/stock-control/internal/domain/entity"
)

// CreateLocationRequest entrada para crear una ubicación. Block es opcional:
// si falta, se deriva del prefijo del code.
type CreateLocationRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=100"`
	Code     string `json:"code" validate:"required"`
	Block    string `json:"block"`
	Capacity int    `json:"capacity" validate:"min=0"`
	Type     string `json:"location_type" validate:"required,oneof=storage_room office"`
}

// UpdateLocationRequest entrada para actualizar una ubicación.
type UpdateLocationRequest struct {
	Name     *string `json:"name" validate:"omitempty,min=1,max=100"`
	Code     *string `json:"code"`
	Block    *string `json:"block"`
	Capacity *int    `json:"capacity" validate:"omitempty,min=0"`
	Status   *string `json:"status" validate:"omitempty,oneof=active inactive"`
	Type     *string `json:"location_type" validate:"omitempty,oneof=storage_room office"`
}

// LocationResponse salida de una ubicación.
type LocationResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Code      string    `json:"code"`
	Block     string    `json:"block"`
	Capacity  int       `json:"capacity"`
	Status    string    `json:"status"`
	Type      string    `json:"location_type"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// LocationUtilizationResponse utilización read-side de una ubicación.
type LocationUtilizationResponse struct {
	LocationID string  `json:"location_id"`
	ItemCount  int     `json:"item_count"`
	Capacity   int     `json:"capacity"`
	Percent    float64 `json:"percent"` // 0 si capacity == 0
}

// LocationToResponse mapea la entidad a su DTO.
func LocationToResponse(l *entity.Location) LocationResponse {
	return LocationResponse{
		ID:        l.ID,
		Name:      l.Name,
		Code:      l.Code,
		Block:     l.Block,
		Capacity:  l.Capacity,
		Status:    l.Status,
		Type:      l.Type,
		CreatedAt: l.CreatedAt,
		UpdatedAt: l.UpdatedAt,
	}
}
