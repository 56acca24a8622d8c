package repository

import (
	"context"

	"github.com/tu-usuario/stock-control/internal/domain/entity"
)

// ItemFilter filtros de listado del catálogo.
type ItemFilter struct {
	Search     string // búsqueda normalizada (sin acentos) sobre nombre y barcode
	CategoryID string
	LocationID string
	Status     string
	Limit      int
	Offset     int
}

// ItemRepository define el puerto de persistencia del catálogo de ítems.
// GetForUpdate serializa la mutación concurrente del mismo ítem
// (SELECT ... FOR UPDATE); usarlo solo dentro de una transacción.
type ItemRepository interface {
	Create(ctx context.Context, item *entity.Item) error
	GetByID(ctx context.Context, id string) (*entity.Item, error)
	GetForUpdate(ctx context.Context, id string) (*entity.Item, error)
	Update(ctx context.Context, item *entity.Item) error
	// SetQuantityStatus escribe el nuevo on-hand y el status derivado.
	SetQuantityStatus(ctx context.Context, id string, quantity int, status string) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter ItemFilter) ([]*entity.Item, error)
}
