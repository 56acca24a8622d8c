package repository

import (
	"context"
	"time"

	"github.com/tu-usuario/stock-control/internal/domain/entity"
)

// MovementFilter filtros de listado de movimientos.
type MovementFilter struct {
	ItemID     string
	Type       string // IN, OUT o vacío
	LocationID string
	From       *time.Time
	To         *time.Time
	Limit      int
	Offset     int
}

// MovementRepository define el puerto de persistencia de movimientos de stock.
// Las mutaciones solo se invocan desde el Applier, dentro de su transacción.
type MovementRepository interface {
	Create(ctx context.Context, m *entity.Movement) error
	GetByID(ctx context.Context, id string) (*entity.Movement, error)
	Update(ctx context.Context, m *entity.Movement) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter MovementFilter) ([]*entity.Movement, error)
	// CountByItem soporta el guard referencial: un ítem con movimientos no se borra.
	CountByItem(ctx context.Context, itemID string) (int, error)
}
