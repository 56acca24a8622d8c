package repository

import (
	"context"

	"github.com/tu-usuario/stock-control/internal/domain/entity"
)

// LocationUtilization es la utilización read-side de una ubicación:
// cuántos ítems aloja frente a su capacidad.
type LocationUtilization struct {
	LocationID string
	ItemCount  int
	Capacity   int
}

// LocationRepository define el puerto de persistencia de ubicaciones.
type LocationRepository interface {
	Create(ctx context.Context, l *entity.Location) error
	GetByID(ctx context.Context, id string) (*entity.Location, error)
	Update(ctx context.Context, l *entity.Location) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*entity.Location, error)
	Utilization(ctx context.Context) ([]LocationUtilization, error)
}
