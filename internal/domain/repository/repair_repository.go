package repository

import (
	"context"

	"github.com/tu-usuario/stock-control/internal/domain/entity"
)

// RepairRepository define el puerto de persistencia de reparaciones.
type RepairRepository interface {
	Create(ctx context.Context, r *entity.Repair) error
	GetByID(ctx context.Context, id string) (*entity.Repair, error)
	Update(ctx context.Context, r *entity.Repair) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, status string) ([]*entity.Repair, error)
}
