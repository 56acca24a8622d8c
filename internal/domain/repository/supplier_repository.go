package repository

import (
	"context"

	"github.com/tu-usuario/stock-control/internal/domain/entity"
)

// SupplierAssociations cuenta las referencias vivas a un proveedor.
// Con cualquiera > 0 el borrado se bloquea (se aconseja desactivar).
type SupplierAssociations struct {
	ItemsCount     int
	MovementsCount int
}

// SupplierRepository define el puerto de persistencia de proveedores.
type SupplierRepository interface {
	Create(ctx context.Context, s *entity.Supplier) error
	GetByID(ctx context.Context, id string) (*entity.Supplier, error)
	Update(ctx context.Context, s *entity.Supplier) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*entity.Supplier, error)
	Associations(ctx context.Context, id string) (SupplierAssociations, error)
}
