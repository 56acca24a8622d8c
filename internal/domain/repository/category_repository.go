package repository

import (
	"context"

	"github.com/tu-usuario/stock-control/internal/domain/entity"
)

// CategoryRepository define el puerto de persistencia de categorías y
// subcategorías. DeleteCascade borra la categoría y sus subcategorías en una
// sola operación (la subcategoría es propiedad exclusiva del padre).
type CategoryRepository interface {
	Create(ctx context.Context, c *entity.Category) error
	GetByID(ctx context.Context, id string) (*entity.Category, error)
	Update(ctx context.Context, c *entity.Category) error
	DeleteCascade(ctx context.Context, id string) error
	List(ctx context.Context) ([]*entity.Category, error)

	CreateSubcategory(ctx context.Context, s *entity.Subcategory) error
	GetSubcategoryByID(ctx context.Context, id string) (*entity.Subcategory, error)
	DeleteSubcategory(ctx context.Context, id string) error
	ListSubcategories(ctx context.Context, categoryID string) ([]*entity.Subcategory, error)
}
