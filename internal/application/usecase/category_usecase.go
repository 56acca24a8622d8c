package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/tu-usuario/stock-control/internal/application/audit"
	"github.com/tu-usuario/stock-control/internal/application/dto"
	"github.com/tu-usuario/stock-control/internal/domain"
	"github.com/tu-usuario/stock-control/internal/domain/entity"
	"github.com/tu-usuario/stock-control/internal/domain/repository"
)

// CategoryUseCase casos de uso de categorías y subcategorías. La subcategoría
// es propiedad exclusiva del padre: borrar la categoría borra en cascada.
type CategoryUseCase struct {
	categories repository.CategoryRepository
	recorder   *audit.Recorder
}

// NewCategoryUseCase construye el caso de uso.
func NewCategoryUseCase(categories repository.CategoryRepository, recorder *audit.Recorder) *CategoryUseCase {
	return &CategoryUseCase{categories: categories, recorder: recorder}
}

// Create crea una categoría. Nombre duplicado sale como Conflict.
func (uc *CategoryUseCase) Create(ctx context.Context, userID string, in dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	now := time.Now()
	c := &entity.Category{
		ID:          uuid.New().String(),
		Name:        in.Name,
		Description: in.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.categories.Create(ctx, c); err != nil {
		return nil, err
	}
	if err := uc.recorder.Record(ctx, userID, entity.ActionCreate, entity.EntityCategory,
		c.ID, c.Name, "categoría creada", nil, c); err != nil {
		return nil, err
	}
	resp := dto.CategoryToResponse(c)
	return &resp, nil
}

// GetByID obtiene una categoría por ID.
func (uc *CategoryUseCase) GetByID(ctx context.Context, id string) (*dto.CategoryResponse, error) {
	c, err := uc.categories.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	resp := dto.CategoryToResponse(c)
	return &resp, nil
}

// Update actualiza una categoría.
func (uc *CategoryUseCase) Update(ctx context.Context, userID, id string, in dto.UpdateCategoryRequest) (*dto.CategoryResponse, error) {
	c, err := uc.categories.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	old := *c
	if in.Name != nil {
		c.Name = *in.Name
	}
	if in.Description != nil {
		c.Description = *in.Description
	}
	c.UpdatedAt = time.Now()
	if err := uc.categories.Update(ctx, c); err != nil {
		return nil, err
	}
	if err := uc.recorder.Record(ctx, userID, entity.ActionUpdate, entity.EntityCategory,
		c.ID, c.Name, "categoría actualizada", &old, c); err != nil {
		return nil, err
	}
	resp := dto.CategoryToResponse(c)
	return &resp, nil
}

// Delete borra la categoría y sus subcategorías en cascada.
func (uc *CategoryUseCase) Delete(ctx context.Context, userID, id string) error {
	c, err := uc.categories.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if c == nil {
		return domain.ErrNotFound
	}
	if err := uc.categories.DeleteCascade(ctx, id); err != nil {
		return err
	}
	return uc.recorder.Record(ctx, userID, entity.ActionDelete, entity.EntityCategory,
		c.ID, c.Name, "categoría borrada (subcategorías en cascada)", c, nil)
}

// List lista todas las categorías.
func (uc *CategoryUseCase) List(ctx context.Context) ([]dto.CategoryResponse, error) {
	list, err := uc.categories.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CategoryResponse, 0, len(list))
	for _, c := range list {
		out = append(out, dto.CategoryToResponse(c))
	}
	return out, nil
}

// CreateSubcategory crea una subcategoría bajo una categoría existente.
func (uc *CategoryUseCase) CreateSubcategory(ctx context.Context, userID, categoryID string, in dto.CreateSubcategoryRequest) (*dto.SubcategoryResponse, error) {
	parent, err := uc.categories.GetByID(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	if parent == nil {
		return nil, domain.ErrNotFound
	}
	s := &entity.Subcategory{
		ID:         uuid.New().String(),
		CategoryID: categoryID,
		Name:       in.Name,
		CreatedAt:  time.Now(),
	}
	if err := uc.categories.CreateSubcategory(ctx, s); err != nil {
		return nil, err
	}
	if err := uc.recorder.Record(ctx, userID, entity.ActionCreate, entity.EntitySubcategory,
		s.ID, s.Name, "subcategoría creada", nil, s); err != nil {
		return nil, err
	}
	resp := dto.SubcategoryToResponse(s)
	return &resp, nil
}

// DeleteSubcategory borra una subcategoría individual.
func (uc *CategoryUseCase) DeleteSubcategory(ctx context.Context, userID, id string) error {
	s, err := uc.categories.GetSubcategoryByID(ctx, id)
	if err != nil {
		return err
	}
	if s == nil {
		return domain.ErrNotFound
	}
	if err := uc.categories.DeleteSubcategory(ctx, id); err != nil {
		return err
	}
	return uc.recorder.Record(ctx, userID, entity.ActionDelete, entity.EntitySubcategory,
		s.ID, s.Name, "subcategoría borrada", s, nil)
}

// ListSubcategories lista las subcategorías de una categoría.
func (uc *CategoryUseCase) ListSubcategories(ctx context.Context, categoryID string) ([]dto.SubcategoryResponse, error) {
	list, err := uc.categories.ListSubcategories(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SubcategoryResponse, 0, len(list))
	for _, s := range list {
		out = append(out, dto.SubcategoryToResponse(s))
	}
	return out, nil
}
