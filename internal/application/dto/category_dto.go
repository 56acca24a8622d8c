package dto

import (
	"time"

	"github.com/tu-usuario/stock-control/internal/domain/entity"
)

// CreateCategoryRequest entrada para crear una categoría.
type CreateCategoryRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=100"`
	Description string `json:"description"`
}

// UpdateCategoryRequest entrada para actualizar una categoría.
type UpdateCategoryRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=100"`
	Description *string `json:"description"`
}

// CategoryResponse salida de una categoría.
type CategoryResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CreateSubcategoryRequest entrada para crear una subcategoría.
type CreateSubcategoryRequest struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
}

// SubcategoryResponse salida de una subcategoría.
type SubcategoryResponse struct {
	ID         string    `json:"id"`
	CategoryID string    `json:"category_id"`
	Name       string    `json:"name"`
	CreatedAt  time.Time `json:"created_at"`
}

// CategoryToResponse mapea la entidad a su DTO.
func CategoryToResponse(c *entity.Category) CategoryResponse {
	return CategoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

// SubcategoryToResponse mapea la entidad a su DTO.
func SubcategoryToResponse(s *entity.Subcategory) SubcategoryResponse {
	return SubcategoryResponse{
		ID:         s.ID,
		CategoryID: s.CategoryID,
		Name:       s.Name,
		CreatedAt:  s.CreatedAt,
	}
}
