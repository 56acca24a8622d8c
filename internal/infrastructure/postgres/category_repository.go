package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/stock-control/internal/domain"
	"github.com/tu-usuario/stock-control/internal/domain/entity"
	"github.com/tu-usuario/stock-control/internal/domain/repository"
)

var _ repository.CategoryRepository = (*CategoryRepo)(nil)

// CategoryRepo implementación de CategoryRepository sobre PostgreSQL.
type CategoryRepo struct {
	q Querier
}

// NewCategoryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCategoryRepository(q Querier) *CategoryRepo {
	return &CategoryRepo{q: q}
}

// Create persiste una categoría. Nombre duplicado sale como Conflict.
func (r *CategoryRepo) Create(ctx context.Context, c *entity.Category) error {
	query := `INSERT INTO categories (id, name, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(ctx, query, c.ID, c.Name, c.Description, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return &domain.ConflictError{Entity: "category", Reason: "el nombre ya existe"}
		}
		return fmt.Errorf("create category: %w", err)
	}
	return nil
}

// GetByID obtiene una categoría por ID. Devuelve (nil, nil) si no existe.
func (r *CategoryRepo) GetByID(ctx context.Context, id string) (*entity.Category, error) {
	query := `SELECT id, name, description, created_at, updated_at FROM categories WHERE id = $1`
	var c entity.Category
	err := r.q.QueryRow(ctx, query, id).Scan(&c.ID, &c.Name, &c.Description, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get category: %w", err)
	}
	return &c, nil
}

// Update sobreescribe nombre y descripción.
func (r *CategoryRepo) Update(ctx context.Context, c *entity.Category) error {
	query := `UPDATE categories SET name = $2, description = $3, updated_at = now() WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, c.ID, c.Name, c.Description)
	if err != nil {
		if isUniqueViolation(err) {
			return &domain.ConflictError{Entity: "category", Reason: "el nombre ya existe"}
		}
		return fmt.Errorf("update category: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// DeleteCascade borra la categoría y sus subcategorías (FK ON DELETE CASCADE
// en subcategories; el DELETE explícito deja la intención en el código).
func (r *CategoryRepo) DeleteCascade(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM subcategories WHERE category_id = $1`, id); err != nil {
		return fmt.Errorf("delete subcategories: %w", err)
	}
	tag, err := r.q.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List devuelve todas las categorías ordenadas por nombre.
func (r *CategoryRepo) List(ctx context.Context) ([]*entity.Category, error) {
	rows, err := r.q.Query(ctx, `SELECT id, name, description, created_at, updated_at FROM categories ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()
	var list []*entity.Category
	for rows.Next() {
		var c entity.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

// CreateSubcategory persiste una subcategoría bajo su categoría padre.
func (r *CategoryRepo) CreateSubcategory(ctx context.Context, s *entity.Subcategory) error {
	query := `INSERT INTO subcategories (id, category_id, name, created_at) VALUES ($1, $2, $3, $4)`
	_, err := r.q.Exec(ctx, query, s.ID, s.CategoryID, s.Name, s.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return &domain.ConflictError{Entity: "subcategory", Reason: "el nombre ya existe en la categoría"}
		}
		return fmt.Errorf("create subcategory: %w", err)
	}
	return nil
}

// GetSubcategoryByID obtiene una subcategoría. Devuelve (nil, nil) si no existe.
func (r *CategoryRepo) GetSubcategoryByID(ctx context.Context, id string) (*entity.Subcategory, error) {
	query := `SELECT id, category_id, name, created_at FROM subcategories WHERE id = $1`
	var s entity.Subcategory
	err := r.q.QueryRow(ctx, query, id).Scan(&s.ID, &s.CategoryID, &s.Name, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get subcategory: %w", err)
	}
	return &s, nil
}

// DeleteSubcategory borra una subcategoría individual.
func (r *CategoryRepo) DeleteSubcategory(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM subcategories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete subcategory: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListSubcategories lista las subcategorías de una categoría.
func (r *CategoryRepo) ListSubcategories(ctx context.Context, categoryID string) ([]*entity.Subcategory, error) {
	rows, err := r.q.Query(ctx,
		`SELECT id, category_id, name, created_at FROM subcategories WHERE category_id = $1 ORDER BY name`, categoryID)
	if err != nil {
		return nil, fmt.Errorf("list subcategories: %w", err)
	}
	defer rows.Close()
	var list []*entity.Subcategory
	for rows.Next() {
		var s entity.Subcategory
		if err := rows.Scan(&s.ID, &s.CategoryID, &s.Name, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan subcategory: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}
