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

var _ repository.LocationRepository = (*LocationRepo)(nil)

// LocationRepo implementación de LocationRepository sobre PostgreSQL.
type LocationRepo struct {
	q Querier
}

// NewLocationRepository construye el adaptador. Pasar pool o tx (Querier).
func NewLocationRepository(q Querier) *LocationRepo {
	return &LocationRepo{q: q}
}

const locationColumns = `id, name, code, block, capacity, status, location_type, created_at, updated_at`

// Create persiste una ubicación. Code duplicado sale como Conflict.
func (r *LocationRepo) Create(ctx context.Context, l *entity.Location) error {
	query := `INSERT INTO locations (id, name, code, block, capacity, status, location_type, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query, l.ID, l.Name, l.Code, l.Block, l.Capacity, l.Status, l.Type, l.CreatedAt, l.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return &domain.ConflictError{Entity: "location", Reason: "el código ya existe"}
		}
		return fmt.Errorf("create location: %w", err)
	}
	return nil
}

// GetByID obtiene una ubicación por ID. Devuelve (nil, nil) si no existe.
func (r *LocationRepo) GetByID(ctx context.Context, id string) (*entity.Location, error) {
	query := `SELECT ` + locationColumns + ` FROM locations WHERE id = $1`
	var l entity.Location
	err := r.q.QueryRow(ctx, query, id).Scan(
		&l.ID, &l.Name, &l.Code, &l.Block, &l.Capacity, &l.Status, &l.Type, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get location: %w", err)
	}
	return &l, nil
}

// Update sobreescribe los campos de la ubicación.
func (r *LocationRepo) Update(ctx context.Context, l *entity.Location) error {
	query := `UPDATE locations SET name = $2, code = $3, block = $4, capacity = $5,
		status = $6, location_type = $7, updated_at = now() WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, l.ID, l.Name, l.Code, l.Block, l.Capacity, l.Status, l.Type)
	if err != nil {
		if isUniqueViolation(err) {
			return &domain.ConflictError{Entity: "location", Reason: "el código ya existe"}
		}
		return fmt.Errorf("update location: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete borra una ubicación.
func (r *LocationRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM locations WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete location: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List devuelve todas las ubicaciones ordenadas por código.
func (r *LocationRepo) List(ctx context.Context) ([]*entity.Location, error) {
	rows, err := r.q.Query(ctx, `SELECT `+locationColumns+` FROM locations ORDER BY code`)
	if err != nil {
		return nil, fmt.Errorf("list locations: %w", err)
	}
	defer rows.Close()
	var list []*entity.Location
	for rows.Next() {
		var l entity.Location
		if err := rows.Scan(&l.ID, &l.Name, &l.Code, &l.Block, &l.Capacity, &l.Status,
			&l.Type, &l.CreatedAt, &l.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan location: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}

// Utilization cuenta ítems por ubicación frente a su capacidad (read-side).
func (r *LocationRepo) Utilization(ctx context.Context) ([]repository.LocationUtilization, error) {
	query := `
		SELECT l.id, COUNT(i.id), l.capacity
		FROM locations l
		LEFT JOIN items i ON i.location_id = l.id
		GROUP BY l.id, l.capacity`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("location utilization: %w", err)
	}
	defer rows.Close()
	var list []repository.LocationUtilization
	for rows.Next() {
		var u repository.LocationUtilization
		if err := rows.Scan(&u.LocationID, &u.ItemCount, &u.Capacity); err != nil {
			return nil, fmt.Errorf("scan utilization: %w", err)
		}
		list = append(list, u)
	}
	return list, rows.Err()
}
