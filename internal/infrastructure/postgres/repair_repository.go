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

var _ repository.RepairRepository = (*RepairRepo)(nil)

// RepairRepo implementación de RepairRepository sobre PostgreSQL.
type RepairRepo struct {
	q Querier
}

// NewRepairRepository construye el adaptador. Pasar pool o tx (Querier).
func NewRepairRepository(q Querier) *RepairRepo {
	return &RepairRepo{q: q}
}

const repairColumns = `id, item_name, issue_description, status, priority, assigned_to, created_at, updated_at`

// Create persiste una reparación.
func (r *RepairRepo) Create(ctx context.Context, rep *entity.Repair) error {
	query := `INSERT INTO repairs (id, item_name, issue_description, status, priority, assigned_to, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query, rep.ID, rep.ItemName, rep.IssueDescription,
		rep.Status, rep.Priority, rep.AssignedTo, rep.CreatedAt, rep.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create repair: %w", err)
	}
	return nil
}

// GetByID obtiene una reparación por ID. Devuelve (nil, nil) si no existe.
func (r *RepairRepo) GetByID(ctx context.Context, id string) (*entity.Repair, error) {
	query := `SELECT ` + repairColumns + ` FROM repairs WHERE id = $1`
	var rep entity.Repair
	err := r.q.QueryRow(ctx, query, id).Scan(&rep.ID, &rep.ItemName, &rep.IssueDescription,
		&rep.Status, &rep.Priority, &rep.AssignedTo, &rep.CreatedAt, &rep.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get repair: %w", err)
	}
	return &rep, nil
}

// Update sobreescribe los campos de la reparación (incluido el status; la
// validez de la transición la decide el caso de uso).
func (r *RepairRepo) Update(ctx context.Context, rep *entity.Repair) error {
	query := `UPDATE repairs SET item_name = $2, issue_description = $3, status = $4,
		priority = $5, assigned_to = $6, updated_at = now() WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, rep.ID, rep.ItemName, rep.IssueDescription,
		rep.Status, rep.Priority, rep.AssignedTo)
	if err != nil {
		return fmt.Errorf("update repair: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete borra una reparación.
func (r *RepairRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM repairs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete repair: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista reparaciones, opcionalmente filtradas por status.
func (r *RepairRepo) List(ctx context.Context, status string) ([]*entity.Repair, error) {
	query := `SELECT ` + repairColumns + ` FROM repairs`
	args := []any{}
	if status != "" {
		query += ` WHERE status = $1`
		args = append(args, status)
	}
	query += ` ORDER BY created_at DESC`
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list repairs: %w", err)
	}
	defer rows.Close()
	var list []*entity.Repair
	for rows.Next() {
		var rep entity.Repair
		if err := rows.Scan(&rep.ID, &rep.ItemName, &rep.IssueDescription, &rep.Status,
			&rep.Priority, &rep.AssignedTo, &rep.CreatedAt, &rep.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan repair: %w", err)
		}
		list = append(list, &rep)
	}
	return list, rows.Err()
}
