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

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo implementación de MovementRepository sobre PostgreSQL
// (usable con pool o tx). Las mutaciones solo llegan desde el Applier.
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

const movementColumns = `id, item_id, movement_type, quantity, unit_price, total_value,
		reference_number, supplier_id, customer, notes, location_id, user_id,
		received_by, movement_date, created_at`

// Create persiste un movimiento de stock.
func (r *MovementRepo) Create(ctx context.Context, m *entity.Movement) error {
	query := `
		INSERT INTO stock_movements (id, item_id, movement_type, quantity, unit_price, total_value,
			reference_number, supplier_id, customer, notes, location_id, user_id,
			received_by, movement_date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.ItemID, m.Type, m.Quantity, m.UnitPrice, m.TotalValue,
		m.ReferenceNumber, m.SupplierID, m.Customer, m.Notes, m.LocationID,
		m.UserID, m.ReceivedBy, m.MovementDate, m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create movement: %w", err)
	}
	return nil
}

// GetByID obtiene un movimiento por ID. Devuelve (nil, nil) si no existe.
func (r *MovementRepo) GetByID(ctx context.Context, id string) (*entity.Movement, error) {
	query := `SELECT ` + movementColumns + ` FROM stock_movements WHERE id = $1`
	m, err := scanMovement(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movement: %w", err)
	}
	return m, nil
}

// Update sobreescribe los campos del movimiento (mismo ID, mismo created_at).
func (r *MovementRepo) Update(ctx context.Context, m *entity.Movement) error {
	query := `
		UPDATE stock_movements SET movement_type = $2, quantity = $3, unit_price = $4,
			total_value = $5, reference_number = $6, supplier_id = $7, customer = $8,
			notes = $9, location_id = $10, received_by = $11, movement_date = $12
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		m.ID, m.Type, m.Quantity, m.UnitPrice, m.TotalValue, m.ReferenceNumber,
		m.SupplierID, m.Customer, m.Notes, m.LocationID, m.ReceivedBy, m.MovementDate,
	)
	if err != nil {
		return fmt.Errorf("update movement: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete borra la fila del movimiento (la reversión del delta ya la hizo el Applier).
func (r *MovementRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM stock_movements WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete movement: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista movimientos con filtros opcionales, más reciente primero.
func (r *MovementRepo) List(ctx context.Context, filter repository.MovementFilter) ([]*entity.Movement, error) {
	query := `SELECT ` + movementColumns + ` FROM stock_movements WHERE 1=1`
	args := []any{}
	pos := 1
	if filter.ItemID != "" {
		query += fmt.Sprintf(" AND item_id = $%d", pos)
		args = append(args, filter.ItemID)
		pos++
	}
	if filter.Type != "" {
		query += fmt.Sprintf(" AND movement_type = $%d", pos)
		args = append(args, filter.Type)
		pos++
	}
	if filter.LocationID != "" {
		query += fmt.Sprintf(" AND location_id = $%d", pos)
		args = append(args, filter.LocationID)
		pos++
	}
	if filter.From != nil {
		query += fmt.Sprintf(" AND movement_date >= $%d", pos)
		args = append(args, *filter.From)
		pos++
	}
	if filter.To != nil {
		query += fmt.Sprintf(" AND movement_date <= $%d", pos)
		args = append(args, *filter.To)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY movement_date DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.Movement
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

// CountByItem cuenta los movimientos que referencian un ítem (guard de borrado).
func (r *MovementRepo) CountByItem(ctx context.Context, itemID string) (int, error) {
	var n int
	err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM stock_movements WHERE item_id = $1`, itemID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count movements by item: %w", err)
	}
	return n, nil
}

func scanMovement(row pgx.Row) (*entity.Movement, error) {
	var m entity.Movement
	err := row.Scan(
		&m.ID, &m.ItemID, &m.Type, &m.Quantity, &m.UnitPrice, &m.TotalValue,
		&m.ReferenceNumber, &m.SupplierID, &m.Customer, &m.Notes, &m.LocationID,
		&m.UserID, &m.ReceivedBy, &m.MovementDate, &m.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}
