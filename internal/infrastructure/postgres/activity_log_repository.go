package postgres

import (
	"context"
	"fmt"

	"github.com/tu-usuario/stock-control/internal/domain/entity"
	"github.com/tu-usuario/stock-control/internal/domain/repository"
)

var _ repository.ActivityLogRepository = (*ActivityLogRepo)(nil)

// ActivityLogRepo implementación append-only del log de actividad
// (usable con pool o tx: el Applier lo ata a su transacción).
type ActivityLogRepo struct {
	q Querier
}

// NewActivityLogRepository construye el adaptador. Pasar pool o tx (Querier).
func NewActivityLogRepository(q Querier) *ActivityLogRepo {
	return &ActivityLogRepo{q: q}
}

// Create inserta una entrada de auditoría. No hay Update ni Delete.
func (r *ActivityLogRepo) Create(ctx context.Context, e *entity.ActivityLog) error {
	query := `
		INSERT INTO activity_logs (id, user_id, action, entity_type, entity_id, entity_name,
			description, old_values, new_values, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		e.ID, e.UserID, e.Action, e.EntityType, e.EntityID, e.EntityName,
		e.Description, e.OldValues, e.NewValues, e.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create activity log: %w", err)
	}
	return nil
}

// List devuelve el timeline filtrado, más reciente primero.
func (r *ActivityLogRepo) List(ctx context.Context, filter repository.ActivityFilter) ([]*entity.ActivityLog, error) {
	query := `
		SELECT id, user_id, action, entity_type, entity_id, entity_name,
			description, old_values, new_values, created_at
		FROM activity_logs WHERE 1=1`
	args := []any{}
	pos := 1
	if filter.UserID != "" {
		query += fmt.Sprintf(" AND user_id = $%d", pos)
		args = append(args, filter.UserID)
		pos++
	}
	if filter.Action != "" {
		query += fmt.Sprintf(" AND action = $%d", pos)
		args = append(args, filter.Action)
		pos++
	}
	if filter.EntityType != "" {
		query += fmt.Sprintf(" AND entity_type = $%d", pos)
		args = append(args, filter.EntityType)
		pos++
	}
	if filter.From != nil {
		query += fmt.Sprintf(" AND created_at >= $%d", pos)
		args = append(args, *filter.From)
		pos++
	}
	if filter.To != nil {
		query += fmt.Sprintf(" AND created_at <= $%d", pos)
		args = append(args, *filter.To)
		pos++
	}
	query += " ORDER BY created_at DESC"
	// Limit 0 = sin límite (lo usa el export CSV para el rango completo).
	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", pos, pos+1)
		args = append(args, filter.Limit, filter.Offset)
	}

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list activity logs: %w", err)
	}
	defer rows.Close()
	var list []*entity.ActivityLog
	for rows.Next() {
		var e entity.ActivityLog
		if err := rows.Scan(&e.ID, &e.UserID, &e.Action, &e.EntityType, &e.EntityID,
			&e.EntityName, &e.Description, &e.OldValues, &e.NewValues, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan activity log: %w", err)
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}
