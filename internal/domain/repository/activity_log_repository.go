package repository

import (
	"context"
	"time"

	"github.com/tu-usuario/stock-control/internal/domain/entity"
)

// ActivityFilter filtros del timeline de auditoría.
type ActivityFilter struct {
	UserID     string
	Action     string
	EntityType string
	From       *time.Time
	To         *time.Time
	Limit      int
	Offset     int
}

// ActivityLogRepository define el puerto del log de actividad.
// Solo inserta y lista: las entradas nunca se actualizan ni se borran.
type ActivityLogRepository interface {
	Create(ctx context.Context, e *entity.ActivityLog) error
	List(ctx context.Context, filter ActivityFilter) ([]*entity.ActivityLog, error)
}
