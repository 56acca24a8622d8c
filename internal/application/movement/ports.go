package movement

import (
	"context"

	"github.com/tu-usuario/stock-control/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza la atomicidad del motor de stock:
// ajuste de cantidad, fila de movimiento y entrada de auditoría se confirman
// o revierten juntos.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		items repository.ItemRepository,
		movements repository.MovementRepository,
		logs repository.ActivityLogRepository,
	) error) error
}

// CacheInvalidator invalida la caché de reportes tras una mutación exitosa.
// Puede ser nil (caché deshabilitada).
type CacheInvalidator interface {
	Invalidate(ctx context.Context)
}
