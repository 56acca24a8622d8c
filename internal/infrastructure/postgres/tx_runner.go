package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tu-usuario/stock-control/internal/application/movement"
	"github.com/tu-usuario/stock-control/internal/domain"
	"github.com/tu-usuario/stock-control/internal/domain/repository"
)

// Ensure TxRunner implements movement.TxRunner.
var _ movement.TxRunner = (*TxRunner)(nil)

// lockTimeout acota la espera por la fila del ítem. Si se excede, la operación
// devuelve ErrBusy en lugar de colgarse.
const lockTimeout = "3s"

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL con los
// repositorios del motor de stock atados a la tx.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, fija lock_timeout, ejecuta fn con repos atados a
// la tx y hace Commit o Rollback. Un timeout de bloqueo (55P03) se traduce a
// domain.ErrBusy; la cancelación del contexto revierte limpiamente.
func (r *TxRunner) Run(ctx context.Context, fn func(
	items repository.ItemRepository,
	movements repository.MovementRepository,
	logs repository.ActivityLogRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, "SET LOCAL lock_timeout = '"+lockTimeout+"'"); err != nil {
		return fmt.Errorf("set lock_timeout: %w", err)
	}

	itemRepo := NewItemRepository(tx)
	movRepo := NewMovementRepository(tx)
	logRepo := NewActivityLogRepository(tx)

	if err := fn(itemRepo, movRepo, logRepo); err != nil {
		if isLockNotAvailable(err) {
			return fmt.Errorf("%w: fila de ítem bloqueada por otra operación", domain.ErrBusy)
		}
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
