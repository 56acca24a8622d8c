// Package movement implementa el Applier: la única vía de mutación de
// movimientos de stock. Cada operación ejecuta como unidad atómica el ajuste
// del on-hand del ítem, la fila de movimiento y la entrada de auditoría.
package movement

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/stock-control/internal/application/audit"
	"github.com/tu-usuario/stock-control/internal/domain"
	"github.com/tu-usuario/stock-control/internal/domain/entity"
	"github.com/tu-usuario/stock-control/internal/domain/repository"
	"github.com/tu-usuario/stock-control/internal/domain/stock"
	"github.com/tu-usuario/stock-control/internal/observability"
)

// Applier aplica movimientos de stock de forma transaccional: bloquea la fila
// del ítem (SELECT FOR UPDATE), re-valida la suficiencia contra la cantidad
// recién leída, aplica el delta, recalcula el status y escribe movimiento +
// auditoría con Commit/Rollback conjunto.
type Applier struct {
	txRunner TxRunner
	items    repository.ItemRepository // lecturas fuera de tx (validación temprana)
	cache    CacheInvalidator          // puede ser nil
}

// NewApplier construye el applier. cache puede ser nil si no hay caché de
// reportes configurada.
func NewApplier(txRunner TxRunner, items repository.ItemRepository, cache CacheInvalidator) *Applier {
	return &Applier{txRunner: txRunner, items: items, cache: cache}
}

// Create valida y aplica un movimiento nuevo. Devuelve la fila persistida.
//
// Pasos dentro de la transacción:
//  1. Re-lee el ítem bajo FOR UPDATE (guard contra carreras con movimientos
//     concurrentes sobre el mismo ítem).
//  2. Re-valida la regla de suficiencia OUT contra la cantidad fresca.
//  3. Aplica delta = +quantity (IN) / -quantity (OUT) y recalcula status.
//  4. Inserta la fila de movimiento.
//  5. Inserta la entrada de ActivityLog (CREATE, new_values = movimiento).
func (a *Applier) Create(ctx context.Context, userID string, req stock.MovementRequest) (*entity.Movement, error) {
	// Validación temprana con snapshot: rechaza rápido sin abrir tx.
	item, err := a.items.GetByID(ctx, req.ItemID)
	if err != nil {
		return nil, err
	}
	if _, err := stock.Validate(item, req); err != nil {
		a.countRejection(err)
		return nil, err
	}

	var created *entity.Movement
	err = a.txRunner.Run(ctx, func(
		items repository.ItemRepository,
		movements repository.MovementRepository,
		logs repository.ActivityLogRepository,
	) error {
		locked, err := items.GetForUpdate(ctx, req.ItemID)
		if err != nil {
			return err
		}
		// Re-validación bajo bloqueo: la cantidad pudo cambiar entre la
		// lectura temprana y la adquisición del lock.
		v, err := stock.Validate(locked, req)
		if err != nil {
			return err
		}
		newQty := locked.Quantity + v.Delta()
		status := stock.DeriveStatus(newQty, locked.MinQuantity)
		if err := items.SetQuantityStatus(ctx, locked.ID, newQty, status); err != nil {
			return err
		}

		mov := movementFromValidated(v, userID)
		if err := movements.Create(ctx, mov); err != nil {
			return err
		}
		entry, err := audit.NewEntry(userID, entity.ActionCreate, entity.EntityStockMovement,
			mov.ID, locked.Name, describeMovement(mov), nil, mov)
		if err != nil {
			return err
		}
		if err := logs.Create(ctx, entry); err != nil {
			return err
		}
		created = mov
		return nil
	})
	if err != nil {
		a.countRejection(err)
		return nil, err
	}
	observability.MovementsApplied.WithLabelValues("create", created.Type).Inc()
	a.invalidate(ctx)
	return created, nil
}

// Update edita un movimiento existente: revierte el delta viejo, re-valida la
// nueva petición contra la cantidad restaurada y aplica el delta nuevo, todo
// en una sola transacción. Si la nueva petición es inválida, la restauración
// nunca llega a ser visible.
func (a *Applier) Update(ctx context.Context, userID, movementID string, req stock.MovementRequest) (*entity.Movement, error) {
	var updated *entity.Movement
	err := a.txRunner.Run(ctx, func(
		items repository.ItemRepository,
		movements repository.MovementRepository,
		logs repository.ActivityLogRepository,
	) error {
		existing, err := movements.GetByID(ctx, movementID)
		if err != nil {
			return err
		}
		if existing == nil {
			return domain.ErrNotFound
		}
		if req.ItemID != "" && req.ItemID != existing.ItemID {
			return &domain.ValidationError{Field: "item_id", Reason: "no se puede cambiar el ítem de un movimiento"}
		}
		req.ItemID = existing.ItemID

		locked, err := items.GetForUpdate(ctx, existing.ItemID)
		if err != nil {
			return err
		}
		if locked == nil {
			return domain.ErrNotFound
		}
		// Reversión: restaura la cantidad previa al movimiento y valida la
		// nueva petición contra ese estado restaurado.
		restored := locked.Quantity - existing.Delta()
		snapshot := *locked
		snapshot.Quantity = restored
		v, err := stock.Validate(&snapshot, req)
		if err != nil {
			return err
		}
		newQty := restored + v.Delta()
		if newQty < 0 {
			return &domain.InsufficientStockError{Requested: v.Quantity, Available: restored}
		}
		status := stock.DeriveStatus(newQty, locked.MinQuantity)
		if err := items.SetQuantityStatus(ctx, locked.ID, newQty, status); err != nil {
			return err
		}

		mov := movementFromValidated(v, existing.UserID)
		mov.ID = existing.ID
		mov.CreatedAt = existing.CreatedAt
		if err := movements.Update(ctx, mov); err != nil {
			return err
		}
		entry, err := audit.NewEntry(userID, entity.ActionUpdate, entity.EntityStockMovement,
			mov.ID, locked.Name, describeMovement(mov), existing, mov)
		if err != nil {
			return err
		}
		if err := logs.Create(ctx, entry); err != nil {
			return err
		}
		updated = mov
		return nil
	})
	if err != nil {
		a.countRejection(err)
		return nil, err
	}
	observability.MovementsApplied.WithLabelValues("update", updated.Type).Inc()
	a.invalidate(ctx)
	return updated, nil
}

// Delete borra un movimiento revirtiendo su delta sobre el ítem. La fila de
// movimiento desaparece y queda una entrada DELETE con el snapshot borrado.
func (a *Applier) Delete(ctx context.Context, userID, movementID string) error {
	var deletedType string
	err := a.txRunner.Run(ctx, func(
		items repository.ItemRepository,
		movements repository.MovementRepository,
		logs repository.ActivityLogRepository,
	) error {
		existing, err := movements.GetByID(ctx, movementID)
		if err != nil {
			return err
		}
		if existing == nil {
			return domain.ErrNotFound
		}
		locked, err := items.GetForUpdate(ctx, existing.ItemID)
		if err != nil {
			return err
		}
		if locked == nil {
			return domain.ErrNotFound
		}
		restored := locked.Quantity - existing.Delta()
		if restored < 0 {
			// Revertir un IN ya consumido dejaría stock negativo.
			return &domain.InsufficientStockError{Requested: existing.Quantity, Available: locked.Quantity}
		}
		status := stock.DeriveStatus(restored, locked.MinQuantity)
		if err := items.SetQuantityStatus(ctx, locked.ID, restored, status); err != nil {
			return err
		}
		if err := movements.Delete(ctx, existing.ID); err != nil {
			return err
		}
		entry, err := audit.NewEntry(userID, entity.ActionDelete, entity.EntityStockMovement,
			existing.ID, locked.Name, describeMovement(existing), existing, nil)
		if err != nil {
			return err
		}
		if err := logs.Create(ctx, entry); err != nil {
			return err
		}
		deletedType = existing.Type
		return nil
	})
	if err != nil {
		a.countRejection(err)
		return err
	}
	observability.MovementsApplied.WithLabelValues("delete", deletedType).Inc()
	a.invalidate(ctx)
	return nil
}

func (a *Applier) invalidate(ctx context.Context) {
	if a.cache != nil {
		a.cache.Invalidate(ctx)
	}
}

func (a *Applier) countRejection(err error) {
	switch {
	case errors.Is(err, domain.ErrInsufficientStock):
		observability.MovementsRejected.WithLabelValues("insufficient_stock").Inc()
	case errors.Is(err, domain.ErrInvalidInput):
		observability.MovementsRejected.WithLabelValues("validation").Inc()
	case errors.Is(err, domain.ErrNotFound):
		observability.MovementsRejected.WithLabelValues("not_found").Inc()
	case errors.Is(err, domain.ErrBusy):
		observability.MovementsRejected.WithLabelValues("busy").Inc()
	default:
		observability.MovementsRejected.WithLabelValues("storage").Inc()
	}
}

func movementFromValidated(v *stock.ValidatedMovement, userID string) *entity.Movement {
	now := time.Now()
	return &entity.Movement{
		ID:              uuid.New().String(),
		ItemID:          v.ItemID,
		Type:            v.Type,
		Quantity:        v.Quantity,
		UnitPrice:       v.UnitPrice,
		TotalValue:      v.TotalValue,
		ReferenceNumber: v.ReferenceNumber,
		SupplierID:      v.SupplierID,
		Customer:        v.Customer,
		Notes:           v.Notes,
		LocationID:      v.LocationID,
		UserID:          userID,
		ReceivedBy:      v.ReceivedBy,
		MovementDate:    v.MovementDate,
		CreatedAt:       now,
	}
}

func describeMovement(m *entity.Movement) string {
	if m.Type == entity.MovementTypeOUT {
		return "salida de stock"
	}
	return "entrada de stock"
}
