package movement_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/stock-control/internal/application/movement"
	"github.com/tu-usuario/stock-control/internal/domain"
	"github.com/tu-usuario/stock-control/internal/domain/entity"
	"github.com/tu-usuario/stock-control/internal/domain/repository"
	"github.com/tu-usuario/stock-control/internal/domain/stock"
)

// ──────────────────────────────────────────────────────────────────────────────
// Store en memoria con semántica transaccional: Run opera sobre una copia
// staging y solo la publica en commit. El mutex emula el row lock de
// SELECT FOR UPDATE serializando las transacciones.
// ──────────────────────────────────────────────────────────────────────────────

type memStore struct {
	mu        sync.Mutex
	items     map[string]entity.Item
	movements map[string]entity.Movement
	logs      []entity.ActivityLog
	failLogs  bool // fuerza fallo del insert de auditoría
}

func newMemStore() *memStore {
	return &memStore{
		items:     map[string]entity.Item{},
		movements: map[string]entity.Movement{},
	}
}

func (s *memStore) clone() *memStore {
	c := newMemStore()
	for k, v := range s.items {
		c.items[k] = v
	}
	for k, v := range s.movements {
		c.movements[k] = v
	}
	c.logs = append(c.logs, s.logs...)
	c.failLogs = s.failLogs
	return c
}

type memTxRunner struct {
	store *memStore
}

func (r *memTxRunner) Run(ctx context.Context, fn func(
	items repository.ItemRepository,
	movements repository.MovementRepository,
	logs repository.ActivityLogRepository,
) error) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	staging := r.store.clone()
	err := fn(&memItemRepo{s: staging}, &memMovementRepo{s: staging}, &memLogRepo{s: staging})
	if err != nil {
		return err // rollback: el staging se descarta
	}
	r.store.items = staging.items
	r.store.movements = staging.movements
	r.store.logs = staging.logs
	return nil
}

// memItemRepo repos en memoria sin bloqueo propio (el TxRunner ya serializa).
type memItemRepo struct{ s *memStore }

func (r *memItemRepo) Create(_ context.Context, i *entity.Item) error {
	r.s.items[i.ID] = *i
	return nil
}

func (r *memItemRepo) GetByID(_ context.Context, id string) (*entity.Item, error) {
	i, ok := r.s.items[id]
	if !ok {
		return nil, nil
	}
	cp := i
	return &cp, nil
}

func (r *memItemRepo) GetForUpdate(ctx context.Context, id string) (*entity.Item, error) {
	return r.GetByID(ctx, id)
}

func (r *memItemRepo) Update(_ context.Context, i *entity.Item) error {
	r.s.items[i.ID] = *i
	return nil
}

func (r *memItemRepo) SetQuantityStatus(_ context.Context, id string, quantity int, status string) error {
	i, ok := r.s.items[id]
	if !ok {
		return domain.ErrNotFound
	}
	i.Quantity = quantity
	i.Status = status
	r.s.items[id] = i
	return nil
}

func (r *memItemRepo) Delete(_ context.Context, id string) error {
	delete(r.s.items, id)
	return nil
}

func (r *memItemRepo) List(_ context.Context, _ repository.ItemFilter) ([]*entity.Item, error) {
	return nil, nil
}

type memMovementRepo struct{ s *memStore }

func (r *memMovementRepo) Create(_ context.Context, m *entity.Movement) error {
	r.s.movements[m.ID] = *m
	return nil
}

func (r *memMovementRepo) GetByID(_ context.Context, id string) (*entity.Movement, error) {
	m, ok := r.s.movements[id]
	if !ok {
		return nil, nil
	}
	cp := m
	return &cp, nil
}

func (r *memMovementRepo) Update(_ context.Context, m *entity.Movement) error {
	if _, ok := r.s.movements[m.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.movements[m.ID] = *m
	return nil
}

func (r *memMovementRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.s.movements[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.movements, id)
	return nil
}

func (r *memMovementRepo) List(_ context.Context, _ repository.MovementFilter) ([]*entity.Movement, error) {
	return nil, nil
}

func (r *memMovementRepo) CountByItem(_ context.Context, itemID string) (int, error) {
	n := 0
	for _, m := range r.s.movements {
		if m.ItemID == itemID {
			n++
		}
	}
	return n, nil
}

type memLogRepo struct{ s *memStore }

func (r *memLogRepo) Create(_ context.Context, e *entity.ActivityLog) error {
	if r.s.failLogs {
		return fmt.Errorf("insert de auditoría falló")
	}
	r.s.logs = append(r.s.logs, *e)
	return nil
}

func (r *memLogRepo) List(_ context.Context, _ repository.ActivityFilter) ([]*entity.ActivityLog, error) {
	return nil, nil
}

// poolItemRepo vista del store para la lectura temprana fuera de tx.
type poolItemRepo struct{ s *memStore }

func (r *poolItemRepo) Create(ctx context.Context, i *entity.Item) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return (&memItemRepo{s: r.s}).Create(ctx, i)
}

func (r *poolItemRepo) GetByID(ctx context.Context, id string) (*entity.Item, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return (&memItemRepo{s: r.s}).GetByID(ctx, id)
}

func (r *poolItemRepo) GetForUpdate(ctx context.Context, id string) (*entity.Item, error) {
	return r.GetByID(ctx, id)
}

func (r *poolItemRepo) Update(ctx context.Context, i *entity.Item) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return (&memItemRepo{s: r.s}).Update(ctx, i)
}

func (r *poolItemRepo) SetQuantityStatus(ctx context.Context, id string, q int, st string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return (&memItemRepo{s: r.s}).SetQuantityStatus(ctx, id, q, st)
}

func (r *poolItemRepo) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return (&memItemRepo{s: r.s}).Delete(ctx, id)
}

func (r *poolItemRepo) List(_ context.Context, _ repository.ItemFilter) ([]*entity.Item, error) {
	return nil, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

const testUserID = "user-1"

func newApplier(store *memStore) *movement.Applier {
	return movement.NewApplier(&memTxRunner{store: store}, &poolItemRepo{s: store}, nil)
}

func seedItem(store *memStore, id string, quantity, minQuantity int) {
	store.items[id] = entity.Item{
		ID:          id,
		Name:        "Monitor 24\"",
		Quantity:    quantity,
		MinQuantity: minQuantity,
		Status:      stock.DeriveStatus(quantity, minQuantity),
	}
}

func movementReq(itemID, typ string, qty int) stock.MovementRequest {
	return stock.MovementRequest{
		ItemID:       itemID,
		Type:         typ,
		Quantity:     qty,
		MovementDate: time.Date(2026, 8, 15, 10, 0, 0, 0, time.UTC),
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Create
// ──────────────────────────────────────────────────────────────────────────────

func TestApplier_CreateIN_AjustaCantidadYStatus(t *testing.T) {
	store := newMemStore()
	seedItem(store, "item-1", 0, 5)
	applier := newApplier(store)

	mov, err := applier.Create(context.Background(), testUserID, movementReq("item-1", entity.MovementTypeIN, 3))
	require.NoError(t, err)

	item := store.items["item-1"]
	assert.Equal(t, 3, item.Quantity)
	assert.Equal(t, entity.ItemStatusLowStock, item.Status, "3 < mínimo 5 debe derivar low_stock")
	assert.Len(t, store.movements, 1)
	assert.Equal(t, testUserID, mov.UserID)

	require.Len(t, store.logs, 1, "cada movimiento deja exactamente una entrada de auditoría")
	entry := store.logs[0]
	assert.Equal(t, entity.ActionCreate, entry.Action)
	assert.Equal(t, entity.EntityStockMovement, entry.EntityType)
	assert.NotEmpty(t, entry.NewValues)
	assert.Empty(t, entry.OldValues)
}

func TestApplier_CreateOUT_InsuficienteNoMutaNada(t *testing.T) {
	store := newMemStore()
	seedItem(store, "item-1", 3, 5)
	applier := newApplier(store)

	_, err := applier.Create(context.Background(), testUserID, movementReq("item-1", entity.MovementTypeOUT, 7))
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInsufficientStock))

	assert.Equal(t, 3, store.items["item-1"].Quantity, "el rechazo no debe tocar el stock")
	assert.Empty(t, store.movements)
	assert.Empty(t, store.logs)
}

func TestApplier_CreateConPrecio_CalculaTotal(t *testing.T) {
	store := newMemStore()
	seedItem(store, "item-1", 0, 0)
	applier := newApplier(store)

	req := movementReq("item-1", entity.MovementTypeIN, 4)
	price := decimal.RequireFromString("2.505")
	req.UnitPrice = &price

	mov, err := applier.Create(context.Background(), testUserID, req)
	require.NoError(t, err)
	require.NotNil(t, mov.TotalValue)
	assert.Equal(t, "10.02", mov.TotalValue.StringFixed(2))
}

func TestApplier_FalloDeAuditoria_RevierteTodo(t *testing.T) {
	store := newMemStore()
	seedItem(store, "item-1", 10, 5)
	store.failLogs = true
	applier := newApplier(store)

	_, err := applier.Create(context.Background(), testUserID, movementReq("item-1", entity.MovementTypeOUT, 2))
	require.Error(t, err, "si la auditoría falla, la operación completa falla")

	assert.Equal(t, 10, store.items["item-1"].Quantity, "rollback: la cantidad no cambia")
	assert.Empty(t, store.movements, "rollback: el movimiento no se persiste")
}

// ──────────────────────────────────────────────────────────────────────────────
// Concurrencia: dos OUT de 7 sobre stock 10: exactamente uno gana
// ──────────────────────────────────────────────────────────────────────────────

func TestApplier_DosOUTConcurrentes_SoloUnoGana(t *testing.T) {
	store := newMemStore()
	seedItem(store, "item-1", 10, 5)
	applier := newApplier(store)

	errs := make(chan error, 2)
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := applier.Create(context.Background(), testUserID, movementReq("item-1", entity.MovementTypeOUT, 7))
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	var okCount, insuffCount int
	for err := range errs {
		switch {
		case err == nil:
			okCount++
		case errors.Is(err, domain.ErrInsufficientStock):
			insuffCount++
		default:
			t.Fatalf("error inesperado: %v", err)
		}
	}
	assert.Equal(t, 1, okCount, "exactamente un OUT debe aplicarse")
	assert.Equal(t, 1, insuffCount, "el otro debe rechazarse por stock insuficiente")
	assert.Equal(t, 3, store.items["item-1"].Quantity, "10 - 7 = 3, nunca negativo")
	assert.Len(t, store.movements, 1)
}

// ──────────────────────────────────────────────────────────────────────────────
// Update: reversión del delta viejo + aplicación del nuevo en una sola tx
// ──────────────────────────────────────────────────────────────────────────────

func TestApplier_Update_ReviertYReaplica(t *testing.T) {
	store := newMemStore()
	seedItem(store, "item-1", 0, 0)
	applier := newApplier(store)
	ctx := context.Background()

	mov, err := applier.Create(ctx, testUserID, movementReq("item-1", entity.MovementTypeIN, 10))
	require.NoError(t, err)
	require.Equal(t, 10, store.items["item-1"].Quantity)

	updated, err := applier.Update(ctx, testUserID, mov.ID, movementReq("item-1", entity.MovementTypeIN, 4))
	require.NoError(t, err)

	assert.Equal(t, 4, store.items["item-1"].Quantity, "revertir +10 y aplicar +4 deja 4")
	assert.Equal(t, mov.ID, updated.ID, "el ID del movimiento se conserva")
	assert.Len(t, store.movements, 1)
	assert.Equal(t, 4, store.movements[mov.ID].Quantity)
}

func TestApplier_Update_CambioDeTipoINaOUT(t *testing.T) {
	store := newMemStore()
	seedItem(store, "item-1", 20, 0)
	applier := newApplier(store)
	ctx := context.Background()

	mov, err := applier.Create(ctx, testUserID, movementReq("item-1", entity.MovementTypeIN, 5))
	require.NoError(t, err)
	require.Equal(t, 25, store.items["item-1"].Quantity)

	_, err = applier.Update(ctx, testUserID, mov.ID, movementReq("item-1", entity.MovementTypeOUT, 5))
	require.NoError(t, err)
	assert.Equal(t, 15, store.items["item-1"].Quantity, "revertir +5 (20) y aplicar -5 deja 15")
}

func TestApplier_Update_NuevaPeticionInvalidaNoDejaRestauracionVisible(t *testing.T) {
	store := newMemStore()
	seedItem(store, "item-1", 0, 0)
	applier := newApplier(store)
	ctx := context.Background()

	// IN de 10 deja el stock en 10. Editar ese IN a OUT de 50 es inválido
	// contra la cantidad restaurada (0): todo debe quedar como estaba.
	mov, err := applier.Create(ctx, testUserID, movementReq("item-1", entity.MovementTypeIN, 10))
	require.NoError(t, err)

	_, err = applier.Update(ctx, testUserID, mov.ID, movementReq("item-1", entity.MovementTypeOUT, 50))
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInsufficientStock))

	assert.Equal(t, 10, store.items["item-1"].Quantity, "la restauración intermedia nunca es visible")
	assert.Equal(t, entity.MovementTypeIN, store.movements[mov.ID].Type)
}

func TestApplier_Update_CambiarItemRechazado(t *testing.T) {
	store := newMemStore()
	seedItem(store, "item-1", 10, 0)
	seedItem(store, "item-2", 10, 0)
	applier := newApplier(store)
	ctx := context.Background()

	mov, err := applier.Create(ctx, testUserID, movementReq("item-1", entity.MovementTypeIN, 1))
	require.NoError(t, err)

	_, err = applier.Update(ctx, testUserID, mov.ID, movementReq("item-2", entity.MovementTypeIN, 1))
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput), "cambiar el ítem de un movimiento no está permitido")
}

func TestApplier_Update_MovimientoInexistente(t *testing.T) {
	store := newMemStore()
	seedItem(store, "item-1", 10, 0)
	applier := newApplier(store)

	_, err := applier.Update(context.Background(), testUserID, "no-existe", movementReq("item-1", entity.MovementTypeIN, 1))
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

// ──────────────────────────────────────────────────────────────────────────────
// Delete: reversión del delta
// ──────────────────────────────────────────────────────────────────────────────

func TestApplier_Delete_RevierteElDelta(t *testing.T) {
	store := newMemStore()
	seedItem(store, "item-1", 0, 5)
	applier := newApplier(store)
	ctx := context.Background()

	mov, err := applier.Create(ctx, testUserID, movementReq("item-1", entity.MovementTypeIN, 8))
	require.NoError(t, err)
	require.Equal(t, 8, store.items["item-1"].Quantity)

	require.NoError(t, applier.Delete(ctx, testUserID, mov.ID))

	item := store.items["item-1"]
	assert.Equal(t, 0, item.Quantity)
	assert.Equal(t, entity.ItemStatusOutOfStock, item.Status, "el status se rederiva tras la reversión")
	assert.Empty(t, store.movements)

	// CREATE + DELETE en el timeline; la entrada DELETE lleva el snapshot borrado.
	require.Len(t, store.logs, 2)
	assert.Equal(t, entity.ActionDelete, store.logs[1].Action)
	assert.NotEmpty(t, store.logs[1].OldValues)
	assert.Empty(t, store.logs[1].NewValues)
}

func TestApplier_Delete_INYaConsumido_Rechazado(t *testing.T) {
	store := newMemStore()
	seedItem(store, "item-1", 0, 0)
	applier := newApplier(store)
	ctx := context.Background()

	// IN de 10, luego OUT de 8: borrar el IN dejaría el stock en -8.
	in, err := applier.Create(ctx, testUserID, movementReq("item-1", entity.MovementTypeIN, 10))
	require.NoError(t, err)
	_, err = applier.Create(ctx, testUserID, movementReq("item-1", entity.MovementTypeOUT, 8))
	require.NoError(t, err)

	err = applier.Delete(ctx, testUserID, in.ID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInsufficientStock))
	assert.Equal(t, 2, store.items["item-1"].Quantity, "el borrado rechazado no muta nada")
}
