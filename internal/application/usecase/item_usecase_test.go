package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/stock-control/internal/application/audit"
	"github.com/tu-usuario/stock-control/internal/application/dto"
	"github.com/tu-usuario/stock-control/internal/domain"
	"github.com/tu-usuario/stock-control/internal/domain/entity"
	"github.com/tu-usuario/stock-control/internal/domain/repository"
)

type fakeItemRepo struct {
	byID map[string]*entity.Item
}

func newFakeItemRepo() *fakeItemRepo {
	return &fakeItemRepo{byID: map[string]*entity.Item{}}
}

func (f *fakeItemRepo) Create(_ context.Context, i *entity.Item) error {
	cp := *i
	f.byID[i.ID] = &cp
	return nil
}

func (f *fakeItemRepo) GetByID(_ context.Context, id string) (*entity.Item, error) {
	i, ok := f.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *i
	return &cp, nil
}

func (f *fakeItemRepo) GetForUpdate(ctx context.Context, id string) (*entity.Item, error) {
	return f.GetByID(ctx, id)
}

func (f *fakeItemRepo) Update(_ context.Context, i *entity.Item) error {
	cp := *i
	f.byID[i.ID] = &cp
	return nil
}

func (f *fakeItemRepo) SetQuantityStatus(_ context.Context, id string, quantity int, status string) error {
	i, ok := f.byID[id]
	if !ok {
		return domain.ErrNotFound
	}
	i.Quantity = quantity
	i.Status = status
	return nil
}

func (f *fakeItemRepo) Delete(_ context.Context, id string) error {
	delete(f.byID, id)
	return nil
}

func (f *fakeItemRepo) List(_ context.Context, _ repository.ItemFilter) ([]*entity.Item, error) {
	out := make([]*entity.Item, 0, len(f.byID))
	for _, i := range f.byID {
		cp := *i
		out = append(out, &cp)
	}
	return out, nil
}

// fakeMovementCounter solo implementa lo que el guard de borrado necesita.
type fakeMovementCounter struct {
	counts map[string]int
}

func (f *fakeMovementCounter) Create(_ context.Context, _ *entity.Movement) error  { return nil }
func (f *fakeMovementCounter) Update(_ context.Context, _ *entity.Movement) error  { return nil }
func (f *fakeMovementCounter) Delete(_ context.Context, _ string) error            { return nil }
func (f *fakeMovementCounter) GetByID(_ context.Context, _ string) (*entity.Movement, error) {
	return nil, nil
}
func (f *fakeMovementCounter) List(_ context.Context, _ repository.MovementFilter) ([]*entity.Movement, error) {
	return nil, nil
}
func (f *fakeMovementCounter) CountByItem(_ context.Context, itemID string) (int, error) {
	return f.counts[itemID], nil
}

func newItemUC() (*ItemUseCase, *fakeItemRepo, *fakeMovementCounter) {
	items := newFakeItemRepo()
	movements := &fakeMovementCounter{counts: map[string]int{}}
	return NewItemUseCase(items, movements, audit.NewRecorder(&fakeLogRepo{})), items, movements
}

// ──────────────────────────────────────────────────────────────────────────────
// Create: status derivado
// ──────────────────────────────────────────────────────────────────────────────

func TestItemCreate_DerivaStatus(t *testing.T) {
	uc, _, _ := newItemUC()
	ctx := context.Background()

	cases := []struct {
		quantity    int
		minQuantity int
		want        string
	}{
		{0, 5, entity.ItemStatusOutOfStock},
		{3, 5, entity.ItemStatusLowStock},
		{10, 5, entity.ItemStatusInStock},
	}
	for i, tc := range cases {
		resp, err := uc.Create(ctx, "user-1", dto.CreateItemRequest{
			Name: "Ítem", Barcode: barcodeN(i), Quantity: tc.quantity, MinQuantity: tc.minQuantity,
		})
		require.NoError(t, err)
		assert.Equal(t, tc.want, resp.Status, "quantity=%d min=%d", tc.quantity, tc.minQuantity)
	}
}

func barcodeN(n int) string {
	return string(rune('A'+n)) + "-0001"
}

func TestItemCreate_PrecioNegativoRechazado(t *testing.T) {
	uc, _, _ := newItemUC()
	neg := decimal.NewFromInt(-10)
	_, err := uc.Create(context.Background(), "user-1", dto.CreateItemRequest{
		Name: "x", Barcode: "B-1", UnitPrice: &neg,
	})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestItemCreate_TotalValueDerivado(t *testing.T) {
	uc, _, _ := newItemUC()
	price := decimal.RequireFromString("10.50")
	resp, err := uc.Create(context.Background(), "user-1", dto.CreateItemRequest{
		Name: "x", Barcode: "B-2", Quantity: 4, UnitPrice: &price,
	})
	require.NoError(t, err)
	require.NotNil(t, resp.TotalValue)
	assert.Equal(t, "42.00", resp.TotalValue.StringFixed(2))
}

func TestItemCreate_SinPrecioSinTotal(t *testing.T) {
	uc, _, _ := newItemUC()
	resp, err := uc.Create(context.Background(), "user-1", dto.CreateItemRequest{
		Name: "x", Barcode: "B-3", Quantity: 4,
	})
	require.NoError(t, err)
	assert.Nil(t, resp.TotalValue, "sin precio el total está ausente del payload")
}

// ──────────────────────────────────────────────────────────────────────────────
// Update: quantity intocable, status rederivado
// ──────────────────────────────────────────────────────────────────────────────

func TestItemUpdate_CambioDeMinimoRederivaStatus(t *testing.T) {
	uc, _, _ := newItemUC()
	ctx := context.Background()

	created, err := uc.Create(ctx, "user-1", dto.CreateItemRequest{
		Name: "x", Barcode: "B-4", Quantity: 5, MinQuantity: 3,
	})
	require.NoError(t, err)
	require.Equal(t, entity.ItemStatusInStock, created.Status)

	newMin := 10
	resp, err := uc.Update(ctx, "user-1", created.ID, dto.UpdateItemRequest{MinQuantity: &newMin})
	require.NoError(t, err)
	assert.Equal(t, entity.ItemStatusLowStock, resp.Status, "subir el mínimo por encima del stock rederiva a low_stock")
	assert.Equal(t, 5, resp.Quantity, "la cantidad no cambia por update de catálogo")
}

func TestItemUpdate_Inexistente(t *testing.T) {
	uc, _, _ := newItemUC()
	name := "x"
	_, err := uc.Update(context.Background(), "user-1", "no-existe", dto.UpdateItemRequest{Name: &name})
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

// ──────────────────────────────────────────────────────────────────────────────
// Delete: guard referencial
// ──────────────────────────────────────────────────────────────────────────────

func TestItemDelete_SinMovimientos(t *testing.T) {
	uc, items, _ := newItemUC()
	ctx := context.Background()

	created, err := uc.Create(ctx, "user-1", dto.CreateItemRequest{Name: "x", Barcode: "B-5"})
	require.NoError(t, err)

	require.NoError(t, uc.Delete(ctx, "user-1", created.ID))
	assert.NotContains(t, items.byID, created.ID)
}

func TestItemDelete_ConMovimientosBloqueado(t *testing.T) {
	uc, items, movements := newItemUC()
	ctx := context.Background()

	created, err := uc.Create(ctx, "user-1", dto.CreateItemRequest{Name: "x", Barcode: "B-6"})
	require.NoError(t, err)
	movements.counts[created.ID] = 3

	err = uc.Delete(ctx, "user-1", created.ID)
	assert.True(t, errors.Is(err, domain.ErrConflict), "con historial de movimientos el ítem no se borra")
	assert.Contains(t, items.byID, created.ID)
}
