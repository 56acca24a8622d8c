package report

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/stock-control/internal/domain/entity"
	"github.com/tu-usuario/stock-control/internal/domain/repository"
)

// fakeReportRepo cuenta invocaciones para verificar los hits de caché.
type fakeReportRepo struct {
	dashboardCalls int
	topCalls       int
	topLastN       int
	summary        repository.DashboardSummary
	rows           []repository.ItemValueRow
}

func (f *fakeReportRepo) LowStock(_ context.Context) ([]*entity.Item, error) { return nil, nil }
func (f *fakeReportRepo) Critical(_ context.Context) ([]*entity.Item, error) { return nil, nil }

func (f *fakeReportRepo) Valuation(_ context.Context) (decimal.Decimal, error) {
	return f.summary.TotalValuation, nil
}

func (f *fakeReportRepo) TopItemsByValue(_ context.Context, n int) ([]repository.ItemValueRow, error) {
	f.topCalls++
	f.topLastN = n
	if n < len(f.rows) {
		return f.rows[:n], nil
	}
	return f.rows, nil
}

func (f *fakeReportRepo) MovementSummary(_ context.Context, _ repository.MovementSummaryFilter) ([]repository.MovementSummaryRow, error) {
	return nil, nil
}

func (f *fakeReportRepo) Dashboard(_ context.Context) (*repository.DashboardSummary, error) {
	f.dashboardCalls++
	s := f.summary
	return &s, nil
}

// mapCache implementación en memoria del puerto de caché, con serialización
// JSON como la real.
type mapCache struct {
	data map[string][]byte
}

func newMapCache() *mapCache {
	return &mapCache{data: map[string][]byte{}}
}

func (c *mapCache) Get(_ context.Context, key string, dest any) bool {
	b, ok := c.data[key]
	if !ok {
		return false
	}
	return json.Unmarshal(b, dest) == nil
}

func (c *mapCache) Set(_ context.Context, key string, val any) {
	b, err := json.Marshal(val)
	if err != nil {
		return
	}
	c.data[key] = b
}

func newReportUC() (*UseCase, *fakeReportRepo, *mapCache) {
	repo := &fakeReportRepo{
		summary: repository.DashboardSummary{
			TotalItems:     3,
			TotalQuantity:  40,
			LowStockCount:  1,
			TotalValuation: decimal.RequireFromString("1234.50"),
		},
		rows: []repository.ItemValueRow{
			{ItemID: "item-1", Name: "Monitor", Quantity: 10, UnitPrice: decimal.NewFromInt(100), TotalValue: decimal.NewFromInt(1000)},
			{ItemID: "item-2", Name: "Teclado", Quantity: 5, UnitPrice: decimal.NewFromInt(20), TotalValue: decimal.NewFromInt(100)},
		},
	}
	cache := newMapCache()
	return NewUseCase(repo, cache), repo, cache
}

func TestDashboard_SegundaLecturaSaleDeCache(t *testing.T) {
	uc, repo, _ := newReportUC()
	ctx := context.Background()

	first, err := uc.Dashboard(ctx)
	require.NoError(t, err)
	second, err := uc.Dashboard(ctx)
	require.NoError(t, err)

	assert.Equal(t, 1, repo.dashboardCalls, "la segunda lectura no toca el repositorio")
	assert.Equal(t, first.TotalItems, second.TotalItems)
	assert.True(t, first.TotalValuation.Equal(second.TotalValuation))
}

func TestDashboard_SinCacheFunciona(t *testing.T) {
	repo := &fakeReportRepo{summary: repository.DashboardSummary{TotalItems: 7}}
	uc := NewUseCase(repo, nil)

	resp, err := uc.Dashboard(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 7, resp.TotalItems)
}

func TestTopItems_SoloElDefaultSeCachea(t *testing.T) {
	uc, repo, cache := newReportUC()
	ctx := context.Background()

	_, err := uc.TopItems(ctx, 0) // 0 → default
	require.NoError(t, err)
	assert.Equal(t, defaultTopN, repo.topLastN)
	assert.Contains(t, cache.data, keyTopItems)

	// Con n distinto del default nunca se lee ni escribe caché.
	before := repo.topCalls
	_, err = uc.TopItems(ctx, 25)
	require.NoError(t, err)
	assert.Equal(t, before+1, repo.topCalls)
	assert.Equal(t, 25, repo.topLastN)
}

func TestTopItems_NAcotadoAlMaximo(t *testing.T) {
	uc, repo, _ := newReportUC()

	_, err := uc.TopItems(context.Background(), 5000)
	require.NoError(t, err)
	assert.Equal(t, maxTopN, repo.topLastN)
}

func TestValuation_TotalYDesglose(t *testing.T) {
	uc, _, _ := newReportUC()

	resp, err := uc.Valuation(context.Background())
	require.NoError(t, err)
	assert.True(t, resp.Total.Equal(decimal.RequireFromString("1234.50")))
	assert.Len(t, resp.Items, 2)
}
