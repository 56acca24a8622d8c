package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/stock-control/internal/application/audit"
	"github.com/tu-usuario/stock-control/internal/application/dto"
	"github.com/tu-usuario/stock-control/internal/domain"
	"github.com/tu-usuario/stock-control/internal/domain/entity"
	"github.com/tu-usuario/stock-control/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria compartidos por los tests de usecases
// ──────────────────────────────────────────────────────────────────────────────

type fakeLogRepo struct {
	entries []*entity.ActivityLog
}

func (f *fakeLogRepo) Create(_ context.Context, e *entity.ActivityLog) error {
	f.entries = append(f.entries, e)
	return nil
}

func (f *fakeLogRepo) List(_ context.Context, _ repository.ActivityFilter) ([]*entity.ActivityLog, error) {
	return f.entries, nil
}

type fakeLocationRepo struct {
	byID map[string]*entity.Location
	util []repository.LocationUtilization
}

func newFakeLocationRepo() *fakeLocationRepo {
	return &fakeLocationRepo{byID: map[string]*entity.Location{}}
}

func (f *fakeLocationRepo) Create(_ context.Context, l *entity.Location) error {
	cp := *l
	f.byID[l.ID] = &cp
	return nil
}

func (f *fakeLocationRepo) GetByID(_ context.Context, id string) (*entity.Location, error) {
	l, ok := f.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *l
	return &cp, nil
}

func (f *fakeLocationRepo) Update(_ context.Context, l *entity.Location) error {
	cp := *l
	f.byID[l.ID] = &cp
	return nil
}

func (f *fakeLocationRepo) Delete(_ context.Context, id string) error {
	delete(f.byID, id)
	return nil
}

func (f *fakeLocationRepo) List(_ context.Context) ([]*entity.Location, error) {
	out := make([]*entity.Location, 0, len(f.byID))
	for _, l := range f.byID {
		cp := *l
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeLocationRepo) Utilization(_ context.Context) ([]repository.LocationUtilization, error) {
	return f.util, nil
}

func newLocationUC() (*LocationUseCase, *fakeLocationRepo, *fakeLogRepo) {
	repo := newFakeLocationRepo()
	logs := &fakeLogRepo{}
	return NewLocationUseCase(repo, audit.NewRecorder(logs)), repo, logs
}

// ──────────────────────────────────────────────────────────────────────────────
// Create: validación de code y derivación de block
// ──────────────────────────────────────────────────────────────────────────────

func TestLocationCreate_BodegaConCodeValido(t *testing.T) {
	uc, _, logs := newLocationUC()

	resp, err := uc.Create(context.Background(), "user-1", dto.CreateLocationRequest{
		Name: "Bodega principal", Code: "A1", Capacity: 50, Type: entity.LocationTypeStorageRoom,
	})
	require.NoError(t, err)
	assert.Equal(t, "A", resp.Block, "el block se deriva del prefijo del code")
	assert.Equal(t, entity.LocationStatusActive, resp.Status, "status inicial siempre active")
	assert.Len(t, logs.entries, 1)
}

func TestLocationCreate_OficinaConCodeValido(t *testing.T) {
	uc, _, _ := newLocationUC()

	resp, err := uc.Create(context.Background(), "user-1", dto.CreateLocationRequest{
		Name: "Oficina 3", Code: "OF-3", Type: entity.LocationTypeOffice,
	})
	require.NoError(t, err)
	assert.Equal(t, "OF", resp.Block)
}

func TestLocationCreate_CodesInvalidos(t *testing.T) {
	uc, _, _ := newLocationUC()
	cases := []struct {
		name    string
		code    string
		locType string
	}{
		{"bodega fuera de rango de letra", "G1", entity.LocationTypeStorageRoom},
		{"bodega con dígito cero", "A0", entity.LocationTypeStorageRoom},
		{"bodega con dos dígitos", "A12", entity.LocationTypeStorageRoom},
		{"oficina sin prefijo", "3", entity.LocationTypeOffice},
		{"oficina con número cero", "OF-0", entity.LocationTypeOffice},
		{"code de bodega en una oficina", "A1", entity.LocationTypeOffice},
		{"code de oficina en una bodega", "OF-3", entity.LocationTypeStorageRoom},
		{"tipo desconocido", "A1", "warehouse"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.Create(context.Background(), "user-1", dto.CreateLocationRequest{
				Name: "x", Code: tc.code, Type: tc.locType,
			})
			assert.True(t, errors.Is(err, domain.ErrInvalidInput), "code %q tipo %q debe rechazarse", tc.code, tc.locType)
		})
	}
}

func TestLocationCreate_BlockExplicitoSeRespeta(t *testing.T) {
	uc, _, _ := newLocationUC()

	resp, err := uc.Create(context.Background(), "user-1", dto.CreateLocationRequest{
		Name: "Bodega sur", Code: "B2", Block: "SUR", Type: entity.LocationTypeStorageRoom,
	})
	require.NoError(t, err)
	assert.Equal(t, "SUR", resp.Block)
}

// ──────────────────────────────────────────────────────────────────────────────
// Update
// ──────────────────────────────────────────────────────────────────────────────

func TestLocationUpdate_CambioDeCodeRederivaBlock(t *testing.T) {
	uc, _, _ := newLocationUC()
	ctx := context.Background()

	created, err := uc.Create(ctx, "user-1", dto.CreateLocationRequest{
		Name: "Bodega", Code: "A1", Type: entity.LocationTypeStorageRoom,
	})
	require.NoError(t, err)

	newCode := "C4"
	resp, err := uc.Update(ctx, "user-1", created.ID, dto.UpdateLocationRequest{Code: &newCode})
	require.NoError(t, err)
	assert.Equal(t, "C4", resp.Code)
	assert.Equal(t, "C", resp.Block)
}

func TestLocationUpdate_CodeInvalidoContraTipoVigente(t *testing.T) {
	uc, _, _ := newLocationUC()
	ctx := context.Background()

	created, err := uc.Create(ctx, "user-1", dto.CreateLocationRequest{
		Name: "Bodega", Code: "A1", Type: entity.LocationTypeStorageRoom,
	})
	require.NoError(t, err)

	badCode := "OF-1"
	_, err = uc.Update(ctx, "user-1", created.ID, dto.UpdateLocationRequest{Code: &badCode})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput), "el code nuevo se valida contra el tipo vigente")
}

func TestLocationUpdate_Inexistente(t *testing.T) {
	uc, _, _ := newLocationUC()
	name := "x"
	_, err := uc.Update(context.Background(), "user-1", "no-existe", dto.UpdateLocationRequest{Name: &name})
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

// ──────────────────────────────────────────────────────────────────────────────
// Utilization
// ──────────────────────────────────────────────────────────────────────────────

func TestLocationUtilization_CalculaPorcentaje(t *testing.T) {
	uc, repo, _ := newLocationUC()
	repo.util = []repository.LocationUtilization{
		{LocationID: "loc-1", ItemCount: 25, Capacity: 50},
		{LocationID: "loc-2", ItemCount: 3, Capacity: 0},
	}

	rows, err := uc.Utilization(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, 50.0, rows[0].Percent)
	assert.Equal(t, 0.0, rows[1].Percent, "capacidad cero nunca divide: porcentaje 0")
}
