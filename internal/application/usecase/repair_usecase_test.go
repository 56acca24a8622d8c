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
)

type fakeRepairRepo struct {
	byID map[string]*entity.Repair
}

func newFakeRepairRepo() *fakeRepairRepo {
	return &fakeRepairRepo{byID: map[string]*entity.Repair{}}
}

func (f *fakeRepairRepo) Create(_ context.Context, r *entity.Repair) error {
	cp := *r
	f.byID[r.ID] = &cp
	return nil
}

func (f *fakeRepairRepo) GetByID(_ context.Context, id string) (*entity.Repair, error) {
	r, ok := f.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *r
	return &cp, nil
}

func (f *fakeRepairRepo) Update(_ context.Context, r *entity.Repair) error {
	cp := *r
	f.byID[r.ID] = &cp
	return nil
}

func (f *fakeRepairRepo) Delete(_ context.Context, id string) error {
	delete(f.byID, id)
	return nil
}

func (f *fakeRepairRepo) List(_ context.Context, status string) ([]*entity.Repair, error) {
	out := []*entity.Repair{}
	for _, r := range f.byID {
		if status == "" || r.Status == status {
			cp := *r
			out = append(out, &cp)
		}
	}
	return out, nil
}

func newRepairUC() (*RepairUseCase, *fakeRepairRepo) {
	repo := newFakeRepairRepo()
	return NewRepairUseCase(repo, audit.NewRecorder(&fakeLogRepo{})), repo
}

func createRepair(t *testing.T, uc *RepairUseCase) *dto.RepairResponse {
	t.Helper()
	resp, err := uc.Create(context.Background(), "user-1", dto.CreateRepairRequest{
		ItemName:         "Impresora láser",
		IssueDescription: "atasco de papel recurrente",
		Priority:         entity.RepairPriorityHigh,
	})
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// Create
// ──────────────────────────────────────────────────────────────────────────────

func TestRepairCreate_SiempreEntraPending(t *testing.T) {
	uc, _ := newRepairUC()
	resp := createRepair(t, uc)
	assert.Equal(t, entity.RepairStatusPending, resp.Status)
}

func TestRepairCreate_PrioridadDesconocida(t *testing.T) {
	uc, _ := newRepairUC()
	_, err := uc.Create(context.Background(), "user-1", dto.CreateRepairRequest{
		ItemName: "x", IssueDescription: "y", Priority: "urgente",
	})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

// ──────────────────────────────────────────────────────────────────────────────
// Transiciones de estado
// ──────────────────────────────────────────────────────────────────────────────

func TestRepairUpdate_AvanzaHastaFixed(t *testing.T) {
	uc, _ := newRepairUC()
	ctx := context.Background()
	created := createRepair(t, uc)

	for _, status := range []string{entity.RepairStatusInProgress, entity.RepairStatusFixed} {
		s := status
		resp, err := uc.Update(ctx, "user-1", created.ID, dto.UpdateRepairRequest{Status: &s})
		require.NoError(t, err)
		assert.Equal(t, status, resp.Status)
	}
}

func TestRepairUpdate_ReturnedNoVaPorUpdate(t *testing.T) {
	uc, _ := newRepairUC()
	created := createRepair(t, uc)

	s := entity.RepairStatusReturned
	_, err := uc.Update(context.Background(), "user-1", created.ID, dto.UpdateRepairRequest{Status: &s})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput), "returned solo se alcanza con la acción de devolución")
}

func TestRepairMarkAsReturned_SoloDesdeFixed(t *testing.T) {
	uc, repo := newRepairUC()
	ctx := context.Background()

	for _, status := range []string{entity.RepairStatusPending, entity.RepairStatusInProgress, entity.RepairStatusReturned} {
		created := createRepair(t, uc)
		repo.byID[created.ID].Status = status
		_, err := uc.MarkAsReturned(ctx, "user-1", created.ID)
		assert.True(t, errors.Is(err, domain.ErrConflict), "desde %s la devolución debe rechazarse", status)
	}

	created := createRepair(t, uc)
	repo.byID[created.ID].Status = entity.RepairStatusFixed
	resp, err := uc.MarkAsReturned(ctx, "user-1", created.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.RepairStatusReturned, resp.Status)
}

func TestRepairUpdate_DevueltaNoSeEdita(t *testing.T) {
	uc, repo := newRepairUC()
	ctx := context.Background()
	created := createRepair(t, uc)
	repo.byID[created.ID].Status = entity.RepairStatusReturned

	name := "otro nombre"
	_, err := uc.Update(ctx, "user-1", created.ID, dto.UpdateRepairRequest{ItemName: &name})
	assert.True(t, errors.Is(err, domain.ErrConflict), "returned es terminal: ninguna edición posterior")
}

// ──────────────────────────────────────────────────────────────────────────────
// List
// ──────────────────────────────────────────────────────────────────────────────

func TestRepairList_FiltraPorStatus(t *testing.T) {
	uc, repo := newRepairUC()
	ctx := context.Background()

	a := createRepair(t, uc)
	createRepair(t, uc)
	repo.byID[a.ID].Status = entity.RepairStatusFixed

	fixed, err := uc.List(ctx, entity.RepairStatusFixed)
	require.NoError(t, err)
	assert.Len(t, fixed, 1)

	all, err := uc.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestRepairList_StatusDesconocido(t *testing.T) {
	uc, _ := newRepairUC()
	_, err := uc.List(context.Background(), "archivada")
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}
