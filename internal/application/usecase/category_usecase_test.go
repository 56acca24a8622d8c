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

type fakeCategoryRepo struct {
	byID    map[string]*entity.Category
	subByID map[string]*entity.Subcategory
}

func newFakeCategoryRepo() *fakeCategoryRepo {
	return &fakeCategoryRepo{
		byID:    map[string]*entity.Category{},
		subByID: map[string]*entity.Subcategory{},
	}
}

func (f *fakeCategoryRepo) Create(_ context.Context, c *entity.Category) error {
	for _, existing := range f.byID {
		if existing.Name == c.Name {
			return &domain.ConflictError{Entity: "category", Reason: "nombre duplicado"}
		}
	}
	cp := *c
	f.byID[c.ID] = &cp
	return nil
}

func (f *fakeCategoryRepo) GetByID(_ context.Context, id string) (*entity.Category, error) {
	c, ok := f.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (f *fakeCategoryRepo) Update(_ context.Context, c *entity.Category) error {
	cp := *c
	f.byID[c.ID] = &cp
	return nil
}

func (f *fakeCategoryRepo) DeleteCascade(_ context.Context, id string) error {
	for sid, s := range f.subByID {
		if s.CategoryID == id {
			delete(f.subByID, sid)
		}
	}
	delete(f.byID, id)
	return nil
}

func (f *fakeCategoryRepo) List(_ context.Context) ([]*entity.Category, error) {
	out := make([]*entity.Category, 0, len(f.byID))
	for _, c := range f.byID {
		cp := *c
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeCategoryRepo) CreateSubcategory(_ context.Context, s *entity.Subcategory) error {
	cp := *s
	f.subByID[s.ID] = &cp
	return nil
}

func (f *fakeCategoryRepo) GetSubcategoryByID(_ context.Context, id string) (*entity.Subcategory, error) {
	s, ok := f.subByID[id]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (f *fakeCategoryRepo) DeleteSubcategory(_ context.Context, id string) error {
	delete(f.subByID, id)
	return nil
}

func (f *fakeCategoryRepo) ListSubcategories(_ context.Context, categoryID string) ([]*entity.Subcategory, error) {
	out := []*entity.Subcategory{}
	for _, s := range f.subByID {
		if s.CategoryID == categoryID {
			cp := *s
			out = append(out, &cp)
		}
	}
	return out, nil
}

func newCategoryUC() (*CategoryUseCase, *fakeCategoryRepo, *fakeLogRepo) {
	repo := newFakeCategoryRepo()
	logs := &fakeLogRepo{}
	return NewCategoryUseCase(repo, audit.NewRecorder(logs)), repo, logs
}

// ──────────────────────────────────────────────────────────────────────────────
// Categorías
// ──────────────────────────────────────────────────────────────────────────────

func TestCategoryCreate_NombreDuplicado(t *testing.T) {
	uc, _, _ := newCategoryUC()
	ctx := context.Background()

	_, err := uc.Create(ctx, "user-1", dto.CreateCategoryRequest{Name: "Electrónica"})
	require.NoError(t, err)
	_, err = uc.Create(ctx, "user-1", dto.CreateCategoryRequest{Name: "Electrónica"})
	assert.True(t, errors.Is(err, domain.ErrConflict))
}

func TestCategoryDelete_CascadaDeSubcategorias(t *testing.T) {
	uc, repo, logs := newCategoryUC()
	ctx := context.Background()

	cat, err := uc.Create(ctx, "user-1", dto.CreateCategoryRequest{Name: "Electrónica"})
	require.NoError(t, err)
	for _, name := range []string{"Monitores", "Teclados"} {
		_, err := uc.CreateSubcategory(ctx, "user-1", cat.ID, dto.CreateSubcategoryRequest{Name: name})
		require.NoError(t, err)
	}

	require.NoError(t, uc.Delete(ctx, "user-1", cat.ID))

	assert.Empty(t, repo.byID)
	assert.Empty(t, repo.subByID, "borrar la categoría arrastra sus subcategorías")

	// CREATE + 2×CREATE sub + DELETE.
	require.Len(t, logs.entries, 4)
	assert.Equal(t, entity.ActionDelete, logs.entries[3].Action)
}

// ──────────────────────────────────────────────────────────────────────────────
// Subcategorías
// ──────────────────────────────────────────────────────────────────────────────

func TestSubcategoryCreate_PadreInexistente(t *testing.T) {
	uc, _, _ := newCategoryUC()
	_, err := uc.CreateSubcategory(context.Background(), "user-1", "no-existe", dto.CreateSubcategoryRequest{Name: "x"})
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestSubcategoryList_SoloLasDelPadre(t *testing.T) {
	uc, _, _ := newCategoryUC()
	ctx := context.Background()

	a, err := uc.Create(ctx, "user-1", dto.CreateCategoryRequest{Name: "A"})
	require.NoError(t, err)
	b, err := uc.Create(ctx, "user-1", dto.CreateCategoryRequest{Name: "B"})
	require.NoError(t, err)

	_, err = uc.CreateSubcategory(ctx, "user-1", a.ID, dto.CreateSubcategoryRequest{Name: "a1"})
	require.NoError(t, err)
	_, err = uc.CreateSubcategory(ctx, "user-1", b.ID, dto.CreateSubcategoryRequest{Name: "b1"})
	require.NoError(t, err)

	subs, err := uc.ListSubcategories(ctx, a.ID)
	require.NoError(t, err)
	require.Len(t, subs, 1)
	assert.Equal(t, "a1", subs[0].Name)
}
