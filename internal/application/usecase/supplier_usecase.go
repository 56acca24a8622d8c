package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/stock-control/internal/application/audit"
	"github.com/tu-usuario/stock-control/internal/application/dto"
	"github.com/tu-usuario/stock-control/internal/domain"
	"github.com/tu-usuario/stock-control/internal/domain/entity"
	"github.com/tu-usuario/stock-control/internal/domain/repository"
)

// SupplierUseCase casos de uso de proveedores. Un proveedor referenciado por
// ítems o movimientos no se borra: se desactiva.
type SupplierUseCase struct {
	suppliers repository.SupplierRepository
	recorder  *audit.Recorder
}

// NewSupplierUseCase construye el caso de uso.
func NewSupplierUseCase(suppliers repository.SupplierRepository, recorder *audit.Recorder) *SupplierUseCase {
	return &SupplierUseCase{suppliers: suppliers, recorder: recorder}
}

// Create crea un proveedor. Code duplicado sale como Conflict.
func (uc *SupplierUseCase) Create(ctx context.Context, userID string, in dto.CreateSupplierRequest) (*dto.SupplierResponse, error) {
	now := time.Now()
	s := &entity.Supplier{
		ID:          uuid.New().String(),
		Name:        in.Name,
		Code:        in.Code,
		ContactName: in.ContactName,
		Email:       in.Email,
		Phone:       in.Phone,
		Address:     in.Address,
		CreditLimit: decimal.Zero,
		Status:      entity.SupplierStatusActive,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if in.CreditLimit != nil {
		if in.CreditLimit.IsNegative() {
			return nil, &domain.ValidationError{Field: "credit_limit", Reason: "no puede ser negativo"}
		}
		s.CreditLimit = *in.CreditLimit
	}
	if err := uc.suppliers.Create(ctx, s); err != nil {
		return nil, err
	}
	if err := uc.recorder.Record(ctx, userID, entity.ActionCreate, entity.EntitySupplier,
		s.ID, s.Name, "proveedor creado", nil, s); err != nil {
		return nil, err
	}
	resp := dto.SupplierToResponse(s)
	return &resp, nil
}

// GetByID obtiene un proveedor por ID.
func (uc *SupplierUseCase) GetByID(ctx context.Context, id string) (*dto.SupplierResponse, error) {
	s, err := uc.suppliers.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.ErrNotFound
	}
	resp := dto.SupplierToResponse(s)
	return &resp, nil
}

// Update actualiza un proveedor. Code no se edita.
func (uc *SupplierUseCase) Update(ctx context.Context, userID, id string, in dto.UpdateSupplierRequest) (*dto.SupplierResponse, error) {
	s, err := uc.suppliers.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.ErrNotFound
	}
	old := *s
	if in.Name != nil {
		s.Name = *in.Name
	}
	if in.ContactName != nil {
		s.ContactName = *in.ContactName
	}
	if in.Email != nil {
		s.Email = *in.Email
	}
	if in.Phone != nil {
		s.Phone = *in.Phone
	}
	if in.Address != nil {
		s.Address = *in.Address
	}
	if in.CreditLimit != nil {
		if in.CreditLimit.IsNegative() {
			return nil, &domain.ValidationError{Field: "credit_limit", Reason: "no puede ser negativo"}
		}
		s.CreditLimit = *in.CreditLimit
	}
	if in.Status != nil {
		s.Status = *in.Status
	}
	s.UpdatedAt = time.Now()
	if err := uc.suppliers.Update(ctx, s); err != nil {
		return nil, err
	}
	if err := uc.recorder.Record(ctx, userID, entity.ActionUpdate, entity.EntitySupplier,
		s.ID, s.Name, "proveedor actualizado", &old, s); err != nil {
		return nil, err
	}
	resp := dto.SupplierToResponse(s)
	return &resp, nil
}

// Delete borra un proveedor sin asociaciones vivas. Con ítems o movimientos
// que lo referencian el borrado se bloquea y se aconseja desactivar.
func (uc *SupplierUseCase) Delete(ctx context.Context, userID, id string) error {
	s, err := uc.suppliers.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if s == nil {
		return domain.ErrNotFound
	}
	assoc, err := uc.suppliers.Associations(ctx, id)
	if err != nil {
		return err
	}
	if assoc.ItemsCount > 0 || assoc.MovementsCount > 0 {
		return &domain.ConflictError{
			Entity: "supplier",
			Reason: "tiene ítems o movimientos asociados; desactívelo en su lugar",
		}
	}
	if err := uc.suppliers.Delete(ctx, id); err != nil {
		return err
	}
	return uc.recorder.Record(ctx, userID, entity.ActionDelete, entity.EntitySupplier,
		s.ID, s.Name, "proveedor borrado", s, nil)
}

// List lista todos los proveedores.
func (uc *SupplierUseCase) List(ctx context.Context) ([]dto.SupplierResponse, error) {
	list, err := uc.suppliers.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SupplierResponse, 0, len(list))
	for _, s := range list {
		out = append(out, dto.SupplierToResponse(s))
	}
	return out, nil
}
