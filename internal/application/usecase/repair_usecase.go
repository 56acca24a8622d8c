package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/tu-usuario/stock-control/internal/application/audit"
	"github.com/tu-usuario/stock-control/internal/application/dto"
	"github.com/tu-usuario/stock-control/internal/domain"
	"github.com/tu-usuario/stock-control/internal/domain/entity"
	"github.com/tu-usuario/stock-control/internal/domain/repository"
)

// RepairUseCase casos de uso de reparaciones. returned es terminal y solo se
// alcanza desde fixed con MarkAsReturned.
type RepairUseCase struct {
	repairs  repository.RepairRepository
	recorder *audit.Recorder
}

// NewRepairUseCase construye el caso de uso.
func NewRepairUseCase(repairs repository.RepairRepository, recorder *audit.Recorder) *RepairUseCase {
	return &RepairUseCase{repairs: repairs, recorder: recorder}
}

// Create registra una reparación en estado pending.
func (uc *RepairUseCase) Create(ctx context.Context, userID string, in dto.CreateRepairRequest) (*dto.RepairResponse, error) {
	if !entity.ValidRepairPriority(in.Priority) {
		return nil, &domain.ValidationError{Field: "priority", Reason: "prioridad desconocida"}
	}
	now := time.Now()
	r := &entity.Repair{
		ID:               uuid.New().String(),
		ItemName:         in.ItemName,
		IssueDescription: in.IssueDescription,
		Status:           entity.RepairStatusPending,
		Priority:         in.Priority,
		AssignedTo:       in.AssignedTo,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := uc.repairs.Create(ctx, r); err != nil {
		return nil, err
	}
	if err := uc.recorder.Record(ctx, userID, entity.ActionCreate, entity.EntityRepair,
		r.ID, r.ItemName, "reparación registrada", nil, r); err != nil {
		return nil, err
	}
	resp := dto.RepairToResponse(r)
	return &resp, nil
}

// GetByID obtiene una reparación por ID.
func (uc *RepairUseCase) GetByID(ctx context.Context, id string) (*dto.RepairResponse, error) {
	r, err := uc.repairs.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, domain.ErrNotFound
	}
	resp := dto.RepairToResponse(r)
	return &resp, nil
}

// Update actualiza una reparación. El status returned no se acepta por aquí
// y una reparación ya devuelta no se edita.
func (uc *RepairUseCase) Update(ctx context.Context, userID, id string, in dto.UpdateRepairRequest) (*dto.RepairResponse, error) {
	r, err := uc.repairs.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, domain.ErrNotFound
	}
	if r.Status == entity.RepairStatusReturned {
		return nil, &domain.ConflictError{Entity: "repair", Reason: "una reparación devuelta no se edita"}
	}
	old := *r
	if in.ItemName != nil {
		r.ItemName = *in.ItemName
	}
	if in.IssueDescription != nil {
		r.IssueDescription = *in.IssueDescription
	}
	if in.Status != nil {
		if *in.Status == entity.RepairStatusReturned || !entity.ValidRepairStatus(*in.Status) {
			return nil, &domain.ValidationError{Field: "status", Reason: "status inválido; use la acción de devolución para returned"}
		}
		r.Status = *in.Status
	}
	if in.Priority != nil {
		if !entity.ValidRepairPriority(*in.Priority) {
			return nil, &domain.ValidationError{Field: "priority", Reason: "prioridad desconocida"}
		}
		r.Priority = *in.Priority
	}
	if in.AssignedTo != nil {
		r.AssignedTo = *in.AssignedTo
	}
	r.UpdatedAt = time.Now()
	if err := uc.repairs.Update(ctx, r); err != nil {
		return nil, err
	}
	if err := uc.recorder.Record(ctx, userID, entity.ActionUpdate, entity.EntityRepair,
		r.ID, r.ItemName, "reparación actualizada", &old, r); err != nil {
		return nil, err
	}
	resp := dto.RepairToResponse(r)
	return &resp, nil
}

// MarkAsReturned pasa la reparación de fixed a returned. Desde cualquier otro
// estado la transición se rechaza.
func (uc *RepairUseCase) MarkAsReturned(ctx context.Context, userID, id string) (*dto.RepairResponse, error) {
	r, err := uc.repairs.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, domain.ErrNotFound
	}
	if r.Status != entity.RepairStatusFixed {
		return nil, &domain.ConflictError{Entity: "repair", Reason: "solo una reparación en estado fixed puede devolverse"}
	}
	old := *r
	r.Status = entity.RepairStatusReturned
	r.UpdatedAt = time.Now()
	if err := uc.repairs.Update(ctx, r); err != nil {
		return nil, err
	}
	if err := uc.recorder.Record(ctx, userID, entity.ActionUpdate, entity.EntityRepair,
		r.ID, r.ItemName, "reparación devuelta", &old, r); err != nil {
		return nil, err
	}
	resp := dto.RepairToResponse(r)
	return &resp, nil
}

// Delete borra una reparación.
func (uc *RepairUseCase) Delete(ctx context.Context, userID, id string) error {
	r, err := uc.repairs.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if r == nil {
		return domain.ErrNotFound
	}
	if err := uc.repairs.Delete(ctx, id); err != nil {
		return err
	}
	return uc.recorder.Record(ctx, userID, entity.ActionDelete, entity.EntityRepair,
		r.ID, r.ItemName, "reparación borrada", r, nil)
}

// List lista reparaciones, opcionalmente filtradas por status.
func (uc *RepairUseCase) List(ctx context.Context, status string) ([]dto.RepairResponse, error) {
	if status != "" && !entity.ValidRepairStatus(status) {
		return nil, &domain.ValidationError{Field: "status", Reason: "status desconocido"}
	}
	list, err := uc.repairs.List(ctx, status)
	if err != nil {
		return nil, err
	}
	out := make([]dto.RepairResponse, 0, len(list))
	for _, r := range list {
		out = append(out, dto.RepairToResponse(r))
	}
	return out, nil
}
