package movement

import (
	"context"

	"github.com/tu-usuario/stock-control/internal/application/dto"
	"github.com/tu-usuario/stock-control/internal/domain"
	"github.com/tu-usuario/stock-control/internal/domain/repository"
)

// QueryUseCase lecturas de movimientos. Separado del Applier: listar y
// consultar no requieren transacción ni bloqueo.
type QueryUseCase struct {
	movements repository.MovementRepository
}

// NewQueryUseCase construye el caso de uso de lectura.
func NewQueryUseCase(movements repository.MovementRepository) *QueryUseCase {
	return &QueryUseCase{movements: movements}
}

// GetByID obtiene un movimiento por ID.
func (uc *QueryUseCase) GetByID(ctx context.Context, id string) (*dto.MovementResponse, error) {
	m, err := uc.movements.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, domain.ErrNotFound
	}
	resp := dto.MovementToResponse(m)
	return &resp, nil
}

// List lista movimientos con filtros y paginación.
func (uc *QueryUseCase) List(ctx context.Context, filter repository.MovementFilter, page dto.PageRequest) (*dto.MovementListResponse, error) {
	page.DefaultPage()
	filter.Limit = page.Limit
	filter.Offset = page.Offset
	list, err := uc.movements.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return &dto.MovementListResponse{
		Items: dto.MovementsToResponse(list),
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}
