package audit

import (
	"context"

	"github.com/tu-usuario/stock-control/internal/application/dto"
	"github.com/tu-usuario/stock-control/internal/domain/repository"
	"github.com/tu-usuario/stock-control/internal/infrastructure/export"
)

// Timeline lecturas del log de actividad: listado filtrado y export CSV.
type Timeline struct {
	logs repository.ActivityLogRepository
}

// NewTimeline construye el caso de uso de lectura del timeline.
func NewTimeline(logs repository.ActivityLogRepository) *Timeline {
	return &Timeline{logs: logs}
}

// List lista entradas del timeline, más recientes primero.
func (t *Timeline) List(ctx context.Context, filter repository.ActivityFilter, page dto.PageRequest) (*dto.ActivityListResponse, error) {
	page.DefaultPage()
	filter.Limit = page.Limit
	filter.Offset = page.Offset
	list, err := t.logs.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return &dto.ActivityListResponse{
		Items: dto.ActivitiesToResponse(list),
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// ExportCSV exporta el timeline filtrado a CSV. Sin paginación: el export
// lleva el rango completo que acote el filtro.
func (t *Timeline) ExportCSV(ctx context.Context, filter repository.ActivityFilter) ([]byte, error) {
	filter.Limit = 0
	filter.Offset = 0
	list, err := t.logs.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return export.ActivityCSV(list)
}
