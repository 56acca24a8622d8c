// Package report implementa el Query/Report Surface: lecturas derivadas del
// estado actual del inventario, con caché opcional y export CSV/PDF.
package report

import (
	"context"
	"time"

	"github.com/tu-usuario/stock-control/internal/application/dto"
	"github.com/tu-usuario/stock-control/internal/domain/repository"
	"github.com/tu-usuario/stock-control/internal/infrastructure/export"
)

// Claves de caché por reporte.
const (
	keyDashboard = "reports:dashboard"
	keyValuation = "reports:valuation"
	keyTopItems  = "reports:top-items"

	defaultTopN = 10
	maxTopN     = 100
)

// UseCase lecturas de reportes sobre el repositorio de solo lectura.
type UseCase struct {
	reports repository.ReportRepository
	cache   Cache // puede ser nil
}

// NewUseCase construye el caso de uso. cache puede ser nil.
func NewUseCase(reports repository.ReportRepository, cache Cache) *UseCase {
	return &UseCase{reports: reports, cache: cache}
}

// Dashboard resume totales, low-stock y valuación. Cacheado.
func (uc *UseCase) Dashboard(ctx context.Context) (*dto.DashboardResponse, error) {
	var cached dto.DashboardResponse
	if uc.cache != nil && uc.cache.Get(ctx, keyDashboard, &cached) {
		return &cached, nil
	}
	s, err := uc.reports.Dashboard(ctx)
	if err != nil {
		return nil, err
	}
	resp := dto.DashboardToResponse(s)
	if uc.cache != nil {
		uc.cache.Set(ctx, keyDashboard, resp)
	}
	return &resp, nil
}

// LowStock lista ítems con quantity <= min_quantity.
func (uc *UseCase) LowStock(ctx context.Context) ([]dto.ItemResponse, error) {
	items, err := uc.reports.LowStock(ctx)
	if err != nil {
		return nil, err
	}
	return dto.ItemsToResponse(items), nil
}

// Critical lista ítems por debajo de la mitad de su mínimo.
func (uc *UseCase) Critical(ctx context.Context) ([]dto.ItemResponse, error) {
	items, err := uc.reports.Critical(ctx)
	if err != nil {
		return nil, err
	}
	return dto.ItemsToResponse(items), nil
}

// Valuation devuelve el total y el desglose por ítem. Cacheado.
func (uc *UseCase) Valuation(ctx context.Context) (*dto.ValuationResponse, error) {
	var cached dto.ValuationResponse
	if uc.cache != nil && uc.cache.Get(ctx, keyValuation, &cached) {
		return &cached, nil
	}
	total, err := uc.reports.Valuation(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := uc.reports.TopItemsByValue(ctx, maxTopN)
	if err != nil {
		return nil, err
	}
	resp := dto.ValuationResponse{Total: total, Items: dto.ItemValuesToResponse(rows)}
	if uc.cache != nil {
		uc.cache.Set(ctx, keyValuation, resp)
	}
	return &resp, nil
}

// TopItems devuelve los n ítems con mayor valor en stock. Cacheado solo para
// el n por defecto.
func (uc *UseCase) TopItems(ctx context.Context, n int) ([]dto.ItemValueRow, error) {
	if n <= 0 {
		n = defaultTopN
	}
	if n > maxTopN {
		n = maxTopN
	}
	if n == defaultTopN && uc.cache != nil {
		var cached []dto.ItemValueRow
		if uc.cache.Get(ctx, keyTopItems, &cached) {
			return cached, nil
		}
	}
	rows, err := uc.reports.TopItemsByValue(ctx, n)
	if err != nil {
		return nil, err
	}
	resp := dto.ItemValuesToResponse(rows)
	if n == defaultTopN && uc.cache != nil {
		uc.cache.Set(ctx, keyTopItems, resp)
	}
	return resp, nil
}

// MovementSummary agrega movimientos por tipo con filtros.
func (uc *UseCase) MovementSummary(ctx context.Context, filter repository.MovementSummaryFilter) (*dto.MovementSummaryResponse, error) {
	rows, err := uc.reports.MovementSummary(ctx, filter)
	if err != nil {
		return nil, err
	}
	resp := dto.MovementSummaryToResponse(rows)
	return &resp, nil
}

// ExportValuationCSV exporta la valuación por ítem a CSV.
func (uc *UseCase) ExportValuationCSV(ctx context.Context) ([]byte, error) {
	rows, err := uc.reports.TopItemsByValue(ctx, maxTopN)
	if err != nil {
		return nil, err
	}
	return export.ItemValuesCSV(rows)
}

// ExportLowStockCSV exporta la lista de bajo stock a CSV.
func (uc *UseCase) ExportLowStockCSV(ctx context.Context) ([]byte, error) {
	items, err := uc.reports.LowStock(ctx)
	if err != nil {
		return nil, err
	}
	return export.LowStockCSV(items)
}

// ExportMovementSummaryCSV exporta los agregados de movimientos a CSV.
func (uc *UseCase) ExportMovementSummaryCSV(ctx context.Context, filter repository.MovementSummaryFilter) ([]byte, error) {
	rows, err := uc.reports.MovementSummary(ctx, filter)
	if err != nil {
		return nil, err
	}
	return export.MovementSummaryCSV(rows)
}

// ExportInventoryPDF arma el reporte de inventario completo en PDF: resumen,
// top por valor y bajo stock.
func (uc *UseCase) ExportInventoryPDF(ctx context.Context) ([]byte, error) {
	summary, err := uc.reports.Dashboard(ctx)
	if err != nil {
		return nil, err
	}
	top, err := uc.reports.TopItemsByValue(ctx, defaultTopN)
	if err != nil {
		return nil, err
	}
	low, err := uc.reports.LowStock(ctx)
	if err != nil {
		return nil, err
	}
	return export.InventoryPDF(export.InventoryReport{
		GeneratedAt: time.Now(),
		Summary:     summary,
		TopItems:    top,
		LowStock:    low,
	})
}
