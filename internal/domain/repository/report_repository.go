package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/stock-control/internal/domain/entity"
)

// ItemValueRow es una fila de valuación: ítem con su valor total en stock.
type ItemValueRow struct {
	ItemID     string
	Name       string
	Barcode    string
	Quantity   int
	UnitPrice  decimal.Decimal
	TotalValue decimal.Decimal // Quantity × UnitPrice
}

// MovementSummaryRow agrega movimientos por tipo en un rango de fechas.
type MovementSummaryRow struct {
	Type          string
	MovementCount int
	TotalQuantity int
	TotalValue    decimal.Decimal
}

// MovementSummaryFilter acota los agregados de movimientos.
type MovementSummaryFilter struct {
	From       *time.Time
	To         *time.Time
	LocationID string
	Type       string
}

// DashboardSummary resume el estado del inventario para el dashboard.
type DashboardSummary struct {
	TotalItems     int
	TotalQuantity  int
	LowStockCount  int
	OutOfStock     int
	TotalValuation decimal.Decimal
}

// ReportRepository define el puerto de solo lectura del Query/Report Surface.
// Las consultas toleran un Ledger Store mutado concurrentemente: snapshot con
// la consistencia de lectura por defecto del store, sin bloqueo de escritores.
type ReportRepository interface {
	// LowStock lista ítems con quantity <= min_quantity.
	LowStock(ctx context.Context) ([]*entity.Item, error)
	// Critical lista ítems con quantity < min_quantity * 0.5 (etiqueta read-side).
	Critical(ctx context.Context) ([]*entity.Item, error)
	// Valuation devuelve Σ quantity × unit_price sobre todo el catálogo.
	Valuation(ctx context.Context) (decimal.Decimal, error)
	// TopItemsByValue devuelve los n ítems con mayor valor en stock.
	TopItemsByValue(ctx context.Context, n int) ([]ItemValueRow, error)
	// MovementSummary agrega movimientos filtrados por rango/ubicación/tipo.
	MovementSummary(ctx context.Context, filter MovementSummaryFilter) ([]MovementSummaryRow, error)
	// Dashboard resume totales, low-stock y valuación.
	Dashboard(ctx context.Context) (*DashboardSummary, error)
}
