package dto

import (
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/stock-control/internal/domain/repository"
)

// DashboardResponse resumen del inventario para el dashboard.
type DashboardResponse struct {
	TotalItems     int             `json:"total_items"`
	TotalQuantity  int             `json:"total_quantity"`
	LowStockCount  int             `json:"low_stock_count"`
	OutOfStock     int             `json:"out_of_stock"`
	TotalValuation decimal.Decimal `json:"total_valuation"`
}

// ValuationResponse valuación total más el desglose por ítem.
type ValuationResponse struct {
	Total decimal.Decimal `json:"total"`
	Items []ItemValueRow  `json:"items"`
}

// ItemValueRow fila de valuación por ítem.
type ItemValueRow struct {
	ItemID     string          `json:"item_id"`
	Name       string          `json:"name"`
	Barcode    string          `json:"barcode"`
	Quantity   int             `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	TotalValue decimal.Decimal `json:"total_value"`
}

// MovementSummaryResponse agregados de movimientos por tipo.
type MovementSummaryResponse struct {
	Rows []MovementSummaryRow `json:"rows"`
}

// MovementSummaryRow agregado de movimientos de un tipo.
type MovementSummaryRow struct {
	MovementType  string          `json:"movement_type"`
	MovementCount int             `json:"movement_count"`
	TotalQuantity int             `json:"total_quantity"`
	TotalValue    decimal.Decimal `json:"total_value"`
}

// DashboardToResponse mapea el resumen del repositorio a su DTO.
func DashboardToResponse(s *repository.DashboardSummary) DashboardResponse {
	return DashboardResponse{
		TotalItems:     s.TotalItems,
		TotalQuantity:  s.TotalQuantity,
		LowStockCount:  s.LowStockCount,
		OutOfStock:     s.OutOfStock,
		TotalValuation: s.TotalValuation,
	}
}

// ItemValuesToResponse mapea filas de valuación del repositorio.
func ItemValuesToResponse(rows []repository.ItemValueRow) []ItemValueRow {
	out := make([]ItemValueRow, 0, len(rows))
	for _, r := range rows {
		out = append(out, ItemValueRow{
			ItemID:     r.ItemID,
			Name:       r.Name,
			Barcode:    r.Barcode,
			Quantity:   r.Quantity,
			UnitPrice:  r.UnitPrice,
			TotalValue: r.TotalValue,
		})
	}
	return out
}

// MovementSummaryToResponse mapea agregados de movimientos del repositorio.
func MovementSummaryToResponse(rows []repository.MovementSummaryRow) MovementSummaryResponse {
	out := make([]MovementSummaryRow, 0, len(rows))
	for _, r := range rows {
		out = append(out, MovementSummaryRow{
			MovementType:  r.Type,
			MovementCount: r.MovementCount,
			TotalQuantity: r.TotalQuantity,
			TotalValue:    r.TotalValue,
		})
	}
	return MovementSummaryResponse{Rows: out}
}
