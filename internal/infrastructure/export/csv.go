// Package export serializa datos de reportes y auditoría para consumo
// externo: CSV de filas planas y PDF del reporte de inventario. El core solo
// produce filas correctamente tipadas; el render es responsabilidad de aquí.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"time"

	"github.com/tu-usuario/stock-control/internal/domain/entity"
	"github.com/tu-usuario/stock-control/internal/domain/repository"
)

const csvTimeLayout = time.RFC3339

// ActivityCSV serializa el timeline de auditoría a CSV.
func ActivityCSV(entries []*entity.ActivityLog) ([]byte, error) {
	records := [][]string{{"created_at", "user_id", "action", "entity_type", "entity_id", "entity_name", "description"}}
	for _, e := range entries {
		records = append(records, []string{
			e.CreatedAt.Format(csvTimeLayout), e.UserID, e.Action,
			e.EntityType, e.EntityID, e.EntityName, e.Description,
		})
	}
	return writeCSV(records)
}

// ItemValuesCSV serializa la valuación por ítem a CSV.
func ItemValuesCSV(rows []repository.ItemValueRow) ([]byte, error) {
	records := [][]string{{"item_id", "name", "barcode", "quantity", "unit_price", "total_value"}}
	for _, r := range rows {
		records = append(records, []string{
			r.ItemID, r.Name, r.Barcode, fmt.Sprintf("%d", r.Quantity),
			r.UnitPrice.StringFixed(2), r.TotalValue.StringFixed(2),
		})
	}
	return writeCSV(records)
}

// LowStockCSV serializa la lista de bajo stock a CSV.
func LowStockCSV(items []*entity.Item) ([]byte, error) {
	records := [][]string{{"item_id", "name", "barcode", "quantity", "min_quantity", "status"}}
	for _, i := range items {
		records = append(records, []string{
			i.ID, i.Name, i.Barcode, fmt.Sprintf("%d", i.Quantity),
			fmt.Sprintf("%d", i.MinQuantity), i.Status,
		})
	}
	return writeCSV(records)
}

// MovementSummaryCSV serializa los agregados de movimientos a CSV.
func MovementSummaryCSV(rows []repository.MovementSummaryRow) ([]byte, error) {
	records := [][]string{{"movement_type", "movement_count", "total_quantity", "total_value"}}
	for _, r := range rows {
		records = append(records, []string{
			r.Type, fmt.Sprintf("%d", r.MovementCount),
			fmt.Sprintf("%d", r.TotalQuantity), r.TotalValue.StringFixed(2),
		})
	}
	return writeCSV(records)
}

func writeCSV(records [][]string) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.WriteAll(records); err != nil {
		return nil, fmt.Errorf("escribir CSV: %w", err)
	}
	return buf.Bytes(), nil
}
