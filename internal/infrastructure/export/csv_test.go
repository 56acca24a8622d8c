package export

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/stock-control/internal/domain/entity"
	"github.com/tu-usuario/stock-control/internal/domain/repository"
)

func parseCSV(t *testing.T, b []byte) [][]string {
	t.Helper()
	records, err := csv.NewReader(bytes.NewReader(b)).ReadAll()
	require.NoError(t, err)
	return records
}

func TestActivityCSV(t *testing.T) {
	when := time.Date(2026, 8, 20, 14, 30, 0, 0, time.UTC)
	entries := []*entity.ActivityLog{
		{
			UserID:      "user-1",
			Action:      entity.ActionCreate,
			EntityType:  entity.EntityItem,
			EntityID:    "item-1",
			EntityName:  "Monitor 24\"",
			Description: "alta de ítem",
			CreatedAt:   when,
		},
	}

	b, err := ActivityCSV(entries)
	require.NoError(t, err)

	records := parseCSV(t, b)
	require.Len(t, records, 2)
	assert.Equal(t, []string{"created_at", "user_id", "action", "entity_type", "entity_id", "entity_name", "description"}, records[0])
	assert.Equal(t, []string{"2026-08-20T14:30:00Z", "user-1", "CREATE", "item", "item-1", "Monitor 24\"", "alta de ítem"}, records[1])
}

func TestActivityCSV_SinEntradas(t *testing.T) {
	b, err := ActivityCSV(nil)
	require.NoError(t, err)
	records := parseCSV(t, b)
	assert.Len(t, records, 1, "sin entradas solo queda la cabecera")
}

func TestItemValuesCSV(t *testing.T) {
	rows := []repository.ItemValueRow{
		{
			ItemID:     "item-1",
			Name:       "Teclado",
			Barcode:    "750000000001",
			Quantity:   3,
			UnitPrice:  decimal.RequireFromString("19.999"),
			TotalValue: decimal.RequireFromString("59.997"),
		},
	}

	b, err := ItemValuesCSV(rows)
	require.NoError(t, err)

	records := parseCSV(t, b)
	require.Len(t, records, 2)
	assert.Equal(t, []string{"item_id", "name", "barcode", "quantity", "unit_price", "total_value"}, records[0])
	assert.Equal(t, []string{"item-1", "Teclado", "750000000001", "3", "20.00", "60.00"}, records[1],
		"los montos salen redondeados a 2 decimales")
}

func TestLowStockCSV(t *testing.T) {
	items := []*entity.Item{
		{ID: "item-1", Name: "Mouse", Barcode: "750000000002", Quantity: 2, MinQuantity: 5, Status: entity.ItemStatusLowStock},
		{ID: "item-2", Name: "Cable HDMI", Barcode: "750000000003", Quantity: 0, MinQuantity: 3, Status: entity.ItemStatusOutOfStock},
	}

	b, err := LowStockCSV(items)
	require.NoError(t, err)

	records := parseCSV(t, b)
	require.Len(t, records, 3)
	assert.Equal(t, []string{"item-1", "Mouse", "750000000002", "2", "5", "low_stock"}, records[1])
	assert.Equal(t, []string{"item-2", "Cable HDMI", "750000000003", "0", "3", "out_of_stock"}, records[2])
}

func TestMovementSummaryCSV(t *testing.T) {
	rows := []repository.MovementSummaryRow{
		{Type: entity.MovementTypeIN, MovementCount: 4, TotalQuantity: 40, TotalValue: decimal.RequireFromString("1250.5")},
		{Type: entity.MovementTypeOUT, MovementCount: 2, TotalQuantity: 11, TotalValue: decimal.Zero},
	}

	b, err := MovementSummaryCSV(rows)
	require.NoError(t, err)

	records := parseCSV(t, b)
	require.Len(t, records, 3)
	assert.Equal(t, []string{"movement_type", "movement_count", "total_quantity", "total_value"}, records[0])
	assert.Equal(t, []string{"IN", "4", "40", "1250.50"}, records[1])
	assert.Equal(t, []string{"OUT", "2", "11", "0.00"}, records[2])
}
