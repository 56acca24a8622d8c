package stock_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tu-usuario/stock-control/internal/domain/entity"
	"github.com/tu-usuario/stock-control/internal/domain/stock"
)

// ──────────────────────────────────────────────────────────────────────────────
// DeriveStatus
// ──────────────────────────────────────────────────────────────────────────────

func TestDeriveStatus(t *testing.T) {
	cases := []struct {
		name        string
		quantity    int
		minQuantity int
		want        string
	}{
		{"cantidad cero es out_of_stock", 0, 5, entity.ItemStatusOutOfStock},
		{"cantidad cero con mínimo cero sigue siendo out_of_stock", 0, 0, entity.ItemStatusOutOfStock},
		{"por debajo del mínimo es low_stock", 3, 5, entity.ItemStatusLowStock},
		{"uno por debajo del mínimo es low_stock", 4, 5, entity.ItemStatusLowStock},
		{"igual al mínimo es in_stock", 5, 5, entity.ItemStatusInStock},
		{"por encima del mínimo es in_stock", 100, 5, entity.ItemStatusInStock},
		{"mínimo cero con stock es in_stock", 1, 0, entity.ItemStatusInStock},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, stock.DeriveStatus(tc.quantity, tc.minQuantity))
		})
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// IsCritical: etiqueta read-side, quantity < min * 0.5 en aritmética entera
// ──────────────────────────────────────────────────────────────────────────────

func TestIsCritical(t *testing.T) {
	cases := []struct {
		name        string
		quantity    int
		minQuantity int
		want        bool
	}{
		{"muy por debajo de la mitad del mínimo", 1, 10, true},
		{"justo por debajo de la mitad", 4, 10, true},
		{"exactamente la mitad no es crítico", 5, 10, false},
		{"mitad fraccionaria: 2 de mínimo 5 es crítico", 2, 5, true},
		{"mitad fraccionaria: 3 de mínimo 5 no es crítico", 3, 5, false},
		{"sin mínimo nunca es crítico", 0, 0, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, stock.IsCritical(tc.quantity, tc.minQuantity))
		})
	}
}
