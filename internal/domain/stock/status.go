// Package stock contiene la lógica pura del motor de inventario: derivación
// de status y validación de movimientos. No toca almacenamiento.
package stock

import "github.com/tu-usuario/stock-control/internal/domain/entity"

// DeriveStatus deriva el status de un ítem a partir de (quantity, minQuantity):
//
//	quantity == 0              -> out_of_stock
//	0 < quantity < minQuantity -> low_stock
//	resto                      -> in_stock
//
// El status es función pura de estos dos valores; el cliente nunca lo envía.
func DeriveStatus(quantity, minQuantity int) string {
	switch {
	case quantity == 0:
		return entity.ItemStatusOutOfStock
	case quantity < minQuantity:
		return entity.ItemStatusLowStock
	default:
		return entity.ItemStatusInStock
	}
}

// IsCritical etiqueta (solo read-side, no se almacena) los ítems por debajo
// de la mitad de su mínimo: quantity < minQuantity * 0.5, en aritmética entera.
func IsCritical(quantity, minQuantity int) bool {
	return quantity*2 < minQuantity
}
