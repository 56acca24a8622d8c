package entity

import "time"

// Category agrupa ítems del catálogo. Es dueña exclusiva de sus subcategorías:
// borrar la categoría borra en cascada las subcategorías.
type Category struct {
	ID          string
	Name        string // único, no vacío
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Subcategory pertenece exclusivamente a su categoría padre.
type Subcategory struct {
	ID         string
	CategoryID string
	Name       string
	CreatedAt  time.Time
}
