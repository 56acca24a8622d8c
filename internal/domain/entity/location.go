package entity

import "time"

// Estados y tipos de ubicación física.
const (
	LocationStatusActive   = "active"
	LocationStatusInactive = "inactive"

	LocationTypeStorageRoom = "storage_room"
	LocationTypeOffice      = "office"
)

// Location representa una ubicación física de almacenamiento.
// Code viene de una enumeración restringida (A1..F9 para bodegas, OF-n para
// oficinas); Block se deriva del prefijo del code si no viene explícito.
// La utilización (item_count/capacity) es read-side, no se almacena.
type Location struct {
	ID        string
	Name      string
	Code      string
	Block     string
	Capacity  int
	Status    string // active, inactive
	Type      string // storage_room, office
	CreatedAt time.Time
	UpdatedAt time.Time
}
