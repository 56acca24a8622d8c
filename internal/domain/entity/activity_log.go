package entity

import (
	"encoding/json"
	"time"
)

// Acciones registradas en el log de actividad.
const (
	ActionCreate = "CREATE"
	ActionUpdate = "UPDATE"
	ActionDelete = "DELETE"
	ActionLogin  = "LOGIN"
)

// Tipos de entidad auditados.
const (
	EntityItem          = "item"
	EntityStockMovement = "stock_movement"
	EntityCategory      = "category"
	EntitySubcategory   = "subcategory"
	EntityLocation      = "location"
	EntitySupplier      = "supplier"
	EntityUser          = "user"
	EntityRepair        = "repair"
)

// ActivityLog es una entrada append-only de auditoría: quién hizo qué sobre
// qué entidad, con snapshots antes/después. La aplicación nunca la actualiza
// ni la borra.
type ActivityLog struct {
	ID          string
	UserID      string
	Action      string // CREATE, UPDATE, DELETE, LOGIN
	EntityType  string
	EntityID    string
	EntityName  string
	Description string
	OldValues   json.RawMessage // snapshot previo (UPDATE/DELETE)
	NewValues   json.RawMessage // snapshot posterior (CREATE/UPDATE)
	CreatedAt   time.Time
}
