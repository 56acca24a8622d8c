package entity

import "time"

// Roles de usuario. viewer es solo lectura; admin gestiona usuarios.
const (
	RoleAdmin    = "admin"
	RoleManager  = "manager"
	RoleEmployee = "employee"
	RoleViewer   = "viewer"

	UserStatusActive   = "active"
	UserStatusInactive = "inactive"
)

// User representa un usuario de la aplicación. La contraseña solo se persiste
// como hash bcrypt; la contraseña one-time de la creación se muestra una única
// vez al caller y no es recuperable.
type User struct {
	ID           string
	Name         string
	Email        string // único
	PasswordHash string
	Role         string // admin, manager, employee, viewer
	Status       string // active, inactive
	LocationID   *string
	Phone        string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ValidRole indica si el rol pertenece a la enumeración conocida.
func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleManager, RoleEmployee, RoleViewer:
		return true
	}
	return false
}
