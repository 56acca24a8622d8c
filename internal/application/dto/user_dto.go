package dto

import (
	"time"

	"github.com/tu-usuario/stock-control/internal/domain/entity"
)

// CreateUserRequest entrada para crear un usuario (solo admin). No lleva
// contraseña: el servidor genera una one-time y la devuelve una única vez.
type CreateUserRequest struct {
	Name       string  `json:"name" validate:"required,min=1,max=200"`
	Email      string  `json:"email" validate:"required,email"`
	Role       string  `json:"role" validate:"required,oneof=admin manager employee viewer"`
	LocationID *string `json:"location_id"`
	Phone      string  `json:"phone"`
}

// UpdateUserRequest entrada para actualizar un usuario (solo admin).
type UpdateUserRequest struct {
	Name       *string `json:"name" validate:"omitempty,min=1,max=200"`
	Email      *string `json:"email" validate:"omitempty,email"`
	Role       *string `json:"role" validate:"omitempty,oneof=admin manager employee viewer"`
	Status     *string `json:"status" validate:"omitempty,oneof=active inactive"`
	LocationID *string `json:"location_id"`
	Phone      *string `json:"phone"`
}

// UserResponse salida de un usuario. Nunca expone el hash de contraseña.
type UserResponse struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Role       string    `json:"role"`
	Status     string    `json:"status"`
	LocationID *string   `json:"location_id"`
	Phone      string    `json:"phone"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// CreateUserResponse incluye la contraseña one-time generada. Es la única vez
// que el sistema la muestra: solo se persiste su hash bcrypt.
type CreateUserResponse struct {
	User            UserResponse `json:"user"`
	OneTimePassword string       `json:"one_time_password"`
}

// UserToResponse mapea la entidad a su DTO.
func UserToResponse(u *entity.User) UserResponse {
	return UserResponse{
		ID:         u.ID,
		Name:       u.Name,
		Email:      u.Email,
		Role:       u.Role,
		Status:     u.Status,
		LocationID: u.LocationID,
		Phone:      u.Phone,
		CreatedAt:  u.CreatedAt,
		UpdatedAt:  u.UpdatedAt,
	}
}
