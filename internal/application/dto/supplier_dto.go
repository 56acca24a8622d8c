package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/stock-control/internal/domain/entity"
)

// CreateSupplierRequest entrada para crear un proveedor.
type CreateSupplierRequest struct {
	Name        string           `json:"name" validate:"required,min=1,max=200"`
	Code        string           `json:"code" validate:"required,min=1,max=50"`
	ContactName string           `json:"contact_name"`
	Email       string           `json:"email" validate:"omitempty,email"`
	Phone       string           `json:"phone"`
	Address     string           `json:"address"`
	CreditLimit *decimal.Decimal `json:"credit_limit"`
}

// UpdateSupplierRequest entrada para actualizar un proveedor.
type UpdateSupplierRequest struct {
	Name        *string          `json:"name" validate:"omitempty,min=1,max=200"`
	ContactName *string          `json:"contact_name"`
	Email       *string          `json:"email" validate:"omitempty,email"`
	Phone       *string          `json:"phone"`
	Address     *string          `json:"address"`
	CreditLimit *decimal.Decimal `json:"credit_limit"`
	Status      *string          `json:"status" validate:"omitempty,oneof=active inactive"`
}

// SupplierResponse salida de un proveedor.
type SupplierResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Code        string          `json:"code"`
	ContactName string          `json:"contact_name"`
	Email       string          `json:"email"`
	Phone       string          `json:"phone"`
	Address     string          `json:"address"`
	CreditLimit decimal.Decimal `json:"credit_limit"`
	Status      string          `json:"status"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// SupplierToResponse mapea la entidad a su DTO.
func SupplierToResponse(s *entity.Supplier) SupplierResponse {
	return SupplierResponse{
		ID:          s.ID,
		Name:        s.Name,
		Code:        s.Code,
		ContactName: s.ContactName,
		Email:       s.Email,
		Phone:       s.Phone,
		Address:     s.Address,
		CreditLimit: s.CreditLimit,
		Status:      s.Status,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}
