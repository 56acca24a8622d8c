package dto

import (
	"time"

	"github.com/tu-usuario/stock-control/internal/domain/entity"
)

// CreateRepairRequest entrada para registrar una reparación.
type CreateRepairRequest struct {
	ItemName         string `json:"item_name" validate:"required,min=1,max=200"`
	IssueDescription string `json:"issue_description" validate:"required,min=1"`
	Priority         string `json:"priority" validate:"required,oneof=low medium high"`
	AssignedTo       string `json:"assigned_to"`
}

// UpdateRepairRequest entrada para actualizar una reparación. El paso a
// returned no va por aquí: tiene su acción propia (MarkAsReturned).
type UpdateRepairRequest struct {
	ItemName         *string `json:"item_name" validate:"omitempty,min=1,max=200"`
	IssueDescription *string `json:"issue_description" validate:"omitempty,min=1"`
	Status           *string `json:"status" validate:"omitempty,oneof=pending in_progress fixed"`
	Priority         *string `json:"priority" validate:"omitempty,oneof=low medium high"`
	AssignedTo       *string `json:"assigned_to"`
}

// RepairResponse salida de una reparación.
type RepairResponse struct {
	ID               string    `json:"id"`
	ItemName         string    `json:"item_name"`
	IssueDescription string    `json:"issue_description"`
	Status           string    `json:"status"`
	Priority         string    `json:"priority"`
	AssignedTo       string    `json:"assigned_to"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// RepairToResponse mapea la entidad a su DTO.
func RepairToResponse(r *entity.Repair) RepairResponse {
	return RepairResponse{
		ID:               r.ID,
		ItemName:         r.ItemName,
		IssueDescription: r.IssueDescription,
		Status:           r.Status,
		Priority:         r.Priority,
		AssignedTo:       r.AssignedTo,
		CreatedAt:        r.CreatedAt,
		UpdatedAt:        r.UpdatedAt,
	}
}
