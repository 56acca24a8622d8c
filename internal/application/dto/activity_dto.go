package dto

import (
	"encoding/json"
	"time"

	"github.com/tu-usuario/stock-control/internal/domain/entity"
)

// ActivityResponse entrada del timeline de auditoría.
type ActivityResponse struct {
	ID          string          `json:"id"`
	UserID      string          `json:"user_id"`
	Action      string          `json:"action"`
	EntityType  string          `json:"entity_type"`
	EntityID    string          `json:"entity_id"`
	EntityName  string          `json:"entity_name"`
	Description string          `json:"description"`
	OldValues   json.RawMessage `json:"old_values,omitempty"`
	NewValues   json.RawMessage `json:"new_values,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

// ActivityListResponse lista paginada del timeline.
type ActivityListResponse struct {
	Items []ActivityResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// ActivityToResponse mapea la entidad a su DTO.
func ActivityToResponse(e *entity.ActivityLog) ActivityResponse {
	return ActivityResponse{
		ID:          e.ID,
		UserID:      e.UserID,
		Action:      e.Action,
		EntityType:  e.EntityType,
		EntityID:    e.EntityID,
		EntityName:  e.EntityName,
		Description: e.Description,
		OldValues:   e.OldValues,
		NewValues:   e.NewValues,
		CreatedAt:   e.CreatedAt,
	}
}

// ActivitiesToResponse mapea una lista de entidades.
func ActivitiesToResponse(list []*entity.ActivityLog) []ActivityResponse {
	out := make([]ActivityResponse, 0, len(list))
	for _, e := range list {
		out = append(out, ActivityToResponse(e))
	}
	return out
}
