package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/stock-control/internal/application/audit"
	"github.com/tu-usuario/stock-control/internal/application/dto"
	"github.com/tu-usuario/stock-control/internal/domain/repository"
)

// ActivityHandler expone el timeline de auditoría (protegido, solo lectura).
type ActivityHandler struct {
	timeline *audit.Timeline
}

// NewActivityHandler construye el handler.
func NewActivityHandler(timeline *audit.Timeline) *ActivityHandler {
	return &ActivityHandler{timeline: timeline}
}

// List lista el timeline filtrado, más reciente primero.
func (h *ActivityHandler) List(c *fiber.Ctx) error {
	filter, err := activityFilter(c)
	if err != nil {
		return badRequest(c, "INVALID_DATE", "from/to no parseable")
	}
	page := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	out, err := h.timeline.List(c.Context(), filter, page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ExportCSV descarga el timeline filtrado como CSV.
func (h *ActivityHandler) ExportCSV(c *fiber.Ctx) error {
	filter, err := activityFilter(c)
	if err != nil {
		return badRequest(c, "INVALID_DATE", "from/to no parseable")
	}
	data, err := h.timeline.ExportCSV(c.Context(), filter)
	if err != nil {
		return respondError(c, err)
	}
	return sendCSV(c, "activity.csv", data)
}

func activityFilter(c *fiber.Ctx) (repository.ActivityFilter, error) {
	filter := repository.ActivityFilter{
		UserID:     c.Query("user_id"),
		Action:     c.Query("action"),
		EntityType: c.Query("entity_type"),
	}
	var err error
	if filter.From, err = parseDateQuery(c.Query("from")); err != nil {
		return filter, err
	}
	if filter.To, err = parseDateQuery(c.Query("to")); err != nil {
		return filter, err
	}
	return filter, nil
}
