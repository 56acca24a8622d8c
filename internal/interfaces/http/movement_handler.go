package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/stock-control/internal/application/dto"
	"github.com/tu-usuario/stock-control/internal/application/movement"
	"github.com/tu-usuario/stock-control/internal/domain/repository"
)

// MovementHandler maneja las peticiones HTTP de movimientos de stock.
// Las mutaciones pasan por el Applier; las lecturas por el QueryUseCase.
type MovementHandler struct {
	applier *movement.Applier
	query   *movement.QueryUseCase
}

// NewMovementHandler construye el handler.
func NewMovementHandler(applier *movement.Applier, query *movement.QueryUseCase) *MovementHandler {
	return &MovementHandler{applier: applier, query: query}
}

// Create godoc
// @Summary      Registrar movimiento de stock (IN/OUT)
// @Tags         movements
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.MovementRequest  true  "Movimiento"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse  "stock insuficiente u ocupado"
// @Router       /api/movements [post]
func (h *MovementHandler) Create(c *fiber.Ctx) error {
	var in dto.MovementRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	if err := validateStruct(in); err != nil {
		return respondError(c, err)
	}
	req, err := in.ToDomain()
	if err != nil {
		return respondError(c, err)
	}
	created, err := h.applier.Create(c.Context(), GetUserID(c), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.MovementToResponse(created))
}

// GetByID godoc
// @Summary      Obtener movimiento por ID
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del movimiento"
// @Success      200  {object}  dto.MovementResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/movements/{id} [get]
func (h *MovementHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.query.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar movimientos
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        item_id      query  string  false  "Filtrar por ítem"
// @Param        type         query  string  false  "IN | OUT"
// @Param        location_id  query  string  false  "Filtrar por ubicación"
// @Param        from         query  string  false  "Desde (RFC3339 o YYYY-MM-DD)"
// @Param        to           query  string  false  "Hasta (RFC3339 o YYYY-MM-DD)"
// @Param        limit        query  int     false  "Límite"  default(20)
// @Param        offset       query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.MovementListResponse
// @Router       /api/movements [get]
func (h *MovementHandler) List(c *fiber.Ctx) error {
	filter := repository.MovementFilter{
		ItemID:     c.Query("item_id"),
		Type:       c.Query("type"),
		LocationID: c.Query("location_id"),
	}
	var err error
	if filter.From, err = parseDateQuery(c.Query("from")); err != nil {
		return badRequest(c, "INVALID_DATE", "from no parseable")
	}
	if filter.To, err = parseDateQuery(c.Query("to")); err != nil {
		return badRequest(c, "INVALID_DATE", "to no parseable")
	}
	page := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	out, err := h.query.List(c.Context(), filter, page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Editar movimiento (revierte el delta viejo y aplica el nuevo atómicamente)
// @Tags         movements
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del movimiento"
// @Param        body  body  dto.MovementRequest  true  "Movimiento corregido"
// @Success      200   {object}  dto.MovementResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/movements/{id} [put]
func (h *MovementHandler) Update(c *fiber.Ctx) error {
	var in dto.MovementRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	if err := validateStruct(in); err != nil {
		return respondError(c, err)
	}
	req, err := in.ToDomain()
	if err != nil {
		return respondError(c, err)
	}
	updated, err := h.applier.Update(c.Context(), GetUserID(c), c.Params("id"), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MovementToResponse(updated))
}

// Delete godoc
// @Summary      Borrar movimiento (revierte su efecto sobre el stock)
// @Tags         movements
// @Security     Bearer
// @Param        id  path  string  true  "ID del movimiento"
// @Success      204
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/movements/{id} [delete]
func (h *MovementHandler) Delete(c *fiber.Ctx) error {
	if err := h.applier.Delete(c.Context(), GetUserID(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// parseDateQuery parsea un parámetro de fecha opcional (RFC3339 o YYYY-MM-DD).
func parseDateQuery(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return &t, nil
		}
	}
	return nil, fiber.ErrBadRequest
}
