package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/stock-control/internal/application/dto"
	"github.com/tu-usuario/stock-control/internal/application/usecase"
)

// RepairHandler maneja reparaciones (protegido).
type RepairHandler struct {
	uc *usecase.RepairUseCase
}

// NewRepairHandler construye el handler.
func NewRepairHandler(uc *usecase.RepairUseCase) *RepairHandler {
	return &RepairHandler{uc: uc}
}

// Create registra una reparación.
func (h *RepairHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateRepairRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	if err := validateStruct(in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Create(c.Context(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID obtiene una reparación.
func (h *RepairHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// List lista reparaciones, opcionalmente por status.
func (h *RepairHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.Context(), c.Query("status"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update actualiza una reparación (returned no se acepta por aquí).
func (h *RepairHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateRepairRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	if err := validateStruct(in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Update(c.Context(), GetUserID(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// MarkAsReturned pasa la reparación de fixed a returned.
func (h *RepairHandler) MarkAsReturned(c *fiber.Ctx) error {
	out, err := h.uc.MarkAsReturned(c.Context(), GetUserID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete borra una reparación.
func (h *RepairHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), GetUserID(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
