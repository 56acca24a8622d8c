package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/stock-control/internal/application/report"
	"github.com/tu-usuario/stock-control/internal/domain/repository"
)

// ReportHandler expone el Query/Report Surface (protegido, solo lectura).
type ReportHandler struct {
	uc *report.UseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *report.UseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// Dashboard resumen del inventario.
func (h *ReportHandler) Dashboard(c *fiber.Ctx) error {
	out, err := h.uc.Dashboard(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// LowStock ítems con quantity <= min_quantity.
func (h *ReportHandler) LowStock(c *fiber.Ctx) error {
	out, err := h.uc.LowStock(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Critical ítems por debajo de la mitad de su mínimo.
func (h *ReportHandler) Critical(c *fiber.Ctx) error {
	out, err := h.uc.Critical(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Valuation total y desglose por ítem.
func (h *ReportHandler) Valuation(c *fiber.Ctx) error {
	out, err := h.uc.Valuation(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// TopItems los n ítems con mayor valor en stock.
func (h *ReportHandler) TopItems(c *fiber.Ctx) error {
	out, err := h.uc.TopItems(c.Context(), c.QueryInt("n", 0))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// MovementSummary agregados de movimientos por tipo.
func (h *ReportHandler) MovementSummary(c *fiber.Ctx) error {
	filter, err := movementSummaryFilter(c)
	if err != nil {
		return badRequest(c, "INVALID_DATE", "from/to no parseable")
	}
	out, err := h.uc.MovementSummary(c.Context(), filter)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ExportValuationCSV descarga la valuación por ítem como CSV.
func (h *ReportHandler) ExportValuationCSV(c *fiber.Ctx) error {
	data, err := h.uc.ExportValuationCSV(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return sendCSV(c, "valuation.csv", data)
}

// ExportLowStockCSV descarga la lista de bajo stock como CSV.
func (h *ReportHandler) ExportLowStockCSV(c *fiber.Ctx) error {
	data, err := h.uc.ExportLowStockCSV(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return sendCSV(c, "low_stock.csv", data)
}

// ExportMovementSummaryCSV descarga los agregados de movimientos como CSV.
func (h *ReportHandler) ExportMovementSummaryCSV(c *fiber.Ctx) error {
	filter, err := movementSummaryFilter(c)
	if err != nil {
		return badRequest(c, "INVALID_DATE", "from/to no parseable")
	}
	data, err := h.uc.ExportMovementSummaryCSV(c.Context(), filter)
	if err != nil {
		return respondError(c, err)
	}
	return sendCSV(c, "movement_summary.csv", data)
}

// ExportInventoryPDF descarga el reporte de inventario completo en PDF.
func (h *ReportHandler) ExportInventoryPDF(c *fiber.Ctx) error {
	data, err := h.uc.ExportInventoryPDF(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="inventory.pdf"`)
	return c.Send(data)
}

func movementSummaryFilter(c *fiber.Ctx) (repository.MovementSummaryFilter, error) {
	filter := repository.MovementSummaryFilter{
		LocationID: c.Query("location_id"),
		Type:       c.Query("type"),
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

func sendCSV(c *fiber.Ctx, filename string, data []byte) error {
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(data)
}
