package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tojem/stock-taker-api/internal/application/dto"
	"github.com/tojem/stock-taker-api/internal/application/stocktake"
)

// ReportHandler genera el resumen PDF de una sesión de conteo (protegido).
type ReportHandler struct {
	sessionUC   *stocktake.SessionUseCase
	checklistUC *stocktake.ChecklistUseCase
	generator   stocktake.SessionReportGenerator
}

// NewReportHandler construye el handler.
func NewReportHandler(
	sessionUC *stocktake.SessionUseCase,
	checklistUC *stocktake.ChecklistUseCase,
	generator stocktake.SessionReportGenerator,
) *ReportHandler {
	return &ReportHandler{sessionUC: sessionUC, checklistUC: checklistUC, generator: generator}
}

// SessionPDF devuelve el resumen de la sesión en PDF: ítems contados con su
// stock final y pendientes con el stock previo.
// GET /api/sessions/:id/report
func (h *ReportHandler) SessionPDF(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id requerido"})
	}
	session, err := h.sessionUC.GetByID(c.Context(), id)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if session == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "sesión no encontrada"})
	}
	cl, err := h.checklistUC.Build(c.Context(), id, "")
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	pdfBytes, err := h.generator.Generate(*session, cl.Completed, cl.Remaining)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "no se pudo generar el PDF"})
	}
	c.Set("Content-Type", "application/pdf")
	c.Set("Content-Disposition", `attachment; filename="toma-inventario-`+id+`.pdf"`)
	return c.Send(pdfBytes)
}
