package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tojem/stock-taker-api/internal/application/dto"
	"github.com/tojem/stock-taker-api/internal/application/stocktake"
)

// ChecklistHandler sirve las particiones pendiente/completado del checklist (protegido).
type ChecklistHandler struct {
	uc *stocktake.ChecklistUseCase
}

// NewChecklistHandler construye el handler.
func NewChecklistHandler(uc *stocktake.ChecklistUseCase) *ChecklistHandler {
	return &ChecklistHandler{uc: uc}
}

// Get devuelve el checklist de la sesión: pendientes y completados ordenados por
// nombre, filtrados por ?search= y con el avance sobre el total sin filtrar.
// GET /api/sessions/:id/checklist
func (h *ChecklistHandler) Get(c *fiber.Ctx) error {
	sessionID := c.Params("id")
	if sessionID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id requerido"})
	}
	cl, err := h.uc.Build(c.Context(), sessionID, c.Query("search"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(dto.ChecklistResponse{
		SessionID: sessionID,
		Remaining: dto.FromItems(cl.Remaining),
		Completed: dto.FromItems(cl.Completed),
		Total:     cl.Total,
		Progress:  cl.Progress,
	})
}
