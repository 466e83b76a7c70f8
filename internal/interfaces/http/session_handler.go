package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/tojem/stock-taker-api/internal/application/dto"
	"github.com/tojem/stock-taker-api/internal/application/stocktake"
	"github.com/tojem/stock-taker-api/internal/domain"
)

// SessionHandler maneja el ciclo de vida de la sesión de conteo (protegido).
type SessionHandler struct {
	sessionUC   *stocktake.SessionUseCase
	checklistUC *stocktake.ChecklistUseCase
}

// NewSessionHandler construye el handler.
func NewSessionHandler(sessionUC *stocktake.SessionUseCase, checklistUC *stocktake.ChecklistUseCase) *SessionHandler {
	return &SessionHandler{sessionUC: sessionUC, checklistUC: checklistUC}
}

// Start inicia una sesión de conteo y resetea los marcadores de la anterior.
// POST /api/sessions
func (h *SessionHandler) Start(c *fiber.Ctx) error {
	operatorID := GetOperatorID(c)
	if operatorID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	session, err := h.sessionUC.Start(c.Context(), operatorID)
	if err != nil {
		if errors.Is(err, domain.ErrActiveSession) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "ACTIVE_SESSION", Message: "ya hay una sesión de conteo en curso"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(dto.FromSession(*session))
}

// GetActive devuelve la sesión in-progress; 404 si no hay ninguna, de modo que
// el dispositivo sepa si retoma una sesión o arranca de cero.
// GET /api/sessions/active
func (h *SessionHandler) GetActive(c *fiber.Ctx) error {
	session, err := h.sessionUC.GetActive(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if session == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "no hay sesión en curso"})
	}
	return c.JSON(dto.FromSession(*session))
}

// GetByID obtiene una sesión por ID.
// GET /api/sessions/:id
func (h *SessionHandler) GetByID(c *fiber.Ctx) error {
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
	return c.JSON(dto.FromSession(*session))
}

// Finish termina la sesión. Con ítems pendientes el cuerpo debe reconocer
// exactamente cuántos quedan (acknowledge_remaining); si no, 409 y nada cambia.
// POST /api/sessions/:id/finish
func (h *SessionHandler) Finish(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id requerido"})
	}
	var in dto.FinishSessionRequest
	if err := c.BodyParser(&in); err != nil && len(c.Body()) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.checklistUC.Finish(c.Context(), id, in.AcknowledgeRemaining); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
