package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/tojem/stock-taker-api/internal/application/dto"
	"github.com/tojem/stock-taker-api/internal/application/stocktake"
	"github.com/tojem/stock-taker-api/internal/domain"
	"github.com/tojem/stock-taker-api/internal/domain/entity"
)

// CountingHandler maneja el flujo de conteo del dispositivo: selección,
// verificación por escaneo y commit (protegido).
type CountingHandler struct {
	countingUC *stocktake.CountingUseCase
	sessionUC  *stocktake.SessionUseCase
}

// NewCountingHandler construye el handler.
func NewCountingHandler(countingUC *stocktake.CountingUseCase, sessionUC *stocktake.SessionUseCase) *CountingHandler {
	return &CountingHandler{countingUC: countingUC, sessionUC: sessionUC}
}

func itemOrNil(it *entity.InventoryItem) *dto.ItemResponse {
	if it == nil {
		return nil
	}
	out := dto.FromItem(*it)
	return &out
}

// State devuelve el estado del flujo y el ítem seleccionado si lo hay.
// GET /api/counting
func (h *CountingHandler) State(c *fiber.Ctx) error {
	state, item := h.countingUC.Current()
	return c.JSON(dto.CountingStateResponse{State: string(state), Item: itemOrNil(item)})
}

// Select selecciona un ítem manualmente (tap en el checklist). El flujo queda en
// unverified hasta que el escaneo de verificación confirme el ítem físico.
// POST /api/counting/select
func (h *CountingHandler) Select(c *fiber.Ctx) error {
	var in dto.SelectItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.ItemID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "item_id requerido"})
	}
	item, err := h.countingUC.Select(in.ItemID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "ítem no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(dto.CountingStateResponse{State: string(stocktake.FlowUnverified), Item: itemOrNil(item)})
}

// RequestVerifyScan arma el escáner para verificar el ítem seleccionado.
// POST /api/counting/verify-scan
func (h *CountingHandler) RequestVerifyScan(c *fiber.Ctx) error {
	if err := h.countingUC.RequestVerifyScan(); err != nil {
		return scanArmError(c, err)
	}
	return c.SendStatus(fiber.StatusAccepted)
}

// RequestGeneralScan arma el escáner en modo general: la próxima lectura
// selecciona el ítem correspondiente al código.
// POST /api/counting/scan
func (h *CountingHandler) RequestGeneralScan(c *fiber.Ctx) error {
	if err := h.countingUC.RequestGeneralScan(); err != nil {
		return scanArmError(c, err)
	}
	return c.SendStatus(fiber.StatusAccepted)
}

func scanArmError(c *fiber.Ctx, err error) error {
	if errors.Is(err, domain.ErrNoSelection) {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "NO_SELECTION", Message: "no hay ítem seleccionado"})
	}
	if errors.Is(err, domain.ErrConflict) {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: "el flujo no admite un escaneo de verificación"})
	}
	if errors.Is(err, domain.ErrScannerUnavailable) {
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "SCANNER_UNAVAILABLE", Message: "el escáner no está disponible"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}

// Commit valida el valor capturado y persiste el conteo atado a la sesión activa.
// POST /api/counting/commit
func (h *CountingHandler) Commit(c *fiber.Ctx) error {
	var in dto.CommitCountRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	session, err := h.sessionUC.GetActive(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if session == nil {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "NO_ACTIVE_SESSION", Message: "no hay sesión de conteo en curso"})
	}
	item, err := h.countingUC.Commit(session.ID, in.Input)
	if err != nil {
		if errors.Is(err, domain.ErrNoSelection) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "NO_SELECTION", Message: "no hay ítem seleccionado"})
		}
		if errors.Is(err, domain.ErrNotVerified) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "NOT_VERIFIED", Message: "el ítem no está verificado por escaneo"})
		}
		if errors.Is(err, domain.ErrValidation) {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(dto.CommitCountResponse{Item: dto.FromItem(*item), RefreshNeeded: true})
}

// Close descarta la selección en memoria y libera el escáner. Idempotente.
// POST /api/counting/close
func (h *CountingHandler) Close(c *fiber.Ctx) error {
	h.countingUC.Close()
	return c.SendStatus(fiber.StatusNoContent)
}
