package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/tojem/stock-taker-api/internal/application/dto"
	"github.com/tojem/stock-taker-api/internal/domain"
	"github.com/tojem/stock-taker-api/internal/infrastructure/scanner"
)

// ScannerHandler recibe los códigos decodificados que alimenta el lector del
// dispositivo (protegido).
type ScannerHandler struct {
	manager *scanner.Manager
}

// NewScannerHandler construye el handler.
func NewScannerHandler(manager *scanner.Manager) *ScannerHandler {
	return &ScannerHandler{manager: manager}
}

// Decode entrega una lectura al escaneo armado y devuelve el resultado de la
// reconciliación: verified, mismatch o selected.
// POST /api/scanner/decode
func (h *ScannerHandler) Decode(c *fiber.Ctx) error {
	var in dto.ScanDecodeRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Code == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "code requerido"})
	}
	res, err := h.manager.Deliver(in.Code)
	if err != nil {
		if errors.Is(err, domain.ErrNoActiveScan) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "NO_ACTIVE_SCAN", Message: "no hay escaneo en curso"})
		}
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "el código no corresponde a ningún ítem"})
		}
		if errors.Is(err, domain.ErrNoSelection) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "NO_SELECTION", Message: "no hay ítem seleccionado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(dto.ScanDecodeResponse{Outcome: string(res.Outcome), Item: itemOrNil(res.Item)})
}
