package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/tojem/stock-taker-api/internal/application/dto"
	"github.com/tojem/stock-taker-api/pkg/jwt"
)

// Locals keys para el operario autenticado en Fiber.
const (
	LocalOperatorID    = "operator_id"
	LocalOperatorEmail = "operator_email"
)

// AuthMiddleware valida el Bearer Token JWT del dispositivo y extrae el operario a c.Locals.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization header requerido"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vacío"})
		}
		operatorID, email, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}
		c.Locals(LocalOperatorID, operatorID)
		c.Locals(LocalOperatorEmail, email)
		return c.Next()
	}
}

// GetOperatorID devuelve el ID del operario del contexto (después del middleware de auth).
func GetOperatorID(c *fiber.Ctx) string {
	v := c.Locals(LocalOperatorID)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}

// GetOperatorEmail devuelve el email del operario del contexto (después del middleware de auth).
func GetOperatorEmail(c *fiber.Ctx) string {
	v := c.Locals(LocalOperatorEmail)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}
