package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrValidation         = errors.New("valor de conteo inválido")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrNotVerified        = errors.New("ítem no verificado por escaneo")
	ErrNoSelection        = errors.New("no hay ítem seleccionado")
	ErrNoActiveScan       = errors.New("no hay escaneo activo")
	ErrScannerUnavailable = errors.New("escáner no disponible")
	ErrActiveSession      = errors.New("ya existe una sesión de conteo en curso")
)
