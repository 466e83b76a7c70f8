package repository

import "github.com/tojem/stock-taker-api/internal/domain/entity"

// SessionRepository define el puerto de persistencia para las sesiones de conteo.
type SessionRepository interface {
	// Create inserta una sesión in-progress con StartedAt asignado por el servidor
	// y devuelve la sesión creada (con ID y StartedAt definitivos).
	Create(startedBy string) (*entity.StockTakeSession, error)
	// GetByID obtiene una sesión por ID. nil si no existe.
	GetByID(id string) (*entity.StockTakeSession, error)
	// FindActive devuelve las sesiones con status in-progress, la más antigua primero.
	// El invariante del sistema es que haya cero o una; más de una es una
	// inconsistencia de datos que el caller debe registrar.
	FindActive() ([]entity.StockTakeSession, error)
	// Finish marca la sesión como completed con CompletedAt del servidor.
	// Solo actúa sobre sesiones in-progress: terminar una sesión ya completada
	// no re-estampa CompletedAt ni es error.
	Finish(id string) error
}
