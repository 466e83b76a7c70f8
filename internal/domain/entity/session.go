package entity

import "time"

// SessionStatus estado de una sesión de conteo.
type SessionStatus string

const (
	SessionInProgress SessionStatus = "in-progress"
	SessionCompleted  SessionStatus = "completed"
)

// StockTakeSession sesión de conteo físico de inventario.
// Invariante: a lo sumo una sesión con Status == in-progress a la vez.
// Las sesiones nunca se eliminan ni se reabren.
type StockTakeSession struct {
	ID          string
	StartedAt   time.Time
	StartedBy   string // email del operario que inició
	Status      SessionStatus
	CompletedAt *time.Time
}

// Active indica si la sesión sigue en curso.
func (s StockTakeSession) Active() bool {
	return s.Status == SessionInProgress
}
