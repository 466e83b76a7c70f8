package entity

import "time"

// Operator operario autorizado a usar el dispositivo de conteo.
type Operator struct {
	ID           string
	Email        string
	Name         string
	PasswordHash string
	CreatedAt    time.Time
}
