// Package scanner mantiene la suscripción al lector de códigos de barras del
// dispositivo. Replica el modelo de una cámara única: como mucho un handler de
// decodificación vivo a la vez, y arrancar uno nuevo reemplaza al anterior.
package scanner

import (
	"sync"

	"github.com/rs/zerolog"
	"github.com/tojem/stock-taker-api/internal/application/stocktake"
	"github.com/tojem/stock-taker-api/internal/domain"
)

var _ stocktake.Scanner = (*Manager)(nil)

// Manager es el punto único por el que entran los códigos decodificados.
// Los lecturas llegan por Deliver (alimentado por el endpoint del dispositivo)
// y se entregan al handler armado por el último Start.
type Manager struct {
	mu      sync.Mutex
	handler stocktake.DecodeHandler
	log     zerolog.Logger
}

// NewManager construye el manager sin handler activo.
func NewManager(log zerolog.Logger) *Manager {
	return &Manager{log: log.With().Str("component", "scanner").Logger()}
}

// Start arma onDecoded como handler activo. Si había otro escaneo en curso lo
// reemplaza: el handler anterior deja de recibir lecturas.
func (m *Manager) Start(onDecoded stocktake.DecodeHandler) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.handler != nil {
		m.log.Warn().Msg("escaneo anterior aún activo, reemplazando handler")
	}
	m.handler = onDecoded
	return nil
}

// Stop desarma el handler activo. Idempotente: llamarlo sin escaneo en curso no hace nada.
func (m *Manager) Stop() {
	m.mu.Lock()
	m.handler = nil
	m.mu.Unlock()
}

// Deliver entrega un código decodificado al handler activo. Sin escaneo en curso
// devuelve ErrNoActiveScan.
//
// El handler se copia bajo el lock y se invoca fuera de él: los handlers llaman
// Stop() al consumir la lectura y hacerlo con el lock tomado sería un deadlock.
func (m *Manager) Deliver(code string) (stocktake.ScanResult, error) {
	m.mu.Lock()
	handler := m.handler
	m.mu.Unlock()

	if handler == nil {
		return stocktake.ScanResult{}, domain.ErrNoActiveScan
	}
	m.log.Debug().Str("code", code).Msg("código recibido")
	return handler(code)
}
