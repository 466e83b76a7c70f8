package scanner

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tojem/stock-taker-api/internal/application/stocktake"
	"github.com/tojem/stock-taker-api/internal/domain"
)

func newManager() *Manager {
	return NewManager(zerolog.Nop())
}

func TestDeliverSinEscaneoActivo(t *testing.T) {
	m := newManager()

	_, err := m.Deliver("BC-001")
	assert.ErrorIs(t, err, domain.ErrNoActiveScan)
}

func TestDeliverEntregaAlHandler(t *testing.T) {
	m := newManager()

	var recibido string
	err := m.Start(func(code string) (stocktake.ScanResult, error) {
		recibido = code
		return stocktake.ScanResult{Outcome: stocktake.OutcomeSelected}, nil
	})
	require.NoError(t, err)

	res, err := m.Deliver("BC-001")
	require.NoError(t, err)
	assert.Equal(t, "BC-001", recibido)
	assert.Equal(t, stocktake.OutcomeSelected, res.Outcome)
}

func TestStartReemplazaHandlerAnterior(t *testing.T) {
	m := newManager()

	primero := 0
	require.NoError(t, m.Start(func(code string) (stocktake.ScanResult, error) {
		primero++
		return stocktake.ScanResult{}, nil
	}))

	segundo := 0
	require.NoError(t, m.Start(func(code string) (stocktake.ScanResult, error) {
		segundo++
		return stocktake.ScanResult{}, nil
	}))

	_, err := m.Deliver("BC-001")
	require.NoError(t, err)
	assert.Zero(t, primero, "el handler reemplazado no debe recibir lecturas")
	assert.Equal(t, 1, segundo)
}

func TestStopEsIdempotente(t *testing.T) {
	m := newManager()

	require.NoError(t, m.Start(func(code string) (stocktake.ScanResult, error) {
		return stocktake.ScanResult{}, nil
	}))

	m.Stop()
	m.Stop()

	_, err := m.Deliver("BC-001")
	assert.ErrorIs(t, err, domain.ErrNoActiveScan)
}

func TestHandlerPuedeDetenerDesdeDeliver(t *testing.T) {
	m := newManager()

	require.NoError(t, m.Start(func(code string) (stocktake.ScanResult, error) {
		// Los casos de uso detienen el escáner al consumir la lectura.
		m.Stop()
		return stocktake.ScanResult{Outcome: stocktake.OutcomeVerified}, nil
	}))

	res, err := m.Deliver("BC-001")
	require.NoError(t, err)
	assert.Equal(t, stocktake.OutcomeVerified, res.Outcome)

	_, err = m.Deliver("BC-001")
	assert.ErrorIs(t, err, domain.ErrNoActiveScan)
}
