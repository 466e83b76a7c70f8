package stocktake

import (
	"context"

	"github.com/tojem/stock-taker-api/internal/domain/entity"
	"github.com/tojem/stock-taker-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios
// atados a esa tx. Garantiza el inicio de sesión todo-o-nada: la sesión nueva y el
// reset masivo de marcadores se confirman juntos o no se confirma nada.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		sessionRepo repository.SessionRepository,
		itemRepo repository.ItemRepository,
	) error) error
}

// DecodeHandler procesa un código decodificado por el escáner y devuelve el
// resultado de la reconciliación.
type DecodeHandler func(code string) (ScanResult, error)

// Scanner puerto del escáner de códigos: recurso cooperativo de una sola operación
// activa. Start con un escaneo en curso detiene primero el anterior; Stop es
// idempotente y libera la cámara en todas las rutas de salida.
type Scanner interface {
	Start(onDecoded DecodeHandler) error
	Stop()
}

// ScanOutcome desenlace de reconciliar un código decodificado.
type ScanOutcome string

const (
	// OutcomeVerified el código coincide con el ítem esperado; se habilita el conteo.
	OutcomeVerified ScanOutcome = "verified"
	// OutcomeMismatch el código no coincide; el ítem sigue sin verificar.
	OutcomeMismatch ScanOutcome = "mismatch"
	// OutcomeSelected escaneo general: el ítem decodificado queda seleccionado.
	OutcomeSelected ScanOutcome = "selected"
)

// ScanResult resultado entregado al caller del feed de decodificación.
type ScanResult struct {
	Outcome ScanOutcome
	Item    *entity.InventoryItem
}

// SessionReportGenerator genera el resumen PDF de una sesión de conteo.
type SessionReportGenerator interface {
	Generate(session entity.StockTakeSession, counted, remaining []entity.InventoryItem) ([]byte, error)
}
