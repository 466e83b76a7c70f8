package stocktake

import (
	"sync"
	"time"

	"github.com/tojem/stock-taker-api/internal/domain"
	"github.com/tojem/stock-taker-api/internal/domain/entity"
	"github.com/tojem/stock-taker-api/internal/domain/repository"
	domstock "github.com/tojem/stock-taker-api/internal/domain/stocktake"
	"github.com/tojem/stock-taker-api/pkg/logger"
)

// FlowState estado del flujo de conteo del ítem seleccionado.
type FlowState string

const (
	// FlowIdle sin ítem seleccionado.
	FlowIdle FlowState = "idle"
	// FlowUnverified ítem seleccionado pendiente de verificación por escaneo.
	FlowUnverified FlowState = "unverified"
	// FlowVerified escaneo confirmado; se acepta la captura del conteo.
	FlowVerified FlowState = "verified"
)

// CountingUseCase motor de reconciliación de conteos: selección de ítem,
// compuerta de verificación por escaneo, cálculo del candidato y commit.
// Mantiene a lo sumo un flujo en memoria (un dispositivo, un operario); el mutex
// cubre las carreras entre el feed del escáner y las acciones del operario.
type CountingUseCase struct {
	mu       sync.Mutex
	itemRepo repository.ItemRepository
	scanner  Scanner
	log      *logger.Logger

	item    *entity.InventoryItem
	state   FlowState
	scanCtx *entity.ScanContext
}

// NewCountingUseCase construye el motor de conteo.
func NewCountingUseCase(itemRepo repository.ItemRepository, scanner Scanner, log *logger.Logger) *CountingUseCase {
	return &CountingUseCase{itemRepo: itemRepo, scanner: scanner, log: log, state: FlowIdle}
}

// Current devuelve el estado del flujo y una copia del ítem seleccionado.
func (uc *CountingUseCase) Current() (FlowState, *entity.InventoryItem) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	if uc.item == nil {
		return FlowIdle, nil
	}
	it := *uc.item
	return uc.state, &it
}

// Select selecciona un ítem por ID (tap en el checklist o búsqueda) y lo deja
// en unverified. ErrNotFound si el ID no existe en ninguna categoría.
func (uc *CountingUseCase) Select(itemID string) (*entity.InventoryItem, error) {
	item, err := uc.itemRepo.FindByID(itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	uc.mu.Lock()
	defer uc.mu.Unlock()
	uc.item = item
	uc.state = FlowUnverified
	uc.scanCtx = nil
	it := *item
	return &it, nil
}

// RequestVerifyScan arma el escáner en modo verificación para el ítem
// seleccionado. Única acción permitida mientras el flujo está en unverified.
func (uc *CountingUseCase) RequestVerifyScan() error {
	uc.mu.Lock()
	if uc.item == nil {
		uc.mu.Unlock()
		return domain.ErrNoSelection
	}
	if uc.state != FlowUnverified {
		uc.mu.Unlock()
		return domain.ErrConflict
	}
	uc.scanCtx = &entity.ScanContext{Mode: entity.ScanVerify, ExpectedID: uc.item.ID}
	uc.mu.Unlock()

	if err := uc.scanner.Start(uc.handleDecoded); err != nil {
		uc.mu.Lock()
		uc.scanCtx = nil
		uc.mu.Unlock()
		return domain.ErrScannerUnavailable
	}
	return nil
}

// RequestGeneralScan arma el escáner en modo general: el próximo código
// decodificado selecciona el ítem correspondiente.
func (uc *CountingUseCase) RequestGeneralScan() error {
	uc.mu.Lock()
	uc.scanCtx = &entity.ScanContext{Mode: entity.ScanGeneral}
	uc.mu.Unlock()

	if err := uc.scanner.Start(uc.handleDecoded); err != nil {
		uc.mu.Lock()
		uc.scanCtx = nil
		uc.mu.Unlock()
		return domain.ErrScannerUnavailable
	}
	return nil
}

// handleDecoded reconcilia el primer código decodificado contra el ScanContext
// armado. El contexto es de un solo uso y el escáner se detiene en todas las
// rutas, incluida la de error.
func (uc *CountingUseCase) handleDecoded(code string) (ScanResult, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	defer uc.scanner.Stop()

	scanCtx := uc.scanCtx
	uc.scanCtx = nil
	if scanCtx == nil {
		return ScanResult{}, domain.ErrNoActiveScan
	}

	if scanCtx.Mode == entity.ScanVerify {
		if uc.item == nil {
			return ScanResult{}, domain.ErrNoSelection
		}
		if code != scanCtx.ExpectedID {
			uc.log.Warn().Str("expected", scanCtx.ExpectedID).Str("decoded", code).
				Msg("escaneo de verificación no coincide")
			it := *uc.item
			return ScanResult{Outcome: OutcomeMismatch, Item: &it}, nil
		}
		uc.state = FlowVerified
		it := *uc.item
		return ScanResult{Outcome: OutcomeVerified, Item: &it}, nil
	}

	// Modo general: buscar el ítem en todas las categorías y seleccionarlo.
	item, err := uc.itemRepo.FindByID(code)
	if err != nil {
		return ScanResult{}, err
	}
	if item == nil {
		// La selección previa (si la hay) no se toca.
		return ScanResult{}, domain.ErrNotFound
	}
	uc.item = item
	uc.state = FlowUnverified
	it := *item
	return ScanResult{Outcome: OutcomeSelected, Item: &it}, nil
}

// Commit valida el valor capturado, persiste el nuevo stock atado a la sesión y
// cierra el flujo. Si el candidato es inválido o el store falla, el flujo queda
// en verified y se puede reintentar; nunca hay mutación parcial.
func (uc *CountingUseCase) Commit(sessionID, rawInput string) (*entity.InventoryItem, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	if uc.item == nil {
		return nil, domain.ErrNoSelection
	}
	if uc.state != FlowVerified {
		return nil, domain.ErrNotVerified
	}

	candidate, err := domstock.CandidateStock(*uc.item, rawInput)
	if err != nil {
		return nil, err
	}

	if err := uc.itemRepo.UpdateCount(uc.item.Category, uc.item.ID, candidate, sessionID); err != nil {
		uc.log.Error().Err(err).Str("item_id", uc.item.ID).Msg("commit de conteo falló")
		return nil, err
	}

	committed := *uc.item
	committed.CurrentStock = candidate
	committed.LastCountedInSessionID = &sessionID
	now := time.Now()
	committed.LastCountedAt = &now

	uc.log.Info().Str("item_id", committed.ID).Int("stock", candidate).
		Str("session_id", sessionID).Msg("conteo registrado")

	// Flujo terminado: descartar selección; el caller debe refrescar el checklist.
	uc.item = nil
	uc.state = FlowIdle
	return &committed, nil
}

// Close descarta la selección y el ScanContext en memoria y libera el escáner.
// No toca estado persistido; cerrar sin selección también es un no-op válido.
func (uc *CountingUseCase) Close() {
	uc.mu.Lock()
	uc.item = nil
	uc.state = FlowIdle
	uc.scanCtx = nil
	uc.mu.Unlock()
	uc.scanner.Stop()
}
