package stocktake

import (
	"context"

	"github.com/tojem/stock-taker-api/internal/domain/entity"
	"github.com/tojem/stock-taker-api/internal/domain/repository"
	"github.com/tojem/stock-taker-api/pkg/logger"
)

// SessionUseCase ciclo de vida de la sesión de conteo: iniciar (con reset masivo de
// marcadores en la misma transacción), consultar la activa y terminar.
type SessionUseCase struct {
	txRunner    TxRunner
	sessionRepo repository.SessionRepository
	log         *logger.Logger
}

// NewSessionUseCase construye el caso de uso.
func NewSessionUseCase(txRunner TxRunner, sessionRepo repository.SessionRepository, log *logger.Logger) *SessionUseCase {
	return &SessionUseCase{txRunner: txRunner, sessionRepo: sessionRepo, log: log}
}

// Start crea la sesión in-progress y limpia LastCountedInSessionID en todos los
// ítems dentro de una única transacción. Nunca debe observarse una sesión en curso
// con marcadores de una sesión anterior, ni un reset sin sesión: si algo falla se
// hace rollback completo y no queda estado parcial.
func (uc *SessionUseCase) Start(ctx context.Context, startedBy string) (*entity.StockTakeSession, error) {
	var created *entity.StockTakeSession
	err := uc.txRunner.Run(ctx, func(
		sessionRepo repository.SessionRepository,
		itemRepo repository.ItemRepository,
	) error {
		session, err := sessionRepo.Create(startedBy)
		if err != nil {
			return err
		}
		if err := itemRepo.ClearSessionMarkers(); err != nil {
			return err
		}
		created = session
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("session_id", created.ID).Str("started_by", startedBy).
		Msg("sesión de conteo iniciada, marcadores reseteados")
	return created, nil
}

// GetActive devuelve la sesión in-progress o nil si no hay ninguna.
// Más de una activa es una inconsistencia de datos (p. ej. dos dispositivos
// iniciando a la vez contra un store sin el índice único): se registra y se
// devuelve la más antigua.
func (uc *SessionUseCase) GetActive(ctx context.Context) (*entity.StockTakeSession, error) {
	sessions, err := uc.sessionRepo.FindActive()
	if err != nil {
		return nil, err
	}
	if len(sessions) == 0 {
		return nil, nil
	}
	if len(sessions) > 1 {
		uc.log.Warn().Int("count", len(sessions)).Str("kept", sessions[0].ID).
			Msg("más de una sesión in-progress; se usa la más antigua")
	}
	return &sessions[0], nil
}

// GetByID obtiene una sesión por ID.
func (uc *SessionUseCase) GetByID(ctx context.Context, id string) (*entity.StockTakeSession, error) {
	return uc.sessionRepo.GetByID(id)
}

// Finish marca la sesión como completed. Con sessionID vacío es un no-op exitoso.
// Terminar una sesión ya completada tampoco es error y no re-estampa CompletedAt
// (el update está condicionado a status in-progress). No toca marcadores de ítems.
func (uc *SessionUseCase) Finish(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	if err := uc.sessionRepo.Finish(sessionID); err != nil {
		return err
	}
	uc.log.Info().Str("session_id", sessionID).Msg("sesión de conteo terminada")
	return nil
}
