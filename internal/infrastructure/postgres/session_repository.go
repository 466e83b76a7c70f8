package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tojem/stock-taker-api/internal/domain"
	"github.com/tojem/stock-taker-api/internal/domain/entity"
	"github.com/tojem/stock-taker-api/internal/domain/repository"
)

var _ repository.SessionRepository = (*SessionRepo)(nil)

// SessionRepo implementación de SessionRepository sobre PostgreSQL (usable con pool o tx).
type SessionRepo struct {
	q Querier
}

// NewSessionRepository construye el adaptador de sesiones. Pasar pool o tx (Querier).
func NewSessionRepository(q Querier) *SessionRepo {
	return &SessionRepo{q: q}
}

// Create inserta una sesión in-progress con StartedAt del servidor y devuelve la
// sesión creada. El índice único parcial sobre in-progress convierte un doble
// inicio concurrente en ErrActiveSession.
func (r *SessionRepo) Create(startedBy string) (*entity.StockTakeSession, error) {
	query := `
		INSERT INTO stock_take_sessions (id, started_at, started_by, status, completed_at)
		VALUES (gen_random_uuid(), now(), $1, $2, NULL)
		RETURNING id, started_at`
	s := entity.StockTakeSession{StartedBy: startedBy, Status: entity.SessionInProgress}
	err := r.q.QueryRow(context.Background(), query, startedBy, entity.SessionInProgress).
		Scan(&s.ID, &s.StartedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrActiveSession
		}
		return nil, fmt.Errorf("insert session: %w", err)
	}
	return &s, nil
}

// GetByID obtiene una sesión por ID. nil si no existe.
func (r *SessionRepo) GetByID(id string) (*entity.StockTakeSession, error) {
	query := `
		SELECT id, started_at, started_by, status, completed_at
		FROM stock_take_sessions WHERE id = $1`
	var s entity.StockTakeSession
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&s.ID, &s.StartedAt, &s.StartedBy, &s.Status, &s.CompletedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get session: %w", err)
	}
	return &s, nil
}

// FindActive devuelve las sesiones in-progress, la más antigua primero.
func (r *SessionRepo) FindActive() ([]entity.StockTakeSession, error) {
	query := `
		SELECT id, started_at, started_by, status, completed_at
		FROM stock_take_sessions
		WHERE status = $1
		ORDER BY started_at ASC`
	rows, err := r.q.Query(context.Background(), query, entity.SessionInProgress)
	if err != nil {
		return nil, fmt.Errorf("find active sessions: %w", err)
	}
	defer rows.Close()

	var sessions []entity.StockTakeSession
	for rows.Next() {
		var s entity.StockTakeSession
		if err := rows.Scan(&s.ID, &s.StartedAt, &s.StartedBy, &s.Status, &s.CompletedAt); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		sessions = append(sessions, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("find active sessions: %w", err)
	}
	return sessions, nil
}

// Finish marca la sesión como completed con CompletedAt del servidor. El update
// está condicionado a in-progress: repetir el finish no re-estampa ni es error.
func (r *SessionRepo) Finish(id string) error {
	query := `
		UPDATE stock_take_sessions
		SET status = $2, completed_at = now()
		WHERE id = $1 AND status = $3`
	_, err := r.q.Exec(context.Background(), query, id, entity.SessionCompleted, entity.SessionInProgress)
	if err != nil {
		return fmt.Errorf("finish session: %w", err)
	}
	return nil
}
