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

var _ repository.OperatorRepository = (*OperatorRepo)(nil)

// OperatorRepo implementación de OperatorRepository sobre PostgreSQL.
type OperatorRepo struct {
	q Querier
}

// NewOperatorRepository construye el adaptador de operarios. Pasar pool o tx (Querier).
func NewOperatorRepository(q Querier) *OperatorRepo {
	return &OperatorRepo{q: q}
}

// GetByEmail obtiene un operario por email. nil si no existe.
func (r *OperatorRepo) GetByEmail(email string) (*entity.Operator, error) {
	query := `
		SELECT id, email, name, password_hash, created_at
		FROM operators WHERE email = $1`
	var op entity.Operator
	err := r.q.QueryRow(context.Background(), query, email).Scan(
		&op.ID, &op.Email, &op.Name, &op.PasswordHash, &op.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get operator: %w", err)
	}
	return &op, nil
}

// Create persiste un operario nuevo.
func (r *OperatorRepo) Create(op *entity.Operator) error {
	query := `
		INSERT INTO operators (id, email, name, password_hash, created_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query,
		op.ID, op.Email, op.Name, op.PasswordHash, op.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("insert operator: %w", err)
	}
	return nil
}
