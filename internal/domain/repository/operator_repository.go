package repository

import "github.com/tojem/stock-taker-api/internal/domain/entity"

// OperatorRepository define el puerto de persistencia para operarios (DIP).
type OperatorRepository interface {
	GetByEmail(email string) (*entity.Operator, error)
	Create(op *entity.Operator) error
}
