package auth

import (
	"github.com/tojem/stock-taker-api/internal/application/dto"
	"github.com/tojem/stock-taker-api/internal/domain"
	"github.com/tojem/stock-taker-api/internal/domain/repository"
	"github.com/tojem/stock-taker-api/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase login del operario del dispositivo escáner. Sin token válido el
// dispositivo no está "listo" y ninguna operación de conteo es accesible.
type AuthUseCase struct {
	operatorRepo repository.OperatorRepository
	jwtCfg       JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(operatorRepo repository.OperatorRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{operatorRepo: operatorRepo, jwtCfg: jwtCfg}
}

// Login compara credenciales con bcrypt y emite el token del dispositivo.
// Credenciales desconocidas o incorrectas devuelven ErrUnauthorized sin detalle.
func (uc *AuthUseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	if in.Email == "" || in.Password == "" {
		return nil, domain.ErrInvalidInput
	}
	op, err := uc.operatorRepo.GetByEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if op == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(op.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, op.ID, op.Email, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{Token: token, Operator: op.Name, Email: op.Email}, nil
}
