// Package auth implementa el inicio de sesión y la emisión de tokens.
package auth

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	"github.com/tu-usuario/stock-control/internal/application/audit"
	"github.com/tu-usuario/stock-control/internal/application/dto"
	"github.com/tu-usuario/stock-control/internal/domain"
	"github.com/tu-usuario/stock-control/internal/domain/entity"
	"github.com/tu-usuario/stock-control/internal/domain/repository"
	"github.com/tu-usuario/stock-control/pkg/config"
	"github.com/tu-usuario/stock-control/pkg/jwt"
)

// UseCase login con email + contraseña contra el hash bcrypt almacenado.
// Credenciales malas y usuario inexistente devuelven el mismo error: el
// endpoint no filtra qué emails existen.
type UseCase struct {
	users    repository.UserRepository
	recorder *audit.Recorder
	jwtCfg   config.JWTConfig
}

// NewUseCase construye el caso de uso.
func NewUseCase(users repository.UserRepository, recorder *audit.Recorder, jwtCfg config.JWTConfig) *UseCase {
	return &UseCase{users: users, recorder: recorder, jwtCfg: jwtCfg}
}

// Login verifica credenciales y emite un JWT con user_id y role.
// Un usuario inactivo no puede iniciar sesión.
func (uc *UseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	u, err := uc.users.FindByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if u == nil {
		// Igualar el costo con un compare dummy para no delatar por timing
		// qué emails existen.
		_ = bcrypt.CompareHashAndPassword(
			[]byte("$2a$10$0000000000000000000000uGZwH0N1p7C0y1x0y1x0y1x0y1x0y1x"), []byte(in.Password))
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if u.Status != entity.UserStatusActive {
		return nil, domain.ErrForbidden
	}

	token, err := jwt.Generate(uc.jwtCfg.Secret, u.ID, u.Role, uc.jwtCfg.Issuer, uc.jwtCfg.Expiration)
	if err != nil {
		return nil, err
	}
	if err := uc.recorder.Record(ctx, u.ID, entity.ActionLogin, entity.EntityUser,
		u.ID, u.Name, "inicio de sesión", nil, nil); err != nil {
		return nil, err
	}
	return &dto.LoginResponse{Token: token, User: dto.UserToResponse(u)}, nil
}
