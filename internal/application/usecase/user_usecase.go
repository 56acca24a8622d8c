package usecase

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/tu-usuario/stock-control/internal/application/audit"
	"github.com/tu-usuario/stock-control/internal/application/dto"
	"github.com/tu-usuario/stock-control/internal/domain"
	"github.com/tu-usuario/stock-control/internal/domain/entity"
	"github.com/tu-usuario/stock-control/internal/domain/repository"
)

const (
	oneTimePasswordLen     = 12
	oneTimePasswordCharset = "abcdefghijkmnpqrstuvwxyzABCDEFGHJKLMNPQRSTUVWXYZ23456789"
)

// UserUseCase casos de uso de usuarios (solo admin). La contraseña inicial es
// one-time: generada en el servidor, mostrada una única vez, persistida solo
// como hash bcrypt.
type UserUseCase struct {
	users    repository.UserRepository
	recorder *audit.Recorder
}

// NewUserUseCase construye el caso de uso.
func NewUserUseCase(users repository.UserRepository, recorder *audit.Recorder) *UserUseCase {
	return &UserUseCase{users: users, recorder: recorder}
}

// generateOneTimePassword genera una contraseña aleatoria con crypto/rand.
// El charset excluye caracteres ambiguos (0/O, 1/l/I).
func generateOneTimePassword() (string, error) {
	buf := make([]byte, oneTimePasswordLen)
	max := big.NewInt(int64(len(oneTimePasswordCharset)))
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("generar contraseña: %w", err)
		}
		buf[i] = oneTimePasswordCharset[n.Int64()]
	}
	return string(buf), nil
}

// Create crea un usuario y devuelve la contraseña one-time generada.
func (uc *UserUseCase) Create(ctx context.Context, actorID string, in dto.CreateUserRequest) (*dto.CreateUserResponse, error) {
	if !entity.ValidRole(in.Role) {
		return nil, &domain.ValidationError{Field: "role", Reason: "rol desconocido"}
	}
	password, err := generateOneTimePassword()
	if err != nil {
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashear contraseña: %w", err)
	}
	now := time.Now()
	u := &entity.User{
		ID:           uuid.New().String(),
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: string(hash),
		Role:         in.Role,
		Status:       entity.UserStatusActive,
		LocationID:   in.LocationID,
		Phone:        in.Phone,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.users.Create(ctx, u); err != nil {
		return nil, err
	}
	if err := uc.recorder.Record(ctx, actorID, entity.ActionCreate, entity.EntityUser,
		u.ID, u.Name, "usuario creado", nil, dto.UserToResponse(u)); err != nil {
		return nil, err
	}
	return &dto.CreateUserResponse{
		User:            dto.UserToResponse(u),
		OneTimePassword: password,
	}, nil
}

// GetByID obtiene un usuario por ID.
func (uc *UserUseCase) GetByID(ctx context.Context, id string) (*dto.UserResponse, error) {
	u, err := uc.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrUserNotFound
	}
	resp := dto.UserToResponse(u)
	return &resp, nil
}

// Update actualiza un usuario. El hash de contraseña no se toca por aquí.
func (uc *UserUseCase) Update(ctx context.Context, actorID, id string, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	u, err := uc.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrUserNotFound
	}
	old := dto.UserToResponse(u)
	if in.Name != nil {
		u.Name = *in.Name
	}
	if in.Email != nil {
		u.Email = *in.Email
	}
	if in.Role != nil {
		if !entity.ValidRole(*in.Role) {
			return nil, &domain.ValidationError{Field: "role", Reason: "rol desconocido"}
		}
		u.Role = *in.Role
	}
	if in.Status != nil {
		u.Status = *in.Status
	}
	if in.LocationID != nil {
		u.LocationID = in.LocationID
	}
	if in.Phone != nil {
		u.Phone = *in.Phone
	}
	u.UpdatedAt = time.Now()
	if err := uc.users.Update(ctx, u); err != nil {
		return nil, err
	}
	if err := uc.recorder.Record(ctx, actorID, entity.ActionUpdate, entity.EntityUser,
		u.ID, u.Name, "usuario actualizado", old, dto.UserToResponse(u)); err != nil {
		return nil, err
	}
	resp := dto.UserToResponse(u)
	return &resp, nil
}

// Delete borra un usuario. Un admin no puede borrarse a sí mismo.
func (uc *UserUseCase) Delete(ctx context.Context, actorID, id string) error {
	if actorID == id {
		return &domain.ConflictError{Entity: "user", Reason: "un usuario no puede borrarse a sí mismo"}
	}
	u, err := uc.users.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if u == nil {
		return domain.ErrUserNotFound
	}
	if err := uc.users.Delete(ctx, id); err != nil {
		return err
	}
	return uc.recorder.Record(ctx, actorID, entity.ActionDelete, entity.EntityUser,
		u.ID, u.Name, "usuario borrado", dto.UserToResponse(u), nil)
}

// List lista todos los usuarios.
func (uc *UserUseCase) List(ctx context.Context) ([]dto.UserResponse, error) {
	list, err := uc.users.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		out = append(out, dto.UserToResponse(u))
	}
	return out, nil
}
