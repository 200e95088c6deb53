package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/bodega/internal/application/dto"
	"github.com/jhoicas/bodega/internal/domain"
	"github.com/jhoicas/bodega/internal/domain/entity"
	"github.com/jhoicas/bodega/internal/domain/repository"
)

// MinPasswordLength largo mínimo de contraseña.
const MinPasswordLength = 8

// UserUseCase aplica reglas de negocio para usuarios.
type UserUseCase struct {
	repo       repository.UserRepository
	bcryptCost int
}

// NewUserUseCase construye el caso de uso con el puerto de persistencia.
func NewUserUseCase(repo repository.UserRepository) *UserUseCase {
	return &UserUseCase{repo: repo, bcryptCost: bcrypt.DefaultCost}
}

// WithBcryptCost ajusta el costo de bcrypt (tests usan bcrypt.MinCost).
func (uc *UserUseCase) WithBcryptCost(cost int) *UserUseCase {
	uc.bcryptCost = cost
	return uc
}

// CreateUser hashea la contraseña y persiste el usuario. Sin roles se asigna ROLE_USER.
func (uc *UserUseCase) CreateUser(ctx context.Context, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	username := strings.TrimSpace(in.Username)
	if username == "" {
		return nil, domain.Invalid("username", "el nombre de usuario es obligatorio")
	}
	if len(in.Password) < MinPasswordLength {
		return nil, domain.Invalid("password", "la contraseña debe tener al menos 8 caracteres")
	}
	existing, err := uc.repo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrUsernameTaken
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), uc.bcryptCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	user := &entity.User{
		ID:           uuid.New().String(),
		Username:     username,
		PasswordHash: string(hash),
		Roles:        entity.JoinRoles(in.Roles),
		Enabled:      true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	resp := dto.ToUserResponse(user)
	return &resp, nil
}

// ResetPassword reemplaza la contraseña del usuario indicado.
func (uc *UserUseCase) ResetPassword(ctx context.Context, in dto.ResetPasswordRequest) error {
	if len(in.Password) < MinPasswordLength {
		return domain.Invalid("password", "la contraseña debe tener al menos 8 caracteres")
	}
	user, err := uc.repo.GetByUsername(ctx, strings.TrimSpace(in.Username))
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), uc.bcryptCost)
	if err != nil {
		return err
	}
	return uc.repo.UpdatePassword(ctx, user.ID, string(hash))
}
