package auth

import (
	"context"

	"github.com/tu-usuario/gestion-pro/internal/application/dto"
	"github.com/tu-usuario/gestion-pro/internal/domain"
	"github.com/tu-usuario/gestion-pro/internal/domain/entity"
	"github.com/tu-usuario/gestion-pro/internal/domain/repository"
	"github.com/tu-usuario/gestion-pro/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// accessInvalidator descarta la proyección de acceso cacheada de un usuario.
// Lo implementa *access.AccessUseCase; la interfaz evita el import circular.
type accessInvalidator interface {
	Invalidate(ctx context.Context, userID string)
}

// AuthUseCase caso de uso de autenticación: login y emisión de tokens.
// El token identifica (id + email), nunca autoriza: el tier se resuelve en
// cada petición por el motor de acceso.
type AuthUseCase struct {
	userRepo repository.UserRepository
	invalid  accessInvalidator
	jwtCfg   JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth. invalid puede ser nil.
func NewAuthUseCase(userRepo repository.UserRepository, invalid accessInvalidator, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, invalid: invalid, jwtCfg: jwtCfg}
}

// Login verifica email/password, genera JWT y retorna token + usuario.
// Invalida la proyección de acceso cacheada: un login es un cambio de
// identidad y la resolución debe rehacerse en fresco.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.FindByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if user.Status != "active" {
		return nil, domain.ErrForbidden
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Email, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	if uc.invalid != nil {
		uc.invalid.Invalidate(ctx, user.ID)
	}
	return &dto.LoginResponse{
		Token: token,
		User:  *ToUserResponse(user),
	}, nil
}

// ToUserResponse proyecta un User a su DTO de salida.
func ToUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Status:    u.Status,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
