// Package auth emite y verifica la identidad firmada (JWT) de quien usa la API.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Turnos-api/internal/application/dto"
	"github.com/jhoicas/Turnos-api/internal/domain"
	"github.com/jhoicas/Turnos-api/internal/domain/access"
	"github.com/jhoicas/Turnos-api/internal/domain/entity"
	"github.com/jhoicas/Turnos-api/internal/domain/repository"
	"github.com/jhoicas/Turnos-api/pkg/jwt"
	"github.com/jhoicas/Turnos-api/pkg/logger"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// hash de relleno para que un email inexistente también pague el coste de bcrypt.
const dummyHash = "$2a$10$7EqJtq98hPqEX7fNZaFWoOhi5BWX4Z3u3Kq6G8QW0dSx9x4hZ3x6K"

// AuthUseCase login y verificación de tokens.
type AuthUseCase struct {
	users  repository.UserRepository
	jwtCfg JWTConfig
	log    *logger.Logger
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(users repository.UserRepository, jwtCfg JWTConfig, log *logger.Logger) *AuthUseCase {
	return &AuthUseCase{users: users, jwtCfg: jwtCfg, log: log}
}

// Login verifica email/password y devuelve token + usuario.
// Email desconocido y contraseña incorrecta dan el mismo error.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	user, err := uc.users.GetByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		_ = bcrypt.CompareHashAndPassword([]byte(dummyHash), []byte(in.Password))
		return nil, domain.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		uc.log.Warn().Str("user_id", user.ID).Msg("login fallido")
		return nil, domain.ErrInvalidCredentials
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, jwt.Identity{
		UserID:      user.ID,
		Email:       user.Email,
		Role:        string(user.Role),
		PositionIDs: user.PositionIDs,
	}, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, fmt.Errorf("generar token: %w", err)
	}
	uc.log.Info().Str("user_id", user.ID).Str("role", string(user.Role)).Msg("login")
	return &dto.LoginResponse{Token: token, User: dto.NewUserResponse(user)}, nil
}

// Verify valida el token y devuelve el claim. Un rol desconocido invalida el token.
func (uc *AuthUseCase) Verify(token string) (access.Claim, error) {
	id, err := jwt.Parse(uc.jwtCfg.Secret, token)
	if err != nil {
		return access.Claim{}, fmt.Errorf("token: %v: %w", err, domain.ErrUnauthenticated)
	}
	role := entity.Role(id.Role)
	if id.UserID == "" || !role.Valid() {
		return access.Claim{}, fmt.Errorf("token sin identidad válida: %w", domain.ErrUnauthenticated)
	}
	return access.Claim{
		UserID:      id.UserID,
		Email:       id.Email,
		Role:        role,
		PositionIDs: entity.DedupIDs(id.PositionIDs),
	}, nil
}

// Me datos actuales del usuario autenticado (leídos de la DB, no del token).
func (uc *AuthUseCase) Me(ctx context.Context, claim access.Claim) (*dto.UserResponse, error) {
	u, err := uc.users.GetByID(ctx, claim.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("usuario del token ya no existe: %w", domain.ErrUnauthenticated)
		}
		return nil, err
	}
	resp := dto.NewUserResponse(u)
	return &resp, nil
}
