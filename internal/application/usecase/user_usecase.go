package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Turnos-api/internal/application/collation"
	"github.com/jhoicas/Turnos-api/internal/application/dto"
	"github.com/jhoicas/Turnos-api/internal/domain"
	"github.com/jhoicas/Turnos-api/internal/domain/access"
	"github.com/jhoicas/Turnos-api/internal/domain/entity"
	"github.com/jhoicas/Turnos-api/internal/domain/repository"
	"github.com/jhoicas/Turnos-api/pkg/logger"
)

// UserUseCase administración de usuarios y de sus puestos asignados.
type UserUseCase struct {
	users     repository.UserRepository
	positions repository.PositionRepository
	log       *logger.Logger
	cost      int
}

// NewUserUseCase construye el caso de uso con los puertos de persistencia.
func NewUserUseCase(users repository.UserRepository, positions repository.PositionRepository, log *logger.Logger) *UserUseCase {
	return &UserUseCase{users: users, positions: positions, log: log, cost: bcrypt.DefaultCost}
}

// WithBcryptCost ajusta el coste de bcrypt (tests usan bcrypt.MinCost).
func (uc *UserUseCase) WithBcryptCost(cost int) *UserUseCase {
	uc.cost = cost
	return uc
}

// List todos los usuarios, ordenados por nombre. Solo ADMIN.
func (uc *UserUseCase) List(ctx context.Context, claim access.Claim) ([]dto.UserResponse, error) {
	if !access.CanViewAllUsers(claim.Role) {
		return nil, fmt.Errorf("listar usuarios: %w", domain.ErrForbidden)
	}
	users, err := uc.users.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	collation.SortUsers(users)
	return dto.NewUserResponses(users), nil
}

// Get un usuario. ADMIN ve a cualquiera; el resto solo a sí mismo.
func (uc *UserUseCase) Get(ctx context.Context, claim access.Claim, id string) (*dto.UserResponse, error) {
	if !access.CanViewUser(claim, id) {
		return nil, fmt.Errorf("ver usuario %s: %w", id, domain.ErrForbidden)
	}
	u, err := uc.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := dto.NewUserResponse(u)
	return &resp, nil
}

// Create da de alta un usuario con la contraseña hasheada. Solo ADMIN.
func (uc *UserUseCase) Create(ctx context.Context, claim access.Claim, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	if !access.CanManageUsers(claim.Role) {
		return nil, fmt.Errorf("crear usuario: %w", domain.ErrForbidden)
	}
	name := strings.TrimSpace(in.Name)
	email := normalizeEmail(in.Email)
	role := entity.Role(strings.ToUpper(strings.TrimSpace(in.Role)))
	if name == "" || email == "" || len(in.Password) < 8 {
		return nil, fmt.Errorf("name, email y password (mín. 8) son requeridos: %w", domain.ErrInvalidInput)
	}
	if !role.Valid() {
		return nil, fmt.Errorf("role %q: %w", in.Role, domain.ErrInvalidInput)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), uc.cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	u := &entity.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		PositionIDs:  entity.DedupIDs(in.PositionIDs),
	}
	if err := uc.users.Create(ctx, u); err != nil {
		return nil, err
	}
	uc.log.Info().Str("user_id", u.ID).Str("role", string(u.Role)).Str("by", claim.UserID).Msg("usuario creado")
	resp := dto.NewUserResponse(u)
	return &resp, nil
}

// Update cambios parciales. positionIds, si viene, reemplaza el conjunto completo.
func (uc *UserUseCase) Update(ctx context.Context, claim access.Claim, id string, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	if !access.CanManageUsers(claim.Role) {
		return nil, fmt.Errorf("actualizar usuario: %w", domain.ErrForbidden)
	}
	var p entity.UserPatch
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, fmt.Errorf("name vacío: %w", domain.ErrInvalidInput)
		}
		p.Name = &name
	}
	if in.Email != nil {
		email := normalizeEmail(*in.Email)
		if email == "" {
			return nil, fmt.Errorf("email vacío: %w", domain.ErrInvalidInput)
		}
		p.Email = &email
	}
	if in.Role != nil {
		role := entity.Role(strings.ToUpper(strings.TrimSpace(*in.Role)))
		if !role.Valid() {
			return nil, fmt.Errorf("role %q: %w", *in.Role, domain.ErrInvalidInput)
		}
		if id == claim.UserID && role != entity.RoleAdmin {
			return nil, fmt.Errorf("un ADMIN no puede quitarse su propio rol: %w", domain.ErrInvalidInput)
		}
		p.Role = &role
	}
	if in.Password != nil {
		if len(*in.Password) < 8 {
			return nil, fmt.Errorf("password (mín. 8): %w", domain.ErrInvalidInput)
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), uc.cost)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		h := string(hash)
		p.PasswordHash = &h
	}
	if in.PositionIDs != nil {
		ids := entity.DedupIDs(*in.PositionIDs)
		p.PositionIDs = &ids
	}
	if p.Name == nil && p.Email == nil && p.Role == nil && p.PasswordHash == nil && p.PositionIDs == nil {
		return nil, fmt.Errorf("actualizar usuario: sin campos: %w", domain.ErrInvalidInput)
	}

	u, err := uc.users.Update(ctx, id, p)
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("user_id", id).Str("by", claim.UserID).Msg("usuario actualizado")
	resp := dto.NewUserResponse(u)
	return &resp, nil
}

// Delete borra un usuario. Un ADMIN no puede borrarse a sí mismo.
func (uc *UserUseCase) Delete(ctx context.Context, claim access.Claim, id string) error {
	if !access.CanManageUsers(claim.Role) {
		return fmt.Errorf("borrar usuario: %w", domain.ErrForbidden)
	}
	if id == claim.UserID {
		return fmt.Errorf("no puedes borrar tu propio usuario: %w", domain.ErrInvalidInput)
	}
	if err := uc.users.Delete(ctx, id); err != nil {
		return err
	}
	uc.log.Info().Str("user_id", id).Str("by", claim.UserID).Msg("usuario borrado")
	return nil
}

// ListPositions todos los puestos.
func (uc *UserUseCase) ListPositions(ctx context.Context) ([]dto.PositionResponse, error) {
	positions, err := uc.positions.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return dto.NewPositionResponses(positions), nil
}

// CreatePosition alta de puesto. Sin id se deriva del nombre. Solo ADMIN.
func (uc *UserUseCase) CreatePosition(ctx context.Context, claim access.Claim, in dto.CreatePositionRequest) (*dto.PositionResponse, error) {
	if !access.CanManagePositions(claim.Role) {
		return nil, fmt.Errorf("crear puesto: %w", domain.ErrForbidden)
	}
	name := strings.TrimSpace(in.Name)
	id := strings.TrimSpace(in.ID)
	if id == "" {
		id = collation.Slug(name)
	}
	if name == "" || id == "" {
		return nil, fmt.Errorf("name es requerido: %w", domain.ErrInvalidInput)
	}
	p := &entity.Position{ID: id, Name: name}
	if err := uc.positions.Create(ctx, p); err != nil {
		return nil, err
	}
	uc.log.Info().Str("position_id", p.ID).Str("by", claim.UserID).Msg("puesto creado")
	return &dto.PositionResponse{ID: p.ID, Name: p.Name}, nil
}

// RenamePosition cambia el nombre visible de un puesto. Solo ADMIN.
func (uc *UserUseCase) RenamePosition(ctx context.Context, claim access.Claim, id string, in dto.UpdatePositionRequest) (*dto.PositionResponse, error) {
	if !access.CanManagePositions(claim.Role) {
		return nil, fmt.Errorf("renombrar puesto: %w", domain.ErrForbidden)
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("name es requerido: %w", domain.ErrInvalidInput)
	}
	p, err := uc.positions.Rename(ctx, id, name)
	if err != nil {
		return nil, err
	}
	return &dto.PositionResponse{ID: p.ID, Name: p.Name}, nil
}

// ListPositionUsers usuarios asignados a un puesto. ADMIN o asignados al puesto.
func (uc *UserUseCase) ListPositionUsers(ctx context.Context, claim access.Claim, positionID string) ([]dto.UserResponse, error) {
	if !access.CanAccessPosition(claim.PositionIDs, positionID, claim.Role) {
		return nil, fmt.Errorf("usuarios del puesto %s: %w", positionID, domain.ErrForbidden)
	}
	if _, err := uc.positions.GetByID(ctx, positionID); err != nil {
		return nil, err
	}
	users, err := uc.users.ListByPosition(ctx, positionID)
	if err != nil {
		return nil, err
	}
	collation.SortUsers(users)
	return dto.NewUserResponses(users), nil
}

func normalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// isNotFound atajo para errores de lookup.
func isNotFound(err error) bool {
	return errors.Is(err, domain.ErrNotFound)
}
