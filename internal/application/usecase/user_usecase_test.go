package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Turnos-api/internal/application/dto"
	"github.com/jhoicas/Turnos-api/internal/domain"
	"github.com/jhoicas/Turnos-api/internal/domain/access"
	"github.com/jhoicas/Turnos-api/internal/domain/entity"
	"github.com/jhoicas/Turnos-api/internal/testutil/memrepo"
	"github.com/jhoicas/Turnos-api/pkg/logger"
)

var (
	adminClaim    = access.Claim{UserID: "u-admin", Role: entity.RoleAdmin}
	superClaim    = access.Claim{UserID: "u-sup", Role: entity.RoleSupervisor, PositionIDs: []string{"tienda"}}
	employeeClaim = access.Claim{UserID: "u-emp", Role: entity.RoleEmployee, PositionIDs: []string{"pista"}}
)

func newStore() *memrepo.Store {
	st := memrepo.New()
	st.AddPosition("pista", "Pista")
	st.AddPosition("tienda", "Tienda")
	st.AddPosition("caja", "Caja")
	st.AddUser(&entity.User{ID: "u-admin", Name: "Ana", Email: "ana@turnos.local", Role: entity.RoleAdmin})
	st.AddUser(&entity.User{ID: "u-sup", Name: "Sara", Email: "sara@turnos.local", Role: entity.RoleSupervisor, PositionIDs: []string{"tienda"}})
	st.AddUser(&entity.User{ID: "u-emp", Name: "Eva", Email: "eva@turnos.local", Role: entity.RoleEmployee, PositionIDs: []string{"pista"}})
	return st
}

func newUserUseCase(st *memrepo.Store) *UserUseCase {
	return NewUserUseCase(st.Users, st.Positions, logger.Nop()).WithBcryptCost(bcrypt.MinCost)
}

// ────────────────────────────────────────────────────────────────
// Usuarios
// ────────────────────────────────────────────────────────────────

func TestUserUseCase_CreateHasheaYDeduplicaPuestos(t *testing.T) {
	st := newStore()
	uc := newUserUseCase(st)

	resp, err := uc.Create(context.Background(), adminClaim, dto.CreateUserRequest{
		Name:        "  Luis  ",
		Email:       "Luis@Turnos.LOCAL ",
		Password:    "secreta123",
		Role:        "employee",
		PositionIDs: []string{"pista", "caja", "pista"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Luis", resp.Name)
	assert.Equal(t, "luis@turnos.local", resp.Email)
	assert.Equal(t, "EMPLOYEE", resp.Role)
	assert.Equal(t, []string{"pista", "caja"}, resp.PositionIDs)

	stored, err := st.Users.GetByID(context.Background(), resp.ID)
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("secreta123")))
}

func TestUserUseCase_CreateErrores(t *testing.T) {
	st := newStore()
	uc := newUserUseCase(st)
	ok := dto.CreateUserRequest{Name: "Luis", Email: "luis@turnos.local", Password: "secreta123", Role: "EMPLOYEE"}

	_, err := uc.Create(context.Background(), superClaim, ok)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	dup := ok
	dup.Email = "EVA@turnos.local"
	_, err = uc.Create(context.Background(), adminClaim, dup)
	assert.ErrorIs(t, err, domain.ErrAlreadyExists)

	badRole := ok
	badRole.Role = "OWNER"
	_, err = uc.Create(context.Background(), adminClaim, badRole)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	short := ok
	short.Password = "corta"
	_, err = uc.Create(context.Background(), adminClaim, short)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	badPos := ok
	badPos.PositionIDs = []string{"inexistente"}
	_, err = uc.Create(context.Background(), adminClaim, badPos)
	assert.ErrorIs(t, err, domain.ErrInvalidReference)
}

func TestUserUseCase_UpdateReemplazaPuestos(t *testing.T) {
	st := newStore()
	uc := newUserUseCase(st)
	st.AddUser(&entity.User{ID: "u-x", Name: "Xavi", Email: "x@turnos.local", Role: entity.RoleEmployee, PositionIDs: []string{"pista", "tienda"}})

	ids := []string{"tienda", "caja"}
	resp, err := uc.Update(context.Background(), adminClaim, "u-x", dto.UpdateUserRequest{PositionIDs: &ids})
	require.NoError(t, err)
	assert.Equal(t, []string{"tienda", "caja"}, resp.PositionIDs)
	assert.Equal(t, "Xavi", resp.Name)
}

func TestUserUseCase_UpdateErrores(t *testing.T) {
	st := newStore()
	uc := newUserUseCase(st)

	_, err := uc.Update(context.Background(), adminClaim, "u-emp", dto.UpdateUserRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	name := "Otra"
	_, err = uc.Update(context.Background(), employeeClaim, "u-emp", dto.UpdateUserRequest{Name: &name})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = uc.Update(context.Background(), adminClaim, "nope", dto.UpdateUserRequest{Name: &name})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	role := "EMPLOYEE"
	_, err = uc.Update(context.Background(), adminClaim, "u-admin", dto.UpdateUserRequest{Role: &role})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	email := "sara@turnos.local"
	_, err = uc.Update(context.Background(), adminClaim, "u-emp", dto.UpdateUserRequest{Email: &email})
	assert.ErrorIs(t, err, domain.ErrAlreadyExists)
}

func TestUserUseCase_UpdatePassword(t *testing.T) {
	st := newStore()
	uc := newUserUseCase(st)

	pw := "nuevaClave99"
	_, err := uc.Update(context.Background(), adminClaim, "u-emp", dto.UpdateUserRequest{Password: &pw})
	require.NoError(t, err)

	stored, err := st.Users.GetByID(context.Background(), "u-emp")
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte(pw)))
}

func TestUserUseCase_DeleteDejaCompletedByEnNull(t *testing.T) {
	st := newStore()
	uc := newUserUseCase(st)
	st.AddTask(&entity.Task{ID: "t1", Status: entity.TaskCompleted, PositionID: "pista", CompletedByID: "u-emp"})

	assert.ErrorIs(t, uc.Delete(context.Background(), adminClaim, "u-admin"), domain.ErrInvalidInput)
	assert.ErrorIs(t, uc.Delete(context.Background(), superClaim, "u-emp"), domain.ErrForbidden)
	require.NoError(t, uc.Delete(context.Background(), adminClaim, "u-emp"))

	assert.Equal(t, "", st.Task("t1").CompletedByID)
	_, err := st.Users.GetByID(context.Background(), "u-emp")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUserUseCase_ListYGet(t *testing.T) {
	st := newStore()
	uc := newUserUseCase(st)

	list, err := uc.List(context.Background(), adminClaim)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, []string{"Ana", "Eva", "Sara"}, []string{list[0].Name, list[1].Name, list[2].Name})

	_, err = uc.List(context.Background(), superClaim)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	me, err := uc.Get(context.Background(), employeeClaim, "u-emp")
	require.NoError(t, err)
	assert.Equal(t, "Eva", me.Name)

	_, err = uc.Get(context.Background(), employeeClaim, "u-sup")
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

// ────────────────────────────────────────────────────────────────
// Puestos
// ────────────────────────────────────────────────────────────────

func TestUserUseCase_CreatePositionDerivaID(t *testing.T) {
	st := newStore()
	uc := newUserUseCase(st)

	p, err := uc.CreatePosition(context.Background(), adminClaim, dto.CreatePositionRequest{Name: "Almacén Norte"})
	require.NoError(t, err)
	assert.Equal(t, "almacen-norte", p.ID)

	_, err = uc.CreatePosition(context.Background(), adminClaim, dto.CreatePositionRequest{ID: "pista", Name: "Pista 2"})
	assert.ErrorIs(t, err, domain.ErrAlreadyExists)

	_, err = uc.CreatePosition(context.Background(), superClaim, dto.CreatePositionRequest{Name: "X"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestUserUseCase_RenamePosition(t *testing.T) {
	st := newStore()
	uc := newUserUseCase(st)

	p, err := uc.RenamePosition(context.Background(), adminClaim, "caja", dto.UpdatePositionRequest{Name: "Caja central"})
	require.NoError(t, err)
	assert.Equal(t, "Caja central", p.Name)

	_, err = uc.RenamePosition(context.Background(), adminClaim, "nope", dto.UpdatePositionRequest{Name: "X"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUserUseCase_ListPositionUsers(t *testing.T) {
	st := newStore()
	uc := newUserUseCase(st)

	users, err := uc.ListPositionUsers(context.Background(), employeeClaim, "pista")
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "u-emp", users[0].ID)

	_, err = uc.ListPositionUsers(context.Background(), employeeClaim, "tienda")
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = uc.ListPositionUsers(context.Background(), adminClaim, "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
