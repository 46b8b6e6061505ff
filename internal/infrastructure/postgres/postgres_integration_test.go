//go:build integration

package postgres_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcPostgres "github.com/testcontainers/testcontainers-go/modules/postgres"

	"github.com/jhoicas/Turnos-api/internal/domain"
	"github.com/jhoicas/Turnos-api/internal/domain/entity"
	"github.com/jhoicas/Turnos-api/internal/domain/repository"
	"github.com/jhoicas/Turnos-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Turnos-api/pkg/logger"
)

// ── Setup ────────────────────────────────────────────────────────────────────

func setupDB(t *testing.T) *pgxpool.Pool {
	t.Helper()
	testcontainers.SkipIfProviderIsNotHealthy(t)
	ctx := context.Background()

	pgC, err := tcPostgres.Run(ctx, "postgres:16-alpine",
		tcPostgres.WithDatabase("turnos_test"),
		tcPostgres.WithUsername("turnos"),
		tcPostgres.WithPassword("turnos"),
		tcPostgres.BasicWaitStrategies(),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pgC.Terminate(ctx) })

	dsn, err := pgC.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	pool, err := postgres.NewPoolFromDSN(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, postgres.NewSchema(pool, logger.Nop()).EnsureSchema(ctx))
	return pool
}

func createUser(t *testing.T, repo repository.UserRepository, email string, role entity.Role, positions ...string) *entity.User {
	t.Helper()
	u := &entity.User{Name: "Usuario " + email, Email: email, PasswordHash: "x", Role: role, PositionIDs: positions}
	require.NoError(t, repo.Create(context.Background(), u))
	return u
}

// ── Schema ───────────────────────────────────────────────────────────────────

func TestEnsureSchema_Idempotente(t *testing.T) {
	pool := setupDB(t)
	ctx := context.Background()
	schema := postgres.NewSchema(pool, logger.Nop())

	require.NoError(t, schema.EnsureSchema(ctx))
	require.NoError(t, schema.EnsureSchema(ctx))

	positions, err := postgres.NewPositionRepository(pool).ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, positions, 5, "los puestos sembrados no se duplican")
}

func TestSeedBootstrapAdmin_SoloUnaVez(t *testing.T) {
	pool := setupDB(t)
	ctx := context.Background()

	created, err := postgres.SeedBootstrapAdmin(ctx, pool, "Admin", "admin@turnos.local", "hash")
	require.NoError(t, err)
	assert.True(t, created)

	created, err = postgres.SeedBootstrapAdmin(ctx, pool, "Admin", "admin@turnos.local", "hash")
	require.NoError(t, err)
	assert.False(t, created)
}

// ── Users ────────────────────────────────────────────────────────────────────

func TestUsers_ActualizarPuestosReemplazaConjunto(t *testing.T) {
	pool := setupDB(t)
	ctx := context.Background()
	repo := postgres.NewUserRepository(pool)

	u := createUser(t, repo, "eva@turnos.local", entity.RoleEmployee, "pista", "tienda")
	next := []string{"tienda", "caja"}
	updated, err := repo.Update(ctx, u.ID, entity.UserPatch{PositionIDs: &next})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"tienda", "caja"}, updated.PositionIDs)

	inPista, err := repo.ListByPosition(ctx, "pista")
	require.NoError(t, err)
	assert.Empty(t, inPista)
}

func TestUsers_PuestoInexistente_NoDejaNadaAMedias(t *testing.T) {
	pool := setupDB(t)
	ctx := context.Background()
	repo := postgres.NewUserRepository(pool)

	u := createUser(t, repo, "eva@turnos.local", entity.RoleEmployee, "pista")
	bad := []string{"tienda", "no-existe"}
	_, err := repo.Update(ctx, u.ID, entity.UserPatch{PositionIDs: &bad})
	require.ErrorIs(t, err, domain.ErrInvalidReference)

	got, err := repo.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"pista"}, got.PositionIDs)
}

func TestUsers_EmailDuplicado(t *testing.T) {
	pool := setupDB(t)
	repo := postgres.NewUserRepository(pool)

	createUser(t, repo, "eva@turnos.local", entity.RoleEmployee)
	err := repo.Create(context.Background(), &entity.User{Name: "Otra", Email: "eva@turnos.local", PasswordHash: "x", Role: entity.RoleEmployee})
	assert.ErrorIs(t, err, domain.ErrAlreadyExists)
}

func TestUsers_BorrarDejaTareasSinCompletador(t *testing.T) {
	pool := setupDB(t)
	ctx := context.Background()
	users := postgres.NewUserRepository(pool)
	tasks := postgres.NewTaskRepository(pool)

	u := createUser(t, users, "eva@turnos.local", entity.RoleEmployee, "pista")
	tk := &entity.Task{Title: "t", Description: "d", Status: entity.TaskCompleted, DueDate: time.Now(), PositionID: "pista", Shift: entity.ShiftMorning, CompletedByID: u.ID}
	require.NoError(t, tasks.Create(ctx, tk))

	require.NoError(t, users.Delete(ctx, u.ID))
	got, err := tasks.GetByID(ctx, tk.ID)
	require.NoError(t, err)
	assert.Empty(t, got.CompletedByID)
}

// ── Tasks ────────────────────────────────────────────────────────────────────

func TestTasks_DuplicarCreaCopiaPendiente(t *testing.T) {
	pool := setupDB(t)
	ctx := context.Background()
	users := postgres.NewUserRepository(pool)
	tasks := postgres.NewTaskRepository(pool)

	u := createUser(t, users, "eva@turnos.local", entity.RoleEmployee, "pista")
	orig := &entity.Task{Title: "Revisar surtidores", Description: "d", Status: entity.TaskCompleted, DueDate: time.Now().Add(-time.Hour),
		PositionID: "pista", Shift: entity.ShiftNight, CompletedByID: u.ID, CompletedLate: true}
	require.NoError(t, tasks.Create(ctx, orig))

	due := time.Date(2026, 4, 1, 22, 0, 0, 0, time.UTC)
	dup, err := tasks.Duplicate(ctx, orig.ID, due)
	require.NoError(t, err)
	assert.NotEqual(t, orig.ID, dup.ID)
	assert.Equal(t, entity.TaskPending, dup.Status)
	assert.Empty(t, dup.CompletedByID)
	assert.False(t, dup.CompletedLate)
	assert.Equal(t, orig.Title, dup.Title)
	assert.Equal(t, entity.ShiftNight, dup.Shift)
	assert.True(t, dup.DueDate.Equal(due))

	_, err = tasks.Duplicate(ctx, "00000000-0000-0000-0000-000000000000", due)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ── Card records ─────────────────────────────────────────────────────────────

func TestCardRecords_UpsertSobrescribe(t *testing.T) {
	pool := setupDB(t)
	ctx := context.Background()
	u := createUser(t, postgres.NewUserRepository(pool), "sara@turnos.local", entity.RoleSupervisor, "tienda")
	tx := postgres.NewTxRunner(pool)

	for _, n := range []int{3, 5} {
		err := tx.RunCards(ctx, func(_ repository.UserRepository, cards repository.CardRecordRepository) error {
			_, err := cards.Upsert(ctx, &entity.CardRecord{UserID: u.ID, PositionID: "tienda", CardType: entity.CardMoevePro, Count: n})
			return err
		})
		require.NoError(t, err)
	}

	records, err := postgres.NewCardRecordRepository(pool).List(ctx, entity.CardRecordFilter{UserID: u.ID})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, 5, records[0].Count)
}

func TestCardRecords_ErrorEnTransaccionHaceRollback(t *testing.T) {
	pool := setupDB(t)
	ctx := context.Background()
	u := createUser(t, postgres.NewUserRepository(pool), "sara@turnos.local", entity.RoleSupervisor, "tienda")

	boom := errors.New("boom")
	err := postgres.NewTxRunner(pool).RunCards(ctx, func(_ repository.UserRepository, cards repository.CardRecordRepository) error {
		if _, err := cards.Upsert(ctx, &entity.CardRecord{UserID: u.ID, PositionID: "tienda", CardType: entity.CardMoevePro, Count: 1}); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	records, err := postgres.NewCardRecordRepository(pool).List(ctx, entity.CardRecordFilter{})
	require.NoError(t, err)
	assert.Empty(t, records)
}

// ── Closures ─────────────────────────────────────────────────────────────────

func TestClosures_GuardaDesgloseEImportes(t *testing.T) {
	pool := setupDB(t)
	ctx := context.Background()
	u := createUser(t, postgres.NewUserRepository(pool), "eva@turnos.local", entity.RoleEmployee, "caja")
	repo := postgres.NewClosureRepository(pool)

	c := &entity.Closure{
		UserID: u.ID, PositionID: "caja", Shift: entity.ShiftMorning,
		Date: time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		Denominations: []entity.Denomination{
			{Value: decimal.RequireFromString("50"), Count: 2},
			{Value: decimal.RequireFromString("0.50"), Count: 3},
		},
		CountedTotal:   decimal.RequireFromString("101.50"),
		ExpectedTotal:  decimal.RequireFromString("100"),
		Difference:     decimal.RequireFromString("1.50"),
		Classification: "advertencia",
	}
	require.NoError(t, repo.Create(ctx, c))

	got, err := repo.GetByID(ctx, c.ID)
	require.NoError(t, err)
	assert.True(t, got.CountedTotal.Equal(c.CountedTotal))
	assert.True(t, got.Difference.Equal(c.Difference))
	assert.Len(t, got.Denominations, 2)
	assert.Equal(t, "2026-03-10", got.Date.Format("2006-01-02"))
}
