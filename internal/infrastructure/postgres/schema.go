package postgres

import (
	"context"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	pgxmigrate "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"

	"github.com/jhoicas/Turnos-api/internal/domain/repository"
	"github.com/jhoicas/Turnos-api/pkg/logger"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

var _ repository.SchemaManager = (*Schema)(nil)

// Schema aplica las migraciones embebidas sobre el pool.
type Schema struct {
	pool *pgxpool.Pool
	log  *logger.Logger
}

// NewSchema construye el gestor de esquema.
func NewSchema(pool *pgxpool.Pool, log *logger.Logger) *Schema {
	return &Schema{pool: pool, log: log}
}

// EnsureSchema aplica las migraciones pendientes. Sin cambios = éxito, así que
// puede llamarse las veces que haga falta.
func (s *Schema) EnsureSchema(ctx context.Context) error {
	source, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("cargar migraciones: %w", err)
	}

	db := stdlib.OpenDBFromPool(s.pool)
	driver, err := pgxmigrate.WithInstance(db, &pgxmigrate.Config{})
	if err != nil {
		_ = db.Close()
		return fmt.Errorf("driver de migraciones: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "pgx5", driver)
	if err != nil {
		_ = db.Close()
		return fmt.Errorf("inicializar migraciones: %w", err)
	}
	defer func() { _, _ = m.Close() }()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("aplicar migraciones: %w", err)
	}

	version, dirty, _ := m.Version()
	if dirty {
		s.log.Warn().Uint("version", version).Msg("esquema en estado dirty")
	} else {
		s.log.Info().Uint("version", version).Msg("esquema al día")
	}
	return nil
}
