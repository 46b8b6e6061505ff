package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Turnos-api/internal/domain/entity"
)

// SeedBootstrapAdmin garantiza que exista la cuenta ADMIN inicial.
// Si el email ya está registrado no toca nada. Devuelve true si la creó.
func SeedBootstrapAdmin(ctx context.Context, pool *pgxpool.Pool, name, email, passwordHash string) (bool, error) {
	now := time.Now().UTC()
	tag, err := pool.Exec(ctx, `
		INSERT INTO users (id, name, email, password, role, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $6)
		ON CONFLICT DO NOTHING`,
		uuid.NewString(), name, email, passwordHash, string(entity.RoleAdmin), now,
	)
	if err != nil {
		return false, storageErr("seed bootstrap admin", err)
	}
	return tag.RowsAffected() == 1, nil
}
