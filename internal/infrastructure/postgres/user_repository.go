package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Turnos-api/internal/domain"
	"github.com/jhoicas/Turnos-api/internal/domain/entity"
	"github.com/jhoicas/Turnos-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementación del puerto UserRepository sobre PostgreSQL.
// Los puestos de cada usuario viven en user_positions.
type UserRepo struct {
	db Querier
}

// NewUserRepository construye el adaptador de persistencia para usuarios.
func NewUserRepository(db Querier) *UserRepo {
	return &UserRepo{db: db}
}

// selectUsers agrega los puestos con array_agg para evitar N+1.
const selectUsers = `
	SELECT u.id, u.name, u.email, u.password, u.role, u.created_at, u.updated_at,
	       COALESCE(array_agg(up.position_id ORDER BY up.position_id)
	                FILTER (WHERE up.position_id IS NOT NULL), '{}') AS position_ids
	FROM users u
	LEFT JOIN user_positions up ON up.user_id = u.id`

// Create persiste el usuario y sus puestos en una única transacción.
func (r *UserRepo) Create(ctx context.Context, user *entity.User) error {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = user.CreatedAt
	user.PositionIDs = entity.DedupIDs(user.PositionIDs)

	return withTx(ctx, r.db, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
			INSERT INTO users (id, name, email, password, role, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			user.ID, user.Name, user.Email, user.PasswordHash, string(user.Role), user.CreatedAt, user.UpdatedAt,
		)
		if err != nil {
			if isUniqueViolation(err) {
				return fmt.Errorf("insert user %q: %w", user.Email, domain.ErrAlreadyExists)
			}
			return storageErr("insert user", err)
		}
		return insertUserPositions(ctx, tx, user.ID, user.PositionIDs)
	})
}

func insertUserPositions(ctx context.Context, tx pgx.Tx, userID string, positionIDs []string) error {
	for _, pid := range positionIDs {
		if _, err := tx.Exec(ctx,
			`INSERT INTO user_positions (user_id, position_id) VALUES ($1, $2)`, userID, pid,
		); err != nil {
			return storageErr("insert user position", err)
		}
	}
	return nil
}

// GetByID obtiene un usuario por ID con sus puestos.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	row := r.db.QueryRow(ctx, selectUsers+` WHERE u.id = $1 GROUP BY u.id`, id)
	u, err := scanUser(row)
	if err != nil {
		return nil, notFoundOr("get user by id", err)
	}
	return u, nil
}

// GetByEmail obtiene un usuario por email (sin distinguir mayúsculas).
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	row := r.db.QueryRow(ctx, selectUsers+` WHERE lower(u.email) = lower($1) GROUP BY u.id`, email)
	u, err := scanUser(row)
	if err != nil {
		return nil, notFoundOr("get user by email", err)
	}
	return u, nil
}

// Update aplica los campos del patch y, si trae PositionIDs, reemplaza los
// puestos (borrar todo e insertar). Todo en la misma transacción.
func (r *UserRepo) Update(ctx context.Context, id string, patch entity.UserPatch) (*entity.User, error) {
	sets := []string{"updated_at = $2"}
	args := []any{id, time.Now().UTC()}
	add := func(col string, v any) {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}
	if patch.Name != nil {
		add("name", *patch.Name)
	}
	if patch.Email != nil {
		add("email", *patch.Email)
	}
	if patch.Role != nil {
		add("role", string(*patch.Role))
	}
	if patch.PasswordHash != nil {
		add("password", *patch.PasswordHash)
	}

	err := withTx(ctx, r.db, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `UPDATE users SET `+strings.Join(sets, ", ")+` WHERE id = $1`, args...)
		if err != nil {
			if isUniqueViolation(err) {
				return fmt.Errorf("update user: %w", domain.ErrAlreadyExists)
			}
			return storageErr("update user", err)
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("update user %s: %w", id, domain.ErrNotFound)
		}
		if patch.PositionIDs == nil {
			return nil
		}
		if _, err := tx.Exec(ctx, `DELETE FROM user_positions WHERE user_id = $1`, id); err != nil {
			return storageErr("delete user positions", err)
		}
		return insertUserPositions(ctx, tx, id, entity.DedupIDs(*patch.PositionIDs))
	})
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

// Delete elimina un usuario por ID. user_positions cae en cascada y
// tasks.completed_by_id queda en NULL.
func (r *UserRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return storageErr("delete user", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("delete user %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// ListAll lista todos los usuarios con sus puestos.
func (r *UserRepo) ListAll(ctx context.Context) ([]*entity.User, error) {
	return r.list(ctx, selectUsers+` GROUP BY u.id ORDER BY u.name`)
}

// ListByPosition usuarios asignados al puesto (con todos sus puestos).
func (r *UserRepo) ListByPosition(ctx context.Context, positionID string) ([]*entity.User, error) {
	return r.list(ctx, selectUsers+`
		WHERE u.id IN (SELECT user_id FROM user_positions WHERE position_id = $1)
		GROUP BY u.id ORDER BY u.name`, positionID)
}

func (r *UserRepo) list(ctx context.Context, query string, args ...any) ([]*entity.User, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, storageErr("list users", err)
	}
	defer rows.Close()
	list := make([]*entity.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, storageErr("scan user", err)
		}
		list = append(list, u)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("list users", err)
	}
	return list, nil
}

func scanUser(row pgx.Row) (*entity.User, error) {
	var u entity.User
	var role string
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &role, &u.CreatedAt, &u.UpdatedAt, &u.PositionIDs); err != nil {
		return nil, err
	}
	u.Role = entity.Role(role)
	return &u, nil
}
