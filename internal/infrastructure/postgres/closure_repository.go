package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Turnos-api/internal/domain/entity"
	"github.com/jhoicas/Turnos-api/internal/domain/repository"
)

var _ repository.ClosureRepository = (*ClosureRepo)(nil)

// ClosureRepo implementación de ClosureRepository sobre PostgreSQL.
// Los importes NUMERIC se leen como decimal.Decimal (codec registrado en NewPool).
type ClosureRepo struct {
	db Querier
}

// NewClosureRepository construye el repositorio de cierres de caja.
func NewClosureRepository(db Querier) *ClosureRepo {
	return &ClosureRepo{db: db}
}

const closureColumns = `id, COALESCE(user_id, ''), position_id, shift, closure_date,
	counted_total, expected_total, difference, classification, notes, created_at`

// Create inserta el cierre y su desglose de billetes en una sola transacción.
func (r *ClosureRepo) Create(ctx context.Context, c *entity.Closure) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	}
	return withTx(ctx, r.db, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
			INSERT INTO closures (id, user_id, position_id, shift, closure_date,
			                      counted_total, expected_total, difference, classification, notes, created_at)
			VALUES ($1, NULLIF($2, ''), $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
			c.ID, c.UserID, c.PositionID, string(c.Shift), c.Date,
			c.CountedTotal, c.ExpectedTotal, c.Difference, c.Classification, c.Notes, c.CreatedAt,
		)
		if err != nil {
			return storageErr("insert closure", err)
		}
		for _, d := range c.Denominations {
			if _, err := tx.Exec(ctx, `
				INSERT INTO closure_denominations (closure_id, value, count) VALUES ($1, $2, $3)`,
				c.ID, d.Value, d.Count,
			); err != nil {
				return storageErr("insert closure denomination", err)
			}
		}
		return nil
	})
}

// GetByID obtiene el cierre con su desglose.
func (r *ClosureRepo) GetByID(ctx context.Context, id string) (*entity.Closure, error) {
	c, err := scanClosure(r.db.QueryRow(ctx, `SELECT `+closureColumns+` FROM closures WHERE id = $1`, id))
	if err != nil {
		return nil, notFoundOr("get closure", err)
	}
	rows, err := r.db.Query(ctx, `
		SELECT value, count FROM closure_denominations WHERE closure_id = $1 ORDER BY value DESC`, id)
	if err != nil {
		return nil, storageErr("list closure denominations", err)
	}
	defer rows.Close()
	for rows.Next() {
		var d entity.Denomination
		if err := rows.Scan(&d.Value, &d.Count); err != nil {
			return nil, storageErr("scan closure denomination", err)
		}
		c.Denominations = append(c.Denominations, d)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("list closure denominations", err)
	}
	return c, nil
}

// List devuelve cierres (sin desglose) ordenados por fecha descendente.
func (r *ClosureRepo) List(ctx context.Context, f entity.ClosureFilter) ([]*entity.Closure, error) {
	var where []string
	var args []any
	add := func(cond string, v any) {
		args = append(args, v)
		where = append(where, fmt.Sprintf(cond, len(args)))
	}
	if f.PositionID != "" {
		add("position_id = $%d", f.PositionID)
	}
	if f.PositionIDs != nil {
		add("position_id = ANY($%d)", f.PositionIDs)
	}
	if f.StartDate != nil {
		add("closure_date >= $%d", *f.StartDate)
	}
	if f.EndDate != nil {
		add("closure_date <= $%d", *f.EndDate)
	}
	query := `SELECT ` + closureColumns + ` FROM closures`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY closure_date DESC, created_at DESC`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, storageErr("list closures", err)
	}
	defer rows.Close()
	list := make([]*entity.Closure, 0)
	for rows.Next() {
		c, err := scanClosure(rows)
		if err != nil {
			return nil, storageErr("scan closure", err)
		}
		list = append(list, c)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("list closures", err)
	}
	return list, nil
}

func scanClosure(row pgx.Row) (*entity.Closure, error) {
	var c entity.Closure
	var shift string
	var counted, expected, diff decimal.Decimal
	if err := row.Scan(&c.ID, &c.UserID, &c.PositionID, &shift, &c.Date,
		&counted, &expected, &diff, &c.Classification, &c.Notes, &c.CreatedAt); err != nil {
		return nil, err
	}
	c.Shift = entity.Shift(shift)
	c.CountedTotal, c.ExpectedTotal, c.Difference = counted, expected, diff
	return &c, nil
}
