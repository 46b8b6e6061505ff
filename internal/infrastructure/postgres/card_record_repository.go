package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Turnos-api/internal/domain/entity"
	"github.com/jhoicas/Turnos-api/internal/domain/repository"
)

var _ repository.CardRecordRepository = (*CardRecordRepo)(nil)

// CardRecordRepo implementación de CardRecordRepository sobre PostgreSQL.
type CardRecordRepo struct {
	db Querier
}

// NewCardRecordRepository construye el repositorio de contadores de tarjetas.
func NewCardRecordRepository(db Querier) *CardRecordRepo {
	return &CardRecordRepo{db: db}
}

const cardColumns = `id, user_id, position_id, card_type, count, created_at, updated_at`

// Upsert busca la terna (usuario, puesto, tipo) y sobrescribe count si existe;
// si no, inserta. Búsqueda y escritura van en la misma transacción.
func (r *CardRecordRepo) Upsert(ctx context.Context, rec *entity.CardRecord) (*entity.CardRecord, error) {
	var out *entity.CardRecord
	err := withTx(ctx, r.db, func(tx pgx.Tx) error {
		now := time.Now().UTC()
		var id string
		err := tx.QueryRow(ctx, `
			SELECT id FROM card_records
			WHERE user_id = $1 AND position_id = $2 AND card_type = $3`,
			rec.UserID, rec.PositionID, string(rec.CardType),
		).Scan(&id)

		switch {
		case err == nil:
			out, err = scanCardRecord(tx.QueryRow(ctx, `
				UPDATE card_records SET count = $2, updated_at = $3
				WHERE id = $1 RETURNING `+cardColumns,
				id, rec.Count, now,
			))
			return storageErr("update card record", err)
		case errors.Is(err, pgx.ErrNoRows):
			// Una inserción concurrente de la misma terna cae en ON CONFLICT y también sobrescribe.
			out, err = scanCardRecord(tx.QueryRow(ctx, `
				INSERT INTO card_records (id, user_id, position_id, card_type, count, created_at, updated_at)
				VALUES ($1, $2, $3, $4, $5, $6, $6)
				ON CONFLICT (user_id, position_id, card_type)
				DO UPDATE SET count = EXCLUDED.count, updated_at = EXCLUDED.updated_at
				RETURNING `+cardColumns,
				uuid.NewString(), rec.UserID, rec.PositionID, string(rec.CardType), rec.Count, now,
			))
			return storageErr("insert card record", err)
		default:
			return storageErr("lookup card record", err)
		}
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// List devuelve los contadores filtrados, más recientes primero.
func (r *CardRecordRepo) List(ctx context.Context, f entity.CardRecordFilter) ([]*entity.CardRecord, error) {
	var where []string
	var args []any
	if f.UserID != "" {
		args = append(args, f.UserID)
		where = append(where, fmt.Sprintf("user_id = $%d", len(args)))
	}
	if f.PositionID != "" {
		args = append(args, f.PositionID)
		where = append(where, fmt.Sprintf("position_id = $%d", len(args)))
	}
	if f.PositionIDs != nil {
		args = append(args, f.PositionIDs)
		where = append(where, fmt.Sprintf("position_id = ANY($%d)", len(args)))
	}
	query := `SELECT ` + cardColumns + ` FROM card_records`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY updated_at DESC`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, storageErr("list card records", err)
	}
	defer rows.Close()
	list := make([]*entity.CardRecord, 0)
	for rows.Next() {
		rec, err := scanCardRecord(rows)
		if err != nil {
			return nil, storageErr("scan card record", err)
		}
		list = append(list, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("list card records", err)
	}
	return list, nil
}

func scanCardRecord(row pgx.Row) (*entity.CardRecord, error) {
	var rec entity.CardRecord
	var cardType string
	if err := row.Scan(&rec.ID, &rec.UserID, &rec.PositionID, &cardType, &rec.Count, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
		return nil, err
	}
	rec.CardType = entity.CardType(cardType)
	return &rec, nil
}
