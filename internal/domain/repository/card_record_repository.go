package repository

import (
	"context"

	"github.com/jhoicas/Turnos-api/internal/domain/entity"
)

// CardRecordRepository puerto de persistencia de contadores de tarjetas.
type CardRecordRepository interface {
	// Upsert crea o sobrescribe el contador de la terna (usuario, puesto, tipo).
	Upsert(ctx context.Context, rec *entity.CardRecord) (*entity.CardRecord, error)
	List(ctx context.Context, f entity.CardRecordFilter) ([]*entity.CardRecord, error)
}
