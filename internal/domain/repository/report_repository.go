package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Turnos-api/internal/domain/entity"
)

// ReportRepository consultas de solo lectura para reportes.
type ReportRepository interface {
	// Ranking agrupa por usuario (sin ADMIN) las tareas completadas desde since.
	Ranking(ctx context.Context, since time.Time) ([]entity.RankingEntry, error)
}
