package postgres

import (
	"context"
	"time"

	"github.com/jhoicas/Turnos-api/internal/domain/entity"
	"github.com/jhoicas/Turnos-api/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo consultas de reporting (solo lectura).
type ReportRepo struct {
	db Querier
}

// NewReportRepository construye el repositorio de reportes.
func NewReportRepository(db Querier) *ReportRepo {
	return &ReportRepo{db: db}
}

// Ranking une usuarios (sin ADMIN) con las tareas que completaron desde since.
// No hay columna completed_at: la fecha de completado es updated_at.
// total_tasks cuenta las mismas filas del JOIN que tasks_completed.
func (r *ReportRepo) Ranking(ctx context.Context, since time.Time) ([]entity.RankingEntry, error) {
	rows, err := r.db.Query(ctx, `
		SELECT u.id, u.name,
		       COUNT(CASE WHEN t.status = 'COMPLETED' THEN 1 END) AS tasks_completed,
		       COUNT(t.id) AS total_tasks
		FROM users u
		LEFT JOIN tasks t
		       ON t.completed_by_id = u.id
		      AND t.status = 'COMPLETED'
		      AND t.updated_at >= $1
		WHERE u.role <> 'ADMIN'
		GROUP BY u.id, u.name
		ORDER BY tasks_completed DESC`, since)
	if err != nil {
		return nil, storageErr("ranking", err)
	}
	defer rows.Close()
	list := make([]entity.RankingEntry, 0)
	for rows.Next() {
		var e entity.RankingEntry
		if err := rows.Scan(&e.UserID, &e.Name, &e.TasksCompleted, &e.TotalTasks); err != nil {
			return nil, storageErr("scan ranking", err)
		}
		list = append(list, e)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("ranking", err)
	}
	return list, nil
}
