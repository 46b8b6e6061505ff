// Package analytics contiene los reportes de solo lectura: ranking de
// empleados y resumen de tareas por puesto.
package analytics

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/jhoicas/Turnos-api/internal/application/collation"
	"github.com/jhoicas/Turnos-api/internal/application/dates"
	"github.com/jhoicas/Turnos-api/internal/application/dto"
	"github.com/jhoicas/Turnos-api/internal/domain/access"
	"github.com/jhoicas/Turnos-api/internal/domain/entity"
	"github.com/jhoicas/Turnos-api/internal/domain/repository"
)

// UseCase reportes sobre tareas, usuarios y puestos.
//
// No escribe nunca: solo lee de los repositorios.
type UseCase struct {
	reports   repository.ReportRepository
	tasks     repository.TaskRepository
	positions repository.PositionRepository
	loc       *time.Location
	now       func() time.Time
}

// NewUseCase construye el caso de uso. loc marca el inicio de día/semana/mes.
func NewUseCase(
	reports repository.ReportRepository,
	tasks repository.TaskRepository,
	positions repository.PositionRepository,
	loc *time.Location,
) *UseCase {
	return &UseCase{reports: reports, tasks: tasks, positions: positions, loc: loc, now: time.Now}
}

// WithClock sustituye time.Now (tests).
func (uc *UseCase) WithClock(now func() time.Time) *UseCase {
	uc.now = now
	return uc
}

// Ranking empleados por tareas completadas desde el inicio del período
// (day | week | month). Empates por nombre; mismo número de tareas, mismo puesto.
func (uc *UseCase) Ranking(ctx context.Context, period string) (*dto.RankingResponse, error) {
	period = strings.ToLower(strings.TrimSpace(period))
	if period == "" {
		period = "week"
	}
	since, err := dates.PeriodStart(period, uc.now(), uc.loc)
	if err != nil {
		return nil, err
	}
	entries, err := uc.reports.Ranking(ctx, since)
	if err != nil {
		return nil, fmt.Errorf("ranking: %w", err)
	}

	c := collation.New()
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].TasksCompleted != entries[j].TasksCompleted {
			return entries[i].TasksCompleted > entries[j].TasksCompleted
		}
		return c.CompareString(entries[i].Name, entries[j].Name) < 0
	})

	out := &dto.RankingResponse{Period: period, Since: since, Entries: make([]dto.RankingEntryDTO, 0, len(entries))}
	rank := 0
	for i, e := range entries {
		if i == 0 || e.TasksCompleted != entries[i-1].TasksCompleted {
			rank = i + 1
		}
		out.Entries = append(out.Entries, dto.RankingEntryDTO{
			Rank:           rank,
			UserID:         e.UserID,
			Name:           e.Name,
			TasksCompleted: e.TasksCompleted,
			TotalTasks:     e.TotalTasks,
		})
	}
	return out, nil
}

// PositionsSummary conteos por puesto visible de las tareas con fecha límite en el rango.
func (uc *UseCase) PositionsSummary(ctx context.Context, claim access.Claim, q dto.PositionSummaryQuery) ([]dto.PositionSummaryDTO, error) {
	start, end, err := dates.Range(q.StartDate, q.EndDate, uc.loc)
	if err != nil {
		return nil, err
	}

	// ── Tareas y puestos en paralelo ──
	type tasksResult struct {
		tasks []*entity.Task
		err   error
	}
	type positionsResult struct {
		positions []*entity.Position
		err       error
	}
	tasksCh := make(chan tasksResult, 1)
	positionsCh := make(chan positionsResult, 1)
	go func() {
		t, err := uc.tasks.List(ctx, entity.TaskFilter{StartDate: start, EndDate: end})
		tasksCh <- tasksResult{t, err}
	}()
	go func() {
		p, err := uc.positions.ListAll(ctx)
		positionsCh <- positionsResult{p, err}
	}()
	tr := <-tasksCh
	pr := <-positionsCh
	if tr.err != nil {
		return nil, fmt.Errorf("resumen por puesto: tareas: %w", tr.err)
	}
	if pr.err != nil {
		return nil, fmt.Errorf("resumen por puesto: puestos: %w", pr.err)
	}

	positions := access.FilterVisiblePositions(pr.positions, claim)
	byID := make(map[string]*entity.PositionSummary, len(positions))
	summaries := make([]*entity.PositionSummary, 0, len(positions))
	for _, p := range positions {
		s := &entity.PositionSummary{PositionID: p.ID, PositionName: p.Name}
		byID[p.ID] = s
		summaries = append(summaries, s)
	}

	now := uc.now()
	for _, t := range access.FilterVisibleTasks(tr.tasks, claim) {
		s, ok := byID[t.PositionID]
		if !ok {
			continue
		}
		s.Total++
		switch {
		case t.Status == entity.TaskCompleted:
			s.Completed++
			if t.CompletedLate {
				s.CompletedLate++
			}
		case t.IsOverdue(now, uc.loc):
			s.Overdue++
		default:
			s.Pending++
		}
	}

	c := collation.New()
	sort.SliceStable(summaries, func(i, j int) bool {
		return c.CompareString(summaries[i].PositionName, summaries[j].PositionName) < 0
	})
	out := make([]dto.PositionSummaryDTO, 0, len(summaries))
	for _, s := range summaries {
		out = append(out, dto.PositionSummaryDTO{
			PositionID:    s.PositionID,
			PositionName:  s.PositionName,
			Total:         s.Total,
			Pending:       s.Pending,
			Overdue:       s.Overdue,
			Completed:     s.Completed,
			CompletedLate: s.CompletedLate,
		})
	}
	return out, nil
}
