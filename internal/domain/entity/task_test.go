package entity_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Turnos-api/internal/domain/entity"
)

func madrid(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("Europe/Madrid")
	if err != nil {
		t.Skip("zona horaria no disponible")
	}
	return loc
}

func TestEndOfDay_UltimoMilisegundoDelDiaLocal(t *testing.T) {
	loc := madrid(t)
	due := time.Date(2025, 3, 10, 8, 30, 0, 0, loc)

	eod := entity.EndOfDay(due, loc)
	assert.Equal(t, time.Date(2025, 3, 10, 23, 59, 59, 999_000_000, loc), eod)
}

func TestEndOfDay_FechaUTCSeInterpretaEnZonaLocal(t *testing.T) {
	loc := madrid(t)
	// 23:30 UTC del día 10 es ya día 11 en Madrid (UTC+1 en marzo antes del cambio de hora).
	due := time.Date(2025, 3, 10, 23, 30, 0, 0, time.UTC)

	eod := entity.EndOfDay(due, loc)
	assert.Equal(t, 11, eod.Day())
}

func TestIsOverdue_CambiaSoloAlTerminarElDia(t *testing.T) {
	loc := madrid(t)
	task := &entity.Task{Status: entity.TaskPending, DueDate: time.Date(2025, 3, 10, 6, 0, 0, 0, loc)}

	antes := []time.Time{
		time.Date(2025, 3, 9, 12, 0, 0, 0, loc),
		time.Date(2025, 3, 10, 6, 0, 1, 0, loc),
		time.Date(2025, 3, 10, 23, 59, 59, 999_000_000, loc),
	}
	for _, now := range antes {
		assert.False(t, task.IsOverdue(now, loc), "no debe estar vencida en %s", now)
	}

	despues := []time.Time{
		time.Date(2025, 3, 10, 23, 59, 59, 999_000_001, loc),
		time.Date(2025, 3, 11, 0, 0, 0, 0, loc),
		time.Date(2025, 4, 1, 0, 0, 0, 0, loc),
	}
	for _, now := range despues {
		assert.True(t, task.IsOverdue(now, loc), "debe estar vencida en %s", now)
	}
}

func TestIsOverdue_CompletadaNuncaVence(t *testing.T) {
	loc := madrid(t)
	task := &entity.Task{Status: entity.TaskCompleted, DueDate: time.Date(2025, 3, 10, 6, 0, 0, 0, loc)}
	assert.False(t, task.IsOverdue(time.Date(2026, 1, 1, 0, 0, 0, 0, loc), loc))
}

func TestMatchesStatus(t *testing.T) {
	loc := madrid(t)
	now := time.Date(2025, 3, 12, 10, 0, 0, 0, loc)
	ayer := time.Date(2025, 3, 11, 10, 0, 0, 0, loc)
	hoy := time.Date(2025, 3, 12, 9, 0, 0, 0, loc)

	vencida := &entity.Task{Status: entity.TaskPending, DueDate: ayer}
	pendiente := &entity.Task{Status: entity.TaskPending, DueDate: hoy}
	completada := &entity.Task{Status: entity.TaskCompleted, DueDate: ayer}

	cases := []struct {
		name   string
		task   *entity.Task
		filter entity.StatusFilter
		want   bool
	}{
		{"vencida en OVERDUE", vencida, entity.FilterOverdue, true},
		{"vencida fuera de PENDING", vencida, entity.FilterPending, false},
		{"pendiente en PENDING", pendiente, entity.FilterPending, true},
		{"pendiente fuera de OVERDUE", pendiente, entity.FilterOverdue, false},
		{"completada en COMPLETED", completada, entity.FilterCompleted, true},
		{"completada fuera de OVERDUE", completada, entity.FilterOverdue, false},
		{"sin filtro", vencida, "", true},
		{"filtro desconocido", pendiente, "OTRO", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.task.MatchesStatus(tc.filter, now, loc))
		})
	}
}

func TestTaskPatch_IsEmpty(t *testing.T) {
	assert.True(t, entity.TaskPatch{}.IsEmpty())
	title := "x"
	assert.False(t, entity.TaskPatch{Title: &title}.IsEmpty())
}

func TestDedupIDs(t *testing.T) {
	assert.Equal(t, []string{"p1", "p2"}, entity.DedupIDs([]string{"p1", "", "p2", "p1"}))
	assert.Empty(t, entity.DedupIDs(nil))
}
