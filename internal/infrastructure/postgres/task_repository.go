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

var _ repository.TaskRepository = (*TaskRepo)(nil)

// TaskRepo implementación de TaskRepository sobre PostgreSQL.
type TaskRepo struct {
	db Querier
}

// NewTaskRepository construye el repositorio de tareas.
func NewTaskRepository(db Querier) *TaskRepo {
	return &TaskRepo{db: db}
}

const taskColumns = `id, title, description, status, due_date, position_id, shift,
	COALESCE(completed_by_id, ''), completed_late, created_at, updated_at`

// Create persiste una tarea nueva.
func (r *TaskRepo) Create(ctx context.Context, t *entity.Task) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now().UTC()
	}
	t.UpdatedAt = t.CreatedAt
	_, err := r.db.Exec(ctx, `
		INSERT INTO tasks (id, title, description, status, due_date, position_id, shift,
		                   completed_by_id, completed_late, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NULLIF($8, ''), $9, $10, $11)`,
		t.ID, t.Title, t.Description, string(t.Status), t.DueDate, t.PositionID, string(t.Shift),
		t.CompletedByID, t.CompletedLate, t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		return storageErr("insert task", err)
	}
	return nil
}

// GetByID obtiene una tarea.
func (r *TaskRepo) GetByID(ctx context.Context, id string) (*entity.Task, error) {
	t, err := scanTask(r.db.QueryRow(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = $1`, id))
	if err != nil {
		return nil, notFoundOr("get task", err)
	}
	return t, nil
}

// List devuelve las tareas que cumplen los filtros, por fecha límite.
func (r *TaskRepo) List(ctx context.Context, f entity.TaskFilter) ([]*entity.Task, error) {
	var where []string
	var args []any
	add := func(cond string, v any) {
		args = append(args, v)
		where = append(where, fmt.Sprintf(cond, len(args)))
	}
	if f.PositionID != "" {
		add("position_id = $%d", f.PositionID)
	}
	if f.Status != "" {
		add("status = $%d", string(f.Status))
	}
	if f.Shift != "" {
		add("shift = $%d", string(f.Shift))
	}
	if f.StartDate != nil {
		add("due_date >= $%d", *f.StartDate)
	}
	if f.EndDate != nil {
		add("due_date <= $%d", *f.EndDate)
	}

	query := `SELECT ` + taskColumns + ` FROM tasks`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY due_date, created_at`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, storageErr("list tasks", err)
	}
	defer rows.Close()
	list := make([]*entity.Task, 0)
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, storageErr("scan task", err)
		}
		list = append(list, t)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("list tasks", err)
	}
	return list, nil
}

// Update aplica solo los campos presentes en el patch y refresca updated_at.
func (r *TaskRepo) Update(ctx context.Context, id string, p entity.TaskPatch) (*entity.Task, error) {
	sets := []string{"updated_at = $2"}
	args := []any{id, time.Now().UTC()}
	add := func(col string, v any) {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf(col, len(args)))
	}
	if p.Title != nil {
		add("title = $%d", *p.Title)
	}
	if p.Description != nil {
		add("description = $%d", *p.Description)
	}
	if p.Status != nil {
		add("status = $%d", string(*p.Status))
	}
	if p.DueDate != nil {
		add("due_date = $%d", *p.DueDate)
	}
	if p.PositionID != nil {
		add("position_id = $%d", *p.PositionID)
	}
	if p.Shift != nil {
		add("shift = $%d", string(*p.Shift))
	}
	if p.CompletedByID != nil {
		add("completed_by_id = NULLIF($%d, '')", *p.CompletedByID)
	}
	if p.CompletedLate != nil {
		add("completed_late = $%d", *p.CompletedLate)
	}

	query := `UPDATE tasks SET ` + strings.Join(sets, ", ") + ` WHERE id = $1 RETURNING ` + taskColumns
	t, err := scanTask(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, notFoundOr("update task", err)
	}
	return t, nil
}

// Duplicate copia título, descripción, puesto y turno en una tarea PENDING nueva.
func (r *TaskRepo) Duplicate(ctx context.Context, id string, newDueDate time.Time) (*entity.Task, error) {
	now := time.Now().UTC()
	t, err := scanTask(r.db.QueryRow(ctx, `
		INSERT INTO tasks (id, title, description, status, due_date, position_id, shift,
		                   completed_by_id, completed_late, created_at, updated_at)
		SELECT $2, title, description, 'PENDING', $3, position_id, shift, NULL, FALSE, $4, $4
		FROM tasks WHERE id = $1
		RETURNING `+taskColumns,
		id, uuid.NewString(), newDueDate, now,
	))
	if err != nil {
		return nil, notFoundOr("duplicate task", err)
	}
	return t, nil
}

// Delete elimina una tarea.
func (r *TaskRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return storageErr("delete task", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("delete task %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

func scanTask(row pgx.Row) (*entity.Task, error) {
	var t entity.Task
	var status, shift string
	if err := row.Scan(&t.ID, &t.Title, &t.Description, &status, &t.DueDate, &t.PositionID, &shift,
		&t.CompletedByID, &t.CompletedLate, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return nil, err
	}
	t.Status = entity.TaskStatus(status)
	t.Shift = entity.Shift(shift)
	return &t, nil
}
