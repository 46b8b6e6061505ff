package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Turnos-api/internal/domain/entity"
)

// TaskRepository puerto de persistencia para tareas.
// No valida permisos ni campos permitidos: eso lo hace el servicio.
type TaskRepository interface {
	// Create persiste la tarea; asigna ID si viene vacío.
	Create(ctx context.Context, t *entity.Task) error
	GetByID(ctx context.Context, id string) (*entity.Task, error)
	// List filtra por estado persistido; OVERDUE se resuelve en el llamador.
	List(ctx context.Context, f entity.TaskFilter) ([]*entity.Task, error)
	// Update aplica solo los campos no nil y refresca updated_at.
	Update(ctx context.Context, id string, patch entity.TaskPatch) (*entity.Task, error)
	// Duplicate crea una copia PENDING, sin completedBy, con la nueva fecha límite.
	Duplicate(ctx context.Context, id string, newDueDate time.Time) (*entity.Task, error)
	Delete(ctx context.Context, id string) error
}
