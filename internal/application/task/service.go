// Package task orquesta la política de acceso y los repositorios para las
// operaciones sobre tareas que ve el usuario: listar, crear, actualizar,
// duplicar, borrar y exportar.
package task

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/Turnos-api/internal/application/dates"
	"github.com/jhoicas/Turnos-api/internal/application/dto"
	"github.com/jhoicas/Turnos-api/internal/domain"
	"github.com/jhoicas/Turnos-api/internal/domain/access"
	"github.com/jhoicas/Turnos-api/internal/domain/entity"
	"github.com/jhoicas/Turnos-api/internal/domain/repository"
	"github.com/jhoicas/Turnos-api/pkg/logger"
)

// Service casos de uso de tareas.
type Service struct {
	tasks     repository.TaskRepository
	users     repository.UserRepository
	positions repository.PositionRepository
	loc       *time.Location
	now       func() time.Time
	log       *logger.Logger
}

// Option configura el servicio.
type Option func(*Service)

// WithClock sustituye time.Now (tests).
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService construye el servicio. loc es la zona horaria del corte de día.
func NewService(
	tasks repository.TaskRepository,
	users repository.UserRepository,
	positions repository.PositionRepository,
	loc *time.Location,
	log *logger.Logger,
	opts ...Option,
) *Service {
	s := &Service{tasks: tasks, users: users, positions: positions, loc: loc, now: time.Now, log: log}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Query filtros ya validados del listado.
type Query struct {
	PositionID string
	Status     entity.StatusFilter
	Shift      entity.Shift
	StartDate  *time.Time
	EndDate    *time.Time
}

// ParseQuery valida los filtros de la query string. Las fechas filtran por dueDate, inclusivas.
func (s *Service) ParseQuery(q dto.TaskListQuery) (Query, error) {
	out := Query{
		PositionID: strings.TrimSpace(q.PositionID),
		Status:     entity.StatusFilter(strings.ToUpper(strings.TrimSpace(q.Status))),
		Shift:      entity.Shift(strings.ToUpper(strings.TrimSpace(q.Shift))),
	}
	if out.Status != "" && !out.Status.Valid() {
		return Query{}, fmt.Errorf("status %q: %w", q.Status, domain.ErrInvalidInput)
	}
	if out.Shift != "" && !out.Shift.Valid() {
		return Query{}, fmt.Errorf("shift %q: %w", q.Shift, domain.ErrInvalidInput)
	}
	start, end, err := dates.Range(q.StartDate, q.EndDate, s.loc)
	if err != nil {
		return Query{}, err
	}
	out.StartDate, out.EndDate = start, end
	return out, nil
}

// List devuelve las tareas visibles y filtradas, con los puestos y usuarios que el actor puede ver.
func (s *Service) List(ctx context.Context, claim access.Claim, q Query) (*dto.TaskListResponse, error) {
	tasks, err := s.visibleTasks(ctx, claim, q)
	if err != nil {
		return nil, err
	}
	positions, err := s.positions.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("listar puestos: %w", err)
	}
	users, err := s.users.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("listar usuarios: %w", err)
	}

	now := s.now()
	out := &dto.TaskListResponse{
		Tasks:     make([]dto.TaskResponse, 0, len(tasks)),
		Positions: dto.NewPositionResponses(access.FilterVisiblePositions(positions, claim)),
		Users:     dto.NewUserResponses(access.FilterVisibleUsers(users, claim)),
	}
	for _, t := range tasks {
		out.Tasks = append(out.Tasks, dto.NewTaskResponse(t, t.IsOverdue(now, s.loc)))
	}
	return out, nil
}

// visibleTasks ADMIN delega los filtros al repositorio. El resto trae todas las
// tareas, aplica primero la visibilidad por puesto y después los filtros en memoria.
func (s *Service) visibleTasks(ctx context.Context, claim access.Claim, q Query) ([]*entity.Task, error) {
	now := s.now()

	if access.IsAdmin(claim.Role) {
		f := entity.TaskFilter{PositionID: q.PositionID, Shift: q.Shift, StartDate: q.StartDate, EndDate: q.EndDate}
		switch q.Status {
		case entity.FilterCompleted:
			f.Status = entity.TaskCompleted
		case entity.FilterPending, entity.FilterOverdue:
			f.Status = entity.TaskPending
		}
		tasks, err := s.tasks.List(ctx, f)
		if err != nil {
			return nil, fmt.Errorf("listar tareas: %w", err)
		}
		return filterStatus(tasks, q.Status, now, s.loc), nil
	}

	all, err := s.tasks.List(ctx, entity.TaskFilter{})
	if err != nil {
		return nil, fmt.Errorf("listar tareas: %w", err)
	}
	visible := access.FilterVisibleTasks(all, claim)

	// Un positionId ajeno no amplía el acceso: se ignora.
	positionID := q.PositionID
	if positionID != "" && !claim.HasPosition(positionID) {
		positionID = ""
	}
	out := make([]*entity.Task, 0, len(visible))
	for _, t := range visible {
		if positionID != "" && t.PositionID != positionID {
			continue
		}
		if q.Shift != "" && t.Shift != q.Shift {
			continue
		}
		if q.StartDate != nil && t.DueDate.Before(*q.StartDate) {
			continue
		}
		if q.EndDate != nil && t.DueDate.After(*q.EndDate) {
			continue
		}
		if !t.MatchesStatus(q.Status, now, s.loc) {
			continue
		}
		out = append(out, t)
	}
	return out, nil
}

func filterStatus(tasks []*entity.Task, f entity.StatusFilter, now time.Time, loc *time.Location) []*entity.Task {
	if f == "" {
		return tasks
	}
	out := make([]*entity.Task, 0, len(tasks))
	for _, t := range tasks {
		if t.MatchesStatus(f, now, loc) {
			out = append(out, t)
		}
	}
	return out
}

// Get devuelve una tarea si el actor tiene acceso a su puesto.
func (s *Service) Get(ctx context.Context, claim access.Claim, id string) (*dto.TaskResponse, error) {
	t, err := s.load(ctx, claim, id)
	if err != nil {
		return nil, err
	}
	resp := dto.NewTaskResponse(t, t.IsOverdue(s.now(), s.loc))
	return &resp, nil
}

func (s *Service) load(ctx context.Context, claim access.Claim, id string) (*entity.Task, error) {
	t, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !access.CanAccessPosition(claim.PositionIDs, t.PositionID, claim.Role) {
		return nil, fmt.Errorf("tarea %s fuera de los puestos asignados: %w", id, domain.ErrForbidden)
	}
	return t, nil
}

// Create crea una tarea. Solo ADMIN. El estado inicial es siempre PENDING.
func (s *Service) Create(ctx context.Context, claim access.Claim, in dto.CreateTaskRequest) (*dto.TaskResponse, error) {
	if !access.CanCreateTask(claim.Role) {
		return nil, fmt.Errorf("crear tarea: %w", domain.ErrForbidden)
	}
	title := strings.TrimSpace(in.Title)
	positionID := strings.TrimSpace(in.PositionID)
	shift := entity.Shift(strings.ToUpper(strings.TrimSpace(in.Shift)))
	if title == "" || positionID == "" || in.DueDate == "" || in.Description == "" {
		return nil, fmt.Errorf("title, description, dueDate, positionId y shift son requeridos: %w", domain.ErrInvalidInput)
	}
	if !shift.Valid() {
		return nil, fmt.Errorf("shift %q: %w", in.Shift, domain.ErrInvalidInput)
	}
	due, err := dates.ParseDateTime(in.DueDate, s.loc)
	if err != nil {
		return nil, fmt.Errorf("dueDate: %w", err)
	}

	t := &entity.Task{
		Title:       title,
		Description: in.Description,
		Status:      entity.TaskPending,
		DueDate:     due,
		PositionID:  positionID,
		Shift:       shift,
		CreatedAt:   s.now().UTC(),
	}
	if err := s.tasks.Create(ctx, t); err != nil {
		return nil, err
	}
	s.log.Info().Str("task_id", t.ID).Str("position_id", t.PositionID).Str("by", claim.UserID).Msg("tarea creada")
	resp := dto.NewTaskResponse(t, t.IsOverdue(s.now(), s.loc))
	return &resp, nil
}

// Update aplica una actualización parcial. fields son las claves presentes en el
// cuerpo JSON. ADMIN puede cambiar cualquier campo editable; id y fechas de
// auditoría se ignoran. Para el resto de roles, una clave fuera de la lista
// permitida rechaza todo el payload.
func (s *Service) Update(ctx context.Context, claim access.Claim, id string, fields RawFields) (*dto.TaskResponse, error) {
	current, err := s.load(ctx, claim, id)
	if err != nil {
		return nil, err
	}
	admin := access.IsAdmin(claim.Role)
	if admin {
		fields = fields.Without(access.IsReadOnlyField)
	}
	if ok, field := access.FieldsAllowed(access.OpTaskUpdate, claim.Role, fields.Keys()); !ok {
		if admin {
			return nil, fmt.Errorf("campo %q desconocido: %w", field, domain.ErrInvalidInput)
		}
		return nil, fmt.Errorf("campo %q no permitido para %s (permitidos: %s): %w",
			field, claim.Role, strings.Join(access.AllowedFields(access.OpTaskUpdate, claim.Role), ", "), domain.ErrForbidden)
	}

	patch, err := fields.decode(s.loc)
	if err != nil {
		return nil, err
	}
	if patch.IsEmpty() {
		if admin {
			return nil, fmt.Errorf("actualizar tarea: sin campos: %w", domain.ErrInvalidInput)
		}
		return nil, fmt.Errorf("actualizar tarea: sin campos permitidos: %w", domain.ErrForbidden)
	}

	if !access.CanUpdateTaskDetails(claim.Role) {
		// Fuera de ADMIN solo se marca como completada, y siempre a nombre de quien lo hace.
		if patch.Status == nil || *patch.Status != entity.TaskCompleted {
			return nil, fmt.Errorf("solo se puede marcar la tarea como completada: %w", domain.ErrForbidden)
		}
		if !access.CanMarkTaskComplete(current, claim) {
			return nil, fmt.Errorf("completar tarea %s: %w", id, domain.ErrForbidden)
		}
		actor := claim.UserID
		patch.CompletedByID = &actor
	}

	s.applyTransition(current, &patch, claim)

	updated, err := s.tasks.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	if current.Status != updated.Status {
		s.log.Info().
			Str("task_id", id).
			Str("from", string(current.Status)).
			Str("to", string(updated.Status)).
			Bool("completed_late", updated.CompletedLate).
			Str("by", claim.UserID).
			Msg("cambio de estado de tarea")
	}
	resp := dto.NewTaskResponse(updated, updated.IsOverdue(s.now(), s.loc))
	return &resp, nil
}

// applyTransition fija completedBy/completedLate según la transición de estado.
// completedLate se calcula en PENDING → COMPLETED; fuera de esa transición solo cambia si ADMIN lo envía.
func (s *Service) applyTransition(current *entity.Task, patch *entity.TaskPatch, claim access.Claim) {
	if patch.Status == nil {
		return
	}
	switch {
	case current.Status == entity.TaskPending && *patch.Status == entity.TaskCompleted:
		due := current.DueDate
		if patch.DueDate != nil {
			due = *patch.DueDate
		}
		late := s.now().After(entity.EndOfDay(due, s.loc))
		patch.CompletedLate = &late
		if patch.CompletedByID == nil || *patch.CompletedByID == "" {
			actor := claim.UserID
			patch.CompletedByID = &actor
		}
	case current.Status == entity.TaskCompleted && *patch.Status == entity.TaskCompleted:
		// Ya completada: no se reasigna quién la completó salvo que ADMIN lo pida explícitamente.
		if !access.IsAdmin(claim.Role) {
			patch.CompletedByID = nil
		}
	case current.Status == entity.TaskCompleted && *patch.Status == entity.TaskPending:
		empty, notLate := "", false
		patch.CompletedByID = &empty
		patch.CompletedLate = &notLate
	}
}

// Duplicate copia una tarea con otra fecha límite. Solo ADMIN.
func (s *Service) Duplicate(ctx context.Context, claim access.Claim, id string, in dto.DuplicateTaskRequest) (*dto.TaskResponse, error) {
	if !access.CanDuplicateTask(claim.Role) {
		return nil, fmt.Errorf("duplicar tarea: %w", domain.ErrForbidden)
	}
	if strings.TrimSpace(in.NewDueDate) == "" {
		return nil, fmt.Errorf("newDueDate es requerido: %w", domain.ErrInvalidInput)
	}
	due, err := dates.ParseDateTime(in.NewDueDate, s.loc)
	if err != nil {
		return nil, fmt.Errorf("newDueDate: %w", err)
	}
	t, err := s.tasks.Duplicate(ctx, id, due)
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("task_id", t.ID).Str("source_id", id).Str("by", claim.UserID).Msg("tarea duplicada")
	resp := dto.NewTaskResponse(t, t.IsOverdue(s.now(), s.loc))
	return &resp, nil
}

// Delete borra una tarea. Solo ADMIN.
func (s *Service) Delete(ctx context.Context, claim access.Claim, id string) error {
	if !access.CanDeleteTask(claim.Role) {
		return fmt.Errorf("borrar tarea: %w", domain.ErrForbidden)
	}
	if err := s.tasks.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Str("task_id", id).Str("by", claim.UserID).Msg("tarea borrada")
	return nil
}
