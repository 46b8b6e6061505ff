package entity

import "time"

// TaskStatus estado persistido de una tarea.
type TaskStatus string

const (
	TaskPending   TaskStatus = "PENDING"
	TaskCompleted TaskStatus = "COMPLETED"
)

// Valid indica si el estado es uno de los persistibles.
func (s TaskStatus) Valid() bool {
	return s == TaskPending || s == TaskCompleted
}

// StatusFilter estado usado en consultas. OVERDUE no se persiste nunca:
// es PENDING con la fecha límite ya vencida.
type StatusFilter string

const (
	FilterPending   StatusFilter = "PENDING"
	FilterCompleted StatusFilter = "COMPLETED"
	FilterOverdue   StatusFilter = "OVERDUE"
)

// Valid indica si el filtro es reconocido.
func (f StatusFilter) Valid() bool {
	switch f {
	case FilterPending, FilterCompleted, FilterOverdue:
		return true
	}
	return false
}

// Shift turno de trabajo.
type Shift string

const (
	ShiftMorning   Shift = "MORNING"
	ShiftAfternoon Shift = "AFTERNOON"
	ShiftNight     Shift = "NIGHT"
)

// Valid indica si el turno es reconocido.
func (s Shift) Valid() bool {
	switch s {
	case ShiftMorning, ShiftAfternoon, ShiftNight:
		return true
	}
	return false
}

// Task tarea asignada a un puesto y turno.
type Task struct {
	ID            string
	Title         string
	Description   string
	Status        TaskStatus
	DueDate       time.Time
	PositionID    string
	Shift         Shift
	CompletedByID string // vacío si nadie la completó
	CompletedLate bool   // solo tiene sentido con Status = COMPLETED
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// EndOfDay devuelve 23:59:59.999 del día calendario de t en loc.
func EndOfDay(t time.Time, loc *time.Location) time.Time {
	lt := t.In(loc)
	return time.Date(lt.Year(), lt.Month(), lt.Day(), 23, 59, 59, int(999*time.Millisecond), loc)
}

// StartOfDay devuelve 00:00:00 del día calendario de t en loc.
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	lt := t.In(loc)
	return time.Date(lt.Year(), lt.Month(), lt.Day(), 0, 0, 0, 0, loc)
}

// IsPastDue indica si now ya superó el final del día de la fecha límite.
func (t *Task) IsPastDue(now time.Time, loc *time.Location) bool {
	return now.After(EndOfDay(t.DueDate, loc))
}

// IsOverdue condición derivada (no persistida): PENDING y fuera de plazo.
func (t *Task) IsOverdue(now time.Time, loc *time.Location) bool {
	return t.Status == TaskPending && t.IsPastDue(now, loc)
}

// MatchesStatus aplica un filtro de estado, incluido el pseudo-estado OVERDUE.
func (t *Task) MatchesStatus(f StatusFilter, now time.Time, loc *time.Location) bool {
	switch f {
	case "":
		return true
	case FilterCompleted:
		return t.Status == TaskCompleted
	case FilterPending:
		return t.Status == TaskPending && !t.IsPastDue(now, loc)
	case FilterOverdue:
		return t.IsOverdue(now, loc)
	}
	return false
}

// TaskPatch cambios parciales de una tarea. nil = sin cambio.
// CompletedByID apuntando a "" deja la columna en NULL.
type TaskPatch struct {
	Title         *string
	Description   *string
	Status        *TaskStatus
	DueDate       *time.Time
	PositionID    *string
	Shift         *Shift
	CompletedByID *string
	CompletedLate *bool
}

// IsEmpty indica si el patch no cambia nada.
func (p TaskPatch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && p.Status == nil && p.DueDate == nil &&
		p.PositionID == nil && p.Shift == nil && p.CompletedByID == nil && p.CompletedLate == nil
}

// TaskFilter filtros de listado. Status solo admite estados persistidos en el repositorio.
type TaskFilter struct {
	PositionID string
	Status     TaskStatus
	Shift      Shift
	StartDate  *time.Time
	EndDate    *time.Time
}
