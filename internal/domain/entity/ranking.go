package entity

// RankingEntry fila del ranking de empleados por tareas completadas.
type RankingEntry struct {
	UserID         string
	Name           string
	TasksCompleted int
	TotalTasks     int
}

// PositionSummary conteos de tareas por puesto en un rango.
type PositionSummary struct {
	PositionID    string
	PositionName  string
	Total         int
	Pending       int
	Overdue       int
	Completed     int
	CompletedLate int
}
