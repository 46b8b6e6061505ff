package dto

import "time"

// RankingQuery período del ranking: day | week | month.
type RankingQuery struct {
	Period string `query:"period"`
}

// RankingEntryDTO fila del ranking.
type RankingEntryDTO struct {
	Rank           int    `json:"rank"`
	UserID         string `json:"userId"`
	Name           string `json:"name"`
	TasksCompleted int    `json:"tasksCompleted"`
	TotalTasks     int    `json:"totalTasks"`
}

// RankingResponse ranking de empleados desde el inicio del período.
type RankingResponse struct {
	Period  string            `json:"period"`
	Since   time.Time         `json:"since"`
	Entries []RankingEntryDTO `json:"entries"`
}

// PositionSummaryQuery rango de fechas límite (YYYY-MM-DD).
type PositionSummaryQuery struct {
	StartDate string `query:"startDate"`
	EndDate   string `query:"endDate"`
}

// PositionSummaryDTO conteos de tareas de un puesto.
type PositionSummaryDTO struct {
	PositionID    string `json:"positionId"`
	PositionName  string `json:"positionName"`
	Total         int    `json:"total"`
	Pending       int    `json:"pending"`
	Overdue       int    `json:"overdue"`
	Completed     int    `json:"completed"`
	CompletedLate int    `json:"completedLate"`
}
