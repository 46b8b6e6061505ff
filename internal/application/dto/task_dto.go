package dto

import "time"

// TaskResponse tarea con la condición derivada overdue.
type TaskResponse struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	Status        string    `json:"status"`
	DueDate       time.Time `json:"dueDate"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
	PositionID    string    `json:"positionId"`
	Shift         string    `json:"shift"`
	CompletedByID *string   `json:"completedById"`
	CompletedLate bool      `json:"completedLate"`
	Overdue       bool      `json:"overdue"`
}

// TaskListQuery filtros del listado (query string).
type TaskListQuery struct {
	PositionID string `query:"positionId"`
	Status     string `query:"status"`
	Shift      string `query:"shift"`
	StartDate  string `query:"startDate"`
	EndDate    string `query:"endDate"`
}

// TaskListResponse tareas visibles más los puestos y usuarios que el actor puede ver.
type TaskListResponse struct {
	Tasks     []TaskResponse     `json:"tasks"`
	Positions []PositionResponse `json:"positions"`
	Users     []UserResponse     `json:"users"`
}

// CreateTaskRequest alta de tarea. dueDate admite RFC3339 o YYYY-MM-DD.
type CreateTaskRequest struct {
	Title       string `json:"title" validate:"required,max=200"`
	Description string `json:"description" validate:"required"`
	DueDate     string `json:"dueDate" validate:"required"`
	PositionID  string `json:"positionId" validate:"required"`
	Shift       string `json:"shift" validate:"required"`
}

// DuplicateTaskRequest fecha límite de la copia.
type DuplicateTaskRequest struct {
	NewDueDate string `json:"newDueDate" validate:"required"`
}
