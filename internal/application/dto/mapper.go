package dto

import (
	"github.com/jhoicas/Turnos-api/internal/domain/entity"
)

// NewUserResponse convierte la entidad sin exponer el hash de la contraseña.
func NewUserResponse(u *entity.User) UserResponse {
	positions := u.PositionIDs
	if positions == nil {
		positions = []string{}
	}
	return UserResponse{
		ID:          u.ID,
		Name:        u.Name,
		Email:       u.Email,
		Role:        string(u.Role),
		PositionIDs: positions,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}

// NewUserResponses convierte una lista de usuarios.
func NewUserResponses(users []*entity.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, NewUserResponse(u))
	}
	return out
}

// NewPositionResponses convierte una lista de puestos.
func NewPositionResponses(positions []*entity.Position) []PositionResponse {
	out := make([]PositionResponse, 0, len(positions))
	for _, p := range positions {
		out = append(out, PositionResponse{ID: p.ID, Name: p.Name})
	}
	return out
}

// NewTaskResponse convierte la tarea; overdue se calcula fuera.
func NewTaskResponse(t *entity.Task, overdue bool) TaskResponse {
	var completedBy *string
	if t.CompletedByID != "" {
		id := t.CompletedByID
		completedBy = &id
	}
	return TaskResponse{
		ID:            t.ID,
		Title:         t.Title,
		Description:   t.Description,
		Status:        string(t.Status),
		DueDate:       t.DueDate,
		CreatedAt:     t.CreatedAt,
		UpdatedAt:     t.UpdatedAt,
		PositionID:    t.PositionID,
		Shift:         string(t.Shift),
		CompletedByID: completedBy,
		CompletedLate: t.CompletedLate,
		Overdue:       overdue,
	}
}

// NewCardRecordResponse convierte un contador de tarjetas.
func NewCardRecordResponse(r *entity.CardRecord) CardRecordResponse {
	return CardRecordResponse{
		ID:         r.ID,
		UserID:     r.UserID,
		PositionID: r.PositionID,
		CardType:   string(r.CardType),
		Count:      r.Count,
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	}
}

// NewClosureResponse convierte un cierre de caja.
func NewClosureResponse(c *entity.Closure) ClosureResponse {
	out := ClosureResponse{
		ID:             c.ID,
		UserID:         c.UserID,
		PositionID:     c.PositionID,
		Shift:          string(c.Shift),
		Date:           c.Date.Format("2006-01-02"),
		CountedTotal:   c.CountedTotal,
		ExpectedTotal:  c.ExpectedTotal,
		Difference:     c.Difference,
		Classification: c.Classification,
		Notes:          c.Notes,
		CreatedAt:      c.CreatedAt,
	}
	for _, d := range c.Denominations {
		out.Denominations = append(out.Denominations, DenominationDTO{Value: d.Value, Count: d.Count})
	}
	return out
}
