package task

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Turnos-api/internal/domain/access"
)

// ExportRow fila del libro exportado.
type ExportRow struct {
	Title         string
	Description   string
	Position      string
	Shift         string
	DueDate       time.Time
	Status        string // PENDING | OVERDUE | COMPLETED
	CompletedBy   string
	CompletedLate bool
}

// Exporter genera el fichero a partir de las filas.
type Exporter interface {
	ExportTasks(rows []ExportRow, loc *time.Location) (*bytes.Buffer, error)
}

// Export genera el libro con las mismas tareas que vería el actor en el listado.
func (s *Service) Export(ctx context.Context, claim access.Claim, q Query, exp Exporter) (*bytes.Buffer, error) {
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
	positionNames := make(map[string]string, len(positions))
	for _, p := range positions {
		positionNames[p.ID] = p.Name
	}
	userNames := make(map[string]string, len(users))
	for _, u := range users {
		userNames[u.ID] = u.Name
	}

	now := s.now()
	rows := make([]ExportRow, 0, len(tasks))
	for _, t := range tasks {
		status := string(t.Status)
		if t.IsOverdue(now, s.loc) {
			status = "OVERDUE"
		}
		position := positionNames[t.PositionID]
		if position == "" {
			position = t.PositionID
		}
		rows = append(rows, ExportRow{
			Title:         t.Title,
			Description:   t.Description,
			Position:      position,
			Shift:         string(t.Shift),
			DueDate:       t.DueDate,
			Status:        status,
			CompletedBy:   userNames[t.CompletedByID],
			CompletedLate: t.CompletedLate,
		})
	}

	buf, err := exp.ExportTasks(rows, s.loc)
	if err != nil {
		return nil, fmt.Errorf("exportar tareas: %w", err)
	}
	return buf, nil
}
