package repository

import (
	"context"

	"github.com/jhoicas/Turnos-api/internal/domain/entity"
)

// PositionRepository puerto de persistencia para los puestos.
type PositionRepository interface {
	ListAll(ctx context.Context) ([]*entity.Position, error)
	GetByID(ctx context.Context, id string) (*entity.Position, error)
	Create(ctx context.Context, p *entity.Position) error
	Rename(ctx context.Context, id, name string) (*entity.Position, error)
}
