package repository

import (
	"context"

	"github.com/jhoicas/Turnos-api/internal/domain/entity"
)

// ClosureRepository puerto de persistencia de cierres de caja.
type ClosureRepository interface {
	// Create guarda el cierre y su desglose en la misma transacción.
	Create(ctx context.Context, c *entity.Closure) error
	GetByID(ctx context.Context, id string) (*entity.Closure, error)
	List(ctx context.Context, f entity.ClosureFilter) ([]*entity.Closure, error)
}
