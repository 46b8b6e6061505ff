package usecase

import (
	"context"
	"time"

	"github.com/jhoicas/Turnos-api/internal/domain/entity"
	"github.com/jhoicas/Turnos-api/internal/domain/repository"
)

// TxRunner ejecuta varias escrituras en una única transacción.
// Si fn devuelve error se hace rollback de todo.
type TxRunner interface {
	RunCards(ctx context.Context, fn func(
		userRepo repository.UserRepository,
		cardRepo repository.CardRecordRepository,
	) error) error
}

// ClosureRenderer genera el justificante PDF de un cierre de caja.
type ClosureRenderer interface {
	RenderClosure(c *entity.Closure, positionName, userName string, loc *time.Location) ([]byte, error)
}
