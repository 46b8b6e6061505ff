package repository

import (
	"context"

	"github.com/jhoicas/Turnos-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User y su relación N:M con Position.
// Las escrituras que tocan user_positions son atómicas: o se aplica todo o nada.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	// Update aplica el patch; PositionIDs no nil reemplaza el conjunto completo.
	Update(ctx context.Context, id string, patch entity.UserPatch) (*entity.User, error)
	Delete(ctx context.Context, id string) error
	ListAll(ctx context.Context) ([]*entity.User, error)
	ListByPosition(ctx context.Context, positionID string) ([]*entity.User, error)
}
