package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Turnos-api/internal/domain"
	"github.com/jhoicas/Turnos-api/internal/domain/entity"
	"github.com/jhoicas/Turnos-api/internal/domain/repository"
)

var _ repository.PositionRepository = (*PositionRepo)(nil)

// PositionRepo implementación de PositionRepository sobre PostgreSQL.
type PositionRepo struct {
	db Querier
}

// NewPositionRepository construye el repositorio de puestos.
func NewPositionRepository(db Querier) *PositionRepo {
	return &PositionRepo{db: db}
}

// ListAll devuelve todos los puestos ordenados por nombre.
func (r *PositionRepo) ListAll(ctx context.Context) ([]*entity.Position, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name FROM positions ORDER BY name`)
	if err != nil {
		return nil, storageErr("list positions", err)
	}
	defer rows.Close()
	list := make([]*entity.Position, 0)
	for rows.Next() {
		var p entity.Position
		if err := rows.Scan(&p.ID, &p.Name); err != nil {
			return nil, storageErr("scan position", err)
		}
		list = append(list, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("list positions", err)
	}
	return list, nil
}

// GetByID obtiene un puesto.
func (r *PositionRepo) GetByID(ctx context.Context, id string) (*entity.Position, error) {
	var p entity.Position
	if err := r.db.QueryRow(ctx, `SELECT id, name FROM positions WHERE id = $1`, id).Scan(&p.ID, &p.Name); err != nil {
		return nil, notFoundOr("get position", err)
	}
	return &p, nil
}

// Create inserta un puesto. Un ID repetido es ErrAlreadyExists.
func (r *PositionRepo) Create(ctx context.Context, p *entity.Position) error {
	if _, err := r.db.Exec(ctx, `INSERT INTO positions (id, name) VALUES ($1, $2)`, p.ID, p.Name); err != nil {
		return storageErr("insert position", err)
	}
	return nil
}

// Rename cambia el nombre visible del puesto.
func (r *PositionRepo) Rename(ctx context.Context, id, name string) (*entity.Position, error) {
	tag, err := r.db.Exec(ctx, `UPDATE positions SET name = $2 WHERE id = $1`, id, name)
	if err != nil {
		return nil, storageErr("rename position", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, fmt.Errorf("rename position %s: %w", id, domain.ErrNotFound)
	}
	return &entity.Position{ID: id, Name: name}, nil
}
