package repository

import "context"

// SchemaManager deja el esquema listo. Idempotente.
type SchemaManager interface {
	EnsureSchema(ctx context.Context) error
}
