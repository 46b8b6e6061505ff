package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/Turnos-api/internal/domain"
)

// Códigos SQLSTATE que se reclasifican como errores de dominio.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgCheckViolation      = "23514"
	pgInvalidTextRepr     = "22P02"
)

// storageErr envuelve err con el sentinel de dominio que corresponda.
// Violaciones de unicidad → ErrAlreadyExists, de FK → ErrInvalidReference,
// el resto → ErrStorageFailure. La causa original sigue accesible con errors.As.
func storageErr(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrAlreadyExists) ||
		errors.Is(err, domain.ErrInvalidReference) || errors.Is(err, domain.ErrStorageFailure) {
		return err
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return fmt.Errorf("%s: %w (%s)", op, domain.ErrAlreadyExists, pgErr.ConstraintName)
		case pgForeignKeyViolation:
			return fmt.Errorf("%s: %w (%s)", op, domain.ErrInvalidReference, pgErr.ConstraintName)
		case pgCheckViolation, pgInvalidTextRepr:
			return fmt.Errorf("%s: %w: %s", op, domain.ErrInvalidInput, pgErr.Message)
		}
	}
	return fmt.Errorf("%s: %w: %w", op, domain.ErrStorageFailure, err)
}

// notFoundOr traduce pgx.ErrNoRows en domain.ErrNotFound.
func notFoundOr(op string, err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s: %w", op, domain.ErrNotFound)
	}
	return storageErr(op, err)
}

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}
