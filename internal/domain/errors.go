package domain

import "errors"

// Errores de dominio (sin dependencias externas).
// La capa HTTP los traduce a códigos de estado con errors.Is.
var (
	ErrUnauthenticated    = errors.New("no autenticado")
	ErrInvalidCredentials = errors.New("credenciales inválidas")
	ErrForbidden          = errors.New("acceso denegado")
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrAlreadyExists      = errors.New("el recurso ya existe")
	ErrInvalidReference   = errors.New("referencia inválida")
	ErrStorageFailure     = errors.New("fallo de almacenamiento")
)
