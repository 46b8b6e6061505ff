package http

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Turnos-api/internal/application/dto"
	"github.com/jhoicas/Turnos-api/internal/domain"
)

// errBadQuery query string que Fiber no pudo decodificar.
var errBadQuery = fmt.Errorf("parámetros de consulta inválidos: %w", domain.ErrInvalidInput)

// LocalError error interno guardado para el access log (no se envía al cliente).
const LocalError = "handler_error"

// fail traduce un error de aplicación a respuesta HTTP con errors.Is.
func fail(c *fiber.Ctx, err error) error {
	status, code := classify(err)
	resp := dto.ErrorResponse{Code: code, Message: err.Error()}

	var verr *validationError
	if errors.As(err, &verr) {
		resp.Message = "datos inválidos"
		resp.Fields = verr.fields
	}
	if status == fiber.StatusInternalServerError {
		c.Locals(LocalError, err)
		resp.Message = "error interno del servidor"
	}
	return c.Status(status).JSON(resp)
}

func classify(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return fiber.StatusUnauthorized, "INVALID_CREDENTIALS"
	case errors.Is(err, domain.ErrUnauthenticated):
		return fiber.StatusUnauthorized, "UNAUTHENTICATED"
	case errors.Is(err, domain.ErrForbidden):
		return fiber.StatusForbidden, "FORBIDDEN"
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, domain.ErrAlreadyExists):
		return fiber.StatusConflict, "ALREADY_EXISTS"
	case errors.Is(err, domain.ErrInvalidReference):
		return fiber.StatusBadRequest, "INVALID_REFERENCE"
	case errors.Is(err, domain.ErrInvalidInput):
		return fiber.StatusBadRequest, "VALIDATION"
	}
	return fiber.StatusInternalServerError, "INTERNAL"
}

// ErrorHandler último recurso de Fiber: rutas inexistentes, body demasiado grande
// y errores que un handler devolvió sin responder.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code := "HTTP_ERROR"
		switch fe.Code {
		case fiber.StatusNotFound:
			code = "ROUTE_NOT_FOUND"
		case fiber.StatusMethodNotAllowed:
			code = "METHOD_NOT_ALLOWED"
		case fiber.StatusRequestEntityTooLarge:
			code = "BODY_TOO_LARGE"
		}
		return c.Status(fe.Code).JSON(dto.ErrorResponse{Code: code, Message: fe.Message})
	}
	return fail(c, err)
}
