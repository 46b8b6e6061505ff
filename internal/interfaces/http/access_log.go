package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Turnos-api/pkg/logger"
)

// AccessLog registra cada petición: método, ruta, estado, latencia, request_id y usuario.
// Las respuestas 5xx se registran como error con la causa guardada por fail.
func AccessLog(log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		if chainErr := c.Next(); chainErr != nil {
			if err := c.App().ErrorHandler(c, chainErr); err != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}
		status := c.Response().StatusCode()

		ev := log.Info()
		switch {
		case status >= fiber.StatusInternalServerError:
			ev = log.Error()
			if err, ok := c.Locals(LocalError).(error); ok {
				ev = ev.Err(err)
			}
		case status >= fiber.StatusBadRequest:
			ev = log.Warn()
		}
		requestID, _ := c.Locals("requestid").(string)
		ev.Str("request_id", requestID).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("user_id", GetUserID(c)).
			Msg("request")
		return nil
	}
}
