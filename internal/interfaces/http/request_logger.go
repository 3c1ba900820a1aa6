package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// HeaderRequestID cabecera con el identificador de la petición.
const HeaderRequestID = "X-Request-ID"

// RequestLogger escribe una línea por petición y propaga X-Request-ID (lo genera si no viene).
func RequestLogger(log zerolog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		reqID := c.Get(HeaderRequestID)
		if reqID == "" {
			reqID = uuid.NewString()
		}
		c.Set(HeaderRequestID, reqID)

		err := c.Next()
		if err != nil {
			// deja que el ErrorHandler de fiber escriba la respuesta antes de leer el status
			if herr := c.App().ErrorHandler(c, err); herr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		status := c.Response().StatusCode()
		ev := log.Info()
		if status >= fiber.StatusInternalServerError {
			ev = log.Error().Err(err)
		}
		ev.Str("request_id", reqID).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Msg("http request")
		return nil
	}
}
