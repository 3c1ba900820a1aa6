package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
)

// httpObserver lo implementa observability.Collector.
type httpObserver interface {
	ObserveHTTP(method, route string, status int, elapsed time.Duration)
}

// Metrics mide cada petición etiquetada por la ruta registrada (no por el path literal).
func Metrics(obs httpObserver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			status = fiber.StatusInternalServerError
			var ferr *fiber.Error
			if errors.As(err, &ferr) {
				status = ferr.Code
			}
		}
		route := c.Route().Path
		if route == "/" && c.Path() != "/" {
			// solo pasó por middlewares: ninguna ruta coincidió
			route = "unmatched"
		}
		obs.ObserveHTTP(c.Method(), route, status, time.Since(start))
		return err
	}
}
