package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/stock-control/internal/observability"
)

// MetricsMiddleware cuenta cada petición por método y status.
func MetricsMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()
		observability.HTTPRequests.WithLabelValues(
			c.Method(), strconv.Itoa(c.Response().StatusCode())).Inc()
		return err
	}
}
