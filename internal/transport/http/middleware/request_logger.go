// Package middleware contains HTTP middlewares for the webhook server.
package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// RequestLogger logs each request with method, path, status and duration.
// Probe endpoints log at debug so that health checks and metric scrapes do
// not drown out the webhook traffic.
func RequestLogger(log *zap.SugaredLogger) fiber.Handler {
	log = log.Named("http.access")

	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		dur := time.Since(start)

		reqID, _ := c.Locals("requestid").(string)
		if reqID == "" {
			reqID = c.Get(fiber.HeaderXRequestID)
		}

		logw := log.Infow
		if path := c.Path(); path == "/healthz" || path == "/metrics" {
			logw = log.Debugw
		}

		logw("request",
			"method", c.Method(),
			"path", c.OriginalURL(),
			"status", c.Response().StatusCode(),
			"duration_ms", float64(dur.Microseconds())/1000.0,
			"request_id", reqID,
		)

		return err
	}
}
