package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

// RequestLogger registra una línea por petición: 5xx en error, 4xx en warn, el resto en info.
func RequestLogger(log zerolog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			status = fiber.StatusInternalServerError
			var fe *fiber.Error
			if errors.As(err, &fe) {
				status = fe.Code
			}
		}

		var evt *zerolog.Event
		switch {
		case status >= fiber.StatusInternalServerError:
			evt = log.Error().Err(err)
		case status >= fiber.StatusBadRequest:
			evt = log.Warn()
		default:
			evt = log.Info()
		}
		evt.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("client_ip", GetClientIP(c)).
			Str("request_id", GetRequestID(c)).
			Msg("http request")
		return err
	}
}
