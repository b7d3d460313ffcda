package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/puantaj-api/pkg/logger"
	"github.com/rs/zerolog"
)

// RequestLogger registra cada petición con zerolog; el nivel depende del status.
func RequestLogger(log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		chainErr := c.Next()

		status := c.Response().StatusCode()
		if chainErr != nil {
			var fe *fiber.Error
			if errors.As(chainErr, &fe) {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}

		var event *zerolog.Event
		switch {
		case status >= 500:
			event = log.Error()
		case status >= 400:
			event = log.Warn()
		default:
			event = log.Info()
		}
		event.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status_code", status).
			Str("client_ip", c.IP()).
			Dur("latency", time.Since(start)).
			Str("user_id", GetUserID(c)).
			Msg("petición procesada")
		return chainErr
	}
}
