package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/puantaj-api/internal/application/dto"
	"github.com/jhoicas/puantaj-api/internal/domain"
	"github.com/jhoicas/puantaj-api/internal/domain/guard"
)

// errorBody traduce un error de dominio a status HTTP y cuerpo.
func errorBody(err error) (int, dto.ErrorResponse) {
	switch {
	case errors.Is(err, guard.ErrBusy):
		return fiber.StatusConflict, dto.ErrorResponse{Code: "BUSY", Message: err.Error()}
	case errors.Is(err, guard.ErrInvalidTransition):
		return fiber.StatusConflict, dto.ErrorResponse{Code: "INVALID_TRANSITION", Message: err.Error()}
	case errors.Is(err, domain.ErrUserNotFound):
		return fiber.StatusNotFound, dto.ErrorResponse{Code: "USER_NOT_FOUND", Message: err.Error()}
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound, dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()}
	case errors.Is(err, domain.ErrUnauthorized):
		return fiber.StatusUnauthorized, dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "credenciales inválidas"}
	case errors.Is(err, domain.ErrForbidden):
		return fiber.StatusForbidden, dto.ErrorResponse{Code: "FORBIDDEN", Message: err.Error()}
	}

	le, ok := domain.AsLedgerError(err)
	if !ok {
		return fiber.StatusInternalServerError, dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()}
	}
	status := fiber.StatusBadGateway
	switch le.Kind {
	case domain.KindValidation:
		status = fiber.StatusBadRequest
	case domain.KindDelete:
		status = fiber.StatusForbidden
	}
	code := le.Code
	if code == "" {
		code = le.Kind.String()
	}
	return status, dto.ErrorResponse{Code: code, Message: le.Message, Kind: le.Kind.String()}
}

func writeError(c *fiber.Ctx, err error) error {
	status, body := errorBody(err)
	return c.Status(status).JSON(body)
}

func badRequest(c *fiber.Ctx, code, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: code, Message: msg})
}
