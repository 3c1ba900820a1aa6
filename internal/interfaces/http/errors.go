package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/zmitacart/catalog-api/internal/application/dto"
	"github.com/zmitacart/catalog-api/internal/domain"
)

// respondError traduce errores de dominio a status HTTP y cuerpo ErrorResponse.
func respondError(c *fiber.Ctx, err error) error {
	status, code := fiber.StatusInternalServerError, "INTERNAL"
	switch {
	case errors.Is(err, domain.ErrNotFound):
		status, code = fiber.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, domain.ErrAlreadyExists):
		status, code = fiber.StatusConflict, "ALREADY_EXISTS"
	case errors.Is(err, domain.ErrInvalidOperation):
		status, code = fiber.StatusUnprocessableEntity, "INVALID_OPERATION"
	case errors.Is(err, domain.ErrInvalidInput):
		status, code = fiber.StatusBadRequest, "VALIDATION"
	case errors.Is(err, domain.ErrConflict):
		status, code = fiber.StatusConflict, "CONFLICT"
	case errors.Is(err, domain.ErrUnauthorized):
		status, code = fiber.StatusUnauthorized, "UNAUTHORIZED"
	case errors.Is(err, domain.ErrForbidden):
		status, code = fiber.StatusForbidden, "FORBIDDEN"
	}
	msg := err.Error()
	if status == fiber.StatusInternalServerError {
		msg = "error interno"
	}
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: msg})
}

func validationError(c *fiber.Ctx, details []string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
		Code:    "VALIDATION",
		Message: "datos inválidos",
		Details: details,
	})
}

// ErrorHandler reemplaza el handler por defecto de fiber para que todo error salga como ErrorResponse.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var ferr *fiber.Error
	if errors.As(err, &ferr) {
		code := "INTERNAL"
		switch ferr.Code {
		case fiber.StatusBadRequest:
			code = "BAD_REQUEST"
		case fiber.StatusNotFound:
			code = "NOT_FOUND"
		case fiber.StatusMethodNotAllowed:
			code = "METHOD_NOT_ALLOWED"
		}
		return c.Status(ferr.Code).JSON(dto.ErrorResponse{Code: code, Message: ferr.Message})
	}
	return respondError(c, err)
}
