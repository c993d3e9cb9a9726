package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/impilo-stock/internal/application/dto"
	"github.com/jhoicas/impilo-stock/internal/domain"
	"github.com/jhoicas/impilo-stock/pkg/apierror"
)

// writeError traduce errores de dominio y del backend a dto.ErrorResponse.
//   - *apierror.Error conserva el status del backend; 0 → 502 y timeout → 504.
//   - ErrInvalidInput → 400, ErrNotFound → 404, ErrUnauthorized/ErrTokenExpired → 401.
//   - resto → 500.
func writeError(c *fiber.Ctx, err error) error {
	var apiErr *apierror.Error
	if errors.As(err, &apiErr) {
		return writeAPIError(c, apiErr)
	}
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
	case errors.Is(err, domain.ErrTokenExpired):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "TOKEN_EXPIRED", Message: "token expirado"})
	case errors.Is(err, domain.ErrUnauthorized):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: err.Error()})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}

func writeAPIError(c *fiber.Ctx, e *apierror.Error) error {
	status, code := e.Status, "API_ERROR"
	switch {
	case e.Status == apierror.StatusNetwork:
		status, code = fiber.StatusBadGateway, "BACKEND_UNAVAILABLE"
	case e.Timeout():
		status, code = fiber.StatusGatewayTimeout, "BACKEND_TIMEOUT"
	case e.Status < 400 || e.Status > 599:
		status = fiber.StatusBadGateway
	}
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: e.Message, Details: e.Data})
}

func badRequest(c *fiber.Ctx, code, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: code, Message: msg})
}

// ErrorHandler handler de errores de Fiber: respeta *fiber.Error y delega el resto en writeError.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return c.Status(fe.Code).JSON(dto.ErrorResponse{Code: "HTTP_ERROR", Message: fe.Message})
	}
	return writeError(c, err)
}
