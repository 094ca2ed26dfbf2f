package serverutils

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

// AppError is an error carrying an HTTP status. Services return it when they
// want to control the response code; anything else maps to 500.
type AppError struct {
	Code    int               `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

func (e *AppError) Error() string {
	return e.Message
}

func NewAppError(code int, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

// ErrorHandlerMiddleware converts errors escaping a handler into the
// standard envelope.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		var appErr *AppError
		if errors.As(err, &appErr) {
			resp := ErrorResponse(appErr.Code, appErr.Message)
			if len(appErr.Fields) > 0 {
				resp.Data = appErr.Fields
			}
			return ctx.Status(appErr.Code).JSON(resp)
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ctx.Status(fiberErr.Code).JSON(ErrorResponse(fiberErr.Code, fiberErr.Message))
		}

		return ctx.Status(fiber.StatusInternalServerError).
			JSON(ErrorResponse(fiber.StatusInternalServerError, err.Error()))
	}
}
