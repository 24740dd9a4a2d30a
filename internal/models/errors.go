package models

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"
)

// Error codes used throughout the application
const (
	ErrCodeNotFound     = "NOT_FOUND"
	ErrCodeValidation   = "VALIDATION_ERROR"
	ErrCodeUnauthorized = "UNAUTHORIZED"
	ErrCodeForbidden    = "FORBIDDEN"
	ErrCodeConflict     = "CONFLICT"
	ErrCodeInternal     = "INTERNAL_ERROR"
)

// AppError is a structured application error carrying a stable code
// alongside a client-safe message.
type AppError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(message string, err error) *AppError {
	return &AppError{Code: ErrCodeNotFound, Message: message, Err: err}
}

// NewValidationError creates a new validation error
func NewValidationError(message string, err error) *AppError {
	return &AppError{Code: ErrCodeValidation, Message: message, Err: err}
}

// NewUnauthorizedError creates a new unauthorized error
func NewUnauthorizedError(message string, err error) *AppError {
	return &AppError{Code: ErrCodeUnauthorized, Message: message, Err: err}
}

// NewForbiddenError creates a new forbidden error
func NewForbiddenError(message string, err error) *AppError {
	return &AppError{Code: ErrCodeForbidden, Message: message, Err: err}
}

// NewConflictError creates a new conflict error
func NewConflictError(message string, err error) *AppError {
	return &AppError{Code: ErrCodeConflict, Message: message, Err: err}
}

// NewInternalError creates a new internal error
func NewInternalError(message string, err error) *AppError {
	return &AppError{Code: ErrCodeInternal, Message: message, Err: err}
}

// RespondWithError writes an error to the client using the standard
// response envelope. Domain errors (validation, not found, auth,
// conflict) are business outcomes and go out as HTTP 200 with
// success=false; unexpected errors become a generic 500 so internal
// detail never reaches the client.
func RespondWithError(c *fiber.Ctx, err error) error {
	var appErr *AppError
	if errors.As(err, &appErr) {
		switch appErr.Code {
		case ErrCodeNotFound, ErrCodeValidation, ErrCodeUnauthorized, ErrCodeForbidden, ErrCodeConflict:
			return c.Status(fiber.StatusOK).JSON(Envelope{
				Success: false,
				Message: appErr.Message,
			})
		default:
			slog.ErrorContext(c.UserContext(), "internal error",
				slog.String("code", appErr.Code),
				slog.String("error", appErr.Error()),
			)
			return c.Status(fiber.StatusInternalServerError).JSON(Envelope{
				Success: false,
				Message: "Something went wrong",
			})
		}
	}

	slog.ErrorContext(c.UserContext(), "unhandled error", slog.String("error", err.Error()))
	return c.Status(fiber.StatusInternalServerError).JSON(Envelope{
		Success: false,
		Message: "Something went wrong",
	})
}
