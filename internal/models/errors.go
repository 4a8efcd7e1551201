package models

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Error type strings exposed in API error bodies. The values are part of the
// wire contract consumed by the bundled frontend.
const (
	ErrTypeInvalidAPIKey  = "invalid api-key"
	ErrTypeInvalidTweetID = "invalid tweet id"
	ErrTypeInvalidUserID  = "invalid user id"
	ErrTypeInvalidMediaID = "invalid media id"
	ErrTypeValidation     = "ValidationError"
	ErrTypeFile           = "FileError"
	ErrTypeServer         = "server error"
)

// ErrorResponse is the standardized API error body.
type ErrorResponse struct {
	Result       string `json:"result"`
	ErrorType    string `json:"error_type"`
	ErrorMessage string `json:"error_message"`
}

// AppError is a typed application error carrying the HTTP status and the
// error_type string rendered to clients.
type AppError struct {
	Type    string
	Message string
	Status  int
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewNotFoundError builds a 404 error with the given error_type string.
func NewNotFoundError(errType, message string) *AppError {
	return &AppError{
		Type:    errType,
		Message: message,
		Status:  fiber.StatusNotFound,
	}
}

func NewValidationError(message string) *AppError {
	return &AppError{
		Type:    ErrTypeValidation,
		Message: message,
		Status:  fiber.StatusBadRequest,
	}
}

// NewUnprocessableError reports a structurally invalid request, such as a
// missing required header.
func NewUnprocessableError(message string) *AppError {
	return &AppError{
		Type:    ErrTypeValidation,
		Message: message,
		Status:  fiber.StatusUnprocessableEntity,
	}
}

func NewFileError(message string) *AppError {
	return &AppError{
		Type:    ErrTypeFile,
		Message: message,
		Status:  fiber.StatusBadRequest,
	}
}

func NewInternalError(err error) *AppError {
	return &AppError{
		Type:    ErrTypeServer,
		Message: "internal server error",
		Status:  fiber.StatusInternalServerError,
		Err:     err,
	}
}

// MapNotFound converts a gorm record-not-found error into a typed 404 with
// the given error_type string; any other error passes through unchanged.
func MapNotFound(err error, errType, message string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return NewNotFoundError(errType, message)
	}
	return err
}

// RespondWithError renders the standardized error body. Unknown error values
// are treated as internal errors so nothing unexpected leaks to clients.
func RespondWithError(c *fiber.Ctx, err error) error {
	appErr, ok := err.(*AppError)
	if !ok {
		appErr = NewInternalError(err)
	}

	return c.Status(appErr.Status).JSON(ErrorResponse{
		Result:       "false",
		ErrorType:    appErr.Type,
		ErrorMessage: appErr.Message,
	})
}
