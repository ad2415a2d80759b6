package apperror

import (
	"errors"
	"net/http"
)

// AppError is an error that maps to an HTTP status code. Handlers pass it
// through unchanged, so the service layer decides both the status and the
// message shown on the terminal.
type AppError struct {
	Code    int          `json:"code"`
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors,omitempty"`
}

// FieldError points a validation message at a single request field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *AppError) Error() string {
	return e.Message
}

var (
	ErrUnauthorized       = &AppError{Code: http.StatusUnauthorized, Message: "Unauthorized"}
	ErrInvalidCredentials = &AppError{Code: http.StatusUnauthorized, Message: "Tên đăng nhập hoặc mật khẩu không đúng"}
	ErrInvalidToken       = &AppError{Code: http.StatusUnauthorized, Message: "Invalid token"}
)

func NewAppError(code int, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

func NewNotFoundError(resource string) *AppError {
	return &AppError{Code: http.StatusNotFound, Message: resource + " not found"}
}

func NewConflictError(message string) *AppError {
	return &AppError{Code: http.StatusConflict, Message: message}
}

func NewBadRequestError(message string) *AppError {
	return &AppError{Code: http.StatusBadRequest, Message: message}
}

// GetAppError unwraps err into an AppError. Anything else becomes an
// internal error; its text is returned as-is since the API is consumed by
// our own terminals, not third parties.
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return &AppError{Code: http.StatusInternalServerError, Message: err.Error()}
}
