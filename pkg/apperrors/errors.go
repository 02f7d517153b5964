package apperrors

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// AppError - ошибка, которую сервисы возвращают хэндлерам. HTTPCode и Err наружу не уходят.
type AppError struct {
	Code     ErrorCode   `json:"code"`
	Domain   string      `json:"domain"`
	Message  string      `json:"message"`
	Details  interface{} `json:"details,omitempty"`
	Err      error       `json:"-"`
	HTTPCode int         `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("[%s:%s] %s", e.Domain, e.Code, e.Message)
	}
	return fmt.Sprintf("[%s:%s] %s (%v)", e.Domain, e.Code, e.Message, e.Err)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// MarshalJSON пишет только публичные поля.
func (e *AppError) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Code    ErrorCode   `json:"code"`
		Domain  string      `json:"domain"`
		Message string      `json:"message"`
		Details interface{} `json:"details,omitempty"`
	}{e.Code, e.Domain, e.Message, e.Details})
}

func New(code ErrorCode, domain, message string, httpCode int) *AppError {
	return &AppError{Code: code, Domain: domain, Message: message, HTTPCode: httpCode}
}

// Wrap keeps err as the cause; it is logged and shown only in debug mode.
func Wrap(err error, code ErrorCode, domain, message string, httpCode int) *AppError {
	appErr := New(code, domain, message, httpCode)
	appErr.Err = err
	return appErr
}

func InternalError(err error) *AppError {
	return Wrap(err, CodeInternalError, "system", "Internal server error", http.StatusInternalServerError)
}

// ValidationError - 400 с деталями по полям.
func ValidationError(details interface{}) *AppError {
	appErr := New(CodeValidationFailed, "validation", "Validation failed", http.StatusBadRequest)
	appErr.Details = details
	return appErr
}

func NewUnauthorizedError(message string) *AppError {
	return New(CodeUnauthorized, "auth", message, http.StatusUnauthorized)
}

func NewBadRequestError(message string) *AppError {
	return New(CodeValidationFailed, "request", message, http.StatusBadRequest)
}
