package apperrors

import (
	"net/http"
)

// ErrNotFound wraps a repository "not found" error into a 404.
func ErrNotFound(err error, domain, message string) *AppError {
	return Wrap(err, CodeNotFound, domain, message, http.StatusNotFound)
}

// ErrConflict - общая фабрика для конфликтов (409)
func ErrConflict(err error, domain, message string) *AppError {
	return Wrap(err, CodeConflict, domain, message, http.StatusConflict)
}

// ErrPrecondition is returned when an entity is not in a state that allows the operation.
func ErrPrecondition(domain, message string) *AppError {
	return New(CodePreconditionFailed, domain, message, http.StatusBadRequest)
}

// ErrInvalidFile - uploaded file could not be decoded.
func ErrInvalidFile(err error, filename string) *AppError {
	return Wrap(err, CodeInvalidFile, "image", "Invalid image file: "+filename, http.StatusBadRequest)
}

// ErrUnknown is used for unexpected failures during file processing.
func ErrUnknown(err error) *AppError {
	return Wrap(err, CodeUnknownError, "image", "Unknown error while processing images", http.StatusInternalServerError)
}

// ErrBroker - queue is unreachable.
func ErrBroker(err error) *AppError {
	return Wrap(err, CodeExternalServiceError, "broker", "Task queue is unavailable", http.StatusServiceUnavailable)
}

// ErrInvalidCredentials - неверный логин или пароль.
func ErrInvalidCredentials() *AppError {
	return New(CodeInvalidCredentials, "auth", "Incorrect username or password", http.StatusUnauthorized)
}

// ErrInvalidAPIKey - неверный API-ключ.
func ErrInvalidAPIKey() *AppError {
	return New(CodeInvalidCredentials, "auth", "Incorrect API key", http.StatusUnauthorized)
}

// ErrInvalidToken - неверный или просроченный токен.
func ErrInvalidToken(err error) *AppError {
	return Wrap(err, CodeInvalidToken, "auth", "Could not validate credentials", http.StatusUnauthorized)
}
