package services

import (
	"errors"

	"lookhub/internal/repositories"
	"lookhub/pkg/apperrors"
)

// mapRepoError converts repository errors to API errors.
func mapRepoError(err error) error {
	if err == nil {
		return nil
	}
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	switch {
	case errors.Is(err, repositories.ErrLookNotFound):
		return apperrors.ErrNotFound(err, "look", "Look not found")
	case errors.Is(err, repositories.ErrClothesNotFound):
		return apperrors.ErrNotFound(err, "clothes", "Clothes not found")
	case errors.Is(err, repositories.ErrCategoryNotFound):
		return apperrors.ErrNotFound(err, "category", "Clothes category not found")
	case errors.Is(err, repositories.ErrInvalidSortField):
		return apperrors.NewBadRequestError(err.Error())
	default:
		return apperrors.InternalError(err)
	}
}
