package services

import (
	"errors"

	"github.com/conjugo/quiz-service/internal/content"
	apperrors "github.com/conjugo/quiz-service/internal/errors"
	"github.com/conjugo/quiz-service/internal/repositories"
)

// ===== COMMON SERVICE ERRORS =====

var (
	// Generic errors
	ErrNotFound         = errors.New("resource not found")
	ErrValidationFailed = errors.New("validation failed")
	ErrInternalError    = errors.New("internal server error")

	// Week / content specific errors
	ErrWeekNotFound = content.ErrWeekNotFound

	// Submission specific errors
	ErrAnswerCountMismatch = errors.New("submission answer count does not match week layout")

	// Aggregation specific errors
	ErrNoResults = errors.New("no submissions match the requested scope")

	// Auth specific errors
	ErrInvalidPassword = errors.New("invalid teacher password")
	ErrSessionExpired  = errors.New("session expired or unknown")
)

// Use shared validation errors from errors package
type ValidationError = apperrors.ValidationError
type ValidationErrors = apperrors.ValidationErrors

// NewValidationError creates a new validation error using the shared type
func NewValidationError(field, message string, value interface{}) *ValidationError {
	return apperrors.NewValidationError(field, message, value)
}

// ===== ERROR HELPERS =====

// IsNotFound checks if error represents a "not found" condition
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrWeekNotFound)
}

// IsValidation checks if error represents a validation failure
func IsValidation(err error) bool {
	if errors.Is(err, ErrValidationFailed) || errors.Is(err, ErrAnswerCountMismatch) {
		return true
	}
	var ve ValidationErrors
	if errors.As(err, &ve) {
		return true
	}
	var single *ValidationError
	return errors.As(err, &single)
}

// IsWriteError checks if error represents a failed result log append
func IsWriteError(err error) bool {
	return repositories.IsWriteError(err)
}

// IsEmptyData checks if error represents an empty aggregation scope
func IsEmptyData(err error) bool {
	return errors.Is(err, ErrNoResults)
}
