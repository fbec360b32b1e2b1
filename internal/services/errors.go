package services

import (
	"errors"
	"fmt"

	"github.com/SAP-F-2025/nova-scholar-service/internal/repositories"
)

var (
	// ErrUnauthorized covers an invalid token and a subject that does not own the resource
	ErrUnauthorized = errors.New("unauthorized")
	// ErrNotFound is returned when a referenced document is absent
	ErrNotFound = errors.New("not found")
	// ErrValidationFailed wraps request validation errors
	ErrValidationFailed = errors.New("validation failed")
	// ErrExternalService is returned when the AI or identity service fails
	ErrExternalService = errors.New("external service failure")
	// ErrStore is returned when the document store cannot be reached
	ErrStore = errors.New("store error")
	// ErrRateLimited is returned when a caller has used up its AI quota
	ErrRateLimited = errors.New("rate limited")
)

// storeError classifies a repository error
func storeError(op string, err error) error {
	if repositories.IsNotFoundError(err) {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	return fmt.Errorf("%w: %s: %v", ErrStore, op, err)
}
