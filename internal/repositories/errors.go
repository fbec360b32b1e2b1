package repositories

import (
	"errors"

	"github.com/SAP-F-2025/nova-scholar-service/internal/store"
)

// IsNotFoundError reports whether err is a missing-document error from any store backend
func IsNotFoundError(err error) bool {
	return errors.Is(err, store.ErrNotFound)
}
