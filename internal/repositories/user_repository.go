package repositories

import (
	"context"

	"github.com/SAP-F-2025/nova-scholar-service/internal/models"
)

// ProfileUpdate is the merge payload for a profile write. Courses enrolled
// are never touched by a profile write.
type ProfileUpdate struct {
	Email      string
	Profile    models.Profile
	CGPA       float64
	Attendance float64
	RiskStatus models.RiskStatus
}

// UserRepository covers users/{uid}
type UserRepository interface {
	GetByID(ctx context.Context, uid string) (*models.User, error)

	// Create writes a new user document stamped with the server time
	Create(ctx context.Context, user *models.User) error

	// SaveProfile merge-upserts profile fields and academic stats
	SaveProfile(ctx context.Context, uid string, update ProfileUpdate) error
}
