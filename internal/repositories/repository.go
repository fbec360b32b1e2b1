package repositories

import "context"

// Repository aggregates all repository interfaces over one document store
type Repository interface {
	// Identity domain
	User() UserRepository

	// Course domain
	Course() CourseRepository
	Enrollment() EnrollmentRepository
	Doubt() DoubtRepository

	// Career domain
	ResumeReview() ResumeReviewRepository
	Placement() PlacementRepository

	// Health check
	Ping(ctx context.Context) error

	// Close connections
	Close() error
}
