package repositories

import (
	"context"

	"github.com/SAP-F-2025/nova-scholar-service/internal/models"
)

// CourseRepository covers courses/{id}
type CourseRepository interface {
	Create(ctx context.Context, course *models.Course) (string, error)
	GetByID(ctx context.Context, id string) (*models.Course, error)
	Delete(ctx context.Context, id string) error

	// List returns every course in store order
	List(ctx context.Context) ([]*models.Course, error)
	ListByTeacher(ctx context.Context, teacherID string) ([]*models.Course, error)

	SetSyllabus(ctx context.Context, id, fileURL string) error
	IncrementDoubts(ctx context.Context, id string) error
}

// EnrollmentRepository covers the two-sided enrollment markers
type EnrollmentRepository interface {
	// Enroll writes the course-side marker, then the student-side mirror.
	// Both use deterministic ids so a retry overwrites instead of duplicating.
	Enroll(ctx context.Context, courseID, studentID string) error
	ListStudentIDs(ctx context.Context, courseID string) ([]string, error)
}

// DoubtRepository covers doubts/{id}
type DoubtRepository interface {
	Create(ctx context.Context, doubt *models.Doubt) (string, error)
	// StreamByStatus visits every doubt with the given status across all courses
	StreamByStatus(ctx context.Context, status models.DoubtStatus, fn func(*models.Doubt) error) error
}

// ResumeReviewRepository covers resume_reviews/{studentId}
type ResumeReviewRepository interface {
	Save(ctx context.Context, studentID, fileName string, analysis *models.ResumeAnalysis) error
}

// PlacementRepository covers placement_progress/{studentId}
type PlacementRepository interface {
	SaveProgress(ctx context.Context, progress *models.PlacementProgress) error
	GetProgress(ctx context.Context, studentID string) (*models.PlacementProgress, error)
}
