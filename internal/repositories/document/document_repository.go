package document

import (
	"context"

	"github.com/SAP-F-2025/nova-scholar-service/internal/repositories"
	"github.com/SAP-F-2025/nova-scholar-service/internal/store"
)

// DocumentRepository implements repositories.Repository over a store.Store
type DocumentRepository struct {
	store store.Store

	user         repositories.UserRepository
	course       repositories.CourseRepository
	enrollment   repositories.EnrollmentRepository
	doubt        repositories.DoubtRepository
	resumeReview repositories.ResumeReviewRepository
	placement    repositories.PlacementRepository
}

// NewDocumentRepository wires every sub-repository to the same store handle
func NewDocumentRepository(s store.Store) repositories.Repository {
	return &DocumentRepository{
		store:        s,
		user:         NewUserDocument(s),
		course:       NewCourseDocument(s),
		enrollment:   NewEnrollmentDocument(s),
		doubt:        NewDoubtDocument(s),
		resumeReview: NewResumeReviewDocument(s),
		placement:    NewPlacementDocument(s),
	}
}

func (r *DocumentRepository) User() repositories.UserRepository { return r.user }

func (r *DocumentRepository) Course() repositories.CourseRepository { return r.course }

func (r *DocumentRepository) Enrollment() repositories.EnrollmentRepository { return r.enrollment }

func (r *DocumentRepository) Doubt() repositories.DoubtRepository { return r.doubt }

func (r *DocumentRepository) ResumeReview() repositories.ResumeReviewRepository {
	return r.resumeReview
}

func (r *DocumentRepository) Placement() repositories.PlacementRepository { return r.placement }

// Ping checks store connectivity
func (r *DocumentRepository) Ping(ctx context.Context) error {
	return r.store.Ping(ctx)
}

// Close releases the store client
func (r *DocumentRepository) Close() error {
	return r.store.Close()
}
