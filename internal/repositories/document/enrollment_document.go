package document

import (
	"context"
	"fmt"

	"github.com/SAP-F-2025/nova-scholar-service/internal/models"
	"github.com/SAP-F-2025/nova-scholar-service/internal/repositories"
	"github.com/SAP-F-2025/nova-scholar-service/internal/store"
)

type EnrollmentDocument struct {
	store store.Store
}

func NewEnrollmentDocument(s store.Store) repositories.EnrollmentRepository {
	return &EnrollmentDocument{store: s}
}

func (e *EnrollmentDocument) Enroll(ctx context.Context, courseID, studentID string) error {
	coursePath := store.Join(models.CollectionCourses, courseID, models.SubCollectionStudents, studentID)
	if err := e.store.Set(ctx, coursePath, map[string]interface{}{
		"student_id":  studentID,
		"enrolled_at": store.ServerTimestamp,
	}); err != nil {
		return fmt.Errorf("failed to write course enrollment marker: %w", err)
	}

	userPath := store.Join(models.CollectionUsers, studentID, models.SubCollectionEnrolledCourses, courseID)
	if err := e.store.Set(ctx, userPath, map[string]interface{}{
		"course_id":   courseID,
		"enrolled_at": store.ServerTimestamp,
	}); err != nil {
		return fmt.Errorf("failed to write student enrollment mirror: %w", err)
	}
	return nil
}

func (e *EnrollmentDocument) ListStudentIDs(ctx context.Context, courseID string) ([]string, error) {
	collection := store.Join(models.CollectionCourses, courseID, models.SubCollectionStudents)
	var ids []string
	err := e.store.Stream(ctx, collection, nil, func(doc store.Document) error {
		ids = append(ids, doc.ID())
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list students of course %s: %w", courseID, err)
	}
	return ids, nil
}
