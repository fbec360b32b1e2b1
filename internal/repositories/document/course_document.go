package document

import (
	"context"
	"fmt"

	"github.com/SAP-F-2025/nova-scholar-service/internal/models"
	"github.com/SAP-F-2025/nova-scholar-service/internal/repositories"
	"github.com/SAP-F-2025/nova-scholar-service/internal/store"
)

type CourseDocument struct {
	store store.Store
}

func NewCourseDocument(s store.Store) repositories.CourseRepository {
	return &CourseDocument{store: s}
}

func coursePath(id string) string {
	return store.Join(models.CollectionCourses, id)
}

func (c *CourseDocument) Create(ctx context.Context, course *models.Course) (string, error) {
	data := map[string]interface{}{
		"title":             course.Title,
		"description":       course.Description,
		"teacher_id":        course.TeacherID,
		"teacher_name":      course.TeacherName,
		"created_at":        store.ServerTimestamp,
		"student_count":     0,
		"syllabus_uploaded": false,
		"doubts_count":      0,
	}
	id, err := c.store.Add(ctx, models.CollectionCourses, data)
	if err != nil {
		return "", fmt.Errorf("failed to create course: %w", err)
	}
	course.ID = id
	return id, nil
}

func (c *CourseDocument) GetByID(ctx context.Context, id string) (*models.Course, error) {
	var course models.Course
	if err := c.store.Get(ctx, coursePath(id), &course); err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get course %s: %w", id, err)
	}
	course.ID = id
	return &course, nil
}

func (c *CourseDocument) Delete(ctx context.Context, id string) error {
	if err := c.store.Delete(ctx, coursePath(id)); err != nil {
		return fmt.Errorf("failed to delete course %s: %w", id, err)
	}
	return nil
}

func (c *CourseDocument) List(ctx context.Context) ([]*models.Course, error) {
	return c.stream(ctx, nil)
}

func (c *CourseDocument) ListByTeacher(ctx context.Context, teacherID string) ([]*models.Course, error) {
	return c.stream(ctx, []store.Filter{store.Where("teacher_id", teacherID)})
}

func (c *CourseDocument) stream(ctx context.Context, filters []store.Filter) ([]*models.Course, error) {
	var courses []*models.Course
	err := c.store.Stream(ctx, models.CollectionCourses, filters, func(doc store.Document) error {
		var course models.Course
		if err := doc.DataTo(&course); err != nil {
			return fmt.Errorf("failed to decode course %s: %w", doc.ID(), err)
		}
		course.ID = doc.ID()
		courses = append(courses, &course)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list courses: %w", err)
	}
	return courses, nil
}

func (c *CourseDocument) SetSyllabus(ctx context.Context, id, fileURL string) error {
	err := c.store.Update(ctx, coursePath(id), []store.Update{
		{Field: "syllabus_uploaded", Value: true},
		{Field: "syllabus_url", Value: fileURL},
	})
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return err
		}
		return fmt.Errorf("failed to set syllabus for course %s: %w", id, err)
	}
	return nil
}

func (c *CourseDocument) IncrementDoubts(ctx context.Context, id string) error {
	err := c.store.Update(ctx, coursePath(id), []store.Update{
		{Field: "doubts_count", Value: store.Increment(1)},
	})
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return err
		}
		return fmt.Errorf("failed to increment doubts for course %s: %w", id, err)
	}
	return nil
}
