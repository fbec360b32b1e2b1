package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SAP-F-2025/nova-scholar-service/internal/events"
	"github.com/SAP-F-2025/nova-scholar-service/internal/identity"
	"github.com/SAP-F-2025/nova-scholar-service/internal/models"
	"github.com/SAP-F-2025/nova-scholar-service/internal/repositories"
	"github.com/SAP-F-2025/nova-scholar-service/internal/validator"
)

// ===== SERVICE INTERFACE =====

type CourseService interface {
	CreateCourse(ctx context.Context, req *models.CourseCreateRequest) (string, error)
	// DeleteCourse removes only the course document; enrollments and doubts stay
	DeleteCourse(ctx context.Context, courseID, token string) error
	// ListCourses is unauthenticated and unordered
	ListCourses(ctx context.Context) ([]*models.Course, error)
	UploadSyllabus(ctx context.Context, courseID string, req *models.SyllabusRequest) error

	Enroll(ctx context.Context, req *models.EnrollRequest) error
	AskDoubt(ctx context.Context, req *models.DoubtCreateRequest) (string, error)
}

// ===== SERVICE IMPLEMENTATION =====

type courseService struct {
	repo      repositories.Repository
	verifier  identity.Verifier
	publisher events.EventPublisher
	logger    *slog.Logger
	validator *validator.Validator
}

func NewCourseService(repo repositories.Repository, verifier identity.Verifier, publisher events.EventPublisher, logger *slog.Logger, validator *validator.Validator) CourseService {
	return &courseService{
		repo:      repo,
		verifier:  verifier,
		publisher: publisher,
		logger:    logger,
		validator: validator,
	}
}

func (s *courseService) CreateCourse(ctx context.Context, req *models.CourseCreateRequest) (string, error) {
	if err := validate(s.validator, req); err != nil {
		return "", err
	}
	if _, err := authorizeSubject(ctx, s.verifier, req.Token, req.TeacherID); err != nil {
		return "", err
	}

	course := &models.Course{
		Title:       req.Title,
		Description: req.Description,
		TeacherID:   req.TeacherID,
		TeacherName: req.TeacherName,
	}
	id, err := s.repo.Course().Create(ctx, course)
	if err != nil {
		return "", storeError("failed to create course", err)
	}

	s.logger.Info("Course created", "course_id", id, "teacher_id", req.TeacherID)
	publish(ctx, s.publisher, s.logger, events.CourseCreated, events.CourseData{
		CourseID: id, TeacherID: req.TeacherID, Title: req.Title,
	})
	return id, nil
}

// loadOwnedCourse verifies token and checks the subject owns courseID
func (s *courseService) loadOwnedCourse(ctx context.Context, courseID, token string) (*models.Course, error) {
	if courseID == "" {
		return nil, fmt.Errorf("%w: course id is required", ErrValidationFailed)
	}
	id, err := authenticate(ctx, s.verifier, token)
	if err != nil {
		return nil, err
	}

	course, err := s.repo.Course().GetByID(ctx, courseID)
	if err != nil {
		return nil, storeError("failed to load course", err)
	}
	if course.TeacherID != id.Subject {
		return nil, fmt.Errorf("%w: course belongs to another teacher", ErrUnauthorized)
	}
	return course, nil
}

func (s *courseService) DeleteCourse(ctx context.Context, courseID, token string) error {
	course, err := s.loadOwnedCourse(ctx, courseID, token)
	if err != nil {
		return err
	}

	if err := s.repo.Course().Delete(ctx, courseID); err != nil {
		return storeError("failed to delete course", err)
	}

	s.logger.Info("Course deleted", "course_id", courseID, "teacher_id", course.TeacherID)
	publish(ctx, s.publisher, s.logger, events.CourseDeleted, events.CourseData{
		CourseID: courseID, TeacherID: course.TeacherID,
	})
	return nil
}

func (s *courseService) ListCourses(ctx context.Context) ([]*models.Course, error) {
	courses, err := s.repo.Course().List(ctx)
	if err != nil {
		return nil, storeError("failed to list courses", err)
	}
	if courses == nil {
		courses = []*models.Course{}
	}
	return courses, nil
}

func (s *courseService) UploadSyllabus(ctx context.Context, courseID string, req *models.SyllabusRequest) error {
	if err := validate(s.validator, req); err != nil {
		return err
	}
	if _, err := s.loadOwnedCourse(ctx, courseID, req.Token); err != nil {
		return err
	}

	if err := s.repo.Course().SetSyllabus(ctx, courseID, req.FileURL); err != nil {
		return storeError("failed to save syllabus", err)
	}

	publish(ctx, s.publisher, s.logger, events.SyllabusUploaded, events.SyllabusData{
		CourseID: courseID, FileURL: req.FileURL,
	})
	return nil
}

func (s *courseService) Enroll(ctx context.Context, req *models.EnrollRequest) error {
	if err := validate(s.validator, req); err != nil {
		return err
	}
	if _, err := authorizeSubject(ctx, s.verifier, req.Token, req.StudentID); err != nil {
		return err
	}

	// Two independent writes; a failure after the first leaves a one-sided
	// enrollment that a retry repairs.
	if err := s.repo.Enrollment().Enroll(ctx, req.CourseID, req.StudentID); err != nil {
		return storeError("failed to enroll", err)
	}

	s.logger.Info("Student enrolled", "course_id", req.CourseID, "student_id", req.StudentID)
	publish(ctx, s.publisher, s.logger, events.EnrollmentAdded, events.EnrollmentData{
		CourseID: req.CourseID, StudentID: req.StudentID,
	})
	return nil
}

func (s *courseService) AskDoubt(ctx context.Context, req *models.DoubtCreateRequest) (string, error) {
	if err := validate(s.validator, req); err != nil {
		return "", err
	}
	if _, err := authorizeSubject(ctx, s.verifier, req.Token, req.StudentID); err != nil {
		return "", err
	}

	if _, err := s.repo.Course().GetByID(ctx, req.CourseID); err != nil {
		return "", storeError("failed to load course", err)
	}

	doubt := &models.Doubt{
		CourseID:  req.CourseID,
		StudentID: req.StudentID,
		Question:  req.Question,
		Status:    models.DoubtOpen,
	}
	id, err := s.repo.Doubt().Create(ctx, doubt)
	if err != nil {
		return "", storeError("failed to create doubt", err)
	}

	if err := s.repo.Course().IncrementDoubts(ctx, req.CourseID); err != nil {
		// The doubt is stored; only the denormalized counter is behind
		s.logger.Warn("Failed to increment doubts count", "course_id", req.CourseID, "error", err)
	}

	publish(ctx, s.publisher, s.logger, events.DoubtAsked, events.DoubtData{
		DoubtID: id, CourseID: req.CourseID, StudentID: req.StudentID,
	})
	return id, nil
}
