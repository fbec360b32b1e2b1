package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"golang.org/x/sync/errgroup"

	"github.com/SAP-F-2025/nova-scholar-service/internal/identity"
	"github.com/SAP-F-2025/nova-scholar-service/internal/models"
	"github.com/SAP-F-2025/nova-scholar-service/internal/repositories"
)

// AvgAttendancePlaceholder is reported as avg_attendance until attendance
// tracking exists. It is not computed from any data.
const AvgAttendancePlaceholder = 85.0

const (
	notTracked       = "N/A"
	defaultFanOut    = 8
	rosterLogContext = "roster"
)

// ===== SERVICE INTERFACE =====

type RosterService interface {
	// ResolveRoster returns each student enrolled in any of the teacher's
	// courses exactly once. Order is unspecified.
	ResolveRoster(ctx context.Context, teacherID, token string) (*models.RosterResponse, error)
	// ResolveStats is all-or-nothing: any store failure fails the call.
	ResolveStats(ctx context.Context, teacherID, token string) (*models.TeacherStats, error)
}

// ===== SERVICE IMPLEMENTATION =====

type RosterConfig struct {
	// EnforceTeacherScope rejects callers whose subject is not the teacher
	EnforceTeacherScope bool
	// FanOut bounds concurrent sub-collection reads
	FanOut int
}

type rosterService struct {
	repo     repositories.Repository
	verifier identity.Verifier
	logger   *slog.Logger
	config   RosterConfig
}

func NewRosterService(repo repositories.Repository, verifier identity.Verifier, logger *slog.Logger, config RosterConfig) RosterService {
	if config.FanOut <= 0 {
		config.FanOut = defaultFanOut
	}
	return &rosterService{
		repo:     repo,
		verifier: verifier,
		logger:   logger.With("service", rosterLogContext),
		config:   config,
	}
}

func (s *rosterService) ResolveRoster(ctx context.Context, teacherID, token string) (*models.RosterResponse, error) {
	if err := s.authorize(ctx, teacherID, token); err != nil {
		return nil, err
	}

	courseIDs, err := s.teacherCourseIDs(ctx, teacherID)
	if err != nil {
		return nil, err
	}
	if len(courseIDs) == 0 {
		return &models.RosterResponse{Students: []models.StudentRecord{}}, nil
	}

	studentIDs, err := s.studentSet(ctx, courseIDs)
	if err != nil {
		return nil, err
	}

	students, err := s.loadStudents(ctx, studentIDs)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Resolved roster", "teacher_id", teacherID, "courses", len(courseIDs), "students", len(students))
	return &models.RosterResponse{Students: students}, nil
}

func (s *rosterService) ResolveStats(ctx context.Context, teacherID, token string) (*models.TeacherStats, error) {
	if err := s.authorize(ctx, teacherID, token); err != nil {
		return nil, err
	}

	courseIDs, err := s.teacherCourseIDs(ctx, teacherID)
	if err != nil {
		return nil, err
	}

	stats := &models.TeacherStats{
		ActiveCourses: len(courseIDs),
		AvgAttendance: AvgAttendancePlaceholder,
	}
	if len(courseIDs) == 0 {
		return stats, nil
	}

	studentIDs, err := s.studentSet(ctx, courseIDs)
	if err != nil {
		return nil, err
	}
	stats.TotalStudents = len(studentIDs)

	unsolved, err := s.countOpenDoubts(ctx, courseIDs)
	if err != nil {
		return nil, err
	}
	stats.UnsolvedDoubts = unsolved

	return stats, nil
}

func (s *rosterService) authorize(ctx context.Context, teacherID, token string) error {
	if teacherID == "" {
		return fmt.Errorf("%w: teacher_id is required", ErrValidationFailed)
	}
	id, err := authenticate(ctx, s.verifier, token)
	if err != nil {
		return err
	}
	if s.config.EnforceTeacherScope && id.Subject != teacherID {
		return fmt.Errorf("%w: roster belongs to another teacher", ErrUnauthorized)
	}
	return nil
}

// teacherCourseIDs returns the set of course ids owned by teacherID
func (s *rosterService) teacherCourseIDs(ctx context.Context, teacherID string) (map[string]struct{}, error) {
	courses, err := s.repo.Course().ListByTeacher(ctx, teacherID)
	if err != nil {
		return nil, storeError("failed to list teacher courses", err)
	}
	ids := make(map[string]struct{}, len(courses))
	for _, c := range courses {
		ids[c.ID] = struct{}{}
	}
	return ids, nil
}

// studentSet unions the enrolled student ids of every course. Reads run in
// parallel; the result does not depend on completion order.
func (s *rosterService) studentSet(ctx context.Context, courseIDs map[string]struct{}) (map[string]struct{}, error) {
	var (
		mu       sync.Mutex
		students = make(map[string]struct{})
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.config.FanOut)
	for courseID := range courseIDs {
		g.Go(func() error {
			ids, err := s.repo.Enrollment().ListStudentIDs(gctx, courseID)
			if err != nil {
				return err
			}
			mu.Lock()
			for _, id := range ids {
				students[id] = struct{}{}
			}
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, storeError("failed to list enrolled students", err)
	}
	return students, nil
}

// loadStudents fetches and projects each user. Missing users are skipped.
func (s *rosterService) loadStudents(ctx context.Context, studentIDs map[string]struct{}) ([]models.StudentRecord, error) {
	var (
		mu      sync.Mutex
		records = make([]models.StudentRecord, 0, len(studentIDs))
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.config.FanOut)
	for studentID := range studentIDs {
		g.Go(func() error {
			user, err := s.repo.User().GetByID(gctx, studentID)
			if err != nil {
				if repositories.IsNotFoundError(err) {
					s.logger.Debug("Skipping enrolled student without user document", "student_id", studentID)
					return nil
				}
				return err
			}
			record := toStudentRecord(studentID, user)
			mu.Lock()
			records = append(records, record)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, storeError("failed to load students", err)
	}

	sort.Slice(records, func(i, j int) bool { return records[i].ID < records[j].ID })
	return records, nil
}

// countOpenDoubts streams every open doubt in the store and counts those
// belonging to courseIDs. Cost grows with all open doubts, not the teacher's.
func (s *rosterService) countOpenDoubts(ctx context.Context, courseIDs map[string]struct{}) (int, error) {
	count := 0
	err := s.repo.Doubt().StreamByStatus(ctx, models.DoubtOpen, func(d *models.Doubt) error {
		if _, ok := courseIDs[d.CourseID]; ok {
			count++
		}
		return nil
	})
	if err != nil {
		return 0, storeError("failed to count open doubts", err)
	}
	return count, nil
}

func toStudentRecord(id string, user *models.User) models.StudentRecord {
	return models.StudentRecord{
		ID:         id,
		Name:       emailLocalPart(user.Email),
		Email:      user.Email,
		Avatar:     emailInitial(user.Email),
		Roll:       notTracked,
		Branch:     notTracked,
		Year:       notTracked,
		CGPA:       0,
		Attendance: 0,
	}
}

func emailLocalPart(email string) string {
	if i := strings.Index(email, "@"); i >= 0 {
		return email[:i]
	}
	return email
}

func emailInitial(email string) string {
	r, _ := utf8.DecodeRuneInString(email)
	if r == utf8.RuneError {
		return ""
	}
	return string(unicode.ToUpper(r))
}
