package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/SAP-F-2025/nova-scholar-service/internal/events"
	"github.com/SAP-F-2025/nova-scholar-service/internal/identity"
	"github.com/SAP-F-2025/nova-scholar-service/internal/models"
	"github.com/SAP-F-2025/nova-scholar-service/internal/repositories"
	"github.com/SAP-F-2025/nova-scholar-service/internal/repositories/document"
	"github.com/SAP-F-2025/nova-scholar-service/internal/store"
	"github.com/SAP-F-2025/nova-scholar-service/internal/validator"
)

var errStoreDown = errors.New("store unavailable")

// faultyStore fails every Stream over collections with the given prefix
type faultyStore struct {
	*store.Memory
	failPrefix string
}

func (f *faultyStore) Stream(ctx context.Context, collection string, filters []store.Filter, fn func(store.Document) error) error {
	if f.failPrefix != "" && strings.HasPrefix(collection, f.failPrefix) {
		return errStoreDown
	}
	return f.Memory.Stream(ctx, collection, filters, fn)
}

type testEnv struct {
	store     *faultyStore
	repo      repositories.Repository
	verifier  *identity.StaticVerifier
	publisher *events.MockEventPublisher
	logger    *slog.Logger
	validator *validator.Validator
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	mem := &faultyStore{Memory: store.NewMemory()}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return &testEnv{
		store:     mem,
		repo:      document.NewDocumentRepository(mem),
		verifier:  identity.NewStaticVerifier(),
		publisher: events.NewMockEventPublisher(logger),
		logger:    logger,
		validator: validator.New(),
	}
}

// user registers a token for uid and stores its user document
func (e *testEnv) user(t *testing.T, uid, email string, role models.UserRole) string {
	t.Helper()
	token := "token-" + uid
	e.verifier.Add(token, uid, email)
	require.NoError(t, e.repo.User().Create(context.Background(), &models.User{UID: uid, Email: email, Role: role}))
	return token
}

func (e *testEnv) course(t *testing.T, teacherID string) string {
	t.Helper()
	id, err := e.repo.Course().Create(context.Background(), &models.Course{Title: "Course of " + teacherID, TeacherID: teacherID})
	require.NoError(t, err)
	return id
}

func (e *testEnv) enroll(t *testing.T, courseID, studentID string) {
	t.Helper()
	require.NoError(t, e.repo.Enrollment().Enroll(context.Background(), courseID, studentID))
}

func (e *testEnv) doubt(t *testing.T, courseID string, status models.DoubtStatus) {
	t.Helper()
	_, err := e.repo.Doubt().Create(context.Background(), &models.Doubt{CourseID: courseID, StudentID: "s", Question: "?", Status: status})
	require.NoError(t, err)
}
