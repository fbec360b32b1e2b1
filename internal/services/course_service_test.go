package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SAP-F-2025/nova-scholar-service/internal/events"
	"github.com/SAP-F-2025/nova-scholar-service/internal/models"
)

func newCourseService(env *testEnv) CourseService {
	return NewCourseService(env.repo, env.verifier, env.publisher, env.logger, env.validator)
}

func TestCreateCourse(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	token := env.user(t, "t1", "teacher@manan.ai", models.RoleAdmin)
	svc := newCourseService(env)

	id, err := svc.CreateCourse(ctx, &models.CourseCreateRequest{Title: "DBMS", TeacherID: "t1", Token: token})
	require.NoError(t, err)
	require.NotEmpty(t, id)

	course, err := env.repo.Course().GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "DBMS", course.Title)
	assert.Equal(t, 0, course.StudentCount)
	assert.Equal(t, 0, course.DoubtsCount)
	assert.False(t, course.SyllabusUploaded)
	assert.Equal(t, []string{events.CourseCreated}, env.publisher.Types())
}

func TestCreateCourse_SubjectMismatch(t *testing.T) {
	env := newTestEnv(t)
	token := env.user(t, "t2", "other@manan.ai", models.RoleAdmin)
	svc := newCourseService(env)

	_, err := svc.CreateCourse(context.Background(), &models.CourseCreateRequest{Title: "DBMS", TeacherID: "t1", Token: token})
	assert.True(t, errors.Is(err, ErrUnauthorized))

	courses, err := svc.ListCourses(context.Background())
	require.NoError(t, err)
	assert.Empty(t, courses)
}

func TestCreateCourse_Validation(t *testing.T) {
	env := newTestEnv(t)
	token := env.user(t, "t1", "teacher@manan.ai", models.RoleAdmin)
	svc := newCourseService(env)

	_, err := svc.CreateCourse(context.Background(), &models.CourseCreateRequest{TeacherID: "t1", Token: token})
	assert.True(t, errors.Is(err, ErrValidationFailed))
}

func TestDeleteCourse(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.user(t, "t1", "teacher@manan.ai", models.RoleAdmin)
	intruder := env.user(t, "t2", "other@manan.ai", models.RoleAdmin)
	id := env.course(t, "t1")
	svc := newCourseService(env)

	err := svc.DeleteCourse(ctx, id, intruder)
	assert.True(t, errors.Is(err, ErrUnauthorized))

	err = svc.DeleteCourse(ctx, "missing", owner)
	assert.True(t, errors.Is(err, ErrNotFound))

	require.NoError(t, svc.DeleteCourse(ctx, id, owner))
	_, err = env.repo.Course().GetByID(ctx, id)
	assert.Error(t, err)
}

func TestListCourses_EmptyIsNotNil(t *testing.T) {
	env := newTestEnv(t)
	courses, err := newCourseService(env).ListCourses(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, courses)
	assert.Len(t, courses, 0)
}

func TestUploadSyllabus(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.user(t, "t1", "teacher@manan.ai", models.RoleAdmin)
	id := env.course(t, "t1")
	svc := newCourseService(env)

	err := svc.UploadSyllabus(ctx, id, &models.SyllabusRequest{Token: owner, FileURL: "not a url"})
	assert.True(t, errors.Is(err, ErrValidationFailed))

	require.NoError(t, svc.UploadSyllabus(ctx, id, &models.SyllabusRequest{Token: owner, FileURL: "https://files.manan.ai/dbms.pdf"}))
	course, err := env.repo.Course().GetByID(ctx, id)
	require.NoError(t, err)
	assert.True(t, course.SyllabusUploaded)
	assert.Equal(t, "https://files.manan.ai/dbms.pdf", course.SyllabusURL)
}

func TestEnroll_TokenMustMatchStudent(t *testing.T) {
	env := newTestEnv(t)
	other := env.user(t, "s2", "priya@manan.ai", models.RoleStudent)
	id := env.course(t, "t1")

	err := newCourseService(env).Enroll(context.Background(), &models.EnrollRequest{StudentID: "s1", CourseID: id, Token: other})
	assert.True(t, errors.Is(err, ErrUnauthorized))

	ids, err := env.repo.Enrollment().ListStudentIDs(context.Background(), id)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestAskDoubt_IncrementsCount(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	token := env.user(t, "s1", "rahul@manan.ai", models.RoleStudent)
	id := env.course(t, "t1")
	svc := newCourseService(env)

	for i := 0; i < 2; i++ {
		doubtID, err := svc.AskDoubt(ctx, &models.DoubtCreateRequest{
			StudentID: "s1", CourseID: id, Question: "What is normalization?", Token: token,
		})
		require.NoError(t, err)
		assert.NotEmpty(t, doubtID)
	}

	course, err := env.repo.Course().GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 2, course.DoubtsCount)

	open := 0
	require.NoError(t, env.repo.Doubt().StreamByStatus(ctx, models.DoubtOpen, func(d *models.Doubt) error {
		assert.Equal(t, id, d.CourseID)
		open++
		return nil
	}))
	assert.Equal(t, 2, open)
}

func TestAskDoubt_UnknownCourse(t *testing.T) {
	env := newTestEnv(t)
	token := env.user(t, "s1", "rahul@manan.ai", models.RoleStudent)

	_, err := newCourseService(env).AskDoubt(context.Background(), &models.DoubtCreateRequest{
		StudentID: "s1", CourseID: "missing", Question: "?", Token: token,
	})
	assert.True(t, errors.Is(err, ErrNotFound))
}
