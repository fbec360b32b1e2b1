package document

import (
	"context"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SAP-F-2025/nova-scholar-service/internal/models"
	"github.com/SAP-F-2025/nova-scholar-service/internal/repositories"
	"github.com/SAP-F-2025/nova-scholar-service/internal/store"
)

func newRepo(t *testing.T) (repositories.Repository, *store.Memory) {
	t.Helper()
	mem := store.NewMemory()
	return NewDocumentRepository(mem), mem
}

func TestCourseDocument_Lifecycle(t *testing.T) {
	ctx := context.Background()
	repo, _ := newRepo(t)

	id, err := repo.Course().Create(ctx, &models.Course{Title: "DBMS", TeacherID: "t1", TeacherName: "Dr. Rao"})
	require.NoError(t, err)
	require.NotEmpty(t, id)

	course, err := repo.Course().GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, id, course.ID)
	assert.Equal(t, "t1", course.TeacherID)
	assert.Equal(t, 0, course.StudentCount)
	assert.Equal(t, 0, course.DoubtsCount)
	assert.False(t, course.CreatedAt.IsZero())

	require.NoError(t, repo.Course().IncrementDoubts(ctx, id))
	require.NoError(t, repo.Course().IncrementDoubts(ctx, id))
	require.NoError(t, repo.Course().SetSyllabus(ctx, id, "https://files.example.com/dbms.pdf"))

	course, err = repo.Course().GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 2, course.DoubtsCount)
	assert.True(t, course.SyllabusUploaded)
	assert.Equal(t, "https://files.example.com/dbms.pdf", course.SyllabusURL)

	require.NoError(t, repo.Course().Delete(ctx, id))
	_, err = repo.Course().GetByID(ctx, id)
	assert.True(t, repositories.IsNotFoundError(err))
}

func TestCourseDocument_ListByTeacher(t *testing.T) {
	ctx := context.Background()
	repo, _ := newRepo(t)

	for _, teacher := range []string{"t1", "t2", "t1"} {
		_, err := repo.Course().Create(ctx, &models.Course{Title: "c", TeacherID: teacher})
		require.NoError(t, err)
	}

	mine, err := repo.Course().ListByTeacher(ctx, "t1")
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	all, err := repo.Course().List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestEnrollmentDocument_IdempotentRetry(t *testing.T) {
	ctx := context.Background()
	repo, mem := newRepo(t)

	require.NoError(t, repo.Enrollment().Enroll(ctx, "c1", "s1"))
	before := mem.Len()
	require.NoError(t, repo.Enrollment().Enroll(ctx, "c1", "s1"))
	assert.Equal(t, before, mem.Len())

	require.NoError(t, repo.Enrollment().Enroll(ctx, "c1", "s2"))
	ids, err := repo.Enrollment().ListStudentIDs(ctx, "c1")
	require.NoError(t, err)
	sort.Strings(ids)
	assert.Equal(t, []string{"s1", "s2"}, ids)

	var mirror models.EnrolledCourse
	require.NoError(t, mem.Get(ctx, "users/s1/enrolled_courses/c1", &mirror))
	assert.Equal(t, "c1", mirror.CourseID)
}

func TestUserDocument_SaveProfileKeepsRoleAndCourses(t *testing.T) {
	ctx := context.Background()
	repo, _ := newRepo(t)

	require.NoError(t, repo.User().Create(ctx, &models.User{
		UID:   "u1",
		Email: "rahul@example.com",
		Role:  models.RoleStudent,
		AcademicStats: models.AcademicStats{
			CoursesEnrolled: []string{"c1"},
		},
	}))

	err := repo.User().SaveProfile(ctx, "u1", repositories.ProfileUpdate{
		Profile:    models.Profile{Name: "Rahul", Branch: "CSE", Year: 3},
		CGPA:       4.2,
		Attendance: 80,
		RiskStatus: models.RiskAtRisk,
	})
	require.NoError(t, err)

	user, err := repo.User().GetByID(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, models.RoleStudent, user.Role)
	assert.Equal(t, "rahul@example.com", user.Email)
	assert.Equal(t, "Rahul", user.Profile.Name)
	assert.Equal(t, []string{"c1"}, user.AcademicStats.CoursesEnrolled)
	assert.Equal(t, models.RiskAtRisk, user.AcademicStats.RiskStatus)
	require.NotNil(t, user.UpdatedAt)
}

func TestDoubtDocument_StreamByStatus(t *testing.T) {
	ctx := context.Background()
	repo, mem := newRepo(t)

	_, err := repo.Doubt().Create(ctx, &models.Doubt{CourseID: "c1", StudentID: "s1", Question: "q1"})
	require.NoError(t, err)
	_, err = repo.Doubt().Create(ctx, &models.Doubt{CourseID: "c2", StudentID: "s1", Question: "q2"})
	require.NoError(t, err)
	require.NoError(t, mem.Set(ctx, "doubts/closed", map[string]interface{}{"course_id": "c1", "status": "resolved"}))

	var courses []string
	err = repo.Doubt().StreamByStatus(ctx, models.DoubtOpen, func(d *models.Doubt) error {
		courses = append(courses, d.CourseID)
		return nil
	})
	require.NoError(t, err)
	sort.Strings(courses)
	assert.Equal(t, []string{"c1", "c2"}, courses)
}

func TestPlacementDocument_RoundTrip(t *testing.T) {
	ctx := context.Background()
	repo, _ := newRepo(t)

	_, err := repo.Placement().GetProgress(ctx, "s1")
	assert.True(t, repositories.IsNotFoundError(err))

	require.NoError(t, repo.Placement().SaveProgress(ctx, &models.PlacementProgress{
		StudentID: "s1",
		Topics:    map[string]bool{"arrays": true},
		Streak:    3,
	}))
	require.NoError(t, repo.Placement().SaveProgress(ctx, &models.PlacementProgress{
		StudentID: "s1",
		Goals:     map[string]bool{"mock-interview": true},
		Streak:    4,
	}))

	progress, err := repo.Placement().GetProgress(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, 4, progress.Streak)
	assert.True(t, progress.Topics["arrays"])
	assert.True(t, progress.Goals["mock-interview"])
}
