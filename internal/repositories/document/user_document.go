package document

import (
	"context"
	"fmt"

	"github.com/SAP-F-2025/nova-scholar-service/internal/models"
	"github.com/SAP-F-2025/nova-scholar-service/internal/repositories"
	"github.com/SAP-F-2025/nova-scholar-service/internal/store"
)

type UserDocument struct {
	store store.Store
}

func NewUserDocument(s store.Store) repositories.UserRepository {
	return &UserDocument{store: s}
}

func userPath(uid string) string {
	return store.Join(models.CollectionUsers, uid)
}

func (u *UserDocument) GetByID(ctx context.Context, uid string) (*models.User, error) {
	var user models.User
	if err := u.store.Get(ctx, userPath(uid), &user); err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get user %s: %w", uid, err)
	}
	if user.UID == "" {
		user.UID = uid
	}
	return &user, nil
}

func (u *UserDocument) Create(ctx context.Context, user *models.User) error {
	courses := user.AcademicStats.CoursesEnrolled
	if courses == nil {
		courses = []string{}
	}
	data := map[string]interface{}{
		"uid":   user.UID,
		"email": user.Email,
		"role":  string(user.Role),
		"profile": map[string]interface{}{
			"name":       user.Profile.Name,
			"branch":     user.Profile.Branch,
			"year":       user.Profile.Year,
			"avatar_url": user.Profile.AvatarURL,
		},
		"academic_stats": map[string]interface{}{
			"cgpa":               user.AcademicStats.CGPA,
			"attendance_percent": user.AcademicStats.AttendancePercent,
			"risk_status":        string(user.AcademicStats.RiskStatus),
			"courses_enrolled":   toInterfaces(courses),
		},
		"created_at": store.ServerTimestamp,
	}
	if err := u.store.Set(ctx, userPath(user.UID), data); err != nil {
		return fmt.Errorf("failed to create user %s: %w", user.UID, err)
	}
	return nil
}

func (u *UserDocument) SaveProfile(ctx context.Context, uid string, update repositories.ProfileUpdate) error {
	p := update.Profile
	data := map[string]interface{}{
		"uid": uid,
		"profile": map[string]interface{}{
			"name":          p.Name,
			"branch":        p.Branch,
			"year":          p.Year,
			"avatar_url":    p.AvatarURL,
			"phone":         p.Phone,
			"semester":      p.Semester,
			"enrollment_no": p.EnrollmentNo,
			"github_url":    p.GithubURL,
			"linkedin_url":  p.LinkedinURL,
		},
		"academic_stats": map[string]interface{}{
			"cgpa":               update.CGPA,
			"attendance_percent": update.Attendance,
			"risk_status":        string(update.RiskStatus),
		},
		"updated_at": store.ServerTimestamp,
	}
	if update.Email != "" {
		data["email"] = update.Email
	}
	if err := u.store.Merge(ctx, userPath(uid), data); err != nil {
		return fmt.Errorf("failed to save profile for %s: %w", uid, err)
	}
	return nil
}

func toInterfaces(values []string) []interface{} {
	out := make([]interface{}, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}
