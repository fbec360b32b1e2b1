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

const (
	riskAttendanceThreshold = 75.0
	riskCGPAThreshold       = 5.0
)

// ===== SERVICE INTERFACE =====

type UserService interface {
	// SyncUser creates the user on first sight. An existing stored role
	// always wins over requestedRole.
	SyncUser(ctx context.Context, token, requestedRole string) (*models.SyncResponse, error)
	GetProfile(ctx context.Context, uid string) (*models.ProfileResponse, error)
	UpdateProfile(ctx context.Context, req *models.ProfileUpdateRequest) (models.RiskStatus, error)
}

// ===== SERVICE IMPLEMENTATION =====

type userService struct {
	repo      repositories.Repository
	verifier  identity.Verifier
	publisher events.EventPublisher
	logger    *slog.Logger
	validator *validator.Validator
}

func NewUserService(repo repositories.Repository, verifier identity.Verifier, publisher events.EventPublisher, logger *slog.Logger, validator *validator.Validator) UserService {
	return &userService{
		repo:      repo,
		verifier:  verifier,
		publisher: publisher,
		logger:    logger,
		validator: validator,
	}
}

func (s *userService) SyncUser(ctx context.Context, token, requestedRole string) (*models.SyncResponse, error) {
	id, err := authenticate(ctx, s.verifier, token)
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.User().GetByID(ctx, id.Subject)
	if err == nil {
		publish(ctx, s.publisher, s.logger, events.UserSynced, events.UserSyncedData{
			UID: id.Subject, Role: string(existing.Role),
		})
		return &models.SyncResponse{Status: "success", Role: existing.Role, UID: id.Subject}, nil
	}
	if !repositories.IsNotFoundError(err) {
		return nil, storeError("failed to load user", err)
	}

	role := models.UserRole(requestedRole)
	if !role.IsValid() {
		role = models.RoleStudent
	}

	name, _ := id.Claims["name"].(string)
	picture, _ := id.Claims["picture"].(string)
	user := &models.User{
		UID:   id.Subject,
		Email: id.Email,
		Role:  role,
		Profile: models.Profile{
			Name:      name,
			AvatarURL: picture,
		},
		AcademicStats: models.AcademicStats{
			RiskStatus:      models.RiskSafe,
			CoursesEnrolled: []string{},
		},
	}
	if err := s.repo.User().Create(ctx, user); err != nil {
		return nil, storeError("failed to create user", err)
	}

	s.logger.Info("User created", "uid", id.Subject, "role", role)
	publish(ctx, s.publisher, s.logger, events.UserSynced, events.UserSyncedData{
		UID: id.Subject, Role: string(role), Created: true,
	})
	return &models.SyncResponse{Status: "success", Role: role, UID: id.Subject}, nil
}

func (s *userService) GetProfile(ctx context.Context, uid string) (*models.ProfileResponse, error) {
	if uid == "" {
		return nil, fmt.Errorf("%w: uid is required", ErrValidationFailed)
	}

	user, err := s.repo.User().GetByID(ctx, uid)
	if err != nil {
		return nil, storeError("failed to load profile", err)
	}

	risk := user.AcademicStats.RiskStatus
	if risk == "" {
		risk = RiskStatusFor(user.AcademicStats.CGPA, user.AcademicStats.AttendancePercent)
	}

	p := user.Profile
	return &models.ProfileResponse{
		UID:          uid,
		Name:         p.Name,
		Email:        user.Email,
		Phone:        p.Phone,
		Branch:       p.Branch,
		Year:         p.Year,
		Semester:     p.Semester,
		EnrollmentNo: p.EnrollmentNo,
		CGPA:         user.AcademicStats.CGPA,
		Attendance:   user.AcademicStats.AttendancePercent,
		GithubURL:    p.GithubURL,
		LinkedinURL:  p.LinkedinURL,
		AvatarURL:    p.AvatarURL,
		RiskStatus:   risk,
	}, nil
}

func (s *userService) UpdateProfile(ctx context.Context, req *models.ProfileUpdateRequest) (models.RiskStatus, error) {
	if err := validate(s.validator, req); err != nil {
		return "", err
	}
	if req.Token != "" {
		if _, err := authorizeSubject(ctx, s.verifier, req.Token, req.UID); err != nil {
			return "", err
		}
	}

	// Fields left out of the form keep their stored values
	var cgpa, attendance *float64
	existing, err := s.repo.User().GetByID(ctx, req.UID)
	switch {
	case err == nil:
		cgpa = &existing.AcademicStats.CGPA
		attendance = &existing.AcademicStats.AttendancePercent
	case !repositories.IsNotFoundError(err):
		return "", storeError("failed to load profile", err)
	}
	if req.CGPA != nil {
		cgpa = req.CGPA
	}
	if req.Attendance != nil {
		attendance = req.Attendance
	}

	risk := riskStatusForKnown(cgpa, attendance)
	update := repositories.ProfileUpdate{
		Email: req.Email,
		Profile: models.Profile{
			Name:         req.Name,
			Branch:       req.Branch,
			Year:         req.Year,
			AvatarURL:    req.AvatarURL,
			Phone:        req.Phone,
			Semester:     req.Semester,
			EnrollmentNo: req.EnrollmentNo,
			GithubURL:    req.GithubURL,
			LinkedinURL:  req.LinkedinURL,
		},
		CGPA:       valueOrZero(cgpa),
		Attendance: valueOrZero(attendance),
		RiskStatus: risk,
	}
	if err := s.repo.User().SaveProfile(ctx, req.UID, update); err != nil {
		return "", storeError("failed to save profile", err)
	}

	s.logger.Info("Profile updated", "uid", req.UID, "risk_status", risk)
	return risk, nil
}

// RiskStatusFor flags a student as at risk below 75% attendance or a 5.0 CGPA
func RiskStatusFor(cgpa, attendance float64) models.RiskStatus {
	if attendance < riskAttendanceThreshold || cgpa < riskCGPAThreshold {
		return models.RiskAtRisk
	}
	return models.RiskSafe
}

// riskStatusForKnown ignores metrics that were never recorded
func riskStatusForKnown(cgpa, attendance *float64) models.RiskStatus {
	if attendance != nil && *attendance < riskAttendanceThreshold {
		return models.RiskAtRisk
	}
	if cgpa != nil && *cgpa < riskCGPAThreshold {
		return models.RiskAtRisk
	}
	return models.RiskSafe
}

func valueOrZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
