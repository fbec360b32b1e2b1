package models

import (
	"time"
)

type UserRole string

const (
	RoleStudent UserRole = "student"
	RoleAdmin   UserRole = "admin"
)

// IsValid reports whether r is one of the recognised roles
func (r UserRole) IsValid() bool {
	return r == RoleStudent || r == RoleAdmin
}

type RiskStatus string

const (
	RiskAtRisk RiskStatus = "At Risk"
	RiskSafe   RiskStatus = "Safe"
)

const CollectionUsers = "users"

// User is the users/{uid} document
type User struct {
	UID           string        `json:"uid" firestore:"uid"`
	Email         string        `json:"email" firestore:"email"`
	Role          UserRole      `json:"role" firestore:"role"`
	Profile       Profile       `json:"profile" firestore:"profile"`
	AcademicStats AcademicStats `json:"academic_stats" firestore:"academic_stats"`
	CreatedAt     time.Time     `json:"created_at" firestore:"created_at"`
	UpdatedAt     *time.Time    `json:"updated_at,omitempty" firestore:"updated_at,omitempty"`
}

type Profile struct {
	Name         string `json:"name" firestore:"name"`
	Branch       string `json:"branch" firestore:"branch"`
	Year         int    `json:"year" firestore:"year"`
	AvatarURL    string `json:"avatar_url" firestore:"avatar_url"`
	Phone        string `json:"phone,omitempty" firestore:"phone,omitempty"`
	Semester     string `json:"semester,omitempty" firestore:"semester,omitempty"`
	EnrollmentNo string `json:"enrollment_no,omitempty" firestore:"enrollment_no,omitempty"`
	GithubURL    string `json:"github_url,omitempty" firestore:"github_url,omitempty"`
	LinkedinURL  string `json:"linkedin_url,omitempty" firestore:"linkedin_url,omitempty"`
}

type AcademicStats struct {
	CGPA              float64    `json:"cgpa" firestore:"cgpa"`
	AttendancePercent float64    `json:"attendance_percent" firestore:"attendance_percent"`
	RiskStatus        RiskStatus `json:"risk_status" firestore:"risk_status"`
	CoursesEnrolled   []string   `json:"courses_enrolled" firestore:"courses_enrolled"`
}
