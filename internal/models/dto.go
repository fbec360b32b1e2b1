package models

// ===== REQUEST DTOs =====

type SyncRequest struct {
	Token string `json:"token" validate:"required"`
	Role  string `json:"role"`
}

type CourseCreateRequest struct {
	Title       string `json:"title" validate:"required,min=1,max=200"`
	Description string `json:"description" validate:"max=2000"`
	TeacherID   string `json:"teacher_id" validate:"required"`
	TeacherName string `json:"teacher_name" validate:"max=200"`
	Token       string `json:"token"`
}

type EnrollRequest struct {
	StudentID string `json:"student_id" validate:"required"`
	CourseID  string `json:"course_id" validate:"required"`
	Token     string `json:"token"`
}

type DoubtCreateRequest struct {
	StudentID string `json:"student_id" validate:"required"`
	CourseID  string `json:"course_id" validate:"required"`
	Question  string `json:"question" validate:"required,min=1,max=5000"`
	Token     string `json:"token"`
}

type SyllabusRequest struct {
	Token   string `json:"token"`
	FileURL string `json:"file_url" validate:"required,url"`
}

type TeacherRequest struct {
	TeacherID string `json:"teacher_id" validate:"required"`
	Token     string `json:"token"`
}

type SolveDoubtRequest struct {
	StudentID    string `json:"student_id"`
	QuestionText string `json:"question_text" validate:"required,min=1,max=5000"`
	ImageURL     string `json:"image_url" validate:"omitempty,url"`
}

type PredictRequest struct {
	Attendance float64 `json:"attendance"`
	Marks      float64 `json:"marks"`
}

type QuizRequest struct {
	Subject string `json:"subject" validate:"required,max=200"`
	Topic   string `json:"topic" validate:"required,max=200"`
}

// ProfileUpdateRequest is the flat profile form sent by the student dashboard
type ProfileUpdateRequest struct {
	UID          string   `json:"uid" validate:"required"`
	Token        string   `json:"token"`
	Name         string   `json:"name" validate:"max=200"`
	Email        string   `json:"email" validate:"omitempty,email"`
	Phone        string   `json:"phone" validate:"max=32"`
	Branch       string   `json:"branch" validate:"max=100"`
	Year         int      `json:"year" validate:"min=0,max=10"`
	Semester     string   `json:"semester" validate:"max=16"`
	EnrollmentNo string   `json:"enrollment_no" validate:"max=64"`
	CGPA         *float64 `json:"cgpa" validate:"omitempty,min=0,max=10"`
	Attendance   *float64 `json:"attendance" validate:"omitempty,min=0,max=100"`
	GithubURL    string   `json:"github_url" validate:"omitempty,url"`
	LinkedinURL  string   `json:"linkedin_url" validate:"omitempty,url"`
	AvatarURL    string   `json:"avatar_url" validate:"omitempty,url"`
}

type PlacementProgressRequest struct {
	StudentID     string          `json:"student_id" validate:"required"`
	Token         string          `json:"token"`
	Topics        map[string]bool `json:"topics"`
	Goals         map[string]bool `json:"goals"`
	CompanyChecks map[string]bool `json:"company_checks"`
	Streak        int             `json:"streak" validate:"min=0"`
}

// ===== RESPONSE DTOs =====

type SyncResponse struct {
	Status string   `json:"status"`
	Role   UserRole `json:"role"`
	UID    string   `json:"uid"`
}

type PredictionResult struct {
	RiskLevel     string  `json:"risk_level"`
	PredictedCGPA float64 `json:"predicted_cgpa"`
}

// StudentRecord is the roster projection of a user document
type StudentRecord struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Email      string  `json:"email"`
	Avatar     string  `json:"avatar"`
	Roll       string  `json:"roll"`
	Branch     string  `json:"branch"`
	Year       string  `json:"year"`
	CGPA       float64 `json:"cgpa"`
	Attendance float64 `json:"attendance"`
}

type RosterResponse struct {
	Students []StudentRecord `json:"students"`
}

type TeacherStats struct {
	ActiveCourses  int     `json:"active_courses"`
	TotalStudents  int     `json:"total_students"`
	UnsolvedDoubts int     `json:"unsolved_doubts"`
	AvgAttendance  float64 `json:"avg_attendance"`
}

type CourseListResponse struct {
	Courses []Course `json:"courses"`
}

// ProfileResponse is the flattened profile returned to the student dashboard
type ProfileResponse struct {
	UID          string     `json:"uid"`
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	Phone        string     `json:"phone"`
	Branch       string     `json:"branch"`
	Year         int        `json:"year"`
	Semester     string     `json:"semester"`
	EnrollmentNo string     `json:"enrollment_no"`
	CGPA         float64    `json:"cgpa"`
	Attendance   float64    `json:"attendance"`
	GithubURL    string     `json:"github_url"`
	LinkedinURL  string     `json:"linkedin_url"`
	AvatarURL    string     `json:"avatar_url"`
	RiskStatus   RiskStatus `json:"risk_status"`
}

type QuizResponse struct {
	Status string         `json:"status"`
	Quiz   []QuizQuestion `json:"quiz"`
	Source string         `json:"source"`
}
