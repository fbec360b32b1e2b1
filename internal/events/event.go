package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	EventSource  = "nova-scholar-service"
	EventVersion = "1.0"
)

// Event types
const (
	UserSynced       = "user.synced"
	CourseCreated    = "course.created"
	CourseDeleted    = "course.deleted"
	SyllabusUploaded = "course.syllabus_uploaded"
	EnrollmentAdded  = "enrollment.created"
	DoubtAsked       = "doubt.asked"
)

// Event is the envelope every domain event is published in
type Event struct {
	ID        string      `json:"id"`
	Type      string      `json:"type"`
	Source    string      `json:"source"`
	Version   string      `json:"version"`
	Timestamp time.Time   `json:"timestamp"`
	Data      interface{} `json:"data"`
}

func NewEvent(eventType string, data interface{}) *Event {
	return &Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Source:    EventSource,
		Version:   EventVersion,
		Timestamp: time.Now().UTC(),
		Data:      data,
	}
}

type UserSyncedData struct {
	UID     string `json:"uid"`
	Role    string `json:"role"`
	Created bool   `json:"created"`
}

type CourseData struct {
	CourseID  string `json:"course_id"`
	TeacherID string `json:"teacher_id"`
	Title     string `json:"title,omitempty"`
}

type SyllabusData struct {
	CourseID string `json:"course_id"`
	FileURL  string `json:"file_url"`
}

type EnrollmentData struct {
	CourseID  string `json:"course_id"`
	StudentID string `json:"student_id"`
}

type DoubtData struct {
	DoubtID   string `json:"doubt_id"`
	CourseID  string `json:"course_id"`
	StudentID string `json:"student_id"`
}
