package models

import "time"

const (
	CollectionCourses = "courses"
	// SubCollectionStudents holds enrollment markers under courses/{id}
	SubCollectionStudents = "students"
	// SubCollectionEnrolledCourses mirrors enrollments under users/{id}
	SubCollectionEnrolledCourses = "enrolled_courses"
)

// Course is the courses/{id} document
type Course struct {
	ID               string    `json:"id" firestore:"-"`
	Title            string    `json:"title" firestore:"title"`
	Description      string    `json:"description" firestore:"description"`
	TeacherID        string    `json:"teacher_id" firestore:"teacher_id"`
	TeacherName      string    `json:"teacher_name" firestore:"teacher_name"`
	CreatedAt        time.Time `json:"created_at" firestore:"created_at"`
	StudentCount     int       `json:"student_count" firestore:"student_count"`
	SyllabusUploaded bool      `json:"syllabus_uploaded" firestore:"syllabus_uploaded"`
	SyllabusURL      string    `json:"syllabus_url,omitempty" firestore:"syllabus_url,omitempty"`
	DoubtsCount      int       `json:"doubts_count" firestore:"doubts_count"`
}

// CourseStudent is the course-side enrollment marker
type CourseStudent struct {
	StudentID  string    `json:"student_id" firestore:"student_id"`
	EnrolledAt time.Time `json:"enrolled_at" firestore:"enrolled_at"`
}

// EnrolledCourse is the student-side enrollment mirror
type EnrolledCourse struct {
	CourseID   string    `json:"course_id" firestore:"course_id"`
	EnrolledAt time.Time `json:"enrolled_at" firestore:"enrolled_at"`
}
