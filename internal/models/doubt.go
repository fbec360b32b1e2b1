package models

import "time"

type DoubtStatus string

const (
	DoubtOpen     DoubtStatus = "open"
	DoubtResolved DoubtStatus = "resolved"
	DoubtPending  DoubtStatus = "pending"
)

const CollectionDoubts = "doubts"

// Doubt is the doubts/{id} document
type Doubt struct {
	ID        string      `json:"id" firestore:"-"`
	CourseID  string      `json:"course_id" firestore:"course_id"`
	StudentID string      `json:"student_id" firestore:"student_id"`
	Question  string      `json:"question" firestore:"question"`
	Status    DoubtStatus `json:"status" firestore:"status"`
	CreatedAt time.Time   `json:"created_at" firestore:"created_at"`
}
