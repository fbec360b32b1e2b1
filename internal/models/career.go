package models

import "time"

const (
	CollectionResumeReviews     = "resume_reviews"
	CollectionPlacementProgress = "placement_progress"
)

// ResumeAnalysis is the analyze-resume response body
type ResumeAnalysis struct {
	Score    int           `json:"score"`
	Feedback []string      `json:"feedback"`
	Details  ResumeDetails `json:"details"`
	Source   string        `json:"source"`
}

type ResumeDetails struct {
	CandidateName  string          `json:"candidate_name"`
	Role           string          `json:"role"`
	CategoryScores []CategoryScore `json:"category_scores"`
	Keywords       KeywordMatches  `json:"keywords"`
	Recommendation string          `json:"recommendation"`
	Projects       []ProjectReview `json:"projects"`
	ATSFormatting  []ATSCheck      `json:"ats_formatting"`
}

type CategoryScore struct {
	Name  string `json:"name"`
	Score int    `json:"score"`
}

type KeywordMatches struct {
	Strong  []string `json:"strong"`
	Missing []string `json:"missing"`
}

type ProjectReview struct {
	Name         string   `json:"name"`
	Strengths    []string `json:"strengths"`
	Improvements []string `json:"improvements"`
}

type ATSCheck struct {
	Check  string `json:"check"`
	Status string `json:"status"`
	Icon   string `json:"icon"`
}

// PlacementDrive is one entry of the placement drive board
type PlacementDrive struct {
	Company  string `json:"company"`
	Role     string `json:"role"`
	Date     string `json:"date"`
	Location string `json:"location"`
	CGPA     string `json:"cgpa"`
	Status   string `json:"status"`
	Logo     string `json:"logo"`
}

// PlacementProgress is the placement_progress/{studentId} document
type PlacementProgress struct {
	StudentID     string          `json:"student_id" firestore:"student_id"`
	Topics        map[string]bool `json:"topics" firestore:"topics"`
	Goals         map[string]bool `json:"goals" firestore:"goals"`
	CompanyChecks map[string]bool `json:"company_checks" firestore:"company_checks"`
	Streak        int             `json:"streak" firestore:"streak"`
	UpdatedAt     time.Time       `json:"updated_at" firestore:"updated_at"`
}
