package models

// QuizQuestion is one generated or fallback multiple-choice question
type QuizQuestion struct {
	Question    string   `json:"question"`
	Options     []string `json:"options"`
	Answer      string   `json:"answer"`
	Explanation string   `json:"explanation"`
}

// IsWellFormed reports whether the question can be rendered and graded:
// non-empty text, 2 to 4 distinct options and an answer among them.
func (q QuizQuestion) IsWellFormed() bool {
	if q.Question == "" || len(q.Options) < 2 || len(q.Options) > 4 {
		return false
	}
	seen := make(map[string]bool, len(q.Options))
	hasAnswer := false
	for _, o := range q.Options {
		if o == "" || seen[o] {
			return false
		}
		seen[o] = true
		if o == q.Answer {
			hasAnswer = true
		}
	}
	return hasAnswer
}

// DoubtAnswer is the solve-doubt payload
type DoubtAnswer struct {
	Answer    string   `json:"answer"`
	Citations []string `json:"citations"`
}
