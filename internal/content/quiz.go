package content

import "github.com/SAP-F-2025/nova-scholar-service/internal/models"

// QuizSize is the number of questions every quiz response carries
const QuizSize = 5

var fallbackQuiz = []models.QuizQuestion{
	{
		Question:    "Which data structure follows the Last In, First Out (LIFO) principle?",
		Options:     []string{"Queue", "Stack", "Linked List", "Tree"},
		Answer:      "Stack",
		Explanation: "A stack removes the most recently added element first.",
	},
	{
		Question:    "What is the time complexity of binary search on a sorted array?",
		Options:     []string{"O(n)", "O(n log n)", "O(log n)", "O(1)"},
		Answer:      "O(log n)",
		Explanation: "Each comparison halves the remaining search space.",
	},
	{
		Question:    "Which OSI layer is responsible for routing packets between networks?",
		Options:     []string{"Data Link", "Transport", "Network", "Session"},
		Answer:      "Network",
		Explanation: "The Network layer handles logical addressing and routing.",
	},
	{
		Question:    "Which SQL clause filters rows after aggregation?",
		Options:     []string{"WHERE", "HAVING", "GROUP BY", "ORDER BY"},
		Answer:      "HAVING",
		Explanation: "HAVING applies conditions to grouped results, WHERE applies before grouping.",
	},
	{
		Question:    "TCP guarantees in-order delivery of data.",
		Options:     []string{"True", "False"},
		Answer:      "True",
		Explanation: "TCP uses sequence numbers and acknowledgements to deliver bytes in order.",
	},
}

// FallbackQuiz returns a fresh copy of the fixed five-question quiz
func FallbackQuiz() []models.QuizQuestion {
	out := make([]models.QuizQuestion, len(fallbackQuiz))
	for i, q := range fallbackQuiz {
		q.Options = append([]string(nil), q.Options...)
		out[i] = q
	}
	return out
}
