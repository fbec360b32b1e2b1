package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SAP-F-2025/nova-scholar-service/internal/ai"
	"github.com/SAP-F-2025/nova-scholar-service/internal/content"
	"github.com/SAP-F-2025/nova-scholar-service/internal/metrics"
	"github.com/SAP-F-2025/nova-scholar-service/internal/models"
	"github.com/SAP-F-2025/nova-scholar-service/internal/validator"
)

const (
	SourceAI       = "ai"
	SourceFallback = "fallback"
	SourceDemo     = "demo"

	defaultAITimeout = 20 * time.Second
)

// ===== SERVICE INTERFACE =====

// TutorService never surfaces a generative-service failure: every failure
// is answered from fixed fallback content.
type TutorService interface {
	SolveDoubt(ctx context.Context, req *models.SolveDoubtRequest) (*models.DoubtAnswer, error)
	GenerateQuiz(ctx context.Context, req *models.QuizRequest) (*models.QuizResponse, error)
}

// ===== SERVICE IMPLEMENTATION =====

type AIConfig struct {
	Model   string
	Timeout time.Duration
	// DemoDelay simulates processing time on the canned OSI answer
	DemoDelay time.Duration
}

type tutorService struct {
	generator ai.Generator
	logger    *slog.Logger
	validator *validator.Validator
	config    AIConfig
}

func NewTutorService(generator ai.Generator, logger *slog.Logger, validator *validator.Validator, config AIConfig) TutorService {
	if config.Model == "" {
		config.Model = ai.DefaultModel
	}
	if config.Timeout <= 0 {
		config.Timeout = defaultAITimeout
	}
	return &tutorService{
		generator: generator,
		logger:    logger,
		validator: validator,
		config:    config,
	}
}

func (s *tutorService) SolveDoubt(ctx context.Context, req *models.SolveDoubtRequest) (*models.DoubtAnswer, error) {
	if err := validate(s.validator, req); err != nil {
		return nil, err
	}

	if content.IsOSIQuestion(req.QuestionText) {
		if err := sleepCtx(ctx, s.config.DemoDelay); err != nil {
			return nil, err
		}
		answer := content.OSIAnswer()
		return &answer, nil
	}

	text, err := s.generate(ctx, doubtPrompt(req))
	if err != nil {
		return s.fallbackAnswer("solve_doubt", reasonFor(err), err), nil
	}

	answer, ok := parseDoubtAnswer(text)
	if !ok {
		return s.fallbackAnswer("solve_doubt", "parse", errors.New("missing ANSWER block")), nil
	}
	return &answer, nil
}

func (s *tutorService) GenerateQuiz(ctx context.Context, req *models.QuizRequest) (*models.QuizResponse, error) {
	if err := validate(s.validator, req); err != nil {
		return nil, err
	}

	text, err := s.generate(ctx, quizPrompt(req.Subject, req.Topic))
	if err != nil {
		return s.fallbackQuiz(reasonFor(err), err), nil
	}

	quiz, err := parseQuiz(text)
	if err != nil {
		return s.fallbackQuiz("parse", err), nil
	}
	return &models.QuizResponse{Status: "success", Quiz: quiz, Source: SourceAI}, nil
}

// generate runs one generative call under the configured timeout. Quota is
// charged to the verified caller already on ctx, never to a body field.
func (s *tutorService) generate(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.config.Timeout)
	defer cancel()
	return s.generator.Generate(ctx, s.config.Model, prompt)
}

func (s *tutorService) fallbackAnswer(operation, reason string, cause error) *models.DoubtAnswer {
	metrics.AIFallbacks.WithLabelValues(operation, reason).Inc()
	s.logger.Warn("Serving fallback answer", "operation", operation, "reason", reason, "error", cause)
	answer := content.FallbackAnswer
	answer.Citations = []string{}
	return &answer
}

func (s *tutorService) fallbackQuiz(reason string, cause error) *models.QuizResponse {
	metrics.AIFallbacks.WithLabelValues("generate_quiz", reason).Inc()
	s.logger.Warn("Serving fallback quiz", "reason", reason, "error", cause)
	return &models.QuizResponse{Status: "success", Quiz: content.FallbackQuiz(), Source: SourceFallback}
}

func reasonFor(err error) string {
	switch {
	case errors.Is(err, ai.ErrQuotaExceeded):
		return "quota"
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.Is(err, ai.ErrNotConfigured):
		return "not_configured"
	default:
		return "error"
	}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// ===== PROMPTS AND PARSING =====

func doubtPrompt(req *models.SolveDoubtRequest) string {
	var b strings.Builder
	b.WriteString("You are Nova, an academic tutor for engineering students.\n")
	b.WriteString("Answer the student's question clearly and accurately.\n")
	b.WriteString("Respond in exactly this format:\n")
	b.WriteString("ANSWER: <your explanation>\n")
	b.WriteString("CITATIONS:\n- <source 1>\n- <source 2>\n\n")
	fmt.Fprintf(&b, "Question: %s\n", req.QuestionText)
	if req.ImageURL != "" {
		fmt.Fprintf(&b, "The student attached an image: %s\n", req.ImageURL)
	}
	return b.String()
}

// parseDoubtAnswer reads an ANSWER:/CITATIONS: block
func parseDoubtAnswer(text string) (models.DoubtAnswer, bool) {
	start := indexFold(text, "ANSWER:")
	if start < 0 {
		return models.DoubtAnswer{}, false
	}
	body := text[start+len("ANSWER:"):]

	var citationBlock string
	if i := indexFold(body, "CITATIONS:"); i >= 0 {
		citationBlock = body[i+len("CITATIONS:"):]
		body = body[:i]
	}

	answer := strings.TrimSpace(body)
	if answer == "" {
		return models.DoubtAnswer{}, false
	}

	citations := []string{}
	for _, line := range strings.Split(citationBlock, "\n") {
		line = trimBullet(line)
		if line == "" || strings.EqualFold(line, "none") {
			continue
		}
		citations = append(citations, line)
	}
	return models.DoubtAnswer{Answer: answer, Citations: citations}, true
}

func quizPrompt(subject, topic string) string {
	return fmt.Sprintf(`Generate a multiple-choice quiz for an engineering student.
Subject: %s
Topic: %s

Return ONLY a JSON array of exactly %d objects with this shape and no other text:
[{"question": "...", "options": ["A", "B", "C", "D"], "answer": "<one of options>", "explanation": "..."}]
Each question has 4 options, or 2 options ("True", "False") for true/false questions.`, subject, topic, content.QuizSize)
}

// parseQuiz accepts the first QuizSize questions of a JSON array, optionally
// wrapped in a markdown code fence. Any malformed question rejects the quiz.
func parseQuiz(text string) ([]models.QuizQuestion, error) {
	start := strings.Index(text, "[")
	end := strings.LastIndex(text, "]")
	if start < 0 || end <= start {
		return nil, errors.New("no JSON array in response")
	}

	var quiz []models.QuizQuestion
	if err := json.Unmarshal([]byte(text[start:end+1]), &quiz); err != nil {
		return nil, fmt.Errorf("failed to decode quiz: %w", err)
	}
	if len(quiz) < content.QuizSize {
		return nil, fmt.Errorf("expected %d questions, got %d", content.QuizSize, len(quiz))
	}
	quiz = quiz[:content.QuizSize]
	for i, q := range quiz {
		if !q.IsWellFormed() {
			return nil, fmt.Errorf("question %d is malformed", i+1)
		}
	}
	return quiz, nil
}

func trimBullet(line string) string {
	line = strings.TrimSpace(line)
	line = strings.TrimLeft(line, "-*•")
	// "1." / "2)" numbering
	if i := strings.IndexAny(line, ".)"); i > 0 && i <= 3 && isDigits(line[:i]) {
		line = line[i+1:]
	}
	return strings.TrimSpace(line)
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}

// indexFold is a case-insensitive strings.Index for an ASCII substr
func indexFold(s, substr string) int {
	for i := 0; i+len(substr) <= len(s); i++ {
		if strings.EqualFold(s[i:i+len(substr)], substr) {
			return i
		}
	}
	return -1
}
