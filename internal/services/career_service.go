package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/SAP-F-2025/nova-scholar-service/internal/ai"
	"github.com/SAP-F-2025/nova-scholar-service/internal/content"
	"github.com/SAP-F-2025/nova-scholar-service/internal/identity"
	"github.com/SAP-F-2025/nova-scholar-service/internal/metrics"
	"github.com/SAP-F-2025/nova-scholar-service/internal/models"
	"github.com/SAP-F-2025/nova-scholar-service/internal/repositories"
	"github.com/SAP-F-2025/nova-scholar-service/internal/validator"
)

// maxResumeChars bounds the resume text sent to the model
const maxResumeChars = 12000

var scorePattern = regexp.MustCompile(`(?i)SCORE:\s*(\d{1,3})`)

// ===== SERVICE INTERFACE =====

type CareerService interface {
	// AnalyzeResume serves a canned analysis when the file name matches a
	// demo profile, otherwise asks the model for a score and feedback. The
	// review is stored under studentID only when token belongs to studentID.
	AnalyzeResume(ctx context.Context, studentID, token, fileName string, data []byte) (*models.ResumeAnalysis, error)

	PlacementDrives() []models.PlacementDrive
	SaveProgress(ctx context.Context, req *models.PlacementProgressRequest) error
	GetProgress(ctx context.Context, studentID, token string) (*models.PlacementProgress, error)
}

// ===== SERVICE IMPLEMENTATION =====

type careerService struct {
	repo      repositories.Repository
	verifier  identity.Verifier
	generator ai.Generator
	logger    *slog.Logger
	validator *validator.Validator
	config    AIConfig
}

func NewCareerService(repo repositories.Repository, verifier identity.Verifier, generator ai.Generator, logger *slog.Logger, validator *validator.Validator, config AIConfig) CareerService {
	if config.Model == "" {
		config.Model = ai.DefaultModel
	}
	if config.Timeout <= 0 {
		config.Timeout = defaultAITimeout
	}
	return &careerService{
		repo:      repo,
		verifier:  verifier,
		generator: generator,
		logger:    logger,
		validator: validator,
		config:    config,
	}
}

func (s *careerService) AnalyzeResume(ctx context.Context, studentID, token, fileName string, data []byte) (*models.ResumeAnalysis, error) {
	if fileName == "" && len(data) == 0 {
		return nil, fmt.Errorf("%w: file is required", ErrValidationFailed)
	}

	owner := ""
	if studentID != "" {
		if id, err := authorizeSubject(ctx, s.verifier, token, studentID); err != nil {
			s.logger.Warn("Resume review will not be stored", "student_id", studentID, "error", err)
		} else {
			owner = id.Subject
			ctx = ai.WithCaller(ctx, owner)
		}
	}

	if demo, ok := content.DemoResume(fileName); ok {
		s.saveReview(ctx, owner, fileName, &demo)
		return &demo, nil
	}

	text := extractText(data)
	if text == "" {
		return nil, fmt.Errorf("%w: resume has no readable text", ErrValidationFailed)
	}

	actx, cancel := context.WithTimeout(ctx, s.config.Timeout)
	defer cancel()
	reply, err := s.generator.Generate(actx, s.config.Model, resumePrompt(text))
	if err != nil {
		metrics.AIFallbacks.WithLabelValues("analyze_resume", reasonFor(err)).Inc()
		if errors.Is(err, ai.ErrQuotaExceeded) {
			return nil, fmt.Errorf("%w: %v", ErrRateLimited, err)
		}
		return nil, fmt.Errorf("%w: resume analysis failed: %v", ErrExternalService, err)
	}

	analysis, err := parseResumeAnalysis(reply)
	if err != nil {
		metrics.AIFallbacks.WithLabelValues("analyze_resume", "parse").Inc()
		return nil, fmt.Errorf("%w: %v", ErrExternalService, err)
	}

	s.saveReview(ctx, owner, fileName, analysis)
	return analysis, nil
}

// saveReview stores the latest review; a store failure does not fail the analysis
func (s *careerService) saveReview(ctx context.Context, studentID, fileName string, analysis *models.ResumeAnalysis) {
	if studentID == "" {
		return
	}
	if err := s.repo.ResumeReview().Save(ctx, studentID, fileName, analysis); err != nil {
		s.logger.Warn("Failed to save resume review", "student_id", studentID, "error", err)
	}
}

func (s *careerService) PlacementDrives() []models.PlacementDrive {
	return content.PlacementDrives()
}

func (s *careerService) SaveProgress(ctx context.Context, req *models.PlacementProgressRequest) error {
	if err := validate(s.validator, req); err != nil {
		return err
	}
	if _, err := authorizeSubject(ctx, s.verifier, req.Token, req.StudentID); err != nil {
		return err
	}

	progress := &models.PlacementProgress{
		StudentID:     req.StudentID,
		Topics:        req.Topics,
		Goals:         req.Goals,
		CompanyChecks: req.CompanyChecks,
		Streak:        req.Streak,
	}
	if err := s.repo.Placement().SaveProgress(ctx, progress); err != nil {
		return storeError("failed to save placement progress", err)
	}
	return nil
}

func (s *careerService) GetProgress(ctx context.Context, studentID, token string) (*models.PlacementProgress, error) {
	if studentID == "" {
		return nil, fmt.Errorf("%w: student_id is required", ErrValidationFailed)
	}
	if _, err := authorizeSubject(ctx, s.verifier, token, studentID); err != nil {
		return nil, err
	}

	progress, err := s.repo.Placement().GetProgress(ctx, studentID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return &models.PlacementProgress{
				StudentID:     studentID,
				Topics:        map[string]bool{},
				Goals:         map[string]bool{},
				CompanyChecks: map[string]bool{},
			}, nil
		}
		return nil, storeError("failed to load placement progress", err)
	}
	return progress, nil
}

// ===== RESUME PARSING =====

// extractText decodes bytes as UTF-8, dropping invalid sequences. Binary
// formats are not parsed.
func extractText(data []byte) string {
	text := strings.ToValidUTF8(string(data), "")
	text = strings.Map(func(r rune) rune {
		if r == 0 {
			return -1
		}
		return r
	}, text)
	text = strings.TrimSpace(text)
	if utf8.RuneCountInString(text) > maxResumeChars {
		text = string([]rune(text)[:maxResumeChars])
	}
	return text
}

func resumePrompt(text string) string {
	return fmt.Sprintf(`You are an ATS resume reviewer for engineering graduates.
Score the resume below from 0 to 100 and give concrete feedback.
Respond in exactly this format:
SCORE: <number>
FEEDBACK:
- <point 1>
- <point 2>
- <point 3>

Resume:
%s`, text)
}

func parseResumeAnalysis(text string) (*models.ResumeAnalysis, error) {
	m := scorePattern.FindStringSubmatch(text)
	if m == nil {
		return nil, errors.New("missing SCORE line")
	}
	score, err := strconv.Atoi(m[1])
	if err != nil || score < 0 || score > 100 {
		return nil, fmt.Errorf("invalid score %q", m[1])
	}

	feedback := []string{}
	if i := indexFold(text, "FEEDBACK:"); i >= 0 {
		for _, line := range strings.Split(text[i+len("FEEDBACK:"):], "\n") {
			if line = trimBullet(line); line != "" {
				feedback = append(feedback, line)
			}
		}
	}

	return &models.ResumeAnalysis{
		Score:    score,
		Feedback: feedback,
		Details: models.ResumeDetails{
			CategoryScores: []models.CategoryScore{{Name: "Overall", Score: score}},
			Keywords:       models.KeywordMatches{Strong: []string{}, Missing: []string{}},
			Recommendation: recommendationFor(score),
			Projects:       []models.ProjectReview{},
			ATSFormatting:  []models.ATSCheck{},
		},
		Source: SourceAI,
	}, nil
}

func recommendationFor(score int) string {
	switch {
	case score >= 75:
		return "Excellent. This resume is recruiter-ready."
	case score >= 50:
		return "Good. Apply the feedback to pass stricter ATS filters."
	default:
		return "Needs work. Focus on quantifiable impact and relevant technical skills."
	}
}
