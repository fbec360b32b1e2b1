package content

import (
	"strings"

	"github.com/gosimple/slug"

	"github.com/SAP-F-2025/nova-scholar-service/internal/models"
)

var demoResumes = map[string]models.ResumeAnalysis{
	"rahul": {
		Score: 65,
		Feedback: []string{
			"Your summary reads like a Wikipedia article. Make it personal.",
			"Listing 'MS Office' as a skill in 2026? Bold move.",
			"No quantifiable achievements. What did you actually ship at your internship?",
			"Add metrics: 'Improved API response time by 40%' instead of 'Worked on APIs'.",
		},
		Details: models.ResumeDetails{
			CandidateName: "Rahul Sharma",
			Role:          "Software Engineering Intern",
			CategoryScores: []models.CategoryScore{
				{Name: "Impact", Score: 45},
				{Name: "Skills", Score: 70},
				{Name: "Projects", Score: 60},
				{Name: "Formatting", Score: 80},
			},
			Keywords: models.KeywordMatches{
				Strong:  []string{"Python", "SQL", "Git"},
				Missing: []string{"Docker", "REST APIs", "Unit Testing", "Cloud"},
			},
			Recommendation: "Your resume has potential but needs significant polish to pass ATS filters. Focus on quantifiable impact and relevant technical skills.",
			Projects: []models.ProjectReview{
				{
					Name:         "Library Management System",
					Strengths:    []string{"Clear problem statement"},
					Improvements: []string{"Mention the tech stack", "Link the GitHub repository"},
				},
			},
			ATSFormatting: []models.ATSCheck{
				{Check: "Single column layout", Status: "pass", Icon: "check"},
				{Check: "Standard section headings", Status: "pass", Icon: "check"},
				{Check: "Consistent font sizes", Status: "warn", Icon: "alert"},
				{Check: "Contact details parseable", Status: "pass", Icon: "check"},
			},
		},
		Source: "demo",
	},
	"priya": {
		Score: 82,
		Feedback: []string{
			"Strong project section with measurable outcomes.",
			"Tailor the skills section to the job description keywords.",
			"Consider adding a Certifications section for your cloud coursework.",
		},
		Details: models.ResumeDetails{
			CandidateName: "Priya Patel",
			Role:          "Data Analyst",
			CategoryScores: []models.CategoryScore{
				{Name: "Impact", Score: 80},
				{Name: "Skills", Score: 85},
				{Name: "Projects", Score: 84},
				{Name: "Formatting", Score: 78},
			},
			Keywords: models.KeywordMatches{
				Strong:  []string{"Python", "Pandas", "Tableau", "SQL"},
				Missing: []string{"A/B Testing", "Airflow"},
			},
			Recommendation: "Recruiter-ready. Minor keyword tuning will lift the ATS match further.",
			Projects: []models.ProjectReview{
				{
					Name:         "Campus Footfall Dashboard",
					Strengths:    []string{"Quantified usage", "Clear visuals"},
					Improvements: []string{"State the data volume processed"},
				},
			},
			ATSFormatting: []models.ATSCheck{
				{Check: "Single column layout", Status: "pass", Icon: "check"},
				{Check: "Standard section headings", Status: "pass", Icon: "check"},
				{Check: "Consistent font sizes", Status: "pass", Icon: "check"},
				{Check: "Contact details parseable", Status: "pass", Icon: "check"},
			},
		},
		Source: "demo",
	},
	"amit": {
		Score: 74,
		Feedback: []string{
			"Good use of action verbs throughout.",
			"Projects section still reads like a grocery list. Add one line of impact per project.",
			"Move Education below Experience.",
		},
		Details: models.ResumeDetails{
			CandidateName: "Amit Verma",
			Role:          "Backend Developer",
			CategoryScores: []models.CategoryScore{
				{Name: "Impact", Score: 65},
				{Name: "Skills", Score: 82},
				{Name: "Projects", Score: 70},
				{Name: "Formatting", Score: 79},
			},
			Keywords: models.KeywordMatches{
				Strong:  []string{"Go", "PostgreSQL", "Docker"},
				Missing: []string{"Kubernetes", "Observability"},
			},
			Recommendation: "Solid foundation. Quantify project outcomes to cross the 80 mark.",
			Projects: []models.ProjectReview{
				{
					Name:         "URL Shortener",
					Strengths:    []string{"Production deployment", "Load tested"},
					Improvements: []string{"Report latency numbers"},
				},
			},
			ATSFormatting: []models.ATSCheck{
				{Check: "Single column layout", Status: "pass", Icon: "check"},
				{Check: "Standard section headings", Status: "warn", Icon: "alert"},
				{Check: "Consistent font sizes", Status: "pass", Icon: "check"},
				{Check: "Contact details parseable", Status: "pass", Icon: "check"},
			},
		},
		Source: "demo",
	},
}

// demoOrder fixes the match order when a file name contains several keys
var demoOrder = []string{"rahul", "priya", "amit"}

// DemoResume returns the canned analysis whose key appears in the slugified
// file name, if any.
func DemoResume(fileName string) (models.ResumeAnalysis, bool) {
	normalized := slug.Make(fileName)
	for _, key := range demoOrder {
		if strings.Contains(normalized, key) {
			return copyAnalysis(demoResumes[key]), true
		}
	}
	return models.ResumeAnalysis{}, false
}

func copyAnalysis(a models.ResumeAnalysis) models.ResumeAnalysis {
	a.Feedback = append([]string(nil), a.Feedback...)
	a.Details.CategoryScores = append([]models.CategoryScore(nil), a.Details.CategoryScores...)
	a.Details.Keywords.Strong = append([]string(nil), a.Details.Keywords.Strong...)
	a.Details.Keywords.Missing = append([]string(nil), a.Details.Keywords.Missing...)
	a.Details.Projects = append([]models.ProjectReview(nil), a.Details.Projects...)
	a.Details.ATSFormatting = append([]models.ATSCheck(nil), a.Details.ATSFormatting...)
	return a
}
