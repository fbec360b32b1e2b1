package services

import (
	"math"

	"github.com/SAP-F-2025/nova-scholar-service/internal/models"
)

const (
	RiskLow    = "Low"
	RiskMedium = "Medium"
	RiskHigh   = "High"
)

// PredictRisk is a pure function of the clamped inputs
func PredictRisk(attendance, marks float64) models.PredictionResult {
	a := clamp(attendance, 0, 100)
	m := clamp(marks, 0, 100)

	level := RiskLow
	switch {
	case a < 75 || m < 50:
		level = RiskHigh
	case a < 85 || m < 70:
		level = RiskMedium
	}

	cgpa := (a*0.03 + m*0.07) * 0.1 * 10
	return models.PredictionResult{
		RiskLevel:     level,
		PredictedCGPA: clamp(roundFloat(cgpa, 2), 0, 10),
	}
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	return math.Max(lo, math.Min(hi, v))
}

func roundFloat(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
