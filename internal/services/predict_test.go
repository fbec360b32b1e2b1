package services

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPredictRisk(t *testing.T) {
	tests := []struct {
		attendance, marks float64
		level             string
		cgpa              float64
	}{
		{70, 40, RiskHigh, 4.9},
		{80, 60, RiskMedium, 6.6},
		{95, 90, RiskLow, 9.15},
		{100, 100, RiskLow, 10},
		{0, 0, RiskHigh, 0},
		{85, 70, RiskLow, 7.45},
	}
	for _, tt := range tests {
		got := PredictRisk(tt.attendance, tt.marks)
		assert.Equal(t, tt.level, got.RiskLevel, "attendance=%v marks=%v", tt.attendance, tt.marks)
		assert.InDelta(t, tt.cgpa, got.PredictedCGPA, 1e-9, "attendance=%v marks=%v", tt.attendance, tt.marks)
	}
}

func TestPredictRisk_ClampsInputs(t *testing.T) {
	inputs := []float64{-50, -1, 0, 42, 100, 101, 1e9, math.Inf(1), math.Inf(-1), math.NaN()}
	for _, a := range inputs {
		for _, m := range inputs {
			got := PredictRisk(a, m)
			assert.GreaterOrEqual(t, got.PredictedCGPA, 0.0)
			assert.LessOrEqual(t, got.PredictedCGPA, 10.0)
			assert.Contains(t, []string{RiskLow, RiskMedium, RiskHigh}, got.RiskLevel)
		}
	}

	assert.Equal(t, PredictRisk(100, 100), PredictRisk(250, 1000))
	assert.Equal(t, PredictRisk(0, 0), PredictRisk(-5, -5))
}
