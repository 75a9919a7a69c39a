package resolver_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pulmotools/ildflow/pkg/resolver"
)

func TestScoreScreening(t *testing.T) {
	tests := []struct {
		name  string
		in    resolver.ScreeningInput
		score int
		level resolver.RiskLevel
	}{
		{
			name:  "no answers",
			in:    resolver.ScreeningInput{},
			score: 0,
			level: resolver.RiskLow,
		},
		{
			name:  "moderate-risk disease alone",
			in:    resolver.ScreeningInput{SARD: "RA"},
			score: 1,
			level: resolver.RiskModerate,
		},
		{
			name:  "high-risk disease alone",
			in:    resolver.ScreeningInput{SARD: "SSc"},
			score: 2,
			level: resolver.RiskModerate,
		},
		{
			name: "full high-risk profile",
			in: resolver.ScreeningInput{
				SARD:        "SSc",
				RiskFactors: []string{"anti-scl70", "age"},
				Symptoms:    []string{"dyspnee", "crepitants"},
			},
			// 2 (SSc) + 2 (antibody) + 1 (age) + 1 (dyspnea) + 2 (crackles)
			score: 8,
			level: resolver.RiskHigh,
		},
		{
			name: "antibodies score once",
			in: resolver.ScreeningInput{
				RiskFactors: []string{"anti-scl70", "anti-mda5", "anti-synthetase"},
			},
			score: 2,
			level: resolver.RiskModerate,
		},
		{
			name: "age and male sex score once",
			in: resolver.ScreeningInput{
				RiskFactors: []string{"age", "sexeM"},
			},
			score: 1,
			level: resolver.RiskModerate,
		},
		{
			name: "more than two symptoms adds a point",
			in: resolver.ScreeningInput{
				Symptoms: []string{"toux", "fatigue", "raynaud"},
			},
			score: 1,
			level: resolver.RiskModerate,
		},
		{
			name: "three-point threshold reaches high",
			in: resolver.ScreeningInput{
				SARD:     "RA",
				Symptoms: []string{"crepitants"},
			},
			score: 3,
			level: resolver.RiskHigh,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := resolver.ScoreScreening(tt.in)
			assert.Equal(t, tt.score, result.Score)
			assert.Equal(t, tt.level, result.Level)
		})
	}
}

func TestScoreScreening_DiagnosedILDOverridesScore(t *testing.T) {
	result := resolver.ScoreScreening(resolver.ScreeningInput{SARD: "autre", HasILD: true})
	assert.Equal(t, resolver.RiskHigh, result.Level)
	assert.Equal(t, 0, result.Score, "the override bypasses scoring entirely")
}

func TestSARDLabel(t *testing.T) {
	assert.Equal(t, "Systemic Sclerosis (SSc)", resolver.SARDLabel("SSc"))
	assert.Equal(t, "unknown-token", resolver.SARDLabel("unknown-token"))
}
