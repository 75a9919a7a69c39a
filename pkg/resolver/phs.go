package resolver

// PHSInput is the hypersensitivity pneumonitis (HP) score questionnaire.
type PHSInput struct {
	Exposure string `json:"exposure" mapstructure:"exposure"`
	HRCT     string `json:"hrct" mapstructure:"hrct"`
	BAL      string `json:"bal" mapstructure:"bal"`
}

// PHSResult is the HP diagnostic confidence outcome.
type PHSResult struct {
	Score          float64 `json:"score"`
	Evaluation     string  `json:"evaluation"`
	Recommendation string  `json:"recommendation"`
}

var phsExposurePoints = map[string]float64{
	"identified":   1,
	"intermediate": 0.5,
	"unidentified": 0,
}

var phsHRCTPoints = map[string]float64{
	"typical":       1,
	"compatible":    0.5,
	"indeterminate": 0,
}

// ScoreHP sums the three HP score variables (antigen exposure, HRCT pattern,
// BAL lymphocytosis) and maps the total onto diagnostic confidence bands.
// Unknown tokens score zero.
func ScoreHP(in PHSInput) PHSResult {
	score := phsExposurePoints[in.Exposure] + phsHRCTPoints[in.HRCT]
	if in.BAL == "yes" {
		score++
	}

	switch {
	case score >= 2:
		return PHSResult{
			Score:          score,
			Evaluation:     "High confidence for HP",
			Recommendation: "The diagnosis of HP is likely. Confirm in multidisciplinary discussion (MDD).",
		}
	case score >= 1:
		return PHSResult{
			Score:          score,
			Evaluation:     "Low confidence for HP",
			Recommendation: "The diagnosis of HP is possible but uncertain. A lung biopsy should be discussed in MDD to refine the diagnosis.",
		}
	default:
		return PHSResult{
			Score:          score,
			Evaluation:     "HP unlikely",
			Recommendation: "The diagnosis of HP is unlikely. Consider other diagnoses. A biopsy may be discussed if uncertainty persists.",
		}
	}
}
