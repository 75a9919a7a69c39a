package resolver

// RiskLevel is the ordered screening tier for SARD-ILD risk.
type RiskLevel string

const (
	RiskLow      RiskLevel = "low"
	RiskModerate RiskLevel = "moderate"
	RiskHigh     RiskLevel = "high"
)

// SARDType describes a connective tissue disease option in the screening
// tool, with its baseline ILD risk tier.
type SARDType struct {
	Value string
	Label string
	Risk  RiskLevel
}

// SARDTypes lists the connective tissue diseases the screening tool covers.
var SARDTypes = []SARDType{
	{Value: "RA", Label: "Rheumatoid Arthritis (RA)", Risk: RiskModerate},
	{Value: "SSc", Label: "Systemic Sclerosis (SSc)", Risk: RiskHigh},
	{Value: "IIM", Label: "Idiopathic Inflammatory Myopathies (IIM)", Risk: RiskHigh},
	{Value: "MCTD", Label: "Mixed Connective Tissue Disease (MCTD)", Risk: RiskModerate},
	{Value: "SjD", Label: "Sjögren's Disease (SjD)", Risk: RiskModerate},
	{Value: "autre", Label: "Other Connective Tissue Disease", Risk: RiskLow},
}

// RiskFactorLabels maps risk-factor tokens to their display labels.
var RiskFactorLabels = map[string]string{
	"anti-scl70":       "Anti-Scl-70 (topoisomerase I) positive",
	"anti-synthetase":  "Antisynthetase antibody (e.g., anti-Jo1)",
	"anti-mda5":        "Anti-MDA5 antibody positive",
	"age":              "Age > 60 years",
	"sexeM":            "Male sex",
	"tabac":            "Smoking (current or past)",
	"rgo":              "Gastroesophageal reflux (GERD)",
	"exposition":       "Occupational exposure (dusts)",
	"familiaux":        "Family history of pulmonary fibrosis",
}

// SymptomLabels maps symptom tokens to their display labels.
var SymptomLabels = map[string]string{
	"dyspnee":            "Progressive exertional dyspnea",
	"toux":               "Persistent dry cough",
	"crepitants":         `"Velcro" crackles on auscultation`,
	"hippocratisme":      "Digital clubbing",
	"desaturation":       "Exertional desaturation",
	"faiblesse":          "Proximal muscle weakness",
	"arthralgies":        "Arthralgia or arthritis",
	"raynaud":            "Raynaud's phenomenon",
	"rash":               "Skin rash (Gottron, heliotrope)",
	"fatigue":            "Unusual fatigue",
	"douleur-thoracique": "Chest pain",
}

// highRiskAntibodies score double in the screening rule set.
var highRiskAntibodies = map[string]bool{
	"anti-scl70":      true,
	"anti-synthetase": true,
	"anti-mda5":       true,
}

// ScreeningInput is the screening tool's accumulated answer set.
type ScreeningInput struct {
	SARD        string   `json:"connectiviteType" mapstructure:"connectiviteType"`
	HasILD      bool     `json:"hasPID" mapstructure:"hasPID"`
	RiskFactors []string `json:"riskFactors" mapstructure:"riskFactors"`
	Symptoms    []string `json:"currentSymptoms" mapstructure:"currentSymptoms"`
}

// RiskResult is the screening tier plus the score that produced it.
type RiskResult struct {
	Level RiskLevel `json:"level"`
	Score int       `json:"score"`
}

// ScoreScreening computes the ILD screening risk tier.
//
// An already-diagnosed ILD forces the high tier regardless of score: the
// context is then monitoring, where progression risk is inherently high.
// Otherwise independent rule conditions accumulate points which map onto
// three tiers with fixed cut points (>=3 high, >=1 moderate, else low).
func ScoreScreening(in ScreeningInput) RiskResult {
	if in.HasILD {
		return RiskResult{Level: RiskHigh}
	}

	score := 0
	for _, t := range SARDTypes {
		if t.Value != in.SARD {
			continue
		}
		switch t.Risk {
		case RiskHigh:
			score += 2
		case RiskModerate:
			score++
		}
	}

	for _, rf := range in.RiskFactors {
		if highRiskAntibodies[rf] {
			score += 2
			break
		}
	}
	if contains(in.RiskFactors, "age") || contains(in.RiskFactors, "sexeM") {
		score++
	}

	if contains(in.Symptoms, "crepitants") {
		score += 2
	}
	if contains(in.Symptoms, "dyspnee") {
		score++
	}
	if len(in.Symptoms) > 2 {
		score++
	}

	level := RiskLow
	switch {
	case score >= 3:
		level = RiskHigh
	case score >= 1:
		level = RiskModerate
	}
	return RiskResult{Level: level, Score: score}
}

// SARDLabel returns the display label for a screening SARD token, falling
// back to the token itself.
func SARDLabel(value string) string {
	for _, t := range SARDTypes {
		if t.Value == value {
			return t.Label
		}
	}
	return value
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
