package resolver

// ILAInput is the ILA stratifier's accumulated answer set.
type ILAInput struct {
	Context      string   `json:"context" mapstructure:"context"`
	PatientInfo  []string `json:"patientInfo" mapstructure:"patientInfo"`
	Extent       string   `json:"extent" mapstructure:"extent"`
	Fibrotic     string   `json:"fibrotic" mapstructure:"fibrotic"`
	Distribution string   `json:"distribution" mapstructure:"distribution"`
}

// ILARiskLevel orders the stratifier outcomes.
type ILARiskLevel string

const (
	ILALow    ILARiskLevel = "low"
	ILAAtRisk ILARiskLevel = "at-risk"
	ILAHigh   ILARiskLevel = "high"
)

// ILARecommendation is the stratifier outcome.
type ILARecommendation struct {
	Level       ILARiskLevel `json:"level"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
}

// ILAContextLabels maps discovery-context tokens to display labels.
var ILAContextLabels = map[string]string{
	"symptoms":   "Evaluation for respiratory symptoms",
	"lcs":        "Lung Cancer Screening program",
	"incidental": "Incidental finding on non-dedicated CT",
}

// ILAPatientInfoLabels maps additional-context tokens to display labels.
var ILAPatientInfoLabels = map[string]string{
	"history":  "Significant medical history",
	"symptoms": "Presence of respiratory symptoms",
	"sard":     "Features of Systemic Autoimmune Rheumatic Disease (SARD)",
	"family":   "Family history of pulmonary fibrosis",
}

// StratifyILA derives the management tier for interstitial lung
// abnormalities. Fibrotic features or extent above 10% of a lung zone place
// the patient in the high-risk tier; a basal and peripheral predominant
// distribution without those features is at-risk; everything else is low
// risk.
func StratifyILA(in ILAInput) ILARecommendation {
	if in.Fibrotic == "yes" || in.Extent == ">10" {
		return ILARecommendation{
			Level:       ILAHigh,
			Title:       "High Risk - ILD MDM",
			Description: "This patient has high-risk ILA. A comprehensive evaluation by a pulmonologist and multidisciplinary discussion is strongly recommended. These findings may represent early-stage ILD.",
		}
	}
	if in.Distribution == "basal_peripheral" {
		return ILARecommendation{
			Level:       ILAAtRisk,
			Title:       "At Risk - Individualised Surveillance",
			Description: "This patient has at-risk ILA. Referral to a pulmonologist for individualized surveillance is recommended to monitor for progression.",
		}
	}
	return ILARecommendation{
		Level:       ILALow,
		Title:       "Low Risk - Discharge to GP",
		Description: "This patient has low-risk ILA. Specific respiratory follow-up is not routinely required, but the GP should be informed and risk factors (like smoking) should be managed.",
	}
}
