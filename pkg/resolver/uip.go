package resolver

// UIPInput holds the HRCT pattern questionnaire answers. Values are the
// option tokens of the classifier tool.
type UIPInput struct {
	Honeycombing           string `json:"honeycombing" mapstructure:"honeycombing"`
	Reticulation           string `json:"reticulation" mapstructure:"reticulation"`
	TractionBronchiectasis string `json:"traction_bronchiectasis" mapstructure:"traction_bronchiectasis"`
	Distribution           string `json:"distribution" mapstructure:"distribution"`
	AlternativeSigns       string `json:"alternative_signs" mapstructure:"alternative_signs"`
}

// Pattern is a classified HRCT outcome.
type Pattern struct {
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	Recommendations []string `json:"recommendations"`
}

// ClassifyUIP evaluates the answers against an ordered list of mutually
// exclusive clauses, top to bottom, first match wins.
//
// The order is significant and preserved exactly as published: the
// alternative-diagnosis check precedes the honeycombing check even though
// both could be flagged at once. Reordering would silently change
// classification outcomes.
func ClassifyUIP(in UIPInput) Pattern {
	if in.AlternativeSigns == "yes" {
		return Pattern{
			Title:       "Pattern Suggestive of an Alternative Diagnosis",
			Description: "The presence of specific signs (predominant ground-glass opacity, cysts, nodules...) strongly suggests a diagnosis other than IPF.",
			Recommendations: []string{
				"Rule out hypersensitivity pneumonitis, NSIP, or organizing pneumonia.",
				"Consider bronchoscopy with BAL to look for infection or signs of sarcoidosis.",
				"A lung biopsy is often necessary to confirm the diagnosis if BAL is not contributory.",
			},
		}
	}

	if in.Honeycombing == "yes" && in.Distribution == "typical" {
		return Pattern{
			Title:       "Definite UIP Pattern",
			Description: "The presence of honeycombing in a typical distribution (basal and subpleural) is highly specific for the UIP pattern.",
			Recommendations: []string{
				"In the absence of an identified cause (connective tissue disease, HP...), this pattern is sufficient to establish the diagnosis of IPF.",
				"A lung biopsy is not recommended.",
				"Initiate a discussion about antifibrotic treatment and referral to a transplant center.",
			},
		}
	}

	if in.Honeycombing == "no" && in.Reticulation == "reticulation" &&
		in.TractionBronchiectasis == "yes" && in.Distribution == "typical" {
		return Pattern{
			Title:       "Probable UIP Pattern",
			Description: "Reticulation and traction bronchiectasis in a typical distribution, without honeycombing, make the UIP pattern very probable.",
			Recommendations: []string{
				"In a patient with a typical clinical profile (over 60, male, smoker), this pattern is highly suggestive of IPF.",
				"A lung biopsy is generally not necessary.",
				"Confirm the diagnosis in a multidisciplinary discussion (MDD).",
			},
		}
	}

	return Pattern{
		Title:       "Indeterminate for UIP Pattern",
		Description: "Signs of fibrosis are present but do not meet the criteria for a definite or probable UIP pattern. The distribution may be atypical or the signs of fibrosis subtle.",
		Recommendations: []string{
			"The diagnosis of IPF can neither be confirmed nor ruled out based on the scan alone.",
			"A multidisciplinary discussion is essential to assess the benefit/risk balance of further investigations.",
			"Consider a lung biopsy (surgical or cryobiopsy) to obtain a histological diagnosis.",
		},
	}
}
