package graphs

import "github.com/pulmotools/ildflow/pkg/domain"

// IPF is the IPF diagnostic algorithm for a patient with suspected IPF:
// HRCT pattern determination, multidisciplinary discussion and the biopsy
// branch, down to the final diagnostic statements.
func IPF() *domain.Graph {
	return &domain.Graph{
		ID:    "ipf",
		Title: "IPF Diagnostic Algorithm",
		Entry: "determine_pattern",
		Steps: map[string]*domain.Step{
			"determine_pattern": {
				ID:       "determine_pattern",
				Title:    "HRCT pattern",
				Content:  "Patient with suspected IPF: chest HRCT with an IPF protocol, then determine the radiological pattern.",
				Question: "What is the HRCT pattern?",
				Field:    "hrctPattern",
				Options: []domain.Option{
					{Value: "uip", Label: "Definite or probable UIP", Next: "mdd_uip"},
					{Value: "other", Label: "Indeterminate for UIP or alternative diagnosis", Next: "mdd_other"},
				},
			},
			"mdd_uip": {
				ID:       "mdd_uip",
				Title:    "Multidisciplinary discussion",
				Content:  "Multidisciplinary discussion of the clinical context and the HRCT pattern.",
				Question: "Does the MDD consider the clinical context compatible with IPF?",
				Options: []domain.Option{
					{Value: "yes", Label: "Yes", Next: "final_ipf_no_biopsy"},
					{Value: "no", Label: "No", Next: "biopsy_choice"},
				},
			},
			"mdd_other": {
				ID:       "mdd_other",
				Title:    "Multidisciplinary discussion",
				Content:  "The HRCT pattern is indeterminate for UIP or suggests an alternative diagnosis. MDD to weigh further sampling.",
				Question: "Does the MDD recommend tissue sampling?",
				Options: []domain.Option{
					{Value: "yes", Label: "Yes", Next: "biopsy_choice"},
					{Value: "no", Label: "No", Next: "final_non_ipf"},
				},
			},
			"biopsy_choice": {
				ID:       "biopsy_choice",
				Title:    "Tissue sampling",
				Question: "Is the patient a candidate for BAL, cryobiopsy, or surgical lung biopsy?",
				Options: []domain.Option{
					{Value: "yes", Label: "Yes, sampling performed", Next: "biopsy_results"},
					{Value: "no", Label: "No, not a candidate", Next: "final_indeterminate"},
				},
			},
			"biopsy_results": {
				ID:       "biopsy_results",
				Title:    "Histopathology",
				Question: "What is the histopathological pattern?",
				Field:    "histoPattern",
				Options: []domain.Option{
					{Value: "uip", Label: "UIP or probable UIP", Next: "final_ipf"},
					{Value: "other", Label: "Alternative diagnosis", Next: "final_non_ipf"},
					{Value: "indeterminate", Label: "Indeterminate", Next: "final_indeterminate"},
				},
			},
			"final_ipf_no_biopsy": {
				ID:      "final_ipf_no_biopsy",
				Title:   "IPF diagnosis",
				Content: "IPF is diagnosed on the combination of a definite or probable UIP pattern on HRCT and a compatible clinical context, without biopsy.",
			},
			"final_ipf": {
				ID:      "final_ipf",
				Title:   "IPF diagnosis",
				Content: "IPF is diagnosed on the combined radiological and histopathological pattern, confirmed in multidisciplinary discussion.",
			},
			"final_non_ipf": {
				ID:      "final_non_ipf",
				Title:   "Alternative diagnosis",
				Content: "The findings favor a diagnosis other than IPF. Pursue the alternative diagnosis and manage accordingly.",
			},
			"final_indeterminate": {
				ID:      "final_indeterminate",
				Title:   "Unclassifiable ILD",
				Content: "A confident diagnosis cannot be reached. Consider a working diagnosis in MDD, close follow-up, and re-evaluation over time.",
			},
		},
	}
}
