package graphs

import "github.com/pulmotools/ildflow/pkg/domain"

// ILA is the interstitial lung abnormality triage flow. The stratification
// itself lives in the resolver package; this graph collects the inputs and
// ends at the recommendation step.
func ILA() *domain.Graph {
	return &domain.Graph{
		ID:    "ila",
		Title: "ILA Risk Stratification",
		Entry: "start",
		Steps: map[string]*domain.Step{
			"start": {
				ID:       "start",
				Title:    "Discovery context",
				Question: "In what context were the interstitial abnormalities discovered?",
				Field:    "context",
				Options: []domain.Option{
					{Value: "symptoms", Label: "Evaluation for respiratory symptoms", Next: "evaluate"},
					{Value: "lcs", Label: "Lung Cancer Screening program", Next: "evaluate"},
					{Value: "incidental", Label: "Incidental finding on non-dedicated CT", Next: "prone_ct"},
				},
			},
			"prone_ct": {
				ID:    "prone_ct",
				Title: "Dedicated imaging",
				Content: "For incidental findings, a dedicated volumetric HRCT with prone and expiratory acquisitions is recommended to confirm the abnormalities " +
					"and exclude dependent atelectasis.",
				Next: "evaluate",
			},
			"evaluate": {
				ID:       "evaluate",
				Title:    "Radiological characterisation",
				Question: "Characterise the abnormalities on HRCT",
				Requires: []domain.Requirement{
					{Section: "Extent", Fields: []string{"extent"}},
					{Section: "Fibrotic features", Fields: []string{"fibrotic"}},
					{Section: "Distribution", Fields: []string{"distribution"}},
				},
				Next: "recommendation",
			},
			"recommendation": {
				ID:      "recommendation",
				Title:   "Management recommendation",
				Content: "Risk tier and management are derived from the collected answers.",
			},
		},
	}
}
