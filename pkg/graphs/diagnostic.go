package graphs

import "github.com/pulmotools/ildflow/pkg/domain"

// Diagnostic is the general fibrosing-ILD diagnostic pathway: initial
// work-up, exclusion of environmental/iatrogenic causes, extra-pulmonary
// disease, multidisciplinary discussion, and the bronchoscopy/biopsy branch.
func Diagnostic() *domain.Graph {
	return &domain.Graph{
		ID:    "diagnostic",
		Title: "ILD Diagnostic Pathway",
		Entry: "initial",
		Steps: map[string]*domain.Step{
			"initial": {
				ID:    "initial",
				Title: "Initial patient assessment",
				Content: "**Clinical examination and history**\n\n" +
					"- Symptom onset (acute/subacute/chronic)\n" +
					"- Occupational/environmental exposure\n" +
					"- Smoking history\n" +
					"- History of connective tissue disease\n" +
					"- Family history of IPF\n" +
					"- Prior medications, radiation or malignancy\n\n" +
					"**Additional tests**\n\n" +
					"- Chest HRCT (IPF protocol), comparison with previous imaging\n" +
					"- PFTs: spirometry, volumes, DLCO; exercise test with oximetry\n" +
					"- Labs: CBC, metabolic panel, ANA, rheumatoid factor, anti-CCP\n",
				Next: "environmental",
			},
			"environmental": {
				ID:       "environmental",
				Title:    "Environmental or iatrogenic etiologies",
				Question: "Are there probable environmental or iatrogenic etiologies?",
				Options: []domain.Option{
					{Value: "yes", Label: "Yes", Next: "remove_cause"},
					{Value: "no", Label: "No", Next: "extrapulmonary"},
				},
			},
			"remove_cause": {
				ID:    "remove_cause",
				Title: "Etiologic management",
				Content: "**Recommended actions**\n\n" +
					"- Remove the identified cause\n" +
					"- Systemic glucocorticoid treatment if appropriate based on severity and etiology\n",
				Question: "Is there clinical recovery?",
				Options: []domain.Option{
					{Value: "yes", Label: "Yes", Next: "no_further_steps"},
					{Value: "no", Label: "No", Next: "extrapulmonary"},
				},
			},
			"no_further_steps": {
				ID:      "no_further_steps",
				Title:   "Diagnosis established",
				Content: "No further diagnostic steps are necessary. Continue with appropriate follow-up and treatment.",
			},
			"extrapulmonary": {
				ID:       "extrapulmonary",
				Title:    "Suspected extra-pulmonary disease",
				Question: "Does the patient show signs of suspected extra-pulmonary disease (e.g., connective tissue disease, vasculitis, extra-pulmonary sarcoidosis)?",
				Options: []domain.Option{
					{Value: "yes", Label: "Yes", Next: "serology_biopsy"},
					{Value: "no", Label: "No", Next: "multidisciplinary"},
				},
			},
			"serology_biopsy": {
				ID:    "serology_biopsy",
				Title: "Further investigations",
				Content: "**Recommended tests**\n\n" +
					"- Serologies for connective tissue disease and myositis (if not already done)\n" +
					"- Diagnostic biopsy of the affected extra-pulmonary site (skin, muscle, sinus, kidney, lymph node)\n",
				Question: "Is the diagnosis of a specific systemic disease confirmed?",
				Options: []domain.Option{
					{Value: "yes", Label: "Yes", Next: "systemic_disease"},
					{Value: "no", Label: "No", Next: "multidisciplinary"},
				},
			},
			"systemic_disease": {
				ID:      "systemic_disease",
				Title:   "Systemic disease confirmed",
				Content: "Appropriate further evaluation and management for the underlying disease.",
			},
			"multidisciplinary": {
				ID:    "multidisciplinary",
				Title: "Multidisciplinary discussion",
				Content: "Multidisciplinary discussion with radiology to assess the radiological pattern and consider further diagnostic steps.\n\n" +
					"Patterns considered: IPF (including definite or probable UIP on imaging), chronic HP, other IIP (e.g., NSIP, DIP, COP).",
				Question: "Is there a relatively confident clinical-radiological diagnosis?",
				Options: []domain.Option{
					{Value: "yes", Label: "Yes", Next: "empiric_therapy"},
					{Value: "no", Label: "No", Next: "clinical_radiologic"},
				},
			},
			"empiric_therapy": {
				ID:      "empiric_therapy",
				Title:   "Empiric therapy",
				Content: "Proceed with treatment based on the empiric diagnosis established during the multidisciplinary discussion.",
			},
			"clinical_radiologic": {
				ID:       "clinical_radiologic",
				Title:    "Evaluation of clinical-radiological signs",
				Question: "Do the clinical and radiological signs suggest pulmonary sarcoidosis, berylliosis, acute hypersensitivity pneumonitis, lymphangitic carcinomatosis, PLCH, or eosinophilic pneumonia?",
				Options: []domain.Option{
					{Value: "yes", Label: "Yes", Next: "bronchoscopy"},
					{Value: "no", Label: "No", Next: "surgical_biopsy", Note: "Differential typically includes chronic HP and IPF"},
				},
			},
			"bronchoscopy": {
				ID:       "bronchoscopy",
				Title:    "Bronchoscopy with BAL",
				Content:  "Bronchoscopy with BAL and TBB +/- EBUS.",
				Question: "Is a diagnosis established based on the results?",
				Options: []domain.Option{
					{Value: "yes", Label: "Yes", Next: "appropriate_management"},
					{Value: "no", Label: "No", Next: "surgical_biopsy"},
				},
			},
			"appropriate_management": {
				ID:      "appropriate_management",
				Title:   "Appropriate management",
				Content: "Appropriate further evaluation and management for the identified underlying disease.",
			},
			"surgical_biopsy": {
				ID:    "surgical_biopsy",
				Title: "Surgical biopsy",
				Content: "Surgical lung biopsy or cryo-TBB if the patient is a candidate based on disease severity and other comorbidities.\n\n" +
					"**Note:** consensus diagnosis based on multidisciplinary discussion including chest radiology and lung pathology.",
			},
		},
	}
}
