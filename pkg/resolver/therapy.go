package resolver

// TherapyStep is one stage of a disease-specific treatment pathway.
type TherapyStep struct {
	Title      string   `json:"title"`
	Treatments []string `json:"treatments"`
	Note       string   `json:"note,omitempty"`
}

// TherapyPathway is the ordered treatment pathway for one fibrosing ILD.
type TherapyPathway struct {
	ID      string        `json:"id"`
	Label   string        `json:"label"`
	Pathway []TherapyStep `json:"pathway"`
}

// TherapyPathways lists the per-disease pathways in presentation order.
var TherapyPathways = []TherapyPathway{
	{
		ID:    "ipf",
		Label: "Idiopathic Pulmonary Fibrosis (IPF)",
		Pathway: []TherapyStep{
			{
				Title:      "First-Line Treatment",
				Treatments: []string{"Antifibrotic agents", "Pirfenidone or Nintedanib"},
				Note:       "Antifibrotic therapy is recommended at the time of diagnosis.",
			},
		},
	},
	{
		ID:    "ssc-ild",
		Label: "Systemic Sclerosis-Associated ILD (SSc-ILD)",
		Pathway: []TherapyStep{
			{Title: "First-Line Immunomodulation", Treatments: []string{"MMF, CPM, TCL", "(Alternative: AZA, RTX)"}},
			{Title: "In Case of Progression", Treatments: []string{"Consider antifibrotic agents", "Nintedanib"}},
		},
	},
	{
		ID:    "ra-ild",
		Label: "Rheumatoid Arthritis-Associated ILD (RA-ILD)",
		Pathway: []TherapyStep{
			{Title: "First-Line Immunomodulation", Treatments: []string{"Glucocorticoids", "Then: RTX, ABA, MMF"}},
			{Title: "In Case of Progression", Treatments: []string{"Consider antifibrotic agents", "Nintedanib"}},
		},
	},
	{
		ID:    "sarcoidosis",
		Label: "Fibrotic Sarcoidosis",
		Pathway: []TherapyStep{
			{Title: "First-Line Immunomodulation", Treatments: []string{"Glucocorticoids", "Then: MTX", "(Alternative: AZA, IFX, ADA)"}},
			{Title: "In Case of Progression", Treatments: []string{"Consider antifibrotic agents", "Nintedanib"}},
		},
	},
	{
		ID:    "phs",
		Label: "Chronic Fibrotic Hypersensitivity Pneumonitis",
		Pathway: []TherapyStep{
			{Title: "Step 1: Antigen Avoidance", Treatments: []string{"Identification and avoidance of the causative agent"}},
			{Title: "Immunomodulation", Treatments: []string{"Glucocorticoids", "Then: MMF", "(Alternative: AZA)"}},
			{Title: "In Case of Progression", Treatments: []string{"Consider antifibrotic agents", "Nintedanib"}},
		},
	},
	{
		ID:    "insip",
		Label: "Idiopathic Nonspecific Interstitial Pneumonia (NSIP)",
		Pathway: []TherapyStep{
			{Title: "Immunomodulation", Treatments: []string{"Glucocorticoids", "Then: MMF, AZA, or other immunosuppressants"}},
			{Title: "In Case of Progression", Treatments: []string{"Consider antifibrotic agents", "Nintedanib"}},
		},
	},
	{
		ID:    "unclassifiable",
		Label: "Unclassifiable ILD",
		Pathway: []TherapyStep{
			{Title: "Immunomodulation", Treatments: []string{"Glucocorticoids", "Then: MMF, AZA, or other immunosuppressants"}},
			{Title: "In Case of Progression", Treatments: []string{"Consider antifibrotic agents", "Nintedanib"}},
		},
	},
}

// NonPharmacologicStep applies to every fibrosing ILD regardless of the
// pharmacologic pathway.
var NonPharmacologicStep = TherapyStep{
	Title: "Non-Pharmacologic Management (for all ILDs)",
	Treatments: []string{
		"Supplemental oxygen therapy",
		"Psychosocial support",
		"Smoking cessation",
		"Pulmonary rehabilitation",
		"Palliative care",
		"End-of-life care",
	},
}

// LookupTherapy returns the pathway for a disease token, or false when the
// token is not declared.
func LookupTherapy(id string) (TherapyPathway, bool) {
	for _, p := range TherapyPathways {
		if p.ID == id {
			return p, true
		}
	}
	return TherapyPathway{}, false
}
