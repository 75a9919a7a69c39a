package resolver

// IPAFCriterion is one checkable item within an IPAF domain.
type IPAFCriterion struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// IPAFDomain groups the criteria of one of the three ERS/ATS 2015 domains.
type IPAFDomain struct {
	ID       string          `json:"id"`
	Title    string          `json:"title"`
	Criteria []IPAFCriterion `json:"criteria"`
}

// IPAFDomains is the ERS/ATS 2015 criteria list.
var IPAFDomains = []IPAFDomain{
	{
		ID:    "clinical",
		Title: "Clinical Domain",
		Criteria: []IPAFCriterion{
			{ID: "mechanic_hands", Label: "Mechanic's hands"},
			{ID: "ulceration", Label: "Digital ulceration"},
			{ID: "arthritis", Label: "Inflammatory arthritis or morning stiffness ≥60 min"},
			{ID: "telangiectasia", Label: "Palmar telangiectasias"},
			{ID: "raynaud", Label: "Raynaud's phenomenon"},
			{ID: "edema", Label: "Unexplained digital edema"},
			{ID: "gottron", Label: "Gottron sign (rash on finger extensors)"},
		},
	},
	{
		ID:    "serological",
		Title: "Serological Domain",
		Criteria: []IPAFCriterion{
			{ID: "ana_high", Label: "ANA ≥ 1:320 (diffuse, speckled, homogeneous)"},
			{ID: "ana_specific", Label: "ANA (any titer, nucleolar or centromere pattern)"},
			{ID: "rf_high", Label: "Rheumatoid Factor ≥ 2x ULN"},
			{ID: "anti_ccp", Label: "Anti-CCP"},
			{ID: "anti_dsdna", Label: "Anti-double-stranded DNA (dsDNA)"},
			{ID: "anti_ssa_ssb", Label: "Anti-Ro (SS-A) or Anti-La (SS-B)"},
			{ID: "anti_rnp", Label: "Anti-RNP"},
			{ID: "anti_smith", Label: "Anti-Smith"},
			{ID: "anti_scl70", Label: "Anti-Scl-70 (topoisomerase)"},
			{ID: "anti_synthetase", Label: "Antisynthetase (e.g., Jo-1, PL-7, PL-12)"},
			{ID: "anti_pmscl", Label: "Anti-PM-Scl"},
			{ID: "anti_mda5", Label: "Anti-MDA-5"},
		},
	},
	{
		ID:    "morphological",
		Title: "Morphological Domain",
		Criteria: []IPAFCriterion{
			{ID: "pattern_nsip_op_lip", Label: "HRCT or histological pattern of NSIP, OP, or LIP"},
			{ID: "histology_specific", Label: "Histology: lymphoid aggregates with germinal centers"},
			{ID: "histology_infiltrate", Label: "Histology: diffuse lymphoplasmacytic infiltrate"},
			{ID: "multicompartment_pleural", Label: "Multicompartment: unexplained pleural effusion/thickening"},
			{ID: "multicompartment_pericardial", Label: "Multicompartment: unexplained pericardial effusion/thickening"},
			{ID: "multicompartment_airways", Label: "Multicompartment: unexplained intrinsic airway disease"},
			{ID: "multicompartment_vascular", Label: "Multicompartment: unexplained pulmonary vasculopathy"},
		},
	},
}

// IPAFResult is the classification outcome plus per-domain counts for
// display.
type IPAFResult struct {
	Met              bool           `json:"met"`
	SatisfiedDomains []string       `json:"satisfiedDomains"`
	Counts           map[string]int `json:"counts"`
}

// ClassifyIPAF counts checked criteria per domain. Classification requires
// at least one satisfied criterion in at least two of the three domains; it
// is blind to which criteria within a domain are checked. Unknown criterion
// tokens are ignored, never an error.
func ClassifyIPAF(checked []string) IPAFResult {
	set := make(map[string]bool, len(checked))
	for _, id := range checked {
		set[id] = true
	}

	result := IPAFResult{Counts: make(map[string]int, len(IPAFDomains))}
	for _, d := range IPAFDomains {
		count := 0
		for _, c := range d.Criteria {
			if set[c.ID] {
				count++
			}
		}
		result.Counts[d.ID] = count
		if count > 0 {
			result.SatisfiedDomains = append(result.SatisfiedDomains, d.ID)
		}
	}
	result.Met = len(result.SatisfiedDomains) >= 2
	return result
}
