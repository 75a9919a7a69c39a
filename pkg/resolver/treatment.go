package resolver

// TreatmentContext is the clinical situation keying the ACR 2023 treatment
// table.
type TreatmentContext string

const (
	ContextFirstLine   TreatmentContext = "firstLine"
	ContextProgression TreatmentContext = "progression"
	ContextRPILD       TreatmentContext = "rp-ild"
)

// TreatmentSARDLabels maps the treatment table's SARD tokens to display
// labels. The table keeps the token set of the published guideline tool
// ("MII" for the myopathies, "Autre" for the catch-all), which differs from
// the screening tool's tokens.
var TreatmentSARDLabels = map[string]string{
	"SSc":   "Systemic Sclerosis (SSc)",
	"RA":    "Rheumatoid Arthritis (RA)",
	"MII":   "Inflammatory Myopathies (IIM)",
	"SjD":   "Sjögren's Disease (SjD)",
	"MCTD":  "Mixed Connective Tissue Disease (MCTD)",
	"Autre": "Other SARD-ILD",
}

// ContextLabels maps treatment contexts to display labels.
var ContextLabels = map[TreatmentContext]string{
	ContextFirstLine:   "First-line treatment",
	ContextProgression: "ILD progression on treatment",
	ContextRPILD:       "Rapidly Progressive ILD (RP-ILD)",
}

// TreatmentRecommendation is the structured record returned for a
// (SARD, context) pair.
type TreatmentRecommendation struct {
	Title         string   `json:"title"`
	Recommended   string   `json:"recommended,omitempty"`
	Options       []string `json:"options,omitempty"`
	Against       []string `json:"against,omitempty"`
	StrongAgainst string   `json:"strongAgainst,omitempty"`
	Note          string   `json:"note,omitempty"`

	// Unmapped marks the defined fallback for a key pair absent from the
	// table.
	Unmapped bool `json:"unmapped,omitempty"`
}

var treatmentTable = map[TreatmentContext]map[string]TreatmentRecommendation{
	ContextFirstLine: {
		"SSc": {
			Title:         "First-line treatment for SSc-ILD",
			Options:       []string{"Mycophenolate (MMF)", "Tocilizumab", "Rituximab", "Nintedanib"},
			StrongAgainst: "Glucocorticoids (risk of renal crisis)",
			Note:          "MMF is often preferred. Nintedanib is an option, especially if the pattern is fibrotic.",
		},
		"RA": {
			Title:   "First-line treatment for RA-ILD",
			Options: []string{"Mycophenolate (MMF)", "Azathioprine", "Rituximab"},
			Against: []string{"Leflunomide, Methotrexate, anti-TNF", "Pirfenidone"},
			Note:    "Consensus was not reached to recommend Nintedanib as a first-line treatment.",
		},
		"MII": {
			Title:   "First-line treatment for IIM-ILD",
			Options: []string{"Mycophenolate (MMF)", "Azathioprine", "Rituximab", "Calcineurin Inhibitors (CNI)", "JAK inhibitors (JAKi)"},
			Against: []string{"Nintedanib"},
		},
		"SjD": {
			Title:   "First-line treatment for Sjögren's-ILD",
			Options: []string{"Mycophenolate (MMF)", "Azathioprine", "Rituximab", "Glucocorticoids"},
			Against: []string{"Nintedanib"},
		},
		"MCTD": {
			Title:   "First-line treatment for MCTD-ILD",
			Options: []string{"Mycophenolate (MMF)", "Azathioprine", "Rituximab", "Tocilizumab", "Glucocorticoids"},
			Against: []string{"Nintedanib"},
		},
		"Autre": {
			Title:       "First-line treatment for other SARD-ILDs",
			Recommended: "Glucocorticoids",
			Options:     []string{"Mycophenolate (MMF)", "Azathioprine", "Rituximab", "Cyclophosphamide"},
			Against:     []string{"Leflunomide, Methotrexate, anti-TNF", "JAK inhibitors (except IIM)", "Pirfenidone"},
		},
	},
	ContextProgression: {
		"SSc": {
			Title:         "Progression of SSc-ILD on treatment",
			Options:       []string{"Mycophenolate (MMF)", "Rituximab", "Cyclophosphamide", "Nintedanib", "Tocilizumab"},
			StrongAgainst: "Long-term glucocorticoids",
			Note:          "A switch or addition of treatment is recommended. Referral for transplantation should be discussed.",
		},
		"RA": {
			Title:   "Progression of RA-ILD on treatment",
			Options: []string{"Mycophenolate (MMF)", "Rituximab", "Cyclophosphamide", "Nintedanib", "Tocilizumab", "Pirfenidone (add-on)"},
			Against: []string{"Long-term glucocorticoids"},
		},
		"MII": {
			Title:   "Progression of IIM-ILD on treatment",
			Options: []string{"Mycophenolate (MMF)", "Rituximab", "Cyclophosphamide", "Nintedanib", "Calcineurin Inhibitors (CNI)", "JAK inhibitors (JAKi)", "IVIG"},
			Against: []string{"Long-term glucocorticoids"},
		},
		"SjD": {
			Title:   "Progression of Sjögren's-ILD on treatment",
			Options: []string{"Mycophenolate (MMF)", "Rituximab", "Cyclophosphamide", "Nintedanib"},
			Against: []string{"Long-term glucocorticoids", "Tocilizumab"},
		},
		"MCTD": {
			Title:   "Progression of MCTD-ILD on treatment",
			Options: []string{"Mycophenolate (MMF)", "Rituximab", "Cyclophosphamide", "Nintedanib", "Tocilizumab", "IVIG"},
			Against: []string{"Long-term glucocorticoids"},
		},
		"Autre": {
			Title:   "Progression of other SARD-ILDs on treatment",
			Options: []string{"Mycophenolate (MMF)", "Rituximab", "Cyclophosphamide", "Nintedanib"},
			Against: []string{"Long-term glucocorticoids", "Pirfenidone (add-on)", "Tocilizumab (except SSc, MCTD, RA)"},
		},
	},
	ContextRPILD: {
		"SSc": {
			Title:       "Rapidly Progressive ILD (RP-ILD) in SSc",
			Recommended: "Combination therapy (double or triple therapy)",
			Options:     []string{"IV Methylprednisolone pulse (with caution)", "Rituximab", "Cyclophosphamide", "IVIG", "Mycophenolate", "Calcineurin Inhibitors (CNI)", "JAK inhibitors (JAKi)"},
			Against:     []string{"Methotrexate, Leflunomide, anti-TNF, Abatacept, Tocilizumab, Nintedanib, Pirfenidone"},
			Note:        "The use of corticosteroids is very controversial (risk of renal crisis). Discussion in an expert center is essential.",
		},
		"RA": {
			Title:       "Rapidly Progressive ILD (RP-ILD) in RA",
			Recommended: "IV Methylprednisolone pulse",
			Options:     []string{"Rituximab", "Cyclophosphamide", "IVIG", "Mycophenolate", "Calcineurin Inhibitors (CNI)", "JAK inhibitors (JAKi)"},
			Against:     []string{"Methotrexate, Leflunomide, anti-TNF, Abatacept, Tocilizumab, Nintedanib, Pirfenidone"},
		},
		"MII": {
			Title:       "Rapidly Progressive ILD (RP-ILD) in IIM",
			Recommended: "IV Methylprednisolone pulse",
			Options:     []string{"Rituximab", "Cyclophosphamide", "IVIG", "Mycophenolate", "Calcineurin Inhibitors (CNI)", "JAK inhibitors (JAKi)"},
			Against:     []string{"Methotrexate, Leflunomide, anti-TNF, Abatacept, Tocilizumab, Nintedanib, Pirfenidone"},
			Note:        "Triple therapy is recommended if anti-MDA5 antibodies are suspected or confirmed.",
		},
		"SjD": {
			Title:       "Rapidly Progressive ILD (RP-ILD) in Sjögren's",
			Recommended: "IV Methylprednisolone pulse",
			Options:     []string{"Rituximab", "Cyclophosphamide", "IVIG", "Mycophenolate", "Calcineurin Inhibitors (CNI)", "JAK inhibitors (JAKi)"},
			Against:     []string{"Methotrexate, Leflunomide, anti-TNF, Abatacept, Tocilizumab, Nintedanib, Pirfenidone"},
		},
		"MCTD": {
			Title:       "Rapidly Progressive ILD (RP-ILD) in MCTD",
			Recommended: "IV Methylprednisolone pulse",
			Options:     []string{"Rituximab", "Cyclophosphamide", "IVIG", "Mycophenolate", "Calcineurin Inhibitors (CNI)", "JAK inhibitors (JAKi)"},
			Against:     []string{"Methotrexate, Leflunomide, anti-TNF, Abatacept, Tocilizumab, Nintedanib, Pirfenidone"},
		},
		"Autre": {
			Title:       "Rapidly Progressive ILD (RP-ILD) in other SARDs",
			Recommended: "IV Methylprednisolone pulse",
			Options:     []string{"Rituximab", "Cyclophosphamide", "IVIG", "Mycophenolate", "Calcineurin Inhibitors (CNI)", "JAK inhibitors (JAKi)"},
			Against:     []string{"Methotrexate, Leflunomide, anti-TNF, Abatacept, Tocilizumab, Nintedanib, Pirfenidone"},
		},
	},
}

// TreatmentSARDs returns the SARD tokens declared in the treatment table,
// in a fixed presentation order.
func TreatmentSARDs() []string {
	return []string{"SSc", "RA", "MII", "SjD", "MCTD", "Autre"}
}

// TreatmentContexts returns the declared contexts in presentation order.
func TreatmentContexts() []TreatmentContext {
	return []TreatmentContext{ContextFirstLine, ContextProgression, ContextRPILD}
}

// LookupTreatment returns the recommendation record for a (SARD, context)
// pair. An undeclared pair degrades to a generic fallback record flagged
// Unmapped; it never fails.
func LookupTreatment(sard string, context TreatmentContext) TreatmentRecommendation {
	if byType, ok := treatmentTable[context]; ok {
		if rec, ok := byType[sard]; ok {
			return rec
		}
	}
	return TreatmentRecommendation{
		Title:    "No specific recommendation mapped",
		Note:     "This disease/context combination is not covered by the ACR 2023 table. Management should be individualized in multidisciplinary discussion.",
		Unmapped: true,
	}
}
