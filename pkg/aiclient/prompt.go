package aiclient

import (
	"fmt"
	"strings"

	"github.com/pulmotools/ildflow/pkg/resolver"
)

const (
	screeningSystemInstruction = "You are an expert assistant in pulmonology and rheumatology, specializing in the interpretation of clinical guidelines. You write clear and structured summaries for physicians."

	treatmentSystemInstruction = "You are an expert assistant in pulmonology and rheumatology, specializing in the interpretation of clinical guidelines. You write clear and structured therapeutic summaries for physicians based on the ACR 2023 guidelines."

	ilaSystemInstruction = "You are an expert assistant in pulmonology, specializing in Interstitial Lung Diseases. You provide clear, evidence-based summaries and management plans for physicians based on the Fleischner Society and other relevant guidelines for ILA."
)

// BuildScreeningPrompt assembles the generation request for a screening
// summary. Tokens are rendered through their display labels; empty selections
// render as "none".
func BuildScreeningPrompt(in resolver.ScreeningInput, level resolver.RiskLevel) Request {
	hasILD := "No"
	if in.HasILD {
		hasILD = "Yes"
	}

	prompt := fmt.Sprintf(`Generate a concise clinical summary and recommendations based on the ACR 2023 guidelines for a patient with the following characteristics. Use markdown format with bold titles (**Title**). The response must be exclusively in English.

**Patient Profile:**
- **Connective Tissue Disease:** %s
- **ILD Already Diagnosed:** %s
- **Identified ILD Risk Factors:** %s
- **Presenting ILD Symptoms:** %s
- **Estimated ILD Risk Level (for screening):** %s

**Task:**
1.  Write a **Clinical Summary** of the patient's profile.
2.  Based on whether ILD is already diagnosed or not, provide **Priority Recommendations** for either monitoring or screening.
3.  Add a section for **Monitoring and Follow-up**.
4.  If applicable, add a **Special Attention** section for high-risk connective tissue diseases like SSc or IIM.`,
		resolver.SARDLabel(in.SARD),
		hasILD,
		labelList(in.RiskFactors, resolver.RiskFactorLabels, "none"),
		labelList(in.Symptoms, resolver.SymptomLabels, "none"),
		level,
	)

	return Request{Prompt: prompt, SystemInstruction: screeningSystemInstruction}
}

// BuildTreatmentPrompt assembles the generation request for a therapeutic
// summary.
func BuildTreatmentPrompt(sard string, context resolver.TreatmentContext) Request {
	sardLabel := sard
	if l, ok := resolver.TreatmentSARDLabels[sard]; ok {
		sardLabel = l
	}
	contextLabel := string(context)
	if l, ok := resolver.ContextLabels[context]; ok {
		contextLabel = l
	}

	prompt := fmt.Sprintf(`Generate a concise therapeutic summary based on the ACR 2023 guidelines for a patient with the following profile. Use markdown format with bold titles (**Title**). The response must be exclusively in English.

**Patient Profile:**
- **Connective Tissue Disease:** %s
- **Clinical Context:** %s

**Task:**
1.  Summarize the recommended therapeutic approach for this specific context.
2.  Clearly list the **Recommended**, **Conditional Options**, **Conditionally Not Recommended**, and **Strongly Not Recommended** treatments.
3.  Include any important notes or precautions mentioned in the guidelines for this specific scenario.`,
		sardLabel,
		contextLabel,
	)

	return Request{Prompt: prompt, SystemInstruction: treatmentSystemInstruction}
}

// BuildILAPrompt assembles the generation request for an ILA management
// summary.
func BuildILAPrompt(in resolver.ILAInput, rec resolver.ILARecommendation) Request {
	context := "Not specified"
	if l, ok := resolver.ILAContextLabels[in.Context]; ok {
		context = l
	}
	patientContext := "None specified"
	if len(in.PatientInfo) > 0 {
		patientContext = labelList(in.PatientInfo, resolver.ILAPatientInfoLabels, "None specified")
	}

	prompt := fmt.Sprintf(`Generate a concise clinical summary and management plan for a patient with Interstitial Lung Abnormalities (ILA) based on the following algorithm results. Use markdown format with bold titles (**Title**). The response must be exclusively in English.

**Patient Profile from ILA Algorithm:**
- **Context of Discovery:** %s
- **Additional Clinical Context:** %s
- **Final Recommendation from Algorithm:** %s

**Task:**
1.  Write a **Clinical Summary** of the patient's ILA profile and risk stratification based on the provided context and final recommendation.
2.  Provide a detailed **Management Plan** based on the final recommendation. Elaborate on what the recommendation entails (e.g., what "individualised surveillance" involves in terms of specific tests and frequencies; what "discharge to GP" means in terms of instructions for the GP and patient).
3.  Include a section on **Key Discussion Points** for the multidisciplinary team (MDD) or the pulmonologist, highlighting the most critical aspects to consider for this patient.`,
		context,
		patientContext,
		rec.Title,
	)

	return Request{Prompt: prompt, SystemInstruction: ilaSystemInstruction}
}

// labelList renders tokens through a label map, keeping unknown tokens as-is.
func labelList(tokens []string, labels map[string]string, empty string) string {
	if len(tokens) == 0 {
		return empty
	}
	out := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if l, ok := labels[t]; ok {
			out = append(out, l)
			continue
		}
		out = append(out, t)
	}
	return strings.Join(out, ", ")
}
