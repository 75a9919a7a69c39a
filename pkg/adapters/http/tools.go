package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/mitchellh/mapstructure"

	"github.com/pulmotools/ildflow/pkg/aiclient"
	"github.com/pulmotools/ildflow/pkg/resolver"
)

// mountTools wires the clinical resolver endpoints. Each accepts the raw
// answer map collected by a wizard run and returns the derived
// recommendation plus, where a summary exists, the generation request to
// feed into /api/generate.
func (s *Server) mountTools(r chi.Router) {
	r.Route("/tools", func(r chi.Router) {
		r.Post("/screening", s.scoreScreening)
		r.Post("/uip", s.classifyUIP)
		r.Post("/ipaf", s.classifyIPAF)
		r.Get("/treatment", s.treatmentOptions)
		r.Post("/treatment", s.lookupTreatment)
		r.Post("/ila", s.stratifyILA)
		r.Post("/hp", s.scoreHP)
	})
	r.Get("/therapies", s.listTherapies)
	r.Get("/therapies/{therapyID}", s.getTherapy)
}

// decodeAnswers decodes a JSON answer map into a typed resolver input.
func decodeAnswers(r *http.Request, out any) error {
	var raw map[string]any
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		return err
	}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return err
	}
	return dec.Decode(raw)
}

func (s *Server) scoreScreening(w http.ResponseWriter, r *http.Request) {
	var in resolver.ScreeningInput
	if err := decodeAnswers(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid answers")
		return
	}
	result := resolver.ScoreScreening(in)
	writeJSON(w, http.StatusOK, map[string]any{
		"result":     result,
		"generation": aiclient.BuildScreeningPrompt(in, result.Level),
	})
}

func (s *Server) classifyUIP(w http.ResponseWriter, r *http.Request) {
	var in resolver.UIPInput
	if err := decodeAnswers(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid answers")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"result": resolver.ClassifyUIP(in)})
}

func (s *Server) classifyIPAF(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Criteria []string `json:"criteria"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"result":  resolver.ClassifyIPAF(body.Criteria),
		"domains": resolver.IPAFDomains,
	})
}

func (s *Server) treatmentOptions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"sards":    resolver.TreatmentSARDs(),
		"contexts": resolver.TreatmentContexts(),
	})
}

func (s *Server) lookupTreatment(w http.ResponseWriter, r *http.Request) {
	var body struct {
		SARD    string `json:"sard"`
		Context string `json:"context"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	context := resolver.TreatmentContext(body.Context)
	writeJSON(w, http.StatusOK, map[string]any{
		"result":     resolver.LookupTreatment(body.SARD, context),
		"generation": aiclient.BuildTreatmentPrompt(body.SARD, context),
	})
}

func (s *Server) stratifyILA(w http.ResponseWriter, r *http.Request) {
	var in resolver.ILAInput
	if err := decodeAnswers(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid answers")
		return
	}
	rec := resolver.StratifyILA(in)
	writeJSON(w, http.StatusOK, map[string]any{
		"result":     rec,
		"generation": aiclient.BuildILAPrompt(in, rec),
	})
}

func (s *Server) scoreHP(w http.ResponseWriter, r *http.Request) {
	var in resolver.PHSInput
	if err := decodeAnswers(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid answers")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"result": resolver.ScoreHP(in)})
}

func (s *Server) listTherapies(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"pathways":         resolver.TherapyPathways,
		"nonPharmacologic": resolver.NonPharmacologicStep,
	})
}

func (s *Server) getTherapy(w http.ResponseWriter, r *http.Request) {
	p, ok := resolver.LookupTherapy(chi.URLParam(r, "therapyID"))
	if !ok {
		writeError(w, http.StatusNotFound, "unknown therapy pathway")
		return
	}
	writeJSON(w, http.StatusOK, p)
}
