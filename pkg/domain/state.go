package domain

// State is the session-local snapshot of a wizard run. It is held in memory
// (or in an optional session store) and never derived state: any terminal
// recommendation is recomputed from Answers on demand.
type State struct {
	// CurrentStep is the identifier of the active step. Always a valid
	// identifier within the active graph.
	CurrentStep string `json:"currentStep" yaml:"currentStep"`

	// History records previously visited step identifiers, most recent
	// last. Push on forward transition, pop on back. It never holds the
	// current step at its top after a forward move.
	History []string `json:"history" yaml:"history"`

	// Answers maps a field identifier to the user's selection: a string
	// for single-choice fields, a []string for multi-choice fields.
	// Accumulates monotonically until Reset.
	Answers map[string]any `json:"answers" yaml:"answers"`
}

// NewState returns a clean state positioned at the given entry step.
func NewState(entry string) *State {
	return &State{
		CurrentStep: entry,
		History:     []string{},
		Answers:     make(map[string]any),
	}
}

// Clone returns a deep copy so callers can mutate freely without aliasing
// the original history slice or answers map.
func (s *State) Clone() *State {
	if s == nil {
		return nil
	}
	next := &State{
		CurrentStep: s.CurrentStep,
		History:     make([]string, len(s.History)),
		Answers:     make(map[string]any, len(s.Answers)),
	}
	copy(next.History, s.History)
	for k, v := range s.Answers {
		if vs, ok := v.([]string); ok {
			dup := make([]string, len(vs))
			copy(dup, vs)
			next.Answers[k] = dup
			continue
		}
		next.Answers[k] = v
	}
	return next
}

// Scalar returns the single-choice answer for field, or "" when unset.
func (s *State) Scalar(field string) string {
	v, ok := s.Answers[field].(string)
	if !ok {
		return ""
	}
	return v
}

// Values returns the multi-choice answer set for field. Nil when unset.
func (s *State) Values(field string) []string {
	v, ok := s.Answers[field].([]string)
	if !ok {
		return nil
	}
	return v
}

// Answered reports whether the field holds any value.
func (s *State) Answered(field string) bool {
	v, ok := s.Answers[field]
	if !ok {
		return false
	}
	switch t := v.(type) {
	case string:
		return t != ""
	case []string:
		return len(t) > 0
	default:
		return v != nil
	}
}
