package domain

// Option is a labeled edge out of a Step.
type Option struct {
	// Label is the text shown to the user.
	Label string `json:"label" yaml:"label"`

	// Value is the internal token recorded into the session answers when
	// the option is chosen.
	Value string `json:"value" yaml:"value"`

	// Next is the identifier of the step this option leads to.
	Next string `json:"next" yaml:"next"`

	// Note is an optional annotation displayed alongside the option.
	Note string `json:"note,omitempty" yaml:"note,omitempty"`
}

// Requirement names the fields that must be answered before the user may
// advance past a step, grouped by the section they are presented under.
type Requirement struct {
	Section string   `json:"section" yaml:"section"`
	Fields  []string `json:"fields" yaml:"fields"`
}

// Step is a single screen in a decision graph.
//
// A step with neither options nor a Next continuation is terminal. Steps are
// immutable once a graph is built; they are defined at load time and owned by
// their graph.
type Step struct {
	ID    string `json:"id" yaml:"id"`
	Title string `json:"title" yaml:"title"`

	// Content is the static markdown payload rendered for this step.
	Content string `json:"content,omitempty" yaml:"content,omitempty"`

	// Question, when set, is the prompt the options answer.
	Question string `json:"question,omitempty" yaml:"question,omitempty"`

	// Field is the answer key the chosen option value is recorded under.
	// Defaults to the step ID when empty.
	Field string `json:"field,omitempty" yaml:"field,omitempty"`

	Options []Option `json:"options,omitempty" yaml:"options,omitempty"`

	// Next points to a follow-up step for content-only steps that continue
	// without a question.
	Next string `json:"next,omitempty" yaml:"next,omitempty"`

	// Requires gates forward progression until the listed fields are
	// answered.
	Requires []Requirement `json:"requires,omitempty" yaml:"requires,omitempty"`

	Note string `json:"note,omitempty" yaml:"note,omitempty"`
}

// Terminal reports whether the step has no outgoing edges.
func (s *Step) Terminal() bool {
	return len(s.Options) == 0 && s.Next == ""
}

// AnswerField returns the key answers for this step are recorded under.
func (s *Step) AnswerField() string {
	if s.Field != "" {
		return s.Field
	}
	return s.ID
}
