// Package wizard drives a user through a decision graph, tracking enough
// history for stepwise back-navigation and full reset. The engine is
// stateless: every operation takes a state and returns a new one, so the same
// engine instance can serve any number of concurrent sessions.
package wizard

import (
	"fmt"
	"log/slog"

	"github.com/pulmotools/ildflow/internal/logging"
	"github.com/pulmotools/ildflow/pkg/domain"
)

// Engine navigates a single decision graph.
type Engine struct {
	graph  *domain.Graph
	logger *slog.Logger
}

// Option configures the Engine.
type Option func(*Engine)

// WithLogger sets a structured logger for transition events.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// NewEngine validates the graph and returns an engine over it.
func NewEngine(graph *domain.Graph, opts ...Option) (*Engine, error) {
	if err := graph.Validate(); err != nil {
		return nil, err
	}
	e := &Engine{
		graph:  graph,
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Graph returns the underlying graph definition.
func (e *Engine) Graph() *domain.Graph {
	return e.graph
}

// Start returns a clean state positioned at the graph's entry step.
func (e *Engine) Start() *domain.State {
	return domain.NewState(e.graph.Entry)
}

// Current returns the active step for the state.
func (e *Engine) Current(state *domain.State) (*domain.Step, error) {
	step := e.graph.Step(state.CurrentStep)
	if step == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownStep, state.CurrentStep)
	}
	return step, nil
}

// NavigateTo pushes the current step onto the history and moves to next.
// Answers are untouched. A self-transition (next == current) is a non-event:
// the returned state is an unchanged clone and nothing is pushed, so rapid
// double-clicks can never grow the history or loop.
func (e *Engine) NavigateTo(state *domain.State, next string) (*domain.State, error) {
	if e.graph.Step(next) == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownStep, next)
	}

	out := state.Clone()
	if next == state.CurrentStep {
		return out, nil
	}

	out.History = append(out.History, out.CurrentStep)
	out.CurrentStep = next

	e.logger.Debug("wizard transition",
		"graph", e.graph.ID,
		"from", state.CurrentStep,
		"to", next,
		"depth", len(out.History),
	)
	return out, nil
}

// RecordAnswer stores a single-choice value, replacing any prior value for
// the field. History and the current step are never touched.
func (e *Engine) RecordAnswer(state *domain.State, field, value string) *domain.State {
	out := state.Clone()
	out.Answers[field] = value
	return out
}

// ToggleAnswer flips membership of value in a multi-choice field.
func (e *Engine) ToggleAnswer(state *domain.State, field, value string) *domain.State {
	out := state.Clone()
	current := out.Values(field)
	for i, v := range current {
		if v == value {
			out.Answers[field] = append(current[:i:i], current[i+1:]...)
			return out
		}
	}
	out.Answers[field] = append(current, value)
	return out
}

// SelectOption records the option's value under the current step's answer
// field, then navigates to the option's target. It is the common forward
// move for question steps.
func (e *Engine) SelectOption(state *domain.State, value string) (*domain.State, error) {
	step, err := e.Current(state)
	if err != nil {
		return nil, err
	}
	for _, opt := range step.Options {
		if opt.Value != value {
			continue
		}
		recorded := e.RecordAnswer(state, step.AnswerField(), value)
		return e.NavigateTo(recorded, opt.Next)
	}
	return nil, fmt.Errorf("step %s has no option %q", step.ID, value)
}

// Advance moves past a content-only step via its Next continuation, after
// checking the step's completeness requirements.
func (e *Engine) Advance(state *domain.State) (*domain.State, error) {
	step, err := e.Current(state)
	if err != nil {
		return nil, err
	}
	if err := CheckComplete(step, state); err != nil {
		return nil, err
	}
	if step.Next == "" {
		return nil, fmt.Errorf("step %s has no continuation", step.ID)
	}
	return e.NavigateTo(state, step.Next)
}

// GoBack pops the last history entry and returns to it. Answers are kept:
// a user revising an earlier question must not lose unrelated entries. On an
// empty history the state is returned unchanged.
func (e *Engine) GoBack(state *domain.State) *domain.State {
	out := state.Clone()
	if len(out.History) == 0 {
		return out
	}
	last := out.History[len(out.History)-1]
	out.History = out.History[:len(out.History)-1]
	out.CurrentStep = last
	return out
}

// Reset discards answers and history and returns to the entry step.
func (e *Engine) Reset() *domain.State {
	return e.Start()
}
