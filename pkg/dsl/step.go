package dsl

import "github.com/pulmotools/ildflow/pkg/domain"

// StepBuilder provides a fluent API for configuring a step.
type StepBuilder struct {
	step    domain.Step
	builder *Builder
}

// Title sets the step title.
func (s *StepBuilder) Title(title string) *StepBuilder {
	s.step.Title = title
	return s
}

// Content sets the markdown payload rendered for the step.
func (s *StepBuilder) Content(content string) *StepBuilder {
	s.step.Content = content
	return s
}

// Question sets the prompt the step's options answer.
func (s *StepBuilder) Question(question string) *StepBuilder {
	s.step.Question = question
	return s
}

// Field overrides the answer key the chosen option value is recorded under.
// It defaults to the step ID.
func (s *StepBuilder) Field(field string) *StepBuilder {
	s.step.Field = field
	return s
}

// Option adds a labeled edge to the target step.
func (s *StepBuilder) Option(label, value, next string) *StepBuilder {
	s.step.Options = append(s.step.Options, domain.Option{
		Label: label,
		Value: value,
		Next:  next,
	})
	return s
}

// OptionNote adds a labeled edge with an annotation shown alongside it.
func (s *StepBuilder) OptionNote(label, value, next, note string) *StepBuilder {
	s.step.Options = append(s.step.Options, domain.Option{
		Label: label,
		Value: value,
		Next:  next,
		Note:  note,
	})
	return s
}

// Next sets an unconditional continuation for a content-only step.
func (s *StepBuilder) Next(target string) *StepBuilder {
	s.step.Next = target
	return s
}

// Require gates forward progression until the listed fields are answered,
// presented under the given section.
func (s *StepBuilder) Require(section string, fields ...string) *StepBuilder {
	s.step.Requires = append(s.step.Requires, domain.Requirement{
		Section: section,
		Fields:  fields,
	})
	return s
}

// Note sets an annotation displayed with the step.
func (s *StepBuilder) Note(note string) *StepBuilder {
	s.step.Note = note
	return s
}

// Build returns the underlying domain.Step.
// This is primarily used by the Builder, but exposed for advanced usage.
func (s *StepBuilder) Build() domain.Step {
	return s.step
}
