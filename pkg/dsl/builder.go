package dsl

import (
	"fmt"

	"github.com/pulmotools/ildflow/pkg/domain"
)

// Builder manages the graph construction.
type Builder struct {
	id    string
	title string
	entry string
	steps map[string]*StepBuilder
	order []string
}

// New creates a builder for a graph with the given ID and title. The first
// step added becomes the entry unless Entry is called.
func New(id, title string) *Builder {
	return &Builder{
		id:    id,
		title: title,
		steps: make(map[string]*StepBuilder),
	}
}

// Step creates a new step in the graph. If the step already exists, it
// returns the existing builder.
func (b *Builder) Step(id string) *StepBuilder {
	if sb, ok := b.steps[id]; ok {
		return sb
	}
	sb := &StepBuilder{
		step: domain.Step{
			ID: id,
		},
		builder: b,
	}
	b.steps[id] = sb
	b.order = append(b.order, id)
	return sb
}

// Entry overrides the entry step. By default the first step added is the
// entry.
func (b *Builder) Entry(id string) *Builder {
	b.entry = id
	return b
}

// Build compiles and validates the graph.
func (b *Builder) Build() (*domain.Graph, error) {
	if len(b.order) == 0 {
		return nil, fmt.Errorf("graph %s has no steps", b.id)
	}

	entry := b.entry
	if entry == "" {
		entry = b.order[0]
	}

	g := &domain.Graph{
		ID:    b.id,
		Title: b.title,
		Entry: entry,
		Steps: make(map[string]*domain.Step, len(b.steps)),
	}
	for id, sb := range b.steps {
		step := sb.step
		g.Steps[id] = &step
	}

	if err := g.Validate(); err != nil {
		return nil, err
	}
	return g, nil
}
