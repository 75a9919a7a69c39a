package domain

import (
	"fmt"
	"strings"
)

// Graph is a complete decision flow: a set of steps with a designated entry.
// Edges may converge but the graphs shipped with ildflow are acyclic; a step
// is only revisited through explicit back-navigation.
type Graph struct {
	ID    string `json:"id" yaml:"id"`
	Title string `json:"title" yaml:"title"`

	// Entry is the identifier of the initial step.
	Entry string `json:"entry" yaml:"entry"`

	Steps map[string]*Step `json:"steps" yaml:"steps"`
}

// Step returns the step for the given identifier, or nil.
func (g *Graph) Step(id string) *Step {
	return g.Steps[id]
}

// Validate checks the structural invariants of the graph: the entry step
// exists, every option and continuation points at a defined step, and step
// IDs match their map keys.
func (g *Graph) Validate() error {
	if g.ID == "" {
		return fmt.Errorf("graph has no ID")
	}
	if _, ok := g.Steps[g.Entry]; !ok {
		return fmt.Errorf("graph %s: entry step %q not defined", g.ID, g.Entry)
	}

	var problems []string
	for key, step := range g.Steps {
		if step.ID != "" && step.ID != key {
			problems = append(problems, fmt.Sprintf("step %q declares mismatched ID %q", key, step.ID))
		}
		if step.Next != "" {
			if _, ok := g.Steps[step.Next]; !ok {
				problems = append(problems, fmt.Sprintf("step %q continues to undefined step %q", key, step.Next))
			}
		}
		for _, opt := range step.Options {
			if opt.Next == "" {
				problems = append(problems, fmt.Sprintf("step %q option %q has no target", key, opt.Value))
				continue
			}
			if _, ok := g.Steps[opt.Next]; !ok {
				problems = append(problems, fmt.Sprintf("step %q option %q points to undefined step %q", key, opt.Value, opt.Next))
			}
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("graph %s invalid:\n- %s", g.ID, strings.Join(problems, "\n- "))
	}
	return nil
}
