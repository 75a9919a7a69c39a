package graphs_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pulmotools/ildflow/pkg/domain"
	"github.com/pulmotools/ildflow/pkg/graphs"
)

func TestBuiltin_GraphsAreValid(t *testing.T) {
	reg := graphs.Builtin()
	list := reg.List()
	require.Len(t, list, 3)

	for _, g := range list {
		assert.NoError(t, g.Validate(), "graph %s", g.ID)
		assert.NotEmpty(t, g.Title, "graph %s", g.ID)
	}
}

func TestBuiltin_Order(t *testing.T) {
	list := graphs.Builtin().List()
	ids := make([]string, len(list))
	for i, g := range list {
		ids[i] = g.ID
	}
	assert.Equal(t, []string{"diagnostic", "ila", "ipf"}, ids)
}

func TestRegistry_Get(t *testing.T) {
	reg := graphs.Builtin()

	g, err := reg.Get("diagnostic")
	require.NoError(t, err)
	assert.Equal(t, "diagnostic", g.ID)

	_, err = reg.Get("copd")
	assert.ErrorIs(t, err, domain.ErrUnknownGraph)
}

func TestRegistry_RegisterOverwrites(t *testing.T) {
	reg := graphs.NewRegistry()
	reg.Register(&domain.Graph{ID: "x", Title: "First"})
	reg.Register(&domain.Graph{ID: "x", Title: "Second"})

	g, err := reg.Get("x")
	require.NoError(t, err)
	assert.Equal(t, "Second", g.Title)
}

// Every edge a builtin graph declares must lead to a reachable step, and
// every step must be reachable from the entry.
func TestBuiltin_AllStepsReachable(t *testing.T) {
	for _, g := range graphs.Builtin().List() {
		t.Run(g.ID, func(t *testing.T) {
			visited := map[string]bool{}
			queue := []string{g.Entry}
			for len(queue) > 0 {
				id := queue[0]
				queue = queue[1:]
				if visited[id] {
					continue
				}
				visited[id] = true
				step := g.Step(id)
				require.NotNil(t, step, "step %s missing", id)
				if step.Next != "" {
					queue = append(queue, step.Next)
				}
				for _, opt := range step.Options {
					queue = append(queue, opt.Next)
				}
			}
			for id := range g.Steps {
				assert.True(t, visited[id], "step %s is unreachable", id)
			}
		})
	}
}
