package graphs

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/pulmotools/ildflow/pkg/domain"
)

// Load decodes a graph definition from YAML and validates it.
func Load(r io.Reader) (*domain.Graph, error) {
	var g domain.Graph
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&g); err != nil {
		return nil, fmt.Errorf("decoding graph: %w", err)
	}
	// Step keys double as IDs when the definition omits them.
	for key, step := range g.Steps {
		if step.ID == "" {
			step.ID = key
		}
	}
	if err := g.Validate(); err != nil {
		return nil, err
	}
	return &g, nil
}

// LoadFile reads and validates a graph definition from a YAML file.
func LoadFile(path string) (*domain.Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening graph file: %w", err)
	}
	defer f.Close()
	return Load(f)
}
