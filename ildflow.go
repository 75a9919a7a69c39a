package ildflow

import (
	"log/slog"

	"github.com/pulmotools/ildflow/pkg/domain"
	"github.com/pulmotools/ildflow/pkg/graphs"
	"github.com/pulmotools/ildflow/pkg/wizard"
)

// Version is the module version, stamped into binaries and server banners.
const Version = "0.3.0"

// Graphs returns the registry of built-in clinical decision graphs.
func Graphs() *graphs.Registry {
	return graphs.Builtin()
}

// NewWizard builds a wizard engine for one of the built-in graphs.
func NewWizard(graphID string, opts ...wizard.Option) (*wizard.Engine, error) {
	g, err := graphs.Builtin().Get(graphID)
	if err != nil {
		return nil, err
	}
	return wizard.NewEngine(g, opts...)
}

// NewWizardFromGraph builds a wizard engine for a custom graph, e.g. one
// loaded from YAML.
func NewWizardFromGraph(g *domain.Graph, logger *slog.Logger) (*wizard.Engine, error) {
	if logger != nil {
		return wizard.NewEngine(g, wizard.WithLogger(logger))
	}
	return wizard.NewEngine(g)
}
