package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/pulmotools/ildflow"
	"github.com/pulmotools/ildflow/internal/logging"
	"github.com/pulmotools/ildflow/pkg/graphs"
)

func parseLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func newLogger(cmd *cobra.Command, json bool) *slog.Logger {
	level, _ := cmd.Flags().GetString("log-level")
	if json {
		return logging.NewJSON(parseLevel(level))
	}
	return logging.New(parseLevel(level))
}

// buildRegistry returns the built-in graphs plus any YAML definitions given
// on the command line.
func buildRegistry(files []string) (*graphs.Registry, error) {
	reg := ildflow.Graphs()
	for _, f := range files {
		g, err := graphs.LoadFile(f)
		if err != nil {
			return nil, fmt.Errorf("loading %s: %w", f, err)
		}
		reg.Register(g)
	}
	return reg, nil
}
