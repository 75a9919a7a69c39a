package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	mcpAdapter "github.com/pulmotools/ildflow/pkg/adapters/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server",
	Long: `Exposes the decision graphs and clinical resolvers as MCP tools, over
stdio by default or SSE with --sse.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := newLogger(cmd, true)

		graphFiles, _ := cmd.Flags().GetStringSlice("graph")
		reg, err := buildRegistry(graphFiles)
		if err != nil {
			return err
		}

		srv, err := mcpAdapter.NewServer(reg, logger)
		if err != nil {
			return err
		}

		if sse, _ := cmd.Flags().GetBool("sse"); sse {
			port, _ := cmd.Flags().GetInt("port")
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return srv.ServeSSE(ctx, port)
		}
		return srv.ServeStdio()
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
	mcpCmd.Flags().Bool("sse", false, "Serve over SSE instead of stdio")
	mcpCmd.Flags().IntP("port", "p", 8765, "Port for SSE mode")
	mcpCmd.Flags().StringSlice("graph", nil, "Additional YAML graph definitions to expose")
}
