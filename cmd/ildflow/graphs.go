package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pulmotools/ildflow"
	presentation "github.com/pulmotools/ildflow/internal/presentation/graph"
	"github.com/pulmotools/ildflow/pkg/graphs"
)

var graphsCmd = &cobra.Command{
	Use:   "graphs",
	Short: "List the built-in decision graphs",
	Run: func(cmd *cobra.Command, args []string) {
		for _, g := range ildflow.Graphs().List() {
			fmt.Printf("%-12s %s (%d steps)\n", g.ID, g.Title, len(g.Steps))
		}
	},
}

var graphsShowCmd = &cobra.Command{
	Use:   "show <graph>",
	Short: "Print a graph definition",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		g, err := ildflow.Graphs().Get(args[0])
		if err != nil {
			return fmt.Errorf("unknown graph %q", args[0])
		}

		if mermaid, _ := cmd.Flags().GetBool("mermaid"); mermaid {
			fmt.Print(presentation.GenerateMermaid(g, nil))
			return nil
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(g)
	},
}

var validateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Validate a YAML graph definition",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		g, err := graphs.LoadFile(args[0])
		if err != nil {
			return err
		}
		fmt.Printf("%s: OK (%d steps, entry %q)\n", g.ID, len(g.Steps), g.Entry)
		return nil
	},
}

func init() {
	graphsCmd.AddCommand(graphsShowCmd)
	graphsShowCmd.Flags().Bool("mermaid", false, "Render as a Mermaid flowchart")
	rootCmd.AddCommand(graphsCmd)
	rootCmd.AddCommand(validateCmd)
}
