package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/pulmotools/ildflow/internal/presentation/tui"
	"github.com/pulmotools/ildflow/pkg/adapters/file"
	"github.com/pulmotools/ildflow/pkg/domain"
	"github.com/pulmotools/ildflow/pkg/graphs"
	"github.com/pulmotools/ildflow/pkg/resolver"
	"github.com/pulmotools/ildflow/pkg/runner"
	"github.com/pulmotools/ildflow/pkg/session"
	"github.com/pulmotools/ildflow/pkg/wizard"
)

var runCmd = &cobra.Command{
	Use:   "run [graph]",
	Short: "Run a decision pathway interactively",
	Long: `Walks through a decision graph in the terminal. Defaults to the general
diagnostic pathway; pass a graph ID (see 'ildflow graphs') or --file for a
custom YAML definition.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := newLogger(cmd, false)

		graphID := "diagnostic"
		if len(args) > 0 {
			graphID = args[0]
		}

		var g *domain.Graph
		if file, _ := cmd.Flags().GetString("file"); file != "" {
			loaded, err := graphs.LoadFile(file)
			if err != nil {
				return err
			}
			g = loaded
		} else {
			found, err := graphs.Builtin().Get(graphID)
			if err != nil {
				return fmt.Errorf("unknown graph %q, see 'ildflow graphs'", graphID)
			}
			g = found
		}

		eng, err := wizard.NewEngine(g, wizard.WithLogger(logger))
		if err != nil {
			return err
		}

		opts := []runner.Option{
			runner.WithRenderer(tui.NewRenderer()),
			runner.WithLogger(logger),
		}
		if s := summarizerFor(g.ID); s != nil {
			opts = append(opts, runner.WithSummarizer(s))
		}
		run := runner.NewRunner(eng, opts...)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		tui.PrintBanner(os.Stdout)
		fmt.Printf("%s\n", g.Title)

		state := eng.Start()

		// An optional named session persists the consultation across runs.
		var sessions *session.Manager
		sessionID, _ := cmd.Flags().GetString("session")
		if sessionID != "" {
			sessions = session.NewManager(file.New(""), session.WithLogger(logger))
			if fresh, _ := cmd.Flags().GetBool("fresh"); fresh {
				if err := sessions.Delete(ctx, sessionID); err != nil {
					return err
				}
			}
			loaded, err := sessions.LoadOrStart(ctx, sessionID, g.Entry)
			if err != nil {
				return err
			}
			state = loaded
		}

		final, err := run.Run(ctx, state)
		if sessions != nil && final != nil {
			if saveErr := sessions.Save(context.Background(), sessionID, final); saveErr != nil {
				logger.Error("failed to save session", "session_id", sessionID, "error", saveErr)
			}
		}
		if err != nil {
			if errors.Is(err, runner.ErrQuit) || errors.Is(err, context.Canceled) {
				fmt.Println("\nBye.")
				return nil
			}
			return err
		}
		return nil
	},
}

// summarizerFor attaches the matching resolver to graphs that end in a
// derived recommendation.
func summarizerFor(graphID string) runner.Summarizer {
	switch graphID {
	case "ila":
		return func(state *domain.State) (string, bool) {
			rec := resolver.StratifyILA(resolver.ILAInput{
				Context:      state.Scalar("context"),
				PatientInfo:  state.Values("patientInfo"),
				Extent:       state.Scalar("extent"),
				Fibrotic:     state.Scalar("fibrotic"),
				Distribution: state.Scalar("distribution"),
			})
			var sb strings.Builder
			fmt.Fprintf(&sb, "**%s**\n\n%s\n", rec.Title, rec.Description)
			return sb.String(), true
		}
	default:
		return nil
	}
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().StringP("file", "f", "", "YAML graph definition to run instead of a built-in graph")
	runCmd.Flags().String("session", "", "Persist and resume the consultation under this session ID")
	runCmd.Flags().Bool("fresh", false, "Discard a previously saved session before starting")
}
