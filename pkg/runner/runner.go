package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/pulmotools/ildflow/internal/logging"
	"github.com/pulmotools/ildflow/pkg/domain"
	"github.com/pulmotools/ildflow/pkg/wizard"
)

// ContentRenderer converts markdown step content into terminal output.
type ContentRenderer func(markdown string) (string, error)

// Summarizer produces a closing summary from the final state, e.g. a risk
// stratification derived from the collected answers. Returning false skips
// the summary.
type Summarizer func(state *domain.State) (string, bool)

// Runner drives one decision graph interactively.
type Runner struct {
	engine     *wizard.Engine
	in         *input
	writer     io.Writer
	renderer   ContentRenderer
	summarizer Summarizer
	logger     *slog.Logger
}

// Option configures the Runner.
type Option func(*Runner)

// WithIO replaces the default stdin/stdout pair.
func WithIO(r io.Reader, w io.Writer) Option {
	return func(run *Runner) {
		run.in = newInput(r, w)
		run.writer = w
	}
}

// WithRenderer sets the markdown renderer.
func WithRenderer(renderer ContentRenderer) Option {
	return func(run *Runner) {
		run.renderer = renderer
	}
}

// WithSummarizer sets the closing summary hook.
func WithSummarizer(s Summarizer) Option {
	return func(run *Runner) {
		run.summarizer = s
	}
}

// WithLogger sets the runner logger.
func WithLogger(logger *slog.Logger) Option {
	return func(run *Runner) {
		run.logger = logger
	}
}

// NewRunner creates a Runner over the given engine.
func NewRunner(engine *wizard.Engine, opts ...Option) *Runner {
	run := &Runner{
		engine: engine,
		in:     newInput(os.Stdin, os.Stdout),
		writer: os.Stdout,
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(run)
	}
	return run
}

// ErrQuit is returned when the user quits before reaching a terminal step.
var ErrQuit = errors.New("quit")

// Run executes the wizard loop from state until a terminal step, quit, or
// error. The final state is returned in all cases.
func (run *Runner) Run(ctx context.Context, state *domain.State) (*domain.State, error) {
	for {
		if err := ctx.Err(); err != nil {
			return state, err
		}

		step, err := run.engine.Current(state)
		if err != nil {
			return state, err
		}

		run.renderStep(step)

		if step.Terminal() {
			if run.summarizer != nil {
				if summary, ok := run.summarizer(state); ok {
					run.printMarkdown(summary)
				}
			}
			return state, nil
		}

		next, err := run.promptStep(ctx, step, state)
		if err != nil {
			if errors.Is(err, ErrQuit) || errors.Is(err, io.EOF) {
				return state, ErrQuit
			}
			return state, err
		}
		state = next
	}
}

func (run *Runner) renderStep(step *domain.Step) {
	fmt.Fprintf(run.writer, "\n== %s ==\n", step.Title)
	if step.Content != "" {
		run.printMarkdown(step.Content)
	}
	if step.Note != "" {
		fmt.Fprintf(run.writer, "Note: %s\n", step.Note)
	}
}

func (run *Runner) printMarkdown(md string) {
	out := md
	if run.renderer != nil {
		if rendered, err := run.renderer(md); err == nil {
			out = rendered
		}
	}
	fmt.Fprintln(run.writer, strings.TrimSpace(out))
}

// promptStep collects whatever the step needs and returns the next state.
func (run *Runner) promptStep(ctx context.Context, step *domain.Step, state *domain.State) (*domain.State, error) {
	switch {
	case len(step.Options) > 0:
		return run.promptOptions(ctx, step, state)
	case len(step.Requires) > 0:
		return run.promptRequirements(ctx, step, state)
	default:
		return run.promptContinue(ctx, state)
	}
}

func (run *Runner) promptOptions(ctx context.Context, step *domain.Step, state *domain.State) (*domain.State, error) {
	if step.Question != "" {
		fmt.Fprintf(run.writer, "%s\n", step.Question)
	}
	for i, opt := range step.Options {
		fmt.Fprintf(run.writer, "  %d) %s\n", i+1, opt.Label)
	}
	fmt.Fprintln(run.writer, "  (b) back  (r) restart  (q) quit")

	for {
		answer, err := run.in.ReadLine(ctx, "> ")
		if err != nil {
			return nil, err
		}
		switch strings.ToLower(strings.TrimSpace(answer)) {
		case "b":
			return run.engine.GoBack(state), nil
		case "r":
			return run.engine.Reset(), nil
		case "q":
			return nil, ErrQuit
		}

		if n, err := strconv.Atoi(strings.TrimSpace(answer)); err == nil && n >= 1 && n <= len(step.Options) {
			return run.engine.SelectOption(state, step.Options[n-1].Value)
		}
		// Accept option values typed directly.
		for _, opt := range step.Options {
			if strings.EqualFold(opt.Value, strings.TrimSpace(answer)) {
				return run.engine.SelectOption(state, opt.Value)
			}
		}
		fmt.Fprintln(run.writer, "Please pick one of the listed options.")
	}
}

func (run *Runner) promptRequirements(ctx context.Context, step *domain.Step, state *domain.State) (*domain.State, error) {
	if step.Question != "" {
		fmt.Fprintf(run.writer, "%s\n", step.Question)
	}
	for _, req := range step.Requires {
		if req.Section != "" {
			fmt.Fprintf(run.writer, "-- %s --\n", req.Section)
		}
		for _, field := range req.Fields {
			if state.Answered(field) {
				continue
			}
			answer, err := run.in.ReadLine(ctx, field+": ")
			if err != nil {
				return nil, err
			}
			state = run.engine.RecordAnswer(state, field, strings.TrimSpace(answer))
		}
	}

	next, err := run.engine.Advance(state)
	if err != nil {
		var incomplete *wizard.IncompleteError
		if errors.As(err, &incomplete) {
			fmt.Fprintf(run.writer, "Still missing: %v\n", incomplete.Missing)
			return state, nil
		}
		return nil, err
	}
	return next, nil
}

func (run *Runner) promptContinue(ctx context.Context, state *domain.State) (*domain.State, error) {
	for {
		answer, err := run.in.ReadLine(ctx, "[Enter] continue  (b) back  (q) quit > ")
		if err != nil {
			return nil, err
		}
		switch strings.ToLower(strings.TrimSpace(answer)) {
		case "":
			return run.engine.Advance(state)
		case "b":
			return run.engine.GoBack(state), nil
		case "q":
			return nil, ErrQuit
		default:
			fmt.Fprintln(run.writer, "Press Enter to continue, b to go back, or q to quit.")
		}
	}
}
