// Package mcp exposes the decision graphs and clinical resolvers as an MCP
// server, so agent hosts can drive a consultation tool-by-tool.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/pulmotools/ildflow"
	"github.com/pulmotools/ildflow/pkg/domain"
	"github.com/pulmotools/ildflow/pkg/graphs"
	"github.com/pulmotools/ildflow/pkg/resolver"
	"github.com/pulmotools/ildflow/pkg/wizard"
)

// StepResponse is the unified result of the wizard tools.
type StepResponse struct {
	State    *domain.State `json:"state" jsonschema_description:"The wizard state after the operation"`
	Step     *domain.Step  `json:"step" jsonschema_description:"The step the wizard now points at"`
	Terminal bool          `json:"terminal" jsonschema_description:"Whether the step is terminal"`
}

// Server wraps the graph registry and exposes it as an MCP server.
type Server struct {
	registry  *graphs.Registry
	engines   map[string]*wizard.Engine
	mcpServer *server.MCPServer
	logger    *slog.Logger
}

// NewServer creates an MCP server over the given registry.
func NewServer(reg *graphs.Registry, logger *slog.Logger) (*Server, error) {
	if logger == nil {
		logger = slog.Default()
	}
	engines := make(map[string]*wizard.Engine)
	for _, g := range reg.List() {
		eng, err := wizard.NewEngine(g, wizard.WithLogger(logger))
		if err != nil {
			return nil, fmt.Errorf("graph %q: %w", g.ID, err)
		}
		engines[g.ID] = eng
	}

	s := &Server{
		registry:  reg,
		engines:   engines,
		mcpServer: server.NewMCPServer("ildflow-mcp", ildflow.Version),
		logger:    logger,
	}
	s.registerWizardTools()
	s.registerResolverTools()
	s.registerResources()
	return s, nil
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("mcp server listening (sse)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) engine(args map[string]any) (*wizard.Engine, error) {
	id, _ := args["graph_id"].(string)
	eng, ok := s.engines[id]
	if !ok {
		return nil, fmt.Errorf("unknown graph: %q", id)
	}
	return eng, nil
}

// parseState rebuilds a wizard state from tool arguments. A missing state
// means the graph's entry state.
func parseState(eng *wizard.Engine, args map[string]any) *domain.State {
	raw, ok := args["state"].(string)
	if !ok || raw == "" {
		return eng.Start()
	}
	var state domain.State
	if err := json.Unmarshal([]byte(raw), &state); err != nil {
		return eng.Start()
	}
	if state.CurrentStep == "" {
		state.CurrentStep = eng.Graph().Entry
	}
	if state.Answers == nil {
		state.Answers = make(map[string]any)
	}
	return &state
}

func (s *Server) stepResponse(eng *wizard.Engine, state *domain.State) (StepResponse, error) {
	step, err := eng.Current(state)
	if err != nil {
		return StepResponse{}, err
	}
	return StepResponse{State: state, Step: step, Terminal: step.Terminal()}, nil
}

func (s *Server) registerWizardTools() {
	s.mcpServer.AddTool(mcp.NewTool("list_graphs",
		mcp.WithDescription("List the available clinical decision graphs."),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		type summary struct {
			ID    string `json:"id"`
			Title string `json:"title"`
		}
		list := s.registry.List()
		out := make([]summary, 0, len(list))
		for _, g := range list {
			out = append(out, summary{ID: g.ID, Title: g.Title})
		}
		data, _ := json.Marshal(out)
		return mcp.NewToolResultText(string(data)), nil
	})

	renderTool := mcp.NewTool("render_step",
		mcp.WithDescription("Render the current step for a state. If state is omitted, renders the graph entry."),
		mcp.WithString("graph_id", mcp.Required(), mcp.Description("Decision graph ID")),
		mcp.WithString("state", mcp.Description("JSON wizard state (optional)")),
		mcp.WithOutputSchema[StepResponse](),
	)
	s.mcpServer.AddTool(renderTool, mcp.NewStructuredToolHandler(s.handleRenderStep))

	selectTool := mcp.NewTool("select_option",
		mcp.WithDescription("Answer the current step's question by option value and follow its transition."),
		mcp.WithString("graph_id", mcp.Required(), mcp.Description("Decision graph ID")),
		mcp.WithString("state", mcp.Required(), mcp.Description("JSON wizard state")),
		mcp.WithString("value", mcp.Required(), mcp.Description("Option value to select")),
		mcp.WithOutputSchema[StepResponse](),
	)
	s.mcpServer.AddTool(selectTool, mcp.NewStructuredToolHandler(s.handleSelectOption))

	backTool := mcp.NewTool("go_back",
		mcp.WithDescription("Step back to the previously visited step, keeping recorded answers."),
		mcp.WithString("graph_id", mcp.Required(), mcp.Description("Decision graph ID")),
		mcp.WithString("state", mcp.Required(), mcp.Description("JSON wizard state")),
		mcp.WithOutputSchema[StepResponse](),
	)
	s.mcpServer.AddTool(backTool, mcp.NewStructuredToolHandler(s.handleGoBack))
}

func (s *Server) handleRenderStep(ctx context.Context, request mcp.CallToolRequest, args map[string]any) (StepResponse, error) {
	eng, err := s.engine(args)
	if err != nil {
		return StepResponse{}, err
	}
	return s.stepResponse(eng, parseState(eng, args))
}

func (s *Server) handleSelectOption(ctx context.Context, request mcp.CallToolRequest, args map[string]any) (StepResponse, error) {
	eng, err := s.engine(args)
	if err != nil {
		return StepResponse{}, err
	}
	value, _ := args["value"].(string)
	next, err := eng.SelectOption(parseState(eng, args), value)
	if err != nil {
		return StepResponse{}, fmt.Errorf("select failed: %w", err)
	}
	return s.stepResponse(eng, next)
}

func (s *Server) handleGoBack(ctx context.Context, request mcp.CallToolRequest, args map[string]any) (StepResponse, error) {
	eng, err := s.engine(args)
	if err != nil {
		return StepResponse{}, err
	}
	return s.stepResponse(eng, eng.GoBack(parseState(eng, args)))
}

func (s *Server) registerResolverTools() {
	addJSON := func(name, desc, argDesc string, run func(raw string) (any, error)) {
		s.mcpServer.AddTool(mcp.NewTool(name,
			mcp.WithDescription(desc),
			mcp.WithString("answers", mcp.Required(), mcp.Description(argDesc)),
		), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			raw := request.GetString("answers", "")
			out, err := run(raw)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			data, _ := json.Marshal(out)
			return mcp.NewToolResultText(string(data)), nil
		})
	}

	addJSON("score_screening",
		"Score a SARD patient's ILD screening risk (ACR 2023).",
		`JSON object: {"connectiviteType", "hasPID", "riskFactors", "currentSymptoms"}`,
		func(raw string) (any, error) {
			var in resolver.ScreeningInput
			if err := json.Unmarshal([]byte(raw), &in); err != nil {
				return nil, fmt.Errorf("invalid answers: %w", err)
			}
			return resolver.ScoreScreening(in), nil
		})

	addJSON("classify_uip",
		"Classify an HRCT finding set against the UIP pattern criteria.",
		`JSON object with the HRCT findings, e.g. {"honeycombing": true}`,
		func(raw string) (any, error) {
			var in resolver.UIPInput
			if err := json.Unmarshal([]byte(raw), &in); err != nil {
				return nil, fmt.Errorf("invalid answers: %w", err)
			}
			return resolver.ClassifyUIP(in), nil
		})

	addJSON("classify_ipaf",
		"Check the IPAF classification (at least one criterion in at least two domains).",
		`JSON array of checked criterion IDs`,
		func(raw string) (any, error) {
			var checked []string
			if err := json.Unmarshal([]byte(raw), &checked); err != nil {
				return nil, fmt.Errorf("invalid criteria: %w", err)
			}
			return resolver.ClassifyIPAF(checked), nil
		})

	addJSON("stratify_ila",
		"Stratify interstitial lung abnormalities into a management tier.",
		`JSON object: {"context", "patientInfo", "extent", "fibrotic", "distribution"}`,
		func(raw string) (any, error) {
			var in resolver.ILAInput
			if err := json.Unmarshal([]byte(raw), &in); err != nil {
				return nil, fmt.Errorf("invalid answers: %w", err)
			}
			return resolver.StratifyILA(in), nil
		})

	addJSON("score_hp",
		"Compute the hypersensitivity pneumonitis diagnostic confidence score.",
		`JSON object: {"exposure", "hrct", "bal"}`,
		func(raw string) (any, error) {
			var in resolver.PHSInput
			if err := json.Unmarshal([]byte(raw), &in); err != nil {
				return nil, fmt.Errorf("invalid answers: %w", err)
			}
			return resolver.ScoreHP(in), nil
		})

	s.mcpServer.AddTool(mcp.NewTool("lookup_treatment",
		mcp.WithDescription("Look up the ACR 2023 treatment recommendation for a SARD and clinical context."),
		mcp.WithString("sard", mcp.Required(), mcp.Description("SARD token, e.g. SSc, RA, MII")),
		mcp.WithString("context", mcp.Required(), mcp.Description("One of firstLine, progression, rp-ild")),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		sard := request.GetString("sard", "")
		tc := resolver.TreatmentContext(request.GetString("context", ""))
		data, _ := json.Marshal(resolver.LookupTreatment(sard, tc))
		return mcp.NewToolResultText(string(data)), nil
	})
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource("ildflow://graphs", "Clinical Decision Graphs",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		data, err := json.Marshal(s.registry.List())
		if err != nil {
			return nil, fmt.Errorf("failed to marshal graphs: %w", err)
		}
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      "ildflow://graphs",
				MIMEType: "application/json",
				Text:     string(data),
			},
		}, nil
	})
}
