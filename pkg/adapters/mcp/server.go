package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"strings"
	"time"

	probmodels "github.com/b5strbal/probability-models"
	"github.com/b5strbal/probability-models/internal/dto"
	"github.com/b5strbal/probability-models/pkg/domain"
	"github.com/b5strbal/probability-models/pkg/layout"
	"github.com/b5strbal/probability-models/pkg/markup"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// ExperimentsURI is the resource listing every experiment name.
const ExperimentsURI = "probmodels://experiments"

// RenderResponse is the structured result of the render tools.
type RenderResponse struct {
	Experiment string `json:"experiment" jsonschema_description:"Name of the rendered experiment"`
	Model      string `json:"model" jsonschema_description:"Diagram kind: area, tree or mermaid"`
	Markup     string `json:"markup" jsonschema_description:"TikZ or Mermaid source"`
}

// ExpandResponse is the structured result of expand_choices.
type ExpandResponse struct {
	Happenings []dto.HappeningSpec `json:"happenings" jsonschema_description:"First-level happenings in order of first appearance"`
	Leaves     int                 `json:"leaves" jsonschema_description:"Number of complete outcomes"`
}

// Engine defines what the MCP server needs from the rendering core.
type Engine interface {
	List(ctx context.Context) ([]string, error)
	AreaModel(ctx context.Context, name string, opts ...markup.AreaOption) (string, error)
	TreeModel(ctx context.Context, name string, opts ...layout.TreeOption) (string, error)
	Mermaid(ctx context.Context, name, highlight string, opts ...layout.TreeOption) (string, error)
	RenderArea(ctx context.Context, label string, exp *domain.Experiment, opts ...markup.AreaOption) (string, error)
	RenderTree(ctx context.Context, label string, exp *domain.Experiment, opts ...layout.TreeOption) (string, error)
	RenderMermaid(ctx context.Context, label string, exp *domain.Experiment, highlight string, opts ...layout.TreeOption) (string, error)
}

// Server wraps the Engine and exposes it as an MCP Server.
type Server struct {
	engine    Engine
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP Server instance. logger may be nil.
func NewServer(engine Engine, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	s := &Server{
		engine:    engine,
		logger:    logger,
		mcpServer: server.NewMCPServer("probmodels-mcp", probmodels.Version),
	}
	s.registerTools()
	s.registerResources()
	return s
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
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Channel to listen for errors coming from the listener.
	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Info("Shutdown signal received, shutting down server")
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

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	// TOOL: list_experiments
	s.mcpServer.AddTool(mcp.NewTool("list_experiments",
		mcp.WithDescription("List the names of the experiments that can be rendered by name."),
	), s.handleListExperiments)

	// TOOL: render_area_model
	areaTool := mcp.NewTool("render_area_model",
		mcp.WithDescription("Render a one- or two-stage experiment as a TikZ area model (unit square split into probability-proportional rectangles)."),
		mcp.WithString("name", mcp.Description("Name of a stored experiment (see list_experiments)")),
		mcp.WithString("definition", mcp.Description("Inline experiment definition in YAML or JSON, used instead of name")),
		mcp.WithBoolean("columns", mcp.Description("Write each cell's conditional probability above it")),
		mcp.WithOutputSchema[RenderResponse](),
	)
	s.mcpServer.AddTool(areaTool, mcp.NewStructuredToolHandler(s.handleRenderArea))

	// TOOL: render_tree_model
	treeTool := mcp.NewTool("render_tree_model",
		mcp.WithDescription("Render an experiment as a tree model with probability-labelled edges and the total probability of every outcome."),
		mcp.WithString("name", mcp.Description("Name of a stored experiment (see list_experiments)")),
		mcp.WithString("definition", mcp.Description("Inline experiment definition in YAML or JSON, used instead of name")),
		mcp.WithBoolean("labels", mcp.Description("Label edges with probabilities (default true)")),
		mcp.WithString("format", mcp.Description("tikz (default) or mermaid"), mcp.Enum("tikz", "mermaid")),
		mcp.WithString("highlight", mcp.Description(`Mermaid only: node ID such as "1-2" whose path from the root is emphasised`)),
		mcp.WithOutputSchema[RenderResponse](),
	)
	s.mcpServer.AddTool(treeTool, mcp.NewStructuredToolHandler(s.handleRenderTree))

	// TOOL: expand_choices
	expandTool := mcp.NewTool("expand_choices",
		mcp.WithDescription("Turn a list of equally likely choices into the happenings of repeated picks."),
		mcp.WithString("choices", mcp.Required(), mcp.Description(`One label per character ("QQDN"), or a JSON array of labels`)),
		mcp.WithNumber("repeats", mcp.Required(), mcp.Description("Number of picks")),
		mcp.WithBoolean("replacing", mcp.Description("Put each pick back before the next (default false)")),
		mcp.WithOutputSchema[ExpandResponse](),
	)
	s.mcpServer.AddTool(expandTool, mcp.NewStructuredToolHandler(s.handleExpand))
}

func (s *Server) handleListExperiments(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	names, err := s.engine.List(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("list failed: %v", err)), nil
	}
	jsonBytes, _ := json.Marshal(names)
	return mcp.NewToolResultText(string(jsonBytes)), nil
}

// target resolves the name/definition pair shared by the render tools.
// A nil experiment means "render the stored experiment called name".
func target(args map[string]interface{}) (string, *domain.Experiment, error) {
	name, _ := args["name"].(string)
	definition, _ := args["definition"].(string)

	switch {
	case name != "" && definition != "":
		return "", nil, fmt.Errorf("%w: pass either name or definition, not both", domain.ErrInvalidInput)
	case name != "":
		return name, nil, nil
	case strings.TrimSpace(definition) == "":
		return "", nil, fmt.Errorf("%w: name or definition is required", domain.ErrInvalidInput)
	}

	def, err := dto.ParseYAML([]byte(definition))
	if err != nil {
		return "", nil, err
	}
	exp, err := def.Experiment()
	if err != nil {
		return "", nil, err
	}
	if def.Name == "" {
		def.Name = "inline"
	}
	return def.Name, exp, nil
}

func (s *Server) handleRenderArea(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (RenderResponse, error) {
	name, exp, err := target(args)
	if err != nil {
		return RenderResponse{}, err
	}
	columns, _ := args["columns"].(bool)
	opts := []markup.AreaOption{markup.WithColumnLabels(columns)}

	var out string
	if exp == nil {
		out, err = s.engine.AreaModel(ctx, name, opts...)
	} else {
		out, err = s.engine.RenderArea(ctx, name, exp, opts...)
	}
	if err != nil {
		s.logger.Debug("MCP render_area_model failed", "experiment", name, "error", err)
		return RenderResponse{}, fmt.Errorf("render failed: %w", err)
	}
	return RenderResponse{Experiment: name, Model: string(domain.ModelArea), Markup: out}, nil
}

func (s *Server) handleRenderTree(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (RenderResponse, error) {
	name, exp, err := target(args)
	if err != nil {
		return RenderResponse{}, err
	}

	labels := true
	if v, ok := args["labels"].(bool); ok {
		labels = v
	}
	opts := []layout.TreeOption{layout.WithLabels(labels)}

	format, _ := args["format"].(string)
	model := domain.ModelTree
	switch format {
	case "", "tikz":
	case "mermaid":
		model = domain.ModelMermaid
	default:
		return RenderResponse{}, fmt.Errorf("%w: unknown format %q", domain.ErrInvalidInput, format)
	}
	highlight, _ := args["highlight"].(string)
	if highlight != "" && model != domain.ModelMermaid {
		return RenderResponse{}, fmt.Errorf("%w: highlight requires format mermaid", domain.ErrInvalidInput)
	}

	var out string
	switch {
	case exp == nil && model == domain.ModelMermaid:
		out, err = s.engine.Mermaid(ctx, name, highlight, opts...)
	case exp == nil:
		out, err = s.engine.TreeModel(ctx, name, opts...)
	case model == domain.ModelMermaid:
		out, err = s.engine.RenderMermaid(ctx, name, exp, highlight, opts...)
	default:
		out, err = s.engine.RenderTree(ctx, name, exp, opts...)
	}
	if err != nil {
		s.logger.Debug("MCP render_tree_model failed", "experiment", name, "error", err)
		return RenderResponse{}, fmt.Errorf("render failed: %w", err)
	}
	return RenderResponse{Experiment: name, Model: string(model), Markup: out}, nil
}

func (s *Server) handleExpand(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (ExpandResponse, error) {
	raw, _ := args["choices"].(string)
	repeats, ok := args["repeats"].(float64)
	if !ok || repeats != math.Trunc(repeats) {
		return ExpandResponse{}, fmt.Errorf("%w: repeats must be a whole number", domain.ErrInvalidInput)
	}
	if repeats < 0 || repeats > domain.MaxExpandNodes {
		return ExpandResponse{}, fmt.Errorf("%w: repeats must be between 0 and %d", domain.ErrInvalidInput, domain.MaxExpandNodes)
	}
	replacing, _ := args["replacing"].(bool)

	var choices any = raw
	if strings.HasPrefix(strings.TrimSpace(raw), "[") {
		var list []any
		if err := json.Unmarshal([]byte(raw), &list); err != nil {
			return ExpandResponse{}, errors.Join(domain.ErrInvalidInput, err)
		}
		choices = list
	}

	exp, err := domain.PickingAny(choices, int(repeats), replacing)
	if err != nil {
		return ExpandResponse{}, err
	}
	def := dto.FromExperiment("", "", exp)
	return ExpandResponse{Happenings: def.Happenings, Leaves: len(exp.Leaves())}, nil
}

func (s *Server) registerResources() {
	// EXPOSE: probmodels://experiments
	s.mcpServer.AddResource(mcp.NewResource(ExperimentsURI, "Available Experiments",
		mcp.WithMIMEType("application/json"),
	), s.readExperiments)
}

func (s *Server) readExperiments(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	names, err := s.engine.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list experiments: %w", err)
	}
	jsonBytes, _ := json.Marshal(names)

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      ExperimentsURI,
			MIMEType: "application/json",
			Text:     string(jsonBytes),
		},
	}, nil
}
