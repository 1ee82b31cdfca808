package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/cardio-onc/qtwizard"
	"github.com/cardio-onc/qtwizard/internal/dto"
	"github.com/cardio-onc/qtwizard/internal/logging"
	"github.com/cardio-onc/qtwizard/pkg/domain"
	"github.com/cardio-onc/qtwizard/pkg/registry"
	"github.com/cardio-onc/qtwizard/pkg/runner"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// RegistryURI is the resource exposing the full step list.
const RegistryURI = "qtwizard://registry"

// StepResponse is the structured result of every navigation tool.
type StepResponse struct {
	Committed bool                   `json:"committed" jsonschema_description:"Whether the request moved the wizard"`
	State     domain.NavigationState `json:"state" jsonschema_description:"Navigation state after the request"`
	Step      dto.Step               `json:"step" jsonschema_description:"The step now displayed"`
}

// ChooseArgs selects an option by position or by label.
type ChooseArgs struct {
	Option *int   `json:"option,omitempty"`
	Label  string `json:"label,omitempty"`
}

// Session is the wizard the MCP server drives.
type Session interface {
	runner.Session
	Registry() *registry.Registry
}

// Server exposes one wizard session as an MCP server.
// A process serves a single session; state lives as long as the process.
type Server struct {
	session   Session
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// Option configures the Server.
type Option func(*Server)

// WithLogger configures the server logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewServer creates a new MCP Server instance.
func NewServer(session Session, opts ...Option) *Server {
	s := &Server{
		session:   session,
		logger:    logging.NewNop(),
		mcpServer: server.NewMCPServer("qtwizard-mcp", qtwizard.Version),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.registerTools()
	s.registerResources()
	return s
}

// MCPServer returns the underlying server.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE serves over SSE on addr until ctx is done.
func (s *Server) ServeSSE(ctx context.Context, addr string) error {
	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL("http://localhost"+addr))

	mux := http.NewServeMux()
	mux.Handle("/sse", sseServer.SSEHandler())
	mux.Handle("/message", sseServer.MessageHandler())

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
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

func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.NewTool("current_step",
		mcp.WithDescription("Show the step the clinician is on."),
		mcp.WithOutputSchema[StepResponse](),
	), mcp.NewStructuredToolHandler(s.handleCurrent))

	s.mcpServer.AddTool(mcp.NewTool("choose_option",
		mcp.WithDescription("Choose an option of the current step, by zero-based position among its numbered options or by its label."),
		mcp.WithNumber("option", mcp.Description("Zero-based clickable option")),
		mcp.WithString("label", mcp.Description("Option label, e.g. 'Proceed to Step 3'")),
		mcp.WithOutputSchema[StepResponse](),
	), mcp.NewStructuredToolHandler(s.handleChoose))

	s.mcpServer.AddTool(mcp.NewTool("next_step",
		mcp.WithDescription("Go to the following step."),
		mcp.WithOutputSchema[StepResponse](),
	), mcp.NewStructuredToolHandler(s.move(func(ctx context.Context) bool { return s.session.HandleNext(ctx) })))

	s.mcpServer.AddTool(mcp.NewTool("previous_step",
		mcp.WithDescription("Go to the previous step."),
		mcp.WithOutputSchema[StepResponse](),
	), mcp.NewStructuredToolHandler(s.move(func(ctx context.Context) bool { return s.session.HandleBack(ctx) })))

	s.mcpServer.AddTool(mcp.NewTool("history_back",
		mcp.WithDescription("Move one entry back in session history, like the browser back button."),
		mcp.WithOutputSchema[StepResponse](),
	), mcp.NewStructuredToolHandler(s.move(func(context.Context) bool { return s.session.HistoryBack() })))

	s.mcpServer.AddTool(mcp.NewTool("history_forward",
		mcp.WithDescription("Move one entry forward in session history."),
		mcp.WithOutputSchema[StepResponse](),
	), mcp.NewStructuredToolHandler(s.move(func(context.Context) bool { return s.session.HistoryForward() })))

	s.mcpServer.AddTool(mcp.NewTool("get_registry",
		mcp.WithDescription("Get every step of the checklist for introspection."),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		jsonBytes, err := s.registryJSON()
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("encode failed: %v", err)), nil
		}
		return mcp.NewToolResultText(string(jsonBytes)), nil
	})
}

// Handler methods for structured tools

func (s *Server) handleCurrent(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (StepResponse, error) {
	return s.respond(false), nil
}

func (s *Server) handleChoose(ctx context.Context, request mcp.CallToolRequest, args ChooseArgs) (StepResponse, error) {
	switch {
	case args.Option != nil:
		return s.respond(s.session.ChooseOption(ctx, *args.Option)), nil
	case args.Label != "":
		clean, err := runner.NormalizeLabel(args.Label)
		if err != nil {
			s.logger.Warn("MCP choose_option: Label rejected", "error", err, "size", len(args.Label))
			return StepResponse{}, fmt.Errorf("label rejected: %w", err)
		}
		return s.respond(s.session.HandleOptionClick(ctx, clean)), nil
	default:
		return StepResponse{}, errors.New("either option or label is required")
	}
}

func (s *Server) move(fn func(context.Context) bool) func(context.Context, mcp.CallToolRequest, map[string]interface{}) (StepResponse, error) {
	return func(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (StepResponse, error) {
		return s.respond(fn(ctx)), nil
	}
}

func (s *Server) respond(committed bool) StepResponse {
	return StepResponse{
		Committed: committed,
		State:     s.session.State(),
		Step:      dto.FromStep(s.session.Step()),
	}
}

func (s *Server) registryJSON() ([]byte, error) {
	return json.Marshal(dto.FromRegistry(s.session.Registry()))
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource(RegistryURI, "QTcF Checklist Steps",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		jsonBytes, err := s.registryJSON()
		if err != nil {
			return nil, fmt.Errorf("failed to encode registry: %w", err)
		}
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      RegistryURI,
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}
