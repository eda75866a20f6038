// Package mcp exposes the registry and dispatcher as a Model Context Protocol server.
package mcp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	httpadapter "github.com/aretw0/tickertape/pkg/adapters/http"
	"github.com/aretw0/tickertape/pkg/dispatch"
	"github.com/aretw0/tickertape/pkg/domain"
	"github.com/aretw0/tickertape/pkg/observability"
	"github.com/aretw0/tickertape/pkg/registry"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Server wraps the dispatcher and exposes every registered tool and prompt over MCP.
type Server struct {
	dispatcher *dispatch.Dispatcher
	registry   *registry.Registry
	mcpServer  *server.MCPServer
	name       string
	version    string
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// Option configures a Server.
type Option func(*Server)

// WithMetrics serves /metrics next to the SSE endpoints.
func WithMetrics(m *observability.Metrics) Option {
	return func(s *Server) {
		s.metrics = m
	}
}

// WithLogger sets the logger for transport events.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		s.logger = l
	}
}

// NewServer creates a new MCP Server. The dispatcher's registry must be frozen.
func NewServer(d *dispatch.Dispatcher, name, version string, opts ...Option) *Server {
	s := &Server{
		dispatcher: d,
		registry:   d.Registry(),
		name:       name,
		version:    version,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.mcpServer = server.NewMCPServer(name, version,
		server.WithToolCapabilities(false),
		server.WithPromptCapabilities(false),
	)
	s.registerTools()
	s.registerPrompts()
	return s
}

// MCPServer returns the underlying mcp-go server.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// Handler returns the HTTP handler for the SSE transport, including the operational routes.
func (s *Server) Handler(baseURL string) http.Handler {
	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	r := httpadapter.NewRouter(s.registry, httpadapter.Info{Name: s.name, Version: s.version}, s.metrics, s.logger)
	r.Handle("/sse", sseServer.SSEHandler())
	r.Handle("/message", sseServer.MessageHandler())
	return r
}

// ServeSSE starts the server on the given port using SSE and stops when ctx is done.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(baseURL),
		ReadHeaderTimeout: 10 * time.Second,
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

		s.logger.Info("Shutdown signal received, shutting down server")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func (s *Server) registerTools() {
	for _, spec := range s.registry.Tools() {
		s.mcpServer.AddTool(toolFor(spec), s.callTool(spec.Name))
	}
}

func toolFor(spec domain.ToolSpec) mcp.Tool {
	opts := []mcp.ToolOption{mcp.WithDescription(spec.Description)}
	for _, p := range spec.Parameters {
		popts := []mcp.PropertyOption{}
		if p.Required {
			popts = append(popts, mcp.Required())
		}
		if p.Description != "" {
			popts = append(popts, mcp.Description(p.Description))
		}

		switch p.Type {
		case domain.ParamInt, domain.ParamFloat:
			opts = append(opts, mcp.WithNumber(p.Name, popts...))
		case domain.ParamBool:
			opts = append(opts, mcp.WithBoolean(p.Name, popts...))
		case domain.ParamString:
			opts = append(opts, mcp.WithString(p.Name, popts...))
		default:
			// list types, e.g. "[string]"
			opts = append(opts, mcp.WithArray(p.Name, popts...))
		}
	}
	return mcp.NewTool(spec.Name, opts...)
}

// callTool forwards the call to the dispatcher. Failures are reported as tool
// errors in the result, never as protocol errors.
func (s *Server) callTool(name string) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		res := s.dispatcher.Handle(ctx, domain.InvocationRequest{
			ToolName:  name,
			Arguments: request.GetArguments(),
		})
		if !res.OK() {
			return mcp.NewToolResultError(res.Failure.Error()), nil
		}
		return mcp.NewToolResultText(res.Text), nil
	}
}

func (s *Server) registerPrompts() {
	for _, spec := range s.registry.Prompts() {
		opts := []mcp.PromptOption{mcp.WithPromptDescription(spec.Description)}
		for _, a := range spec.Arguments {
			aopts := []mcp.ArgumentOption{mcp.ArgumentDescription(a.Description)}
			if a.Required {
				aopts = append(aopts, mcp.RequiredArgument())
			}
			opts = append(opts, mcp.WithArgument(a.Name, aopts...))
		}
		s.mcpServer.AddPrompt(mcp.NewPrompt(spec.Name, opts...), s.getPrompt(spec))
	}
}

func (s *Server) getPrompt(spec domain.PromptSpec) server.PromptHandlerFunc {
	return func(ctx context.Context, request mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
		for _, a := range spec.Arguments {
			if _, ok := request.Params.Arguments[a.Name]; a.Required && !ok {
				return nil, fmt.Errorf("prompt %q: missing argument %q: %w", spec.Name, a.Name, domain.ErrInvalidArguments)
			}
		}
		text, err := spec.Render(request.Params.Arguments)
		if err != nil {
			return nil, fmt.Errorf("prompt %q: %w", spec.Name, err)
		}
		return mcp.NewGetPromptResult(spec.Description, []mcp.PromptMessage{
			mcp.NewPromptMessage(mcp.RoleUser, mcp.NewTextContent(text)),
		}), nil
	}
}
