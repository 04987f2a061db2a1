// Package service hosts the MCP server: tool registration, transports, and
// lifecycle.
package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/nominaweb/nominaweb/internal/platform/timeouts"
	"github.com/nominaweb/nominaweb/internal/services/mcp/tools"
)

const (
	serverName    = "nominaweb"
	serverVersion = "0.1.0"

	// TransportStdio serves a single client over stdin and stdout.
	TransportStdio = "stdio"
	// TransportHTTP serves the streamable HTTP transport.
	TransportHTTP = "http"

	defaultHTTPAddr = "localhost:8081"
)

// Config selects the MCP transport.
type Config struct {
	Transport string
	HTTPAddr  string
	Logger    *zap.Logger
}

// Server wraps the MCP server with its registered tools.
type Server struct {
	mcpServer *mcp.Server
	logger    *zap.Logger
}

type registration struct {
	tool *mcp.Tool
	add  func(*mcp.Server, *mcp.Tool)
}

func register[I any, O any](tool *mcp.Tool, handler mcp.ToolHandlerFor[I, O]) registration {
	return registration{
		tool: tool,
		add: func(server *mcp.Server, tool *mcp.Tool) {
			mcp.AddTool(server, tool, handler)
		},
	}
}

func registrations(sources tools.Sources) []registration {
	return []registration{
		register(tools.EmpleadosListTool(), tools.EmpleadosListHandler(sources.Empleados)),
		register(tools.EmpleadoGetTool(), tools.EmpleadoGetHandler(sources.Empleados)),
		register(tools.ContratosListTool(), tools.ContratosListHandler(sources.Contratos)),
		register(tools.PrestamosListTool(), tools.PrestamosListHandler(sources.Prestamos)),
		register(tools.PrestamoSimularTool(), tools.PrestamoSimularHandler()),
		register(tools.FlujoCajaResumenTool(), tools.FlujoCajaResumenHandler(sources.FlujoCaja)),
	}
}

// NewServer registers every tool over sources.
func NewServer(sources tools.Sources, logger *zap.Logger) (*Server, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	mcpServer := mcp.NewServer(&mcp.Implementation{Name: serverName, Version: serverVersion}, nil)
	seen := map[string]bool{}
	for _, reg := range registrations(sources) {
		if reg.tool == nil || strings.TrimSpace(reg.tool.Name) == "" {
			return nil, errors.New("mcp tool name is required")
		}
		if seen[reg.tool.Name] {
			return nil, fmt.Errorf("mcp tool %q registered twice", reg.tool.Name)
		}
		seen[reg.tool.Name] = true
		reg.add(mcpServer, reg.tool)
	}
	logger.Debug("mcp tools registered", zap.Int("count", len(seen)))
	return &Server{mcpServer: mcpServer, logger: logger}, nil
}

// Run serves sources over the configured transport until ctx ends.
func Run(ctx context.Context, cfg Config, sources tools.Sources) error {
	server, err := NewServer(sources, cfg.Logger)
	if err != nil {
		return err
	}
	switch strings.TrimSpace(cfg.Transport) {
	case "", TransportStdio:
		return server.serveWithTransport(ctx, &mcp.StdioTransport{})
	case TransportHTTP:
		return server.serveHTTP(ctx, cfg.HTTPAddr)
	default:
		return fmt.Errorf("transport %q is not supported", cfg.Transport)
	}
}

// Handler returns the streamable HTTP handler for the server.
func (s *Server) Handler() http.Handler {
	return mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server { return s.mcpServer }, nil)
}

func (s *Server) serveWithTransport(ctx context.Context, transport mcp.Transport) error {
	if s == nil || s.mcpServer == nil {
		return fmt.Errorf("MCP server is not configured")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	err := s.mcpServer.Run(ctx, transport)
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("serve MCP: %w", err)
	}
	return nil
}

func (s *Server) serveHTTP(ctx context.Context, addr string) error {
	addr = strings.TrimSpace(addr)
	if addr == "" {
		addr = defaultHTTPAddr
	}
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: timeouts.ReadHeader,
	}

	serveErr := make(chan error, 1)
	s.logger.Info("mcp listening", zap.String("addr", addr))
	go func() {
		serveErr <- httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeouts.Shutdown)
		err := httpServer.Shutdown(shutdownCtx)
		cancel()
		<-serveErr
		if err != nil {
			return fmt.Errorf("shutdown mcp http server: %w", err)
		}
		return nil
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve mcp http: %w", err)
	}
}
