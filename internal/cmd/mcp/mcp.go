// Package mcp parses MCP command flags and selects stdio or HTTP transport.
package mcp

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/pflag"

	"github.com/nominaweb/nominaweb/internal/backend"
	entrypoint "github.com/nominaweb/nominaweb/internal/platform/cmd"
	"github.com/nominaweb/nominaweb/internal/platform/logging"
	mcpservice "github.com/nominaweb/nominaweb/internal/services/mcp/service"
	"github.com/nominaweb/nominaweb/internal/services/mcp/tools"
)

// Config holds MCP command configuration.
type Config struct {
	BackendURL     string        `env:"NOMINAWEB_BACKEND_URL"     envDefault:"http://localhost:8000"`
	BackendToken   string        `env:"NOMINAWEB_BACKEND_TOKEN"`
	BackendTimeout time.Duration `env:"NOMINAWEB_BACKEND_TIMEOUT" envDefault:"10s"`
	HTTPAddr       string        `env:"NOMINAWEB_MCP_HTTP_ADDR"   envDefault:"localhost:8081"`
	Transport      string        `env:"NOMINAWEB_MCP_TRANSPORT"   envDefault:"stdio"`
	LogLevel       string        `env:"NOMINAWEB_LOG_LEVEL"       envDefault:"info"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *pflag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.BackendURL, "backend-url", cfg.BackendURL, "REST backend base URL")
	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP server address (for HTTP transport)")
	fs.StringVar(&cfg.Transport, "transport", cfg.Transport, "Transport type: stdio or http")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run starts the MCP server over the backend.
func Run(ctx context.Context, cfg Config) error {
	// Logs go to stderr so they never mix with stdio frames.
	logger, err := logging.New(cfg.LogLevel, logging.FormatJSON)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	client, err := backend.New(backend.Config{
		BaseURL: cfg.BackendURL,
		Token:   cfg.BackendToken,
		Timeout: cfg.BackendTimeout,
		Logger:  logging.Named(logger, "backend"),
	})
	if err != nil {
		return fmt.Errorf("init backend client: %w", err)
	}
	services := backend.NewServices(client)

	return entrypoint.RunWithTelemetryAndOptions(ctx, entrypoint.ServiceMCP, entrypoint.RunOptions{Logger: logger}, func(ctx context.Context) error {
		return mcpservice.Run(ctx, mcpservice.Config{
			Transport: cfg.Transport,
			HTTPAddr:  cfg.HTTPAddr,
			Logger:    logging.Named(logger, "mcp"),
		}, Sources(services))
	})
}

// Sources binds the MCP tools to backend collections.
func Sources(services backend.Services) tools.Sources {
	return tools.Sources{
		Empleados: services.Empleados,
		Contratos: services.Contratos,
		Prestamos: services.Prestamos,
		FlujoCaja: services.FlujoCaja,
	}
}
