// Package nominactl builds the nominactl command tree: read-only listings of
// every backend collection, a concurrent export, the loan simulator, and the
// audit log tail.
package nominactl

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"github.com/nominaweb/nominaweb/internal/backend"
	entrypoint "github.com/nominaweb/nominaweb/internal/platform/cmd"
)

// Config holds nominactl configuration loaded from the environment.
type Config struct {
	BackendURL     string        `env:"NOMINAWEB_BACKEND_URL"     envDefault:"http://localhost:8000"`
	BackendToken   string        `env:"NOMINAWEB_BACKEND_TOKEN"`
	BackendTimeout time.Duration `env:"NOMINAWEB_BACKEND_TIMEOUT" envDefault:"10s"`
	AuditDBPath    string        `env:"NOMINAWEB_AUDIT_DB_PATH"   envDefault:"data/audit.db"`
}

// LoadConfig reads Config from the environment.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

type app struct {
	cfg Config

	once     sync.Once
	services backend.Services
	err      error
}

func (a *app) backend() (backend.Services, error) {
	a.once.Do(func() {
		client, err := backend.New(backend.Config{
			BaseURL: a.cfg.BackendURL,
			Token:   a.cfg.BackendToken,
			Timeout: a.cfg.BackendTimeout,
		})
		if err != nil {
			a.err = fmt.Errorf("init backend client: %w", err)
			return
		}
		a.services = backend.NewServices(client)
	})
	return a.services, a.err
}

// NewRootCommand builds the nominactl command tree over cfg. Flags on the
// root command override cfg.
func NewRootCommand(cfg Config) *cobra.Command {
	a := &app{cfg: cfg}
	root := &cobra.Command{
		Use:           "nominactl",
		Short:         "Query the nominaweb HR and accounting backend",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&a.cfg.BackendURL, "backend-url", cfg.BackendURL, "REST backend base URL")
	root.PersistentFlags().DurationVar(&a.cfg.BackendTimeout, "backend-timeout", cfg.BackendTimeout, "Timeout for each backend request")
	root.PersistentFlags().StringVar(&a.cfg.AuditDBPath, "audit-db", cfg.AuditDBPath, "SQLite audit log path")

	for _, res := range resources() {
		root.AddCommand(res.command(a))
	}
	if prestamos := findCommand(root, "prestamos"); prestamos != nil {
		prestamos.AddCommand(simularCommand())
	}
	root.AddCommand(exportCommand(a), auditCommand(a))
	return root
}

// Execute runs the command tree with args and reports the process exit code.
func Execute(ctx context.Context, cfg Config, args []string, stdout, stderr io.Writer) int {
	root := NewRootCommand(cfg)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	err := entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceNominactl, func(ctx context.Context) error {
		return root.ExecuteContext(ctx)
	})
	if err != nil {
		fmt.Fprintf(stderr, "nominactl: %v\n", err)
		return 1
	}
	return 0
}

func findCommand(root *cobra.Command, name string) *cobra.Command {
	for _, cmd := range root.Commands() {
		if cmd.Name() == name {
			return cmd
		}
	}
	return nil
}

func normalizeFormat(raw string, allowed ...string) (string, error) {
	format := strings.ToLower(strings.TrimSpace(raw))
	for _, candidate := range allowed {
		if format == candidate {
			return format, nil
		}
	}
	return "", fmt.Errorf("output format %q is not supported (use %s)", raw, strings.Join(allowed, ", "))
}
