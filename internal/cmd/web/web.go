// Package web parses web service flags and launches the service.
package web

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/nominaweb/nominaweb/internal/backend"
	entrypoint "github.com/nominaweb/nominaweb/internal/platform/cmd"
	"github.com/nominaweb/nominaweb/internal/platform/filestore"
	"github.com/nominaweb/nominaweb/internal/platform/logging"
	"github.com/nominaweb/nominaweb/internal/services/web"
)

// Config holds the web command configuration.
type Config struct {
	HTTPAddr            string        `env:"NOMINAWEB_HTTP_ADDR" envDefault:"localhost:8080"`
	BackendURL          string        `env:"NOMINAWEB_BACKEND_URL" envDefault:"http://localhost:8000"`
	BackendToken        string        `env:"NOMINAWEB_BACKEND_TOKEN"`
	BackendTimeout      time.Duration `env:"NOMINAWEB_BACKEND_TIMEOUT" envDefault:"10s"`
	AuditDBPath         string        `env:"NOMINAWEB_AUDIT_DB_PATH" envDefault:"data/audit.db"`
	S3Bucket            string        `env:"NOMINAWEB_S3_BUCKET"`
	S3Region            string        `env:"NOMINAWEB_S3_REGION" envDefault:"us-east-1"`
	S3Endpoint          string        `env:"NOMINAWEB_S3_ENDPOINT"`
	S3PublicBaseURL     string        `env:"NOMINAWEB_S3_PUBLIC_BASE_URL"`
	LogLevel            string        `env:"NOMINAWEB_LOG_LEVEL" envDefault:"info"`
	LogFormat           string        `env:"NOMINAWEB_LOG_FORMAT" envDefault:"json"`
	DefaultLanguage     string        `env:"NOMINAWEB_DEFAULT_LANGUAGE" envDefault:"es-CO"`
	TrustForwardedProto bool          `env:"NOMINAWEB_TRUST_FORWARDED_PROTO"`
}

// ParseConfig parses environment and flags into Config.
func ParseConfig(fs *pflag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP listen address")
	fs.StringVar(&cfg.BackendURL, "backend-url", cfg.BackendURL, "REST backend base URL")
	fs.DurationVar(&cfg.BackendTimeout, "backend-timeout", cfg.BackendTimeout, "Timeout for each backend request")
	fs.StringVar(&cfg.AuditDBPath, "audit-db", cfg.AuditDBPath, "SQLite audit log path (blank disables history)")
	fs.StringVar(&cfg.S3Bucket, "s3-bucket", cfg.S3Bucket, "S3 bucket for uploads (blank uploads through the backend)")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "Log format: json or console")
	fs.StringVar(&cfg.DefaultLanguage, "lang", cfg.DefaultLanguage, "Fallback UI language")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run starts the web server.
func Run(ctx context.Context, cfg Config) error {
	logger, err := logging.New(cfg.LogLevel, logging.Format(cfg.LogFormat))
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	return entrypoint.RunWithTelemetryAndOptions(ctx, entrypoint.ServiceWeb, entrypoint.RunOptions{Logger: logger}, func(ctx context.Context) error {
		server, err := web.NewServer(ctx, serverConfig(cfg, logger))
		if err != nil {
			return fmt.Errorf("init web server: %w", err)
		}
		defer server.Close()

		if err := server.ListenAndServe(ctx); err != nil {
			return fmt.Errorf("serve web: %w", err)
		}
		return nil
	})
}

func serverConfig(cfg Config, logger *zap.Logger) web.Config {
	return web.Config{
		HTTPAddr: cfg.HTTPAddr,
		Backend: backend.Config{
			BaseURL: cfg.BackendURL,
			Token:   cfg.BackendToken,
			Timeout: cfg.BackendTimeout,
		},
		AuditDBPath: cfg.AuditDBPath,
		S3: filestore.S3Config{
			Bucket:        cfg.S3Bucket,
			Region:        cfg.S3Region,
			Endpoint:      cfg.S3Endpoint,
			PublicBaseURL: cfg.S3PublicBaseURL,
		},
		DefaultLanguage:     cfg.DefaultLanguage,
		TrustForwardedProto: cfg.TrustForwardedProto,
		Logger:              logger,
	}
}
