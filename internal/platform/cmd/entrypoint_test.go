package cmd

import (
	"context"
	"errors"
	"testing"

	"github.com/spf13/pflag"
)

type testConfig struct {
	Address string `env:"NOMINAWEB_CMD_TEST_ADDRESS" envDefault:"127.0.0.1:8080"`
	Mode    string `env:"NOMINAWEB_CMD_TEST_MODE" envDefault:"server"`
}

func TestParseConfigReadsEnvAndFlags(t *testing.T) {
	t.Setenv("NOMINAWEB_CMD_TEST_ADDRESS", "env:9000")
	t.Setenv("NOMINAWEB_CMD_TEST_MODE", "env-mode")

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	cfg := testConfig{}
	if err := ParseConfig(&cfg); err != nil {
		t.Fatalf("load config defaults: %v", err)
	}
	fs.StringVar(&cfg.Address, "address", cfg.Address, "address")
	fs.StringVar(&cfg.Mode, "mode", cfg.Mode, "mode")

	if err := ParseArgs(fs, []string{"--address", "flag:9001"}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	if cfg.Address != "flag:9001" {
		t.Fatalf("address = %q, want flag value", cfg.Address)
	}
	if cfg.Mode != "env-mode" {
		t.Fatalf("mode = %q, want env value", cfg.Mode)
	}
}

func TestParseConfigFromArgsAppliesFlagsAfterEnv(t *testing.T) {
	t.Setenv("NOMINAWEB_CMD_TEST_ADDRESS", "env:9000")

	cfg := testConfig{}
	fs := pflag.NewFlagSet("configargs", pflag.ContinueOnError)
	fs.StringVar(&cfg.Address, "address", "", "address")
	if err := ParseConfigFromArgs(&cfg, fs, []string{"--address=flag:9002"}); err != nil {
		t.Fatalf("parse config and args: %v", err)
	}
	if cfg.Address != "flag:9002" {
		t.Fatalf("address = %q, want flag:9002", cfg.Address)
	}
}

func TestParseConfigRejectsNilTarget(t *testing.T) {
	if err := ParseConfig[testConfig](nil); err == nil {
		t.Fatal("expected nil config target error")
	}
	if err := ParseArgs(nil, nil); err == nil {
		t.Fatal("expected nil parser error")
	}
}

func TestRunWithTelemetryRejectsMissingInputs(t *testing.T) {
	if err := RunWithTelemetry(context.Background(), "", func(context.Context) error { return nil }); err == nil {
		t.Fatal("expected missing service error")
	}
	if err := RunWithTelemetry(context.Background(), ServiceWeb, nil); err == nil {
		t.Fatal("expected missing run function error")
	}
}

func TestRunWithTelemetryReturnsRunError(t *testing.T) {
	t.Setenv("NOMINAWEB_OTEL_ENDPOINT", "")

	want := errors.New("listen failed")
	err := RunWithTelemetry(context.Background(), ServiceWeb, func(context.Context) error { return want })
	if !errors.Is(err, want) {
		t.Fatalf("err = %v, want %v", err, want)
	}
}
