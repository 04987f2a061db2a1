// Package main runs the nominactl command-line client.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/nominaweb/nominaweb/internal/cmd/nominactl"
	"github.com/nominaweb/nominaweb/internal/platform/config"
)

func main() {
	cfg, err := nominactl.LoadConfig()
	if err != nil {
		config.Exitf("nominactl: %v", err)
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := nominactl.Execute(ctx, cfg, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}
