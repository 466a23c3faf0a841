// Package main provides the entry point for the leasefill CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/fang"

	"github.com/custodia-labs/leasefill/internal/adapters/driven/envfile"
	"github.com/custodia-labs/leasefill/internal/adapters/driving/cli"
)

// Build info set via ldflags at build time.
// Example: go build -ldflags "-X main.version=1.0.0 -X main.commit=abc123 -X main.date=2025-01-01"
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// buildVersion returns the full version string including commit and date.
func buildVersion() string {
	if commit == "none" && date == "unknown" {
		return version
	}
	shortCommit := commit
	if len(commit) > 7 {
		shortCommit = commit[:7]
	}
	return fmt.Sprintf("%s (%s, %s)", version, shortCommit, date)
}

func main() {
	os.Exit(run())
}

func run() int {
	// Variables already in the environment win over .env values.
	if _, err := envfile.Load(envfile.DefaultFile); err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
	}

	cli.SetVersion(buildVersion())
	cli.SetAppFactory(buildApp)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := fang.Execute(ctx, cli.Root(), fang.WithVersion(buildVersion())); err != nil {
		return 1
	}
	return 0
}
