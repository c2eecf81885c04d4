package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/alnah/coinpaprika-cli/internal/cli"
)

// Injected at build time via ldflags.
var version = "dev"

func main() {
	// Load .env file if present (ignore error if missing).
	// Variables already set in the environment win.
	_ = godotenv.Load()

	if version != "dev" {
		cli.Version = version
	}

	// Context with signal cancellation.
	ctx, cancel := signal.NotifyContext(context.Background(),
		syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	code := cli.Run(ctx, cli.DefaultEnv(), os.Args[1:])
	cancel()
	os.Exit(code)
}
