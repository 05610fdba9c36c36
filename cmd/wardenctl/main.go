package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/Nixie-Tech-LLC/warden/internal/cli"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	path := cli.DefaultConfigPath()
	if v := os.Getenv("WARDENCTL_CONFIG"); v != "" {
		path = v
	}
	cfg, err := cli.LoadConfig(path)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return cli.NewApp(cfg, path).ExecuteContext(ctx)
}
