package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	mcpadapter "github.com/felixgeelhaar/taskrank/adapter/mcp"
	"github.com/felixgeelhaar/taskrank/internal/app"
	"github.com/felixgeelhaar/taskrank/pkg/config"
	"github.com/felixgeelhaar/taskrank/pkg/observability"
)

var version = "dev"

func main() {
	logger := observability.LoggerFromEnv(version)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load(os.Getenv("TASKRANK_CONFIG"))
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	container, err := app.NewContainer(ctx, cfg, logger, app.Options{})
	if err != nil {
		logger.Error("failed to initialize container", "error", err)
		os.Exit(1)
	}
	defer container.Close()

	err = mcpadapter.Serve(ctx, mcpadapter.ServeConfig{
		Addr:      cfg.MCPAddr,
		AuthToken: cfg.MCPAuthToken,
		Version:   version,
	}, mcpadapter.DependenciesFrom(container), logger)
	if err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("mcp server error", "error", err)
		container.Close()
		os.Exit(1)
	}
}
