package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/taskrank/internal/app"
	"github.com/felixgeelhaar/taskrank/internal/ranking/domain/scoring"
	"github.com/felixgeelhaar/taskrank/internal/ranking/domain/task"
	"github.com/felixgeelhaar/taskrank/pkg/config"
	"github.com/felixgeelhaar/taskrank/pkg/observability"
)

// container is built on first use so that flags such as --today and
// --config are parsed before it exists.
var container *app.Container

// SetApp installs a prebuilt container. Tests use it to pin the clock.
func SetApp(c *app.Container) {
	container = c
}

// GetApp returns the installed container, if any.
func GetApp() *app.Container {
	return container
}

// needs describes what a command requires from the container.
type needs struct {
	store bool
	today string
}

// loadApp returns the container, building it from configuration when none
// is installed.
func loadApp(cmd *cobra.Command, n needs) (*app.Container, error) {
	if container != nil {
		return container, nil
	}

	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}

	logCfg := observability.LogConfigFor(cfg.AppEnv)
	logCfg.Level = observability.LogLevel(cfg.LogLevel)
	logCfg.Format = observability.LogFormat(cfg.LogFormat)
	logCfg.ServiceVersion = Version
	if verbose {
		logCfg.Level = observability.LogLevelDebug
	}
	SetLogger(observability.NewLogger(logCfg))

	opts := app.Options{SkipStore: !n.store}
	if n.today != "" {
		today, err := task.ParseDate(n.today)
		if err != nil {
			return nil, fmt.Errorf("invalid --today: %w", err)
		}
		opts.Clock = scoring.NewFixedClock(today)
	}

	c, err := app.NewContainer(cmd.Context(), cfg, getLogger(), opts)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize: %w", err)
	}
	container = c
	return c, nil
}

func closeApp() {
	if container != nil {
		container.Close()
		container = nil
	}
}
