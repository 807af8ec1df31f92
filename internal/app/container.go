// Package app wires taskrank's components from configuration.
package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/felixgeelhaar/taskrank/internal/ranking/application/commands"
	"github.com/felixgeelhaar/taskrank/internal/ranking/application/queries"
	"github.com/felixgeelhaar/taskrank/internal/ranking/application/services"
	"github.com/felixgeelhaar/taskrank/internal/ranking/domain/scoring"
	"github.com/felixgeelhaar/taskrank/internal/ranking/domain/tasklist"
	"github.com/felixgeelhaar/taskrank/internal/ranking/infrastructure/cache"
	"github.com/felixgeelhaar/taskrank/internal/ranking/infrastructure/persistence"
	"github.com/felixgeelhaar/taskrank/internal/ranking/infrastructure/validation"
	"github.com/felixgeelhaar/taskrank/internal/shared/infrastructure/database"
	_ "github.com/felixgeelhaar/taskrank/internal/shared/infrastructure/database/postgres" // Register PostgreSQL driver
	_ "github.com/felixgeelhaar/taskrank/internal/shared/infrastructure/database/sqlite"   // Register SQLite driver
	"github.com/felixgeelhaar/taskrank/internal/shared/infrastructure/eventbus"
	"github.com/felixgeelhaar/taskrank/internal/shared/infrastructure/migrations"
	"github.com/felixgeelhaar/taskrank/pkg/config"
	"github.com/felixgeelhaar/taskrank/pkg/observability"
)

// Options adjusts a container beyond what the configuration covers.
type Options struct {
	// Clock overrides the system clock, e.g. from the CLI --today flag.
	Clock scoring.Clock
	// SkipStore leaves the task-list store unconfigured. Commands that need
	// it return tasklist.ErrUnavailable.
	SkipStore bool
}

// Container holds all application dependencies.
type Container struct {
	Config  *config.Config
	Logger  *slog.Logger
	Metrics *observability.InMemoryMetrics
	Health  *observability.HealthRegistry

	Validator *validation.Validator
	Ranker    *services.Ranker

	DBConn      database.Connection
	TaskLists   tasklist.Repository
	RedisClient *redis.Client
	Cache       cache.Cache

	EventPublisher eventbus.Publisher
	EventBus       *eventbus.InProcessBus

	AnalyzeTasksHandler   *commands.AnalyzeTasksHandler
	SuggestTasksHandler   *commands.SuggestTasksHandler
	SaveTaskListHandler   *commands.SaveTaskListHandler
	DeleteTaskListHandler *commands.DeleteTaskListHandler

	GetTaskListHandler    *queries.GetTaskListHandler
	ListTaskListsHandler  *queries.ListTaskListsHandler
	ListStrategiesHandler *queries.ListStrategiesHandler
}

// NewContainer builds every component. Optional backends (Redis, RabbitMQ,
// the task-list store) fall back to in-process implementations outside
// production when they cannot be reached.
func NewContainer(ctx context.Context, cfg *config.Config, logger *slog.Logger, opts Options) (*Container, error) {
	if logger == nil {
		logger = slog.Default()
	}

	defaultStrategy, ok := scoring.ParseStrategy(cfg.DefaultStrategy)
	if !ok {
		return nil, fmt.Errorf("invalid default strategy %q", cfg.DefaultStrategy)
	}

	validator, err := validation.New()
	if err != nil {
		return nil, err
	}

	c := &Container{
		Config:    cfg,
		Logger:    logger,
		Metrics:   observability.NewInMemoryMetrics(),
		Health:    observability.NewHealthRegistry(),
		Validator: validator,
		Ranker:    services.NewRanker(scoring.NewScorer(opts.Clock)),
	}

	if !opts.SkipStore {
		if err := c.initStore(ctx); err != nil {
			c.Close()
			return nil, err
		}
	}
	if err := c.initCache(ctx); err != nil {
		c.Close()
		return nil, err
	}
	if err := c.initEvents(); err != nil {
		c.Close()
		return nil, err
	}

	cmdOpts := commands.Options{
		DefaultStrategy: defaultStrategy,
		StrictStrategy:  cfg.StrictStrategy,
		MaxBatchSize:    cfg.MaxBatchSize,
		SuggestLimit:    cfg.SuggestLimit,
		CacheTTL:        cfg.CacheTTL,
	}

	c.AnalyzeTasksHandler = commands.NewAnalyzeTasksHandler(c.Ranker, c.TaskLists, c.Cache, c.EventPublisher, c.Metrics, logger, cmdOpts)
	c.SuggestTasksHandler = commands.NewSuggestTasksHandler(c.Ranker, c.TaskLists, c.EventPublisher, c.Metrics, logger, cmdOpts)
	c.SaveTaskListHandler = commands.NewSaveTaskListHandler(c.TaskLists, c.EventPublisher, c.Metrics, logger, cmdOpts)
	c.DeleteTaskListHandler = commands.NewDeleteTaskListHandler(c.TaskLists, c.EventPublisher, c.Metrics, logger)

	c.GetTaskListHandler = queries.NewGetTaskListHandler(c.TaskLists)
	c.ListTaskListsHandler = queries.NewListTaskListsHandler(c.TaskLists)
	c.ListStrategiesHandler = queries.NewListStrategiesHandler(defaultStrategy)

	return c, nil
}

func (c *Container) initStore(ctx context.Context) error {
	driver, ok := database.ParseDriver(c.Config.DatabaseDriver)
	if !ok {
		return fmt.Errorf("unsupported database driver %q", c.Config.DatabaseDriver)
	}

	conn, err := database.Open(ctx, database.Config{
		Driver:     driver,
		URL:        c.Config.DatabaseURL,
		SQLitePath: c.Config.SQLitePath,
	})
	if err == nil {
		if err = migrations.Run(ctx, conn); err != nil {
			_ = conn.Close()
		}
	}
	if err != nil {
		if c.Config.IsProduction() {
			return fmt.Errorf("failed to open task list store: %w", err)
		}
		c.Logger.Warn("task list store unavailable, saved lists are disabled", "error", err)
		return nil
	}

	repo, err := persistence.NewTaskListRepository(conn)
	if err != nil {
		_ = conn.Close()
		return err
	}

	c.DBConn = conn
	c.TaskLists = repo
	c.Health.Register("database", observability.PingChecker("database", observability.HealthStatusUnhealthy, conn.Ping))
	c.Logger.Debug("task list store ready", "driver", conn.Driver())
	return nil
}

func (c *Container) initCache(ctx context.Context) error {
	if c.Config.RedisURL == "" {
		c.Cache = cache.NewMemoryCache()
		return nil
	}

	opt, err := redis.ParseURL(c.Config.RedisURL)
	if err != nil {
		return fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	client := redis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		if c.Config.IsProduction() {
			return fmt.Errorf("failed to connect to Redis: %w", err)
		}
		c.Logger.Warn("Redis not available, using in-memory cache", "error", err)
		c.Cache = cache.NewMemoryCache()
		return nil
	}

	c.RedisClient = client
	c.Cache = cache.NewBreakerCache(cache.NewRedisCache(client), cache.DefaultBreakerConfig(), c.Logger)
	c.Health.Register("redis", observability.PingChecker("redis", observability.HealthStatusDegraded, func(ctx context.Context) error {
		return client.Ping(ctx).Err()
	}))
	c.Logger.Debug("connected to Redis")
	return nil
}

func (c *Container) initEvents() error {
	if c.Config.RabbitMQURL != "" {
		publisher, err := eventbus.NewRabbitMQPublisher(c.Config.RabbitMQURL, c.Logger)
		if err == nil {
			c.EventPublisher = publisher
			c.Health.Register("rabbitmq", observability.PingChecker("rabbitmq", observability.HealthStatusDegraded, publisher.Ping))
			return nil
		}
		if c.Config.IsProduction() {
			return err
		}
		c.Logger.Warn("RabbitMQ not available, using in-process event bus", "error", err)
	}

	bus := eventbus.NewInProcessBus(c.Logger)
	bus.Subscribe(newActivityLog(c.Logger, c.Metrics))
	c.EventBus = bus
	c.EventPublisher = bus
	return nil
}

// Close releases every connection.
func (c *Container) Close() {
	if c.EventPublisher != nil {
		if err := c.EventPublisher.Close(); err != nil {
			c.Logger.Warn("error closing event publisher", "error", err)
		}
	}

	if c.RedisClient != nil {
		if err := c.RedisClient.Close(); err != nil {
			c.Logger.Warn("error closing Redis connection", "error", err)
		}
	}

	if c.DBConn != nil {
		if err := c.DBConn.Close(); err != nil {
			c.Logger.Warn("error closing database connection", "error", err)
		}
	}
}
