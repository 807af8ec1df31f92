package cache

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/sony/gobreaker/v2"
)

// BreakerConfig tunes the circuit breaker around a cache.
type BreakerConfig struct {
	// FailureThreshold is the number of consecutive failures that opens the breaker.
	FailureThreshold uint32
	// Timeout is how long the breaker stays open before probing again.
	Timeout time.Duration
	// MaxRequests is the number of probes allowed while half-open.
	MaxRequests uint32
}

// DefaultBreakerConfig returns the production settings.
func DefaultBreakerConfig() BreakerConfig {
	return BreakerConfig{
		FailureThreshold: 5,
		Timeout:          30 * time.Second,
		MaxRequests:      1,
	}
}

// BreakerCache guards another cache with a circuit breaker. While the
// breaker is open, Get reports a miss and Set does nothing, so a failing
// store costs no round trips.
type BreakerCache struct {
	next    Cache
	breaker *gobreaker.CircuitBreaker[[]byte]
	logger  *slog.Logger
}

// NewBreakerCache wraps next.
func NewBreakerCache(next Cache, cfg BreakerConfig, logger *slog.Logger) *BreakerCache {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.FailureThreshold == 0 {
		cfg.FailureThreshold = DefaultBreakerConfig().FailureThreshold
	}

	settings := gobreaker.Settings{
		Name:        "cache",
		MaxRequests: cfg.MaxRequests,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.FailureThreshold
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, ErrMiss)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state changed",
				"breaker", name,
				"from", from.String(),
				"to", to.String(),
			)
		},
	}

	return &BreakerCache{
		next:    next,
		breaker: gobreaker.NewCircuitBreaker[[]byte](settings),
		logger:  logger,
	}
}

// Get implements Cache.
func (c *BreakerCache) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := c.breaker.Execute(func() ([]byte, error) {
		return c.next.Get(ctx, key)
	})
	if isBreakerRejection(err) {
		return nil, ErrMiss
	}
	return val, err
}

// Set implements Cache.
func (c *BreakerCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	_, err := c.breaker.Execute(func() ([]byte, error) {
		return nil, c.next.Set(ctx, key, value, ttl)
	})
	if isBreakerRejection(err) {
		c.logger.DebugContext(ctx, "cache write skipped, breaker open")
		return nil
	}
	return err
}

// State returns the breaker state name.
func (c *BreakerCache) State() string {
	return c.breaker.State().String()
}

func isBreakerRejection(err error) bool {
	return errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests)
}
