package database

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Config holds database configuration.
type Config struct {
	// Driver forces a backend. Empty means detect from URL.
	Driver Driver
	// URL is the connection string. For SQLite it may be a path or a
	// sqlite:// URL; SQLitePath wins when both are set.
	URL string
	// SQLitePath is the SQLite database file. Defaults to DefaultSQLitePath.
	SQLitePath string
	// MaxConns caps the PostgreSQL pool.
	MaxConns int
}

// Opener creates a connection for one driver.
type Opener func(ctx context.Context, cfg Config) (Connection, error)

var openers = map[Driver]Opener{}

// Register makes a driver available to Open. Driver packages call it from init.
func Register(driver Driver, open Opener) {
	openers[driver] = open
}

// Open connects to the configured backend. The driver package must have
// been imported for its side effect of registering itself.
func Open(ctx context.Context, cfg Config) (Connection, error) {
	driver := cfg.Driver
	if driver == "" {
		driver = DetectDriver(cfg.URL)
	}
	if driver == DriverSQLite && cfg.SQLitePath == "" {
		cfg.SQLitePath = SQLitePathFromURL(cfg.URL)
	}

	open, ok := openers[driver]
	if !ok {
		return nil, fmt.Errorf("unsupported database driver: %s", driver)
	}
	return open(ctx, cfg)
}

// SQLitePathFromURL strips the sqlite:// scheme from url.
func SQLitePathFromURL(url string) string {
	return strings.TrimPrefix(url, "sqlite://")
}

// DefaultSQLitePath returns ~/.taskrank/taskrank.db.
func DefaultSQLitePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = "."
	}
	return filepath.Join(homeDir, ".taskrank", "taskrank.db")
}

// EnsureDirectory creates the parent directory of path.
func EnsureDirectory(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0o755)
}
