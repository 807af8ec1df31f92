// Package cache stores ranking results keyed by a digest of the request.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/zeebo/blake3"
)

// KeyPrefix namespaces taskrank entries in shared stores.
const KeyPrefix = "taskrank:ranking:"

// ErrMiss is returned by Get when the key holds no value.
var ErrMiss = errors.New("cache miss")

// Cache is a byte-value store with expiry.
type Cache interface {
	// Get returns the stored value or ErrMiss.
	Get(ctx context.Context, key string) ([]byte, error)
	// Set stores value under key. A ttl of 0 means no expiry.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// Key digests parts into a hex blake3 key. Each part is length-prefixed so
// that moving bytes between parts changes the key.
func Key(parts ...[]byte) string {
	hasher := blake3.New()
	for _, part := range parts {
		_, _ = fmt.Fprintf(hasher, "%d:", len(part))
		_, _ = hasher.Write(part)
	}
	return fmt.Sprintf("%x", hasher.Sum(nil))
}
