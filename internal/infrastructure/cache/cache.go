// Package cache provides a query-result cache used to serve repeated
// dashboard and roster reads without hitting the database.
package cache

import (
	"context"
	"time"
)

// QueryCache stores serialized query results under string keys.
// Implementations must treat a missing key as a miss, not an error.
type QueryCache interface {
	// Get returns the cached value for key. The second return value
	// reports whether the key was present.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores value under key for ttl. A non-positive ttl means
	// the entry does not expire.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Invalidate removes the given keys. Missing keys are ignored.
	Invalidate(ctx context.Context, keys ...string) error
}

// Cache keys shared between services. Writers invalidate these after
// every successful mutation so readers never see stale roll-ups.
const (
	KeyDashboardStats = "query:dashboard:stats"
	KeyRosterEntries  = "query:roster:entries"
	KeyPropertyCities = "query:properties:cities"
	KeyPropertyNames  = "query:properties:names"
)
