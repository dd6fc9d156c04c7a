// Package timeouts provides centralized timeout values for handler
// operations. Handlers wrap store calls in context.WithTimeout using one of
// these tiers so one slow Mongo call cannot pin a request forever.
//
// Guidelines:
//   - Ping: health checks and connectivity verification
//   - Short: single-document reads or lookups
//   - Medium: list queries, moderate writes, capacity computations
//   - Long: multi-collection operations (reseeding, joined reports)
package timeouts

import (
	"sync"
	"time"
)

// Default timeout values (used if Configure is not called).
const (
	DefaultPing   = 2 * time.Second
	DefaultShort  = 5 * time.Second
	DefaultMedium = 10 * time.Second
	DefaultLong   = 30 * time.Second
)

var (
	mu     sync.RWMutex
	ping   = DefaultPing
	short  = DefaultShort
	medium = DefaultMedium
	long   = DefaultLong
)

// Ping returns the timeout for health checks.
func Ping() time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return ping
}

// Short returns the timeout for single-document reads.
// Examples: get by ID, lookup by email.
func Short() time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return short
}

// Medium returns the timeout for list queries and simple writes.
func Medium() time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return medium
}

// Long returns the timeout for operations touching multiple collections.
// Examples: utilization reports, seed runs, deletes with reference checks.
func Long() time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return long
}

// Config holds timeout overrides. Zero values are ignored.
type Config struct {
	Ping   time.Duration
	Short  time.Duration
	Medium time.Duration
	Long   time.Duration
}

// Configure sets custom timeout values during startup. Zero values keep the
// current (or default) values.
func Configure(cfg Config) {
	mu.Lock()
	defer mu.Unlock()
	if cfg.Ping > 0 {
		ping = cfg.Ping
	}
	if cfg.Short > 0 {
		short = cfg.Short
	}
	if cfg.Medium > 0 {
		medium = cfg.Medium
	}
	if cfg.Long > 0 {
		long = cfg.Long
	}
}

// Reset restores defaults. Useful for testing.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	ping = DefaultPing
	short = DefaultShort
	medium = DefaultMedium
	long = DefaultLong
}
