// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). They represent *app-level*
// configuration, not WAFFLE core configuration: HTTP ports, TLS, logging
// level, and the like live in CoreConfig.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64 // Max connections in the driver pool
	MongoMinPoolSize uint64 // Min connections kept warm in the pool

	// Bearer token configuration
	TokenKey    string        // HMAC signing key for issued tokens (must be strong in production)
	TokenIssuer string        // Issuer claim stamped on tokens
	TokenTTL    time.Duration // Token lifetime (default 24h)

	// Development helpers
	EnableSeed bool // Mount POST /api/seed (destructive reseed); dev only

	// Domain defaults
	DefaultMaxCapacity int // Capacity assigned to engineers who omit max_capacity
}
