// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"
	"time"

	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
)

// appConfigKeys defines the configuration keys for TeamPlan.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: mongo_uri, token_key, etc.
//   - Environment variables: TEAMPLAN_MONGO_URI, TEAMPLAN_TOKEN_KEY, etc.
//   - Command-line flags: --mongo_uri, --token_key, etc.
var appConfigKeys = []config.AppKey{
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "teamplan", Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 100, Desc: "MongoDB max connection pool size (default: 100)"},
	{Name: "mongo_min_pool_size", Default: 10, Desc: "MongoDB min connection pool size (default: 10)"},

	{Name: "token_key", Default: "dev-only-change-me-please-0123456789ABCDEF", Desc: "HMAC signing key for bearer tokens (must be strong in production)"},
	{Name: "token_issuer", Default: "teamplan", Desc: "Issuer claim on bearer tokens"},
	{Name: "token_ttl", Default: "24h", Desc: "Bearer token lifetime (e.g., 24h, 30m)"},

	{Name: "enable_seed", Default: true, Desc: "Mount POST /api/seed for destructive dev reseeding"},

	{Name: "default_max_capacity", Default: 100, Desc: "Default engineer max capacity percentage"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// WAFFLE's config.LoadWithAppConfig handles .env files, config files,
// environment variables (WAFFLE_* for core, TEAMPLAN_* for app), and
// command-line flags, merged with precedence flags > env > files >
// defaults.
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "TEAMPLAN", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		MongoURI:         appValues.String("mongo_uri"),
		MongoDatabase:    appValues.String("mongo_database"),
		MongoMaxPoolSize: uint64(appValues.Int("mongo_max_pool_size")),
		MongoMinPoolSize: uint64(appValues.Int("mongo_min_pool_size")),

		TokenKey:    appValues.String("token_key"),
		TokenIssuer: appValues.String("token_issuer"),
		TokenTTL:    appValues.Duration("token_ttl", 24*time.Hour),

		EnableSeed: appValues.Bool("enable_seed"),

		DefaultMaxCapacity: appValues.Int("default_max_capacity"),
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation.
//
// TeamPlan validates the MongoDB URI format to catch configuration errors
// early, before attempting to connect, and refuses to start in prod with
// the development token key.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
		logger.Error("invalid MongoDB URI", zap.Error(err))
		return fmt.Errorf("invalid MongoDB URI: %w", err)
	}

	if appCfg.TokenKey == "" {
		return fmt.Errorf("token_key must be set")
	}
	if coreCfg.Env == "prod" && appCfg.TokenKey == "dev-only-change-me-please-0123456789ABCDEF" {
		return fmt.Errorf("token_key must be changed from the development default in prod")
	}

	if appCfg.DefaultMaxCapacity < 0 || appCfg.DefaultMaxCapacity > 100 {
		return fmt.Errorf("default_max_capacity must be between 0 and 100, got %d", appCfg.DefaultMaxCapacity)
	}

	if appCfg.EnableSeed && coreCfg.Env == "prod" {
		logger.Warn("enable_seed is on in prod; POST /api/seed will wipe the database")
	}

	return nil
}
