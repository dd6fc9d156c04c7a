// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	analyticsfeature "github.com/dalemusser/teamplan/internal/app/features/analytics"
	assignmentsfeature "github.com/dalemusser/teamplan/internal/app/features/assignments"
	authapifeature "github.com/dalemusser/teamplan/internal/app/features/authapi"
	engineersfeature "github.com/dalemusser/teamplan/internal/app/features/engineers"
	healthfeature "github.com/dalemusser/teamplan/internal/app/features/health"
	projectsfeature "github.com/dalemusser/teamplan/internal/app/features/projects"
	seedfeature "github.com/dalemusser/teamplan/internal/app/features/seed"
	"github.com/dalemusser/teamplan/internal/app/system/apierr"
	"github.com/dalemusser/teamplan/internal/app/system/auth"
	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed. TeamPlan creates the bearer-token
// manager, applies token middleware globally, and mounts the JSON feature
// routers: auth, engineers, projects, assignments, analytics, and health,
// plus the seed endpoint when enabled.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	tokens, err := auth.NewTokenManager(appCfg.TokenKey, appCfg.TokenIssuer, appCfg.TokenTTL, logger)
	if err != nil {
		logger.Error("token manager init failed", zap.Error(err))
		return nil, err
	}

	// Error logger for handlers: logs detail, responds with a generic 500.
	errLog := apierr.NewErrorLogger(logger)

	db := deps.TeamPlanMongoDatabase

	r := chi.NewRouter()

	// Global auth middleware: loads TokenUser into context when a valid
	// bearer token is present. Requests without a token pass through
	// anonymously; route groups enforce sign-in and roles.
	r.Use(tokens.LoadTokenUser)

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.TeamPlanMongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	authHandler := authapifeature.NewHandler(db, tokens, appCfg.DefaultMaxCapacity, errLog, logger)
	r.Mount("/api/auth", authapifeature.Routes(authHandler))

	engineersHandler := engineersfeature.NewHandler(db, errLog, logger)
	r.Mount("/api/engineers", engineersfeature.Routes(engineersHandler))

	projectsHandler := projectsfeature.NewHandler(db, errLog, logger)
	r.Mount("/api/projects", projectsfeature.Routes(projectsHandler))

	assignmentsHandler := assignmentsfeature.NewHandler(db, errLog, logger)
	r.Mount("/api/assignments", assignmentsfeature.Routes(assignmentsHandler))

	analyticsHandler := analyticsfeature.NewHandler(db, errLog, logger)
	r.Mount("/api/analytics", analyticsfeature.Routes(analyticsHandler))

	if appCfg.EnableSeed {
		seedHandler := seedfeature.NewHandler(db, errLog, logger)
		r.Mount("/api/seed", seedfeature.Routes(seedHandler))
	}

	return r, nil
}
