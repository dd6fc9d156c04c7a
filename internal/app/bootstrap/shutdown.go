// internal/app/bootstrap/shutdown.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// Shutdown cleanly tears down DB connections and other resources.
func Shutdown(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if deps.TeamPlanMongoClient != nil {
		logger.Info("disconnecting TeamPlan MongoDB client")
		if err := deps.TeamPlanMongoClient.Disconnect(ctx); err != nil {
			logger.Error("MongoDB disconnect failed", zap.Error(err))
			return err
		}
	}
	return nil
}
