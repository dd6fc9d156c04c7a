// internal/app/bootstrap/db.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/teamplan/internal/app/system/indexes"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// EnsureSchema creates the collection indexes the app depends on.
func EnsureSchema(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if err := indexes.EnsureAll(ctx, deps.TeamPlanMongoDatabase); err != nil {
		logger.Error("index creation failed", zap.Error(err))
		return err
	}
	return nil
}
