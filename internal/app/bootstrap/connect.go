// internal/app/bootstrap/connect.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/teamplan/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/config"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

// ConnectDB establishes the MongoDB connection and returns the DBDeps
// bundle used by the rest of the lifecycle hooks.
func ConnectDB(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) (DBDeps, error) {
	opts := options.Client().
		ApplyURI(appCfg.MongoURI).
		SetMaxPoolSize(appCfg.MongoMaxPoolSize).
		SetMinPoolSize(appCfg.MongoMinPoolSize)

	connectCtx, cancel := context.WithTimeout(ctx, timeouts.Long())
	defer cancel()

	client, err := mongo.Connect(connectCtx, opts)
	if err != nil {
		logger.Error("mongo connect failed", zap.Error(err))
		return DBDeps{}, err
	}

	pingCtx, cancelPing := context.WithTimeout(ctx, timeouts.Ping())
	defer cancelPing()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		logger.Error("mongo ping failed", zap.Error(err))
		_ = client.Disconnect(ctx)
		return DBDeps{}, err
	}

	logger.Info("connected to MongoDB",
		zap.String("database", appCfg.MongoDatabase))

	return DBDeps{
		TeamPlanMongoClient:   client,
		TeamPlanMongoDatabase: client.Database(appCfg.MongoDatabase),
	}, nil
}
