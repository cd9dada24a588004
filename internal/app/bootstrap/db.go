// internal/app/bootstrap/db.go
package bootstrap

import (
	"context"
	"fmt"

	"github.com/dalemusser/waffle/config"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"

	ledgerstore "github.com/dalemusser/agorahub/internal/app/store/ledger"
)

// ConnectDB opens the MongoDB client and verifies connectivity.
func ConnectDB(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) (DBDeps, error) {
	opts := options.Client().
		ApplyURI(appCfg.MongoURI).
		SetMaxPoolSize(appCfg.MongoMaxPoolSize).
		SetMinPoolSize(appCfg.MongoMinPoolSize)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return DBDeps{}, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return DBDeps{}, fmt.Errorf("mongo ping: %w", err)
	}

	logger.Info("connected to MongoDB", zap.String("database", appCfg.MongoDatabase))
	return DBDeps{
		MongoClient:   client,
		MongoDatabase: client.Database(appCfg.MongoDatabase),
	}, nil
}

// EnsureSchema creates the indexes the ledger relies on and seeds the
// treasury pools if this is a fresh database. The unique payout index is
// what makes reward crediting idempotent across finalize retries.
func EnsureSchema(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	ledger := ledgerstore.New(deps.MongoDatabase)

	if err := ledger.EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("ledger indexes: %w", err)
	}
	if err := ledger.SeedTreasury(ctx, appCfg.TreasuryREPPool, appCfg.TreasuryPHILPool); err != nil {
		return fmt.Errorf("seed treasury: %w", err)
	}

	logger.Info("schema ensured",
		zap.Int64("treasury_rep_pool", appCfg.TreasuryREPPool),
		zap.Int64("treasury_phil_pool", appCfg.TreasuryPHILPool))
	return nil
}
