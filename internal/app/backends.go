package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/abgdnv/superstore/internal/config"
	"github.com/abgdnv/superstore/internal/customer"
	"github.com/abgdnv/superstore/internal/migrations"
	"github.com/abgdnv/superstore/internal/store"
	"github.com/abgdnv/superstore/internal/transport/rest"
	"github.com/abgdnv/superstore/pkg/bootstrap"
	pconfig "github.com/abgdnv/superstore/pkg/config"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const healthTimeout = 2 * time.Second

// Backends are the product and customer stores selected by storage.driver.
type Backends struct {
	Products  store.ProductStore
	Customers customer.Store
	Checks    map[string]rest.HealthCheck
	// Close releases the connections held by the stores.
	Close func()
}

// NewBackends connects to the configured storage and prepares its schema.
func NewBackends(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Backends, error) {
	switch cfg.Storage.Driver {
	case pconfig.StorageMemory:
		logger.Warn("Using in-memory storage, data is lost on restart")
		return &Backends{
			Products:  store.NewInMemoryStore(),
			Customers: customer.NewInMemoryStore(),
			Checks:    map[string]rest.HealthCheck{},
			Close:     func() {},
		}, nil
	case pconfig.StoragePostgres:
		return newPostgresBackends(ctx, cfg.Database, logger)
	case pconfig.StorageMongo:
		return newMongoBackends(ctx, cfg.Mongo, logger)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}

func newPostgresBackends(ctx context.Context, cfg pconfig.DatabaseConfig, logger *slog.Logger) (*Backends, error) {
	if cfg.Migrate {
		if err := bootstrap.Migrate(migrations.FS, cfg.URL); err != nil {
			return nil, err
		}
		logger.Info("Database migrations applied")
	}
	dbPool, err := bootstrap.NewDbPool(ctx, cfg.URL, cfg.Timeout)
	if err != nil {
		return nil, fmt.Errorf("failed to create database connection pool: %w", err)
	}
	logger.Info("Successfully connected to the database!")

	return &Backends{
		Products:  store.NewPgStore(dbPool),
		Customers: customer.NewPgStore(dbPool),
		Checks: map[string]rest.HealthCheck{
			"postgres": dbPool.Ping,
		},
		Close: dbPool.Close,
	}, nil
}

func newMongoBackends(ctx context.Context, cfg pconfig.MongoConfig, logger *slog.Logger) (*Backends, error) {
	client, err := bootstrap.NewMongoClient(ctx, cfg.URI, cfg.Timeout)
	if err != nil {
		return nil, err
	}
	closeClient := func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), cfg.Timeout)
		defer cancel()
		if err := client.Disconnect(disconnectCtx); err != nil {
			logger.Error("Failed to disconnect from MongoDB", "error", err)
		}
	}
	db := client.Database(cfg.Database)

	customers := customer.NewMongoStore(db)
	if err := customers.EnsureIndexes(ctx); err != nil {
		closeClient()
		return nil, err
	}
	logger.Info("Successfully connected to MongoDB!", "database", cfg.Database)

	return &Backends{
		Products:  store.NewMongoStore(db),
		Customers: customers,
		Checks: map[string]rest.HealthCheck{
			"mongo": func(ctx context.Context) error {
				return client.Ping(ctx, readpref.Primary())
			},
		},
		Close: closeClient,
	}, nil
}
