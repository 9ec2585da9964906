// Package app assembles the storage backend, price feed, backup sinks and
// services from a Config. Both the HTTP server and ledgerctl start here.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/ndewijer/Investment-Tracker-Backend/internal/api"
	"github.com/ndewijer/Investment-Tracker-Backend/internal/backup"
	"github.com/ndewijer/Investment-Tracker-Backend/internal/config"
	"github.com/ndewijer/Investment-Tracker-Backend/internal/database"
	"github.com/ndewijer/Investment-Tracker-Backend/internal/pricefeed"
	"github.com/ndewijer/Investment-Tracker-Backend/internal/service"
)

// App holds the wired services and the resources they depend on.
type App struct {
	Services api.Services

	closers []func()
}

// New opens the configured database, applies migrations and wires every
// service. Close releases what New opened.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	a := &App{}

	stores, health, version, err := a.openStorage(ctx, cfg.Database, logger)
	if err != nil {
		a.Close()
		return nil, err
	}

	provider, err := a.priceProvider(ctx, cfg, logger)
	if err != nil {
		a.Close()
		return nil, err
	}

	sinks, err := backupSinks(ctx, cfg)
	if err != nil {
		a.Close()
		return nil, err
	}

	info := service.SystemInfo{
		DbDriver:  cfg.Database.Driver,
		DbVersion: version,
		Features: map[string]bool{
			"priceFeed":        provider != nil,
			"quoteCache":       cfg.Redis.Addr != "",
			"encryptedBackups": cfg.Backup.Key != "",
			"s3Backups":        cfg.S3.Bucket != "",
			"apiKey":           cfg.Auth.InternalAPIKey != "",
		},
	}

	a.Services = api.Services{
		System:      service.NewSystemService(health, info),
		Asset:       service.NewAssetService(stores.Assets, stores.Transactions),
		Transaction: service.NewTransactionService(stores.Transactions, stores.Assets),
		Portfolio:   service.NewPortfolioService(stores.Assets, stores.Transactions, logger),
		Price:       service.NewPriceService(stores.Assets, provider, cfg.Prices.Concurrency, logger),
		Backup:      service.NewBackupService(stores, cfg.Backup.Key, sinks, logger),
	}

	return a, nil
}

// Close releases database connections and the quote cache client.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}

func (a *App) openStorage(ctx context.Context, cfg config.DatabaseConfig, logger *slog.Logger) (service.Stores, service.HealthCheckFunc, int64, error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		pool, err := database.OpenPostgres(ctx, cfg.URL)
		if err != nil {
			return service.Stores{}, nil, 0, err
		}
		a.closers = append(a.closers, pool.Close)

		version, err := database.MigratePostgres(ctx, pool)
		if err != nil {
			return service.Stores{}, nil, 0, err
		}
		logger.Info("connected to database", "driver", cfg.Driver, "schema_version", version)
		return service.NewPostgresStores(pool), postgresHealth(pool), version, nil

	case config.DriverSQLite, "":
		db, err := database.Open(cfg.Path)
		if err != nil {
			return service.Stores{}, nil, 0, err
		}
		a.closers = append(a.closers, func() { db.Close() })

		version, err := database.MigrateSQLite(ctx, db)
		if err != nil {
			return service.Stores{}, nil, 0, err
		}
		logger.Info("connected to database", "driver", config.DriverSQLite, "path", cfg.Path, "schema_version", version)
		return service.NewSQLiteStores(db), sqliteHealth(db), version, nil

	default:
		return service.Stores{}, nil, 0, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

func sqliteHealth(db *sql.DB) service.HealthCheckFunc {
	return func(ctx context.Context) error {
		return db.PingContext(ctx)
	}
}

func postgresHealth(pool *pgxpool.Pool) service.HealthCheckFunc {
	return pool.Ping
}

// priceProvider returns nil when no feed is configured. With a Redis address
// set, quotes are cached for the configured TTL.
func (a *App) priceProvider(ctx context.Context, cfg *config.Config, logger *slog.Logger) (pricefeed.Provider, error) {
	if cfg.Prices.Feed != config.FeedYahoo {
		return nil, nil
	}

	var provider pricefeed.Provider = pricefeed.NewYahooClient(cfg.Prices.RateLimit)

	if cfg.Redis.Addr != "" {
		rdb, err := pricefeed.NewRedisClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, closeRedis(rdb, logger))
		provider = pricefeed.NewCachedProvider(provider, pricefeed.NewRedisCache(rdb), cfg.Redis.TTL, logger)
		logger.Info("price quotes cached in redis", "addr", cfg.Redis.Addr, "ttl", cfg.Redis.TTL)
	}

	return provider, nil
}

func closeRedis(rdb *redis.Client, logger *slog.Logger) func() {
	return func() {
		if err := rdb.Close(); err != nil {
			logger.Warn("failed to close redis client", "error", err)
		}
	}
}

func backupSinks(ctx context.Context, cfg *config.Config) ([]backup.Sink, error) {
	var sinks []backup.Sink
	if cfg.Backup.Dir != "" {
		sinks = append(sinks, backup.FileSink{Dir: cfg.Backup.Dir})
	}
	if cfg.S3.Bucket != "" {
		s3Sink, err := backup.NewS3Sink(ctx, cfg.S3)
		if err != nil {
			return nil, err
		}
		sinks = append(sinks, s3Sink)
	}
	return sinks, nil
}
