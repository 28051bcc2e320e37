package app

import (
	"context"
	"log"
	"time"

	"jobboard/internal/config"
	"jobboard/internal/database"
	"jobboard/internal/database/migration"
	dbpostgres "jobboard/internal/database/postgres"
	"jobboard/internal/database/seeder"
	"jobboard/internal/infrastructure/cache"
	"jobboard/internal/ws"
)

// Container owns the long-lived infrastructure shared across the app.
type Container struct {
	Config config.Config
	DB     database.DB
	Cache  *cache.Redis
	Hub    *ws.Hub
	Logger *log.Logger
}

func NewContainer(cfg config.Config, logger *log.Logger) (*Container, error) {
	if logger == nil {
		logger = log.Default()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	runner := migration.Runner{Dir: cfg.App.MigrationsDir}
	if err := runner.Run(ctx, db.SQLDB()); err != nil {
		_ = db.Close()
		return nil, err
	}

	if cfg.App.Environment == "development" {
		seed := seeder.Runner{Seeders: []seeder.Seeder{seeder.DemoUsers{}, seeder.DemoJobs{}}}
		if err := seed.Run(ctx, db); err != nil {
			logger.Printf("demo seed failed: %v", err)
		}
	}

	return &Container{
		Config: cfg,
		DB:     db,
		Cache:  cache.NewRedis(cfg.Redis, logger),
		Hub:    ws.NewHub(logger),
		Logger: logger,
	}, nil
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	if c.Cache != nil {
		_ = c.Cache.Close()
	}
	if c.DB == nil {
		return nil
	}
	return c.DB.Close()
}
