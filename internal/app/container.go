package app

import (
	"context"
	"log"
	"time"

	"github.com/postmodernjester/rolodex/internal/config"
	"github.com/postmodernjester/rolodex/internal/database"
	dbpostgres "github.com/postmodernjester/rolodex/internal/database/postgres"
	"github.com/postmodernjester/rolodex/internal/infrastructure/cache"
	"github.com/postmodernjester/rolodex/internal/ws"
)

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

	var firstErr error
	if c.Cache != nil {
		if err := c.Cache.Close(); err != nil {
			firstErr = err
		}
	}
	if c.DB != nil {
		if err := c.DB.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
