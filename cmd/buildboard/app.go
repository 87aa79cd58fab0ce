package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/sirupsen/logrus"

	"buildboard-api/internal/cache"
	"buildboard-api/internal/catalog"
	"buildboard-api/internal/config"
	"buildboard-api/internal/logging"
	"buildboard-api/internal/repository"
	"buildboard-api/internal/service"
)

// memoryCacheSweep is how often the in-process catalog cache drops expired
// entries.
const memoryCacheSweep = time.Minute

// app is the wired object graph shared by every subcommand.
type app struct {
	cfg   *config.Config
	log   *logrus.Logger
	repo  repository.SnapshotRepository
	cache cache.Cache
	store *service.RequestStore
	board *service.BoardService
}

// newApp loads config and wires the board. Logs go to logOut, never to the
// command's stdout.
func newApp(ctx context.Context, logOut io.Writer) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logger := logging.New(cfg.Log, logOut)

	policy, err := service.ParseTransitionPolicy(cfg.Board.TransitionPolicy)
	if err != nil {
		return nil, err
	}

	repo, err := repository.Open(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open snapshot storage: %w", err)
	}

	a := &app{cfg: cfg, log: logger, repo: repo}

	var cat catalog.Catalog = catalog.NewSeededCatalog(cfg.Catalog.LookupDelay)
	a.cache, err = newCatalogCache(cfg.Cache, logger)
	if err != nil {
		logger.WithError(err).Warn("Catalog cache unavailable, looking up without it")
	}
	if a.cache != nil {
		cat = catalog.NewCachedCatalog(cat, a.cache, cfg.Cache.TTL, logger)
	}

	a.store = service.NewRequestStore(ctx, repo, cfg.Board.SnapshotKey, logger)
	a.board = service.NewBoardService(cat, a.store, service.BoardConfig{
		Policy:   policy,
		Capacity: cfg.Board.Capacity,
	}, logger)

	logger.WithFields(logrus.Fields{
		"storage":  cfg.Storage.Type,
		"cache":    cfg.Cache.Type,
		"policy":   policy,
		"capacity": cfg.Board.Capacity,
		"requests": a.store.Count(),
	}).Info("Board ready")
	return a, nil
}

func newCatalogCache(cfg config.CacheConfig, logger logrus.FieldLogger) (cache.Cache, error) {
	switch cfg.Type {
	case "", "none":
		return nil, nil
	case "memory":
		logger.Info("Memory catalog cache initialized")
		return cache.NewMemoryCache(memoryCacheSweep), nil
	case "redis":
		c, err := cache.NewRedisCache(cache.RedisCacheConfig{
			Addr:     cfg.RedisAddress(),
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		logger.WithField("addr", cfg.RedisAddress()).Info("Redis catalog cache initialized")
		return c, nil
	}
	return nil, fmt.Errorf("unknown cache type %q", cfg.Type)
}

func (a *app) close() {
	if a.cache != nil {
		if err := a.cache.Close(); err != nil {
			a.log.WithError(err).Warn("Failed to close catalog cache")
		}
	}
	if err := a.repo.Close(); err != nil {
		a.log.WithError(err).Warn("Failed to close snapshot storage")
	}
}
