package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"buildboard-api/internal/config"
)

// Open builds the snapshot repository selected by cfg.Storage.Type.
func Open(ctx context.Context, cfg *config.Config, logger logrus.FieldLogger) (SnapshotRepository, error) {
	log := logger.WithField("component", "repository")

	switch strings.ToLower(cfg.Storage.Type) {
	case "memory":
		log.Warn("Memory snapshot repository initialized; requests will not survive a restart")
		return NewMemorySnapshotRepository(), nil

	case "postgres", "postgresql":
		repo, err := NewPostgresSnapshotRepository(cfg.Postgres.DSN())
		if err != nil {
			return nil, err
		}
		log.WithField("host", cfg.Postgres.Host).Info("PostgreSQL snapshot repository initialized")
		return repo, nil

	case "mysql":
		db, err := OpenMySQL(cfg.MySQL.DSN())
		if err != nil {
			return nil, err
		}
		repo, err := NewMySQLSnapshotRepository(db)
		if err != nil {
			db.Close()
			return nil, err
		}
		log.WithField("host", cfg.MySQL.Host).Info("MySQL snapshot repository initialized")
		return repo, nil

	case "redis":
		repo, err := NewRedisSnapshotRepository(ctx, RedisSnapshotConfig{
			Addr:     cfg.Cache.RedisAddress(),
			Password: cfg.Cache.RedisPassword,
			DB:       cfg.Cache.RedisDB,
		})
		if err != nil {
			return nil, err
		}
		log.WithField("addr", cfg.Cache.RedisAddress()).Info("Redis snapshot repository initialized")
		return repo, nil

	case "mongodb", "mongo":
		repo, err := NewMongoDBSnapshotRepository(cfg.Mongo.URI, cfg.Mongo.Database, cfg.Mongo.Collection)
		if err != nil {
			return nil, err
		}
		log.WithField("database", cfg.Mongo.Database).Info("MongoDB snapshot repository initialized")
		return repo, nil

	case "sqlite", "":
		repo, err := NewSQLiteSnapshotRepository(cfg.Storage.Path)
		if err != nil {
			return nil, err
		}
		log.WithField("path", cfg.Storage.Path).Info("SQLite snapshot repository initialized")
		return repo, nil
	}

	return nil, fmt.Errorf("unknown storage type %q", cfg.Storage.Type)
}
