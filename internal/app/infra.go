package app

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"

	"github.com/flying-dice/dcs-dropzone-registry-2/internal/config"
	"github.com/flying-dice/dcs-dropzone-registry-2/internal/logger"
	"github.com/flying-dice/dcs-dropzone-registry-2/internal/redis"
)

type Infra struct {
	Mongo *mongo.Client
	Mods  *mongo.Collection
	Redis *redis.Client // nil when no Redis is configured
}

func setupInfra(ctx context.Context, cfg config.Config) (*Infra, error) {
	client, err := mongo.Connect(options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return nil, err
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, err
	}

	logger.Info("mongo ready", map[string]any{
		"database":   cfg.MongoDatabase,
		"collection": cfg.ModCollection,
	})

	infra := &Infra{
		Mongo: client,
		Mods:  client.Database(cfg.MongoDatabase).Collection(cfg.ModCollection),
	}

	if cfg.RedisAddr != "" {
		redisClient, err := redis.New(cfg.RedisAddr, cfg.RedisPassword)
		if err != nil {
			return nil, err
		}

		logger.Info("redis ready", nil)
		infra.Redis = redisClient
	}

	return infra, nil
}

func (i *Infra) Close() error {
	if i.Redis != nil {
		if err := i.Redis.Close(); err != nil {
			return err
		}
	}

	return i.Mongo.Disconnect(context.Background())
}
