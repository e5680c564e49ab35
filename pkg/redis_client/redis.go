package redis_client

import (
	"context"

	"github.com/adjust/rmq/v5"
	"github.com/busrute/busrute/pkg/config"
	"github.com/redis/go-redis/v9"
)

var Client *redis.Client
var QueueConnection rmq.Connection

const queueTag = "busrute"

func Connect(cfg config.RedisConfig) error {
	options := &redis.Options{
		Addr: cfg.Address,
		DB:   cfg.Database,
	}
	if cfg.Password != "" {
		options.Password = cfg.Password
	}

	client := redis.NewClient(options)

	statusCmd := client.Ping(context.Background())
	if err := statusCmd.Err(); err != nil {
		return err
	}

	return Use(client)
}

// Use adopts an already connected client, tests hand in a miniredis backed one.
func Use(client *redis.Client) error {
	queueConnection, err := rmq.OpenConnectionWithRedisClient(queueTag, client, nil)
	if err != nil {
		return err
	}

	Client = client
	QueueConnection = queueConnection

	return nil
}
