package purge

import (
	"context"

	"github.com/redis/go-redis/v9"

	"github.com/flying-dice/dcs-dropzone-registry-2/internal/logger"
)

// Channel carries mod ids whose cached responses are stale. The edge cache
// subscribes; this service only publishes.
const Channel = "mods:purge"

// Notifier tells the edge cache that a mod changed. Calls are best-effort:
// a failed purge is logged, never surfaced to the caller.
type Notifier interface {
	Purge(ctx context.Context, modID string)
}

// RedisNotifier publishes purge notifications over Redis pub/sub.
type RedisNotifier struct {
	client *redis.Client
}

func NewRedisNotifier(client *redis.Client) *RedisNotifier {
	return &RedisNotifier{client: client}
}

func (n *RedisNotifier) Purge(ctx context.Context, modID string) {
	if err := n.client.Publish(ctx, Channel, modID).Err(); err != nil {
		logger.Error("cache purge publish failed", map[string]any{
			"mod_id": modID,
			"error":  err.Error(),
		})
		return
	}

	logger.Info("cache purge published", map[string]any{
		"mod_id": modID,
	})
}

// Noop is used when no Redis is configured.
type Noop struct{}

func (Noop) Purge(context.Context, string) {}
