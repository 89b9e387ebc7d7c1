package messaging

import (
	"context"

	"github.com/abubakar1702/taskflow/internal/config"
	"github.com/abubakar1702/taskflow/internal/usecase"
	"github.com/abubakar1702/taskflow/pkg/messaging"
)

// RedisSink publishes notification events to redis pub/sub channels.
type RedisSink struct {
	client messaging.RedisClient
}

// NewRedisSink connects to redis and returns a sink plus a closer for
// shutdown.
func NewRedisSink(cfg *config.RedisConfig) (usecase.NotificationSink, func() error, error) {
	client, err := messaging.NewRedisClient(cfg.Addr, cfg.Password, cfg.DB)
	if err != nil {
		return nil, nil, err
	}
	sink := &RedisSink{client: client}
	return sink, client.Close, nil
}

// Publish sends the payload on the channel.
func (s *RedisSink) Publish(ctx context.Context, channel string, payload interface{}) error {
	return s.client.Publish(ctx, channel, payload)
}
