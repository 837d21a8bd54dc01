package event

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"
)

// RedisPublisher sends events with PUBLISH on "<prefix>.<entity>", where
// entity spaces become dashes.
type RedisPublisher struct {
	client *redis.Client
	prefix string
}

// NewRedisPublisher connects to the Redis server at url and verifies the
// connection with PING.
func NewRedisPublisher(ctx context.Context, url, prefix string) (*RedisPublisher, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return NewRedisPublisherWithClient(client, prefix), nil
}

// NewRedisPublisherWithClient wraps an existing client.
func NewRedisPublisherWithClient(client *redis.Client, prefix string) *RedisPublisher {
	return &RedisPublisher{client: client, prefix: prefix}
}

// Channel returns the channel events for entity are published on.
func (p *RedisPublisher) Channel(entity string) string {
	name := strings.ReplaceAll(entity, " ", "-")
	if p.prefix == "" {
		return name
	}
	return p.prefix + "." + name
}

// Publish implements Publisher.
func (p *RedisPublisher) Publish(ctx context.Context, e Event) error {
	payload, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	if err := p.client.Publish(ctx, p.Channel(e.Entity), payload).Err(); err != nil {
		return fmt.Errorf("publish %s event: %w", e.Entity, err)
	}
	return nil
}

// Close releases the underlying connection pool.
func (p *RedisPublisher) Close() error {
	return p.client.Close()
}
