package redis

import (
	"context"
	"fmt"

	"github.com/go-redis/redis/v8"
)

// Client wraps the Redis connection used for the shadow-store slots and the
// change-broadcast channels.
type Client struct {
	rdb *redis.Client
}

func Initialize(redisURL string) (*Client, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	rdb := redis.NewClient(opt)

	// Test connection
	ctx := context.Background()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &Client{rdb: rdb}, nil
}

// GetSlot reads a persisted slot. A missing key is not an error; the second
// return value reports presence.
func (c *Client) GetSlot(key string) (string, bool, error) {
	ctx := context.Background()
	val, err := c.rdb.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to get slot %s: %w", key, err)
	}
	return val, true, nil
}

// SetSlot writes a persisted slot. Slots have no TTL; they outlive restarts.
func (c *Client) SetSlot(key, value string) error {
	ctx := context.Background()
	if err := c.rdb.Set(ctx, key, value, 0).Err(); err != nil {
		return fmt.Errorf("failed to set slot %s: %w", key, err)
	}
	return nil
}

// Publish sends a payload on a broadcast channel.
func (c *Client) Publish(channel, payload string) error {
	ctx := context.Background()
	if err := c.rdb.Publish(ctx, channel, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish on %s: %w", channel, err)
	}
	return nil
}

// Subscribe returns a message channel for the given broadcast channels. The
// subscription is closed when ctx is cancelled.
func (c *Client) Subscribe(ctx context.Context, channels ...string) <-chan *redis.Message {
	sub := c.rdb.Subscribe(ctx, channels...)
	go func() {
		<-ctx.Done()
		sub.Close()
	}()
	return sub.Channel()
}

// Close Redis connection
func (c *Client) Close() error {
	return c.rdb.Close()
}
