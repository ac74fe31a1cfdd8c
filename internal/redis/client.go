package redis

import (
	"context"
	"fmt"
	"time"

	"donerci/internal/cart"

	"github.com/go-redis/redis/v8"
)

const cartKeyPrefix = "cart:"

// Client stores cart snapshots in Redis. It satisfies cart.SnapshotStore.
type Client struct {
	rdb *redis.Client
	ttl time.Duration
}

func Initialize(redisURL string, ttl time.Duration) (*Client, error) {
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

	return NewClient(rdb, ttl), nil
}

// NewClient wraps an existing connection.
func NewClient(rdb *redis.Client, ttl time.Duration) *Client {
	return &Client{rdb: rdb, ttl: ttl}
}

func cartKey(sessionID string) string {
	return cartKeyPrefix + sessionID
}

// Cart snapshots
func (c *Client) SetCartSnapshot(ctx context.Context, sessionID string, data []byte) error {
	return c.rdb.Set(ctx, cartKey(sessionID), data, c.ttl).Err()
}

func (c *Client) GetCartSnapshot(ctx context.Context, sessionID string) ([]byte, error) {
	val, err := c.rdb.Get(ctx, cartKey(sessionID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, cart.ErrNoSnapshot
		}
		return nil, fmt.Errorf("failed to get cart snapshot: %w", err)
	}
	return val, nil
}

func (c *Client) DeleteCartSnapshot(ctx context.Context, sessionID string) error {
	return c.rdb.Del(ctx, cartKey(sessionID)).Err()
}

// cart.SnapshotStore
func (c *Client) Load(ctx context.Context, sessionID string) ([]byte, error) {
	return c.GetCartSnapshot(ctx, sessionID)
}

func (c *Client) Save(ctx context.Context, sessionID string, data []byte) error {
	return c.SetCartSnapshot(ctx, sessionID, data)
}

func (c *Client) Delete(ctx context.Context, sessionID string) error {
	return c.DeleteCartSnapshot(ctx, sessionID)
}

func (c *Client) Ping(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}

// Close Redis connection
func (c *Client) Close() error {
	return c.rdb.Close()
}
