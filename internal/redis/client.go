// Package redis wraps the go-redis client used for the read-model view
// cache and the notification event streams.
package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// Client is the shared Redis handle. Repositories and the event
// publisher/subscriber all draw from its embedded connection pool.
type Client struct {
	*goredis.Client
}

// NewClient connects to Redis and verifies the connection with a ping
// before handing the client out; a service with an unreachable cache and
// event stream should fail at startup, not on first use.
func NewClient(addr, password string, db int) (*Client, error) {
	opts := &goredis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
	}
	rdb := goredis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &Client{Client: rdb}, nil
}

func (c *Client) Close() error {
	return c.Client.Close()
}
