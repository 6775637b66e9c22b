package infra

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// NewRedis connects the client backing the list cache. The ping surfaces a
// bad URL or unreachable server at startup; callers treat a failure here as
// cache-off rather than fatal, since Redis only ever holds re-derivable
// listing pages.
func NewRedis(redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	rdb := redis.NewClient(opts)
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, err
	}

	return rdb, nil
}
