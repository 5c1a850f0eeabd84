// Package redisstore has an [scs.Store] for session data in Redis.
package redisstore

import (
	"context"

	"github.com/alexedwards/scs/goredisstore"
	"github.com/alexedwards/scs/v2"
	"github.com/redis/go-redis/v9"
	"maragu.dev/errors"
)

type NewOptions struct {
	// Addr of the Redis server, like "localhost:6379".
	Addr string
	DB   int
	// Prefix for session keys. Defaults to "scs:session:".
	Prefix   string
	Password string
}

// New store with a new client for the Redis server at opts.Addr.
// The returned close function closes the client.
func New(ctx context.Context, opts NewOptions) (scs.Store, func() error, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		DB:       opts.DB,
		Password: opts.Password,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, nil, errors.Wrap(err, "error pinging redis")
	}

	store := goredisstore.New(client)
	if opts.Prefix != "" {
		store = goredisstore.NewWithPrefix(client, opts.Prefix)
	}

	return store, client.Close, nil
}
