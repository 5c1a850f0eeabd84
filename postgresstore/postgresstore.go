// Package postgresstore has an [scs.Store] for session data in PostgreSQL.
// The sessions table is created by the sql package migrations.
package postgresstore

import (
	"context"

	"github.com/alexedwards/scs/pgxstore"
	"github.com/alexedwards/scs/v2"
	"github.com/jackc/pgx/v5/pgxpool"
	"maragu.dev/errors"
)

// New store with its own connection pool to databaseURL.
// The returned close function closes the pool.
func New(ctx context.Context, databaseURL string) (scs.Store, func(), error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, nil, errors.Wrap(err, "error creating database pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, nil, errors.Wrap(err, "error pinging database")
	}
	return pgxstore.New(pool), pool.Close, nil
}
