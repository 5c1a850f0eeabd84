// Package sqlitestore has an [scs.Store] for session data in SQLite.
// The sessions table is created by the sql package migrations.
package sqlitestore

import (
	"database/sql"
	"time"

	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"
)

// New store using db. Expired sessions are deleted every cleanupInterval, or never if it's zero.
func New(db *sql.DB, cleanupInterval time.Duration) scs.Store {
	return sqlite3store.NewWithCleanupInterval(db, cleanupInterval)
}
