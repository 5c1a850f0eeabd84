package testing

import (
	"testing"

	"maragu.dev/hyperglue/postgrestest"
	"maragu.dev/hyperglue/sql"
	"maragu.dev/hyperglue/sqlitetest"
)

// Run f as a subtest against both SQLite and PostgreSQL.
func Run(t *testing.T, name string, f func(t *testing.T, h *sql.Helper)) {
	t.Run(name, func(t *testing.T) {
		t.Run("sqlite", func(t *testing.T) {
			f(t, sqlitetest.NewHelper(t))
		})

		t.Run("postgresql", func(t *testing.T) {
			f(t, postgrestest.NewHelper(t))
		})
	})
}
