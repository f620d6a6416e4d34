package dbtranslation

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
)

// NewBunDB wraps a host-provided sql.DB with the bun dialect matching the
// driver name, ready to hand to WithDB. Postgres and SQLite cover the stores
// the migration files target.
func NewBunDB(sqldb *sql.DB, driver string) (*bun.DB, error) {
	switch strings.ToLower(strings.TrimSpace(driver)) {
	case "sqlite", "sqlite3":
		return bun.NewDB(sqldb, sqlitedialect.New()), nil
	case "postgres", "postgresql", "pg", "pgx":
		return bun.NewDB(sqldb, pgdialect.New()), nil
	default:
		return nil, fmt.Errorf("dbtranslation: unsupported database driver %q", driver)
	}
}
