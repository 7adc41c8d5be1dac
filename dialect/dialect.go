// Package dialect resolves the SQL dialect of a database connection and the
// placeholder convention that goes with it.
package dialect

import (
	"fmt"
	"strings"
)

// Dialect identifies a supported SQL engine.
type Dialect string

const (
	// SQLite is the cgo SQLite driver (mattn/go-sqlite3).
	SQLite Dialect = "sqlite"
	// SQLiteEmbedded is the pure-Go SQLite driver (modernc.org/sqlite),
	// used for embedded replicas and environments without cgo.
	SQLiteEmbedded Dialect = "sqlite-embedded"
	// Postgres is PostgreSQL (lib/pq).
	Postgres Dialect = "postgres"
	// MySQL is MySQL/MariaDB (go-sql-driver/mysql).
	MySQL Dialect = "mysql"
)

// FromURL resolves the dialect from a connection string by its URL scheme
// prefix. The dialect is resolved once per connection and stays constant for
// every compilation against it.
func FromURL(databaseURL string) (Dialect, error) {
	switch {
	case strings.HasPrefix(databaseURL, "sqlite"):
		return SQLite, nil
	case strings.HasPrefix(databaseURL, "libsql"), strings.HasPrefix(databaseURL, "file"):
		return SQLiteEmbedded, nil
	case strings.HasPrefix(databaseURL, "postgres"):
		return Postgres, nil
	case strings.HasPrefix(databaseURL, "mysql"):
		return MySQL, nil
	default:
		return "", fmt.Errorf("unsupported database URL %q: expected sqlite, libsql, postgres or mysql scheme", databaseURL)
	}
}

// Placeholder renders the bind placeholder for the given 1-based index.
//
// Postgres uses $n. Both SQLite drivers accept the indexed ?NNN form, so the
// index is kept there. go-sql-driver/mysql rejects any suffix after ?, so for
// MySQL the index is dropped and the emission order alone carries the binding.
func (d Dialect) Placeholder(n int) string {
	switch d {
	case Postgres:
		return fmt.Sprintf("$%d", n)
	case MySQL:
		return "?"
	default:
		return fmt.Sprintf("?%d", n)
	}
}

// DriverName maps the dialect to the registered database/sql driver name.
func (d Dialect) DriverName() string {
	switch d {
	case SQLite:
		return "sqlite3"
	case SQLiteEmbedded:
		return "sqlite"
	case Postgres:
		return "postgres"
	case MySQL:
		return "mysql"
	default:
		return ""
	}
}

// DSN converts a connection URL into the form the dialect's driver expects.
// The SQLite drivers want a bare path or file: URI, so the sqlite:// and
// libsql:// schemes are stripped. Postgres and MySQL DSNs pass through.
func (d Dialect) DSN(databaseURL string) string {
	switch d {
	case SQLite, SQLiteEmbedded:
		for _, prefix := range []string{"sqlite://", "libsql://", "sqlite:", "libsql:"} {
			if strings.HasPrefix(databaseURL, prefix) {
				return strings.TrimPrefix(databaseURL, prefix)
			}
		}
		return databaseURL
	case MySQL:
		return strings.TrimPrefix(databaseURL, "mysql://")
	default:
		return databaseURL
	}
}

// String implements fmt.Stringer.
func (d Dialect) String() string {
	return string(d)
}
