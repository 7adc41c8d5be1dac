// Package alloy maps typed entity descriptors to SQL schemas and CRUD
// operations across SQLite, PostgreSQL, MySQL and an embedded pure-Go SQLite
// variant.
//
// Entities implement runtime.Model (a table/primary-key/DDL triple) and
// runtime.Scanner (row hydration); filters are built declaratively with the
// query package's combinators and compiled into dialect-specific
// parameterized SQL by the query compiler.
package alloy

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/alloyorm/alloy/internal/config"
	"github.com/alloyorm/alloy/internal/debug"
	"github.com/alloyorm/alloy/runtime"
)

// Database bundles a client with the set of registered entity models, so one
// Migrate call can apply every registered schema.
type Database struct {
	Client *runtime.Client
	models []runtime.Model
}

// Open opens a database from a connection URL. An empty URL falls back to
// the loaded configuration (DATABASE_URL from the environment, .env files or
// .alloy.yaml).
func Open(databaseURL string, opts ...runtime.Option) (*Database, error) {
	if databaseURL == "" {
		cfg, err := config.Load()
		if err != nil {
			return nil, err
		}
		if cfg.DatabaseURL == "" {
			return nil, errors.New("no database URL: set DATABASE_URL or pass one explicitly")
		}
		databaseURL = cfg.DatabaseURL
		debug.Init(cfg.Debug)
		opts = append([]runtime.Option{
			runtime.WithMaxConnections(cfg.MaxConnections),
			runtime.WithMaxIdleConnections(cfg.MaxIdleConnections),
		}, opts...)
	}

	client, err := runtime.Open(databaseURL, opts...)
	if err != nil {
		return nil, err
	}
	return &Database{Client: client}, nil
}

// NewDatabase wraps an existing client.
func NewDatabase(client *runtime.Client) *Database {
	return &Database{Client: client}
}

// Register adds entity models to the migration set. Registration order is
// application order, so parents go before tables that reference them.
func (d *Database) Register(models ...runtime.Model) {
	d.models = append(d.models, models...)
}

// Migrate applies every registered model's DDL in registration order. The
// schemas carry create-if-not-exists semantics, so running it twice produces
// no error and no duplicate side effects.
func (d *Database) Migrate(ctx context.Context) error {
	run := uuid.NewString()
	debug.Debug("migration run started", "run", run, "models", len(d.models))
	for _, m := range d.models {
		s := m.Schema()
		if _, err := d.Client.ExecContext(ctx, s.DDL); err != nil {
			return runtime.NewQueryError("migrate", s.Table, err)
		}
		debug.Debug("migrated", "run", run, "table", s.Table)
	}
	return nil
}

// Close closes the underlying connection pool.
func (d *Database) Close() error {
	return d.Client.Close()
}
