// Package runtime executes compiled queries against a live database and
// exposes the generic CRUD surface that entity types build on.
package runtime

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql" // MySQL driver
	_ "github.com/lib/pq"              // PostgreSQL driver
	_ "github.com/mattn/go-sqlite3"    // SQLite driver
	_ "modernc.org/sqlite"             // embedded pure-Go SQLite driver

	"github.com/alloyorm/alloy/dialect"
	"github.com/alloyorm/alloy/internal/debug"
	"github.com/alloyorm/alloy/query"
)

// ClientConfig holds connection pool configuration.
type ClientConfig struct {
	// MaxConnections is the maximum number of open connections.
	MaxConnections int

	// MaxIdleConnections is the maximum number of idle connections.
	MaxIdleConnections int

	// ConnMaxLifetime is the maximum lifetime of a connection.
	ConnMaxLifetime time.Duration

	// ConnMaxIdleTime is the maximum idle time of a connection.
	ConnMaxIdleTime time.Duration
}

// DefaultConfig returns the default client configuration.
func DefaultConfig() *ClientConfig {
	return &ClientConfig{
		MaxConnections:     25,
		MaxIdleConnections: 5,
		ConnMaxLifetime:    time.Hour,
		ConnMaxIdleTime:    10 * time.Minute,
	}
}

// Option is a function that configures the client.
type Option func(*ClientConfig)

// WithMaxConnections sets the maximum open connections.
func WithMaxConnections(n int) Option {
	return func(c *ClientConfig) {
		c.MaxConnections = n
	}
}

// WithMaxIdleConnections sets the maximum idle connections.
func WithMaxIdleConnections(n int) Option {
	return func(c *ClientConfig) {
		c.MaxIdleConnections = n
	}
}

// WithConnMaxLifetime sets the maximum connection lifetime.
func WithConnMaxLifetime(d time.Duration) Option {
	return func(c *ClientConfig) {
		c.ConnMaxLifetime = d
	}
}

// Client is a database handle bound to one dialect. The dialect is resolved
// once when the client is opened and stays constant for every compilation.
//
// The pool is safe for concurrent use; the client adds no coordination, no
// retries and no caching of its own.
type Client struct {
	db      *sql.DB
	dialect dialect.Dialect
}

// Open resolves the dialect from the connection URL scheme and opens a pooled
// connection with the matching driver.
func Open(databaseURL string, opts ...Option) (*Client, error) {
	d, err := dialect.FromURL(databaseURL)
	if err != nil {
		return nil, err
	}

	config := DefaultConfig()
	for _, opt := range opts {
		opt(config)
	}

	db, err := sql.Open(d.DriverName(), d.DSN(databaseURL))
	if err != nil {
		return nil, fmt.Errorf("failed to open %s connection: %w", d, err)
	}

	db.SetMaxOpenConns(config.MaxConnections)
	db.SetMaxIdleConns(config.MaxIdleConnections)
	db.SetConnMaxLifetime(config.ConnMaxLifetime)
	db.SetConnMaxIdleTime(config.ConnMaxIdleTime)

	debug.Debug("opened database", "dialect", d.String())
	return &Client{db: db, dialect: d}, nil
}

// NewClientFromDB wraps an existing database handle. The caller keeps
// ownership of the handle's lifecycle and, for single-connection handles,
// serializes access itself.
func NewClientFromDB(d dialect.Dialect, db *sql.DB) *Client {
	return &Client{db: db, dialect: d}
}

// Dialect returns the dialect the client compiles against.
func (c *Client) Dialect() dialect.Dialect {
	return c.dialect
}

// DB returns the underlying database handle.
func (c *Client) DB() *sql.DB {
	return c.db
}

// Compiler returns a query compiler for the client's dialect.
func (c *Client) Compiler() *query.Compiler {
	return query.NewCompiler(c.dialect)
}

// Ping verifies the connection.
func (c *Client) Ping(ctx context.Context) error {
	return c.db.PingContext(ctx)
}

// Close closes the connection pool.
func (c *Client) Close() error {
	return c.db.Close()
}

// ExecContext executes a statement, logging it at debug level first.
func (c *Client) ExecContext(ctx context.Context, stmt string, args ...any) (sql.Result, error) {
	debug.Debug("exec", "sql", stmt, "args", len(args))
	return c.db.ExecContext(ctx, stmt, args...)
}

// QueryContext runs a query, logging it at debug level first.
func (c *Client) QueryContext(ctx context.Context, stmt string, args ...any) (*sql.Rows, error) {
	debug.Debug("query", "sql", stmt, "args", len(args))
	return c.db.QueryContext(ctx, stmt, args...)
}
