package runtime

import (
	"context"
	"fmt"

	"github.com/alloyorm/alloy/query"
)

// Schema is the precomputed descriptor an entity type supplies: its table
// name, primary key column and CREATE TABLE text. The runtime treats it as an
// opaque read-only triple.
type Schema struct {
	Table      string
	PrimaryKey string
	DDL        string
}

// Model is implemented by every entity type.
type Model interface {
	Schema() Schema
}

// Scanner hydrates an entity from a result row.
type Scanner interface {
	FromRow(Row) error
}

// Entity constrains a pointer-to-entity type to the capabilities the CRUD
// surface needs.
type Entity[T any] interface {
	Model
	Scanner
	*T
}

// Identified is implemented by entities that can report their own primary
// key value, enabling instance deletes.
type Identified interface {
	PrimaryKeyValue() any
}

func schemaOf[T any, PT Entity[T]]() Schema {
	var zero T
	return PT(&zero).Schema()
}

// Create inserts a row built from the given value list.
func Create[T any, PT Entity[T]](ctx context.Context, c *Client, values query.Conditions) error {
	s := schemaOf[T, PT]()
	q, err := c.Compiler().ToInsert(values)
	if err != nil {
		return NewQueryError("create", s.Table, err)
	}
	args, err := q.BindArgs()
	if err != nil {
		return NewQueryError("create", s.Table, err)
	}
	stmt := fmt.Sprintf("insert into %s (%s) values (%s);", s.Table, q.Fields, q.Fragment)
	if _, err := c.ExecContext(ctx, stmt, args...); err != nil {
		return NewQueryError("create", s.Table, err)
	}
	return nil
}

// Filter returns every row matching the condition sequence, in dialect-native
// order. An empty sequence selects the whole table; the WHERE clause is
// omitted entirely, not emitted empty.
func Filter[T any, PT Entity[T]](ctx context.Context, c *Client, conds query.Conditions) ([]T, error) {
	s := schemaOf[T, PT]()
	q, err := c.Compiler().ToSelect(conds)
	if err != nil {
		return nil, NewQueryError("filter", s.Table, err)
	}
	args, err := q.BindArgs()
	if err != nil {
		return nil, NewQueryError("filter", s.Table, err)
	}

	stmt := fmt.Sprintf("select * from %s;", s.Table)
	if q.Fragment != "" {
		stmt = fmt.Sprintf("select * from %s where %s;", s.Table, q.Fragment)
	}

	rows, err := c.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, NewQueryError("filter", s.Table, err)
	}
	defer rows.Close()

	raw, err := scanRows(rows)
	if err != nil {
		return nil, NewQueryError("filter", s.Table, err)
	}

	results := make([]T, 0, len(raw))
	for _, row := range raw {
		var item T
		if err := PT(&item).FromRow(row); err != nil {
			return nil, NewQueryError("filter", s.Table, err)
		}
		results = append(results, item)
	}
	return results, nil
}

// Get returns the first row matching the condition sequence, or nil when
// nothing matches. Zero rows is not an error here; see FetchOne for the
// erroring variant.
func Get[T any, PT Entity[T]](ctx context.Context, c *Client, conds query.Conditions) (*T, error) {
	results, err := Filter[T, PT](ctx, c, conds)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}
	return &results[0], nil
}

// All returns every row of the entity's table.
func All[T any, PT Entity[T]](ctx context.Context, c *Client) ([]T, error) {
	return Filter[T, PT](ctx, c, nil)
}

// Set updates the row identified by the primary key with the given value
// list. The id argument is appended after all SET arguments so its
// placeholder index is len(args)+1.
func Set[T any, PT Entity[T]](ctx context.Context, c *Client, id any, values query.Conditions) error {
	s := schemaOf[T, PT]()
	q, err := c.Compiler().ToUpdate(values)
	if err != nil {
		return NewQueryError("set", s.Table, err)
	}
	q.Args = append(q.Args, query.Encode(id))
	args, err := q.BindArgs()
	if err != nil {
		return NewQueryError("set", s.Table, err)
	}
	stmt := fmt.Sprintf("update %s set %s where %s=%s;",
		s.Table, q.Fragment, s.PrimaryKey, c.dialect.Placeholder(len(q.Args)))
	if _, err := c.ExecContext(ctx, stmt, args...); err != nil {
		return NewQueryError("set", s.Table, err)
	}
	return nil
}

// DeleteByID deletes the row identified by the primary key.
func DeleteByID[T any, PT Entity[T]](ctx context.Context, c *Client, id any) error {
	s := schemaOf[T, PT]()
	arg, err := query.Encode(id).Bind()
	if err != nil {
		return NewQueryError("delete", s.Table, err)
	}
	stmt := fmt.Sprintf("delete from %s where %s=%s;", s.Table, s.PrimaryKey, c.dialect.Placeholder(1))
	if _, err := c.ExecContext(ctx, stmt, arg); err != nil {
		return NewQueryError("delete", s.Table, err)
	}
	return nil
}

// Delete deletes the given entity instance by its primary key value.
func Delete[T any, PT interface {
	Entity[T]
	Identified
}](ctx context.Context, c *Client, entity PT) error {
	return DeleteByID[T, PT](ctx, c, entity.PrimaryKeyValue())
}

// DeleteAll deletes every row of the entity's table. There is no WHERE and
// no confirmation.
func DeleteAll[T any, PT Entity[T]](ctx context.Context, c *Client) error {
	s := schemaOf[T, PT]()
	stmt := fmt.Sprintf("delete from %s;", s.Table)
	if _, err := c.ExecContext(ctx, stmt); err != nil {
		return NewQueryError("delete all", s.Table, err)
	}
	return nil
}

// Count returns the number of rows in the entity's table.
func Count[T any, PT Entity[T]](ctx context.Context, c *Client) (int64, error) {
	s := schemaOf[T, PT]()
	stmt := fmt.Sprintf("select count(*) from %s", s.Table)
	rows, err := c.QueryContext(ctx, stmt)
	if err != nil {
		return 0, NewQueryError("count", s.Table, err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return 0, NewQueryError("count", s.Table, err)
		}
		return 0, NewQueryError("count", s.Table, ErrNotFound)
	}
	var n int64
	if err := rows.Scan(&n); err != nil {
		return 0, NewQueryError("count", s.Table, err)
	}
	return n, nil
}

// Migrate applies the entity's DDL. The schema text carries
// create-if-not-exists semantics, so applying it twice is a no-op.
func Migrate[T any, PT Entity[T]](ctx context.Context, c *Client) error {
	s := schemaOf[T, PT]()
	if _, err := c.ExecContext(ctx, s.DDL); err != nil {
		return NewQueryError("migrate", s.Table, err)
	}
	return nil
}

// Remigrate drops the entity's table and reapplies its DDL, for schema texts
// that are not self-idempotent. All rows are lost.
func Remigrate[T any, PT Entity[T]](ctx context.Context, c *Client) error {
	s := schemaOf[T, PT]()
	stmt := fmt.Sprintf("drop table if exists %s;", s.Table)
	if _, err := c.ExecContext(ctx, stmt); err != nil {
		return NewQueryError("migrate", s.Table, err)
	}
	return Migrate[T, PT](ctx, c)
}
