package runtime

import (
	"context"
	"strings"

	"github.com/alloyorm/alloy/query"
)

// JoinType selects the JOIN keyword. The keyword renders literally; no check
// is made that the target dialect supports all four (some engines reject
// RIGHT or FULL).
type JoinType string

// Supported join types.
const (
	InnerJoin JoinType = "INNER"
	LeftJoin  JoinType = "LEFT"
	RightJoin JoinType = "RIGHT"
	FullJoin  JoinType = "FULL"
)

type joinClause struct {
	kind  JoinType
	table string
	on    query.Conditions
}

// SelectBuilder assembles a multi-table SELECT statement from the same
// condition primitives the CRUD operations use. Build it with NewSelect or
// SelectModels, add joins and an optional WHERE, then finish with one of
// FetchAll, FetchOne or FetchOptional.
type SelectBuilder struct {
	client       *Client
	selectClause string
	baseTable    string
	joins        []joinClause
	where        query.Conditions
}

// NewSelect starts a select statement with the given select clause. The base
// table may be set with From; when left unset it fixes lazily to the fetched
// model's table.
func NewSelect(c *Client, selectClause string) *SelectBuilder {
	return &SelectBuilder{client: c, selectClause: selectClause}
}

// SelectModels starts a select statement over the given models' columns:
// one model selects *, several select "t1.*, t2.*" with no base table fixed.
func SelectModels(c *Client, models ...Model) *SelectBuilder {
	if len(models) == 1 {
		return NewSelect(c, "*").From(models[0].Schema().Table)
	}
	cols := make([]string, 0, len(models))
	for _, m := range models {
		cols = append(cols, m.Schema().Table+".*")
	}
	return NewSelect(c, strings.Join(cols, ", "))
}

// From fixes the base table.
func (s *SelectBuilder) From(table string) *SelectBuilder {
	s.baseTable = table
	return s
}

// Join adds a JOIN clause with the given ON conditions. Cross-table equality
// is expressed with query.EqColumn, which renders inline and binds nothing.
func (s *SelectBuilder) Join(kind JoinType, table string, on query.Conditions) *SelectBuilder {
	s.joins = append(s.joins, joinClause{kind: kind, table: table, on: on})
	return s
}

// Where sets the WHERE conditions. An empty sequence omits the clause.
func (s *SelectBuilder) Where(conds query.Conditions) *SelectBuilder {
	s.where = conds
	return s
}

// build renders the statement. Join ON fragments compile first in declaration
// order, then the WHERE fragment, with one running placeholder index across
// all clauses so the indices match the concatenated argument order.
func (s *SelectBuilder) build(baseTable string) (string, []any, error) {
	comp := s.client.Compiler()

	var sb strings.Builder
	sb.WriteString("SELECT ")
	sb.WriteString(s.selectClause)
	sb.WriteString(" FROM ")
	sb.WriteString(baseTable)

	var args []query.Value
	index := 1
	for _, j := range s.joins {
		q, err := comp.ToSelectFrom(j.on, index)
		if err != nil {
			return "", nil, err
		}
		index += len(q.Args)
		args = append(args, q.Args...)
		sb.WriteString(" ")
		sb.WriteString(string(j.kind))
		sb.WriteString(" JOIN ")
		sb.WriteString(j.table)
		sb.WriteString(" ON ")
		sb.WriteString(q.Fragment)
	}

	if len(s.where) > 0 {
		q, err := comp.ToSelectFrom(s.where, index)
		if err != nil {
			return "", nil, err
		}
		args = append(args, q.Args...)
		if q.Fragment != "" {
			sb.WriteString(" WHERE ")
			sb.WriteString(q.Fragment)
		}
	}
	sb.WriteString(";")

	bound := query.Query{Args: args}
	native, err := bound.BindArgs()
	if err != nil {
		return "", nil, err
	}
	return sb.String(), native, nil
}

func fetch[T any, PT Entity[T]](ctx context.Context, s *SelectBuilder) ([]T, error) {
	base := s.baseTable
	if base == "" {
		base = schemaOf[T, PT]().Table
	}

	stmt, args, err := s.build(base)
	if err != nil {
		return nil, NewQueryError("select", base, err)
	}

	rows, err := s.client.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, NewQueryError("select", base, err)
	}
	defer rows.Close()

	raw, err := scanRows(rows)
	if err != nil {
		return nil, NewQueryError("select", base, err)
	}

	results := make([]T, 0, len(raw))
	for _, row := range raw {
		var item T
		if err := PT(&item).FromRow(row); err != nil {
			return nil, NewQueryError("select", base, err)
		}
		results = append(results, item)
	}
	return results, nil
}

// FetchAll returns every matching row, in dialect-native order. No ORDER BY
// is injected.
func FetchAll[T any, PT Entity[T]](ctx context.Context, s *SelectBuilder) ([]T, error) {
	return fetch[T, PT](ctx, s)
}

// FetchOne returns the first matching row. Zero rows is an error, not an
// empty result; more than one row is not an error and the rest are dropped.
func FetchOne[T any, PT Entity[T]](ctx context.Context, s *SelectBuilder) (*T, error) {
	results, err := fetch[T, PT](ctx, s)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, &NotFoundError{Table: schemaOf[T, PT]().Table}
	}
	return &results[0], nil
}

// FetchOptional returns the first matching row, or nil with no error when
// nothing matches.
func FetchOptional[T any, PT Entity[T]](ctx context.Context, s *SelectBuilder) (*T, error) {
	results, err := fetch[T, PT](ctx, s)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}
	return &results[0], nil
}
