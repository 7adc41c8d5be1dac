// Package query implements the condition model and the SQL fragment compiler
// shared by every CRUD operation and join statement.
//
// A query is described as a flat ordered sequence of conditions: field
// predicates separated by logical operators. The compiler renders the
// sequence into dialect-specific parameterized SQL plus an ordered argument
// list, without reordering or parenthesizing anything.
package query

// Condition is one element of a condition sequence: either a field predicate
// or a logical connective between two predicates.
type Condition interface {
	condition()
}

// FieldCondition is a single field predicate. Field may be a bare column
// name or a table.column qualifier (join ON clauses).
type FieldCondition struct {
	Field    string
	Operator string
	Value    Value
}

func (FieldCondition) condition() {}

// LogicalOperator is a positional "and"/"or" separator between two field
// conditions.
type LogicalOperator string

func (LogicalOperator) condition() {}

// Logical connectives.
const (
	OpAnd LogicalOperator = "and"
	OpOr  LogicalOperator = "or"
)

// Conditions is an ordered condition sequence.
type Conditions []Condition

func compare(field, op string, value any) Conditions {
	return Conditions{FieldCondition{Field: field, Operator: op, Value: Encode(value)}}
}

// Eq builds a field = value condition.
func Eq(field string, value any) Conditions { return compare(field, "=", value) }

// Ne builds a field != value condition.
func Ne(field string, value any) Conditions { return compare(field, "!=", value) }

// Lt builds a field < value condition.
func Lt(field string, value any) Conditions { return compare(field, "<", value) }

// Le builds a field <= value condition.
func Le(field string, value any) Conditions { return compare(field, "<=", value) }

// Gt builds a field > value condition.
func Gt(field string, value any) Conditions { return compare(field, ">", value) }

// Ge builds a field >= value condition.
func Ge(field string, value any) Conditions { return compare(field, ">=", value) }

// CompareColumn builds a cross-table predicate whose right-hand side is a
// literal table.column reference. The reference renders inline and is never
// bound as a parameter.
func CompareColumn(field, op, ref string) Conditions {
	return Conditions{FieldCondition{Field: field, Operator: op, Value: ColumnRef(ref)}}
}

// EqColumn builds a field = table.column join predicate.
func EqColumn(field, ref string) Conditions {
	return CompareColumn(field, "=", ref)
}

// join returns a fresh sequence so the receiver stays usable as a shared
// base; appending in place would let two derived sequences fight over one
// backing array.
func (c Conditions) join(op LogicalOperator, other Conditions) Conditions {
	out := make(Conditions, len(c), len(c)+1+len(other))
	copy(out, c)
	out = append(out, op)
	return append(out, other...)
}

// And appends an "and" separator followed by the given conditions. The
// receiver is not modified.
func (c Conditions) And(other Conditions) Conditions {
	return c.join(OpAnd, other)
}

// Or appends an "or" separator followed by the given conditions. The
// receiver is not modified.
func (c Conditions) Or(other Conditions) Conditions {
	return c.join(OpOr, other)
}

// With appends a bare field = value condition with no separator. Bare
// adjacency is how insert and update value lists are built; the select
// compiler rejects it. The receiver is not modified.
func (c Conditions) With(field string, value any) Conditions {
	out := make(Conditions, len(c), len(c)+1)
	copy(out, c)
	return append(out, FieldCondition{Field: field, Operator: "=", Value: Encode(value)})
}

// Values builds an insert/update value list from field/value pairs, in order.
func Values(field string, value any) Conditions {
	return Conditions{}.With(field, value)
}
