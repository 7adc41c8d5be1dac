package query

import (
	"strings"

	"github.com/alloyorm/alloy/dialect"
)

// Compiler renders condition sequences into SQL fragments for one dialect.
// Compilation is pure and allocation-only; a Compiler is safe for concurrent
// use.
type Compiler struct {
	dialect dialect.Dialect
}

// NewCompiler creates a compiler for the given dialect.
func NewCompiler(d dialect.Dialect) *Compiler {
	return &Compiler{dialect: d}
}

// Query is a compiled fragment: the placeholder text, the field list (insert
// only) and the ordered argument list. It is built once per compile call and
// consumed once at execution.
type Query struct {
	Fragment string
	Fields   string
	Args     []Value
}

// BindArgs reconstructs the native bind values for the argument list, in
// emission order.
func (q *Query) BindArgs() ([]any, error) {
	if len(q.Args) == 0 {
		return nil, nil
	}
	args := make([]any, 0, len(q.Args))
	for _, a := range q.Args {
		v, err := a.Bind()
		if err != nil {
			return nil, err
		}
		args = append(args, v)
	}
	return args, nil
}

var comparisonOperators = map[string]bool{
	"=": true, "!=": true, "<": true, "<=": true, ">": true, ">=": true,
}

// ToInsert compiles a value list into the field list and placeholder list of
// an INSERT statement. Every condition is treated as field = value; logical
// operators are an input-contract violation, not silently skipped.
func (c *Compiler) ToInsert(conds Conditions) (*Query, error) {
	var (
		args         []Value
		fields       []string
		placeholders []string
	)
	index := 0
	for _, cond := range conds {
		switch cond := cond.(type) {
		case FieldCondition:
			if cond.Value.Type == Column {
				return nil, newCompileError(cond.Field, ErrColumnRefNotAllowed)
			}
			index++
			args = append(args, cond.Value)
			fields = append(fields, cond.Field)
			placeholders = append(placeholders, c.dialect.Placeholder(index))
		case LogicalOperator:
			return nil, newCompileError("", ErrOperatorInValues)
		}
	}
	return &Query{
		Fragment: strings.Join(placeholders, ", "),
		Fields:   strings.Join(fields, ", "),
		Args:     args,
	}, nil
}

// ToUpdate compiles a value list into the SET clause of an UPDATE statement:
// field=placeholder pairs joined by ", ". SET lists are always conjunctive,
// so embedded logical operators are skipped. No WHERE is appended here; the
// caller adds the primary-key equality using the next index, which means its
// argument goes after all SET arguments.
func (c *Compiler) ToUpdate(conds Conditions) (*Query, error) {
	var (
		args         []Value
		placeholders []string
	)
	index := 0
	for _, cond := range conds {
		fc, ok := cond.(FieldCondition)
		if !ok {
			continue
		}
		if fc.Value.Type == Column {
			return nil, newCompileError(fc.Field, ErrColumnRefNotAllowed)
		}
		index++
		args = append(args, fc.Value)
		placeholders = append(placeholders, fc.Field+"="+c.dialect.Placeholder(index))
	}
	return &Query{
		Fragment: strings.Join(placeholders, ", "),
		Args:     args,
	}, nil
}

// ToSelect compiles a condition sequence into a WHERE fragment. Placeholder
// indices start at 1.
func (c *Compiler) ToSelect(conds Conditions) (*Query, error) {
	return c.ToSelectFrom(conds, 1)
}

// ToSelectFrom compiles a WHERE fragment with placeholder indices starting at
// the given index. Multi-clause statements (joins plus WHERE) compile each
// clause with a running start index so the indices stay strictly increasing
// across the whole statement.
//
// Each field condition renders as field OPERATOR placeholder; each logical
// operator renders as its raw "and"/"or" word; elements join with single
// spaces in original order. There is no parenthesization: mixed and/or
// sequences associate per native SQL operator precedence, not construction
// order. Column-typed conditions render field OPERATOR reference inline and
// contribute no argument.
//
// An empty sequence compiles to an empty fragment; callers omit the WHERE
// keyword entirely. A sequence that opens or closes with a logical operator,
// chains two of them, or puts two field conditions side by side is rejected.
func (c *Compiler) ToSelectFrom(conds Conditions, start int) (*Query, error) {
	var (
		args         []Value
		placeholders []string
	)
	index := start - 1
	for i, cond := range conds {
		switch cond := cond.(type) {
		case FieldCondition:
			if i > 0 {
				if _, ok := conds[i-1].(FieldCondition); ok {
					return nil, newCompileError(cond.Field, ErrAdjacentConditions)
				}
			}
			if !comparisonOperators[cond.Operator] {
				return nil, newCompileError(cond.Field, ErrUnsupportedOperator)
			}
			if cond.Value.Type == Column {
				placeholders = append(placeholders, cond.Field+cond.Operator+cond.Value.Raw)
				continue
			}
			index++
			args = append(args, cond.Value)
			placeholders = append(placeholders, cond.Field+cond.Operator+c.dialect.Placeholder(index))
		case LogicalOperator:
			if cond != OpAnd && cond != OpOr {
				return nil, newCompileError("", ErrUnsupportedOperator)
			}
			if i == 0 || i == len(conds)-1 {
				return nil, newCompileError("", ErrMisplacedOperator)
			}
			if _, ok := conds[i-1].(LogicalOperator); ok {
				return nil, newCompileError("", ErrMisplacedOperator)
			}
			placeholders = append(placeholders, string(cond))
		}
	}
	return &Query{
		Fragment: strings.Join(placeholders, " "),
		Args:     args,
	}, nil
}
