package query_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alloyorm/alloy/dialect"
	"github.com/alloyorm/alloy/query"
)

func TestConditions_AndInsertsSeparator(t *testing.T) {
	conds := query.Eq("name", "Jane").And(query.Eq("role", "admin"))
	require.Len(t, conds, 3)

	first, ok := conds[0].(query.FieldCondition)
	require.True(t, ok)
	assert.Equal(t, "name", first.Field)
	assert.Equal(t, "=", first.Operator)

	sep, ok := conds[1].(query.LogicalOperator)
	require.True(t, ok)
	assert.Equal(t, query.OpAnd, sep)

	second, ok := conds[2].(query.FieldCondition)
	require.True(t, ok)
	assert.Equal(t, "role", second.Field)
}

func TestConditions_OrInsertsSeparator(t *testing.T) {
	conds := query.Gt("age", 18).Or(query.Le("weight", 80.0))
	require.Len(t, conds, 3)
	assert.Equal(t, query.OpOr, conds[1])
}

func TestConditions_WithAppendsBareEquality(t *testing.T) {
	conds := query.Values("name", "Jane").With("age", 19)
	require.Len(t, conds, 2)
	for _, c := range conds {
		fc, ok := c.(query.FieldCondition)
		require.True(t, ok)
		assert.Equal(t, "=", fc.Operator)
	}
}

func TestConditions_SharedBaseStaysIndependent(t *testing.T) {
	base := query.Eq("a", 1).And(query.Eq("b", 2)).And(query.Eq("c", 3))

	q1 := base.And(query.Eq("d", 4))
	q2 := base.Or(query.Eq("e", 5))

	require.Len(t, base, 5)
	require.Len(t, q1, 7)
	require.Len(t, q2, 7)

	assert.Equal(t, query.OpAnd, q1[5])
	assert.Equal(t, "d", q1[6].(query.FieldCondition).Field)
	assert.Equal(t, query.OpOr, q2[5])
	assert.Equal(t, "e", q2[6].(query.FieldCondition).Field)
}

func TestConditions_SharedBaseCompilesBothQueries(t *testing.T) {
	c := query.NewCompiler(dialect.SQLite)
	base := query.Eq("a", 1).And(query.Eq("b", 2)).And(query.Eq("c", 3))

	q1 := base.And(query.Eq("d", 4))
	q2 := base.Or(query.Eq("e", 5))

	got1, err := c.ToSelect(q1)
	require.NoError(t, err)
	got2, err := c.ToSelect(q2)
	require.NoError(t, err)

	assert.Equal(t, "a=?1 and b=?2 and c=?3 and d=?4", got1.Fragment)
	assert.Equal(t, "a=?1 and b=?2 and c=?3 or e=?4", got2.Fragment)
}

func TestConditions_WithOnSharedBaseStaysIndependent(t *testing.T) {
	base := query.Values("name", "Jane")

	v1 := base.With("role", "admin")
	v2 := base.With("role", "user")

	require.Len(t, base, 1)
	assert.Equal(t, "admin", v1[1].(query.FieldCondition).Value.Raw)
	assert.Equal(t, "user", v2[1].(query.FieldCondition).Value.Raw)
}

func TestEqColumn_IsColumnTyped(t *testing.T) {
	conds := query.EqColumn("users.id", "profiles.user_id")
	require.Len(t, conds, 1)
	fc := conds[0].(query.FieldCondition)
	assert.Equal(t, query.Column, fc.Value.Type)
	assert.Equal(t, "profiles.user_id", fc.Value.Raw)
}

func TestComparisonConstructors(t *testing.T) {
	tests := []struct {
		conds  query.Conditions
		wantOp string
	}{
		{query.Eq("f", 1), "="},
		{query.Ne("f", 1), "!="},
		{query.Lt("f", 1), "<"},
		{query.Le("f", 1), "<="},
		{query.Gt("f", 1), ">"},
		{query.Ge("f", 1), ">="},
	}
	for _, tt := range tests {
		fc := tt.conds[0].(query.FieldCondition)
		assert.Equal(t, tt.wantOp, fc.Operator)
	}
}
