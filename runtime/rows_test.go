package runtime_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/alloyorm/alloy/runtime"
)

func TestRowAccessors(t *testing.T) {
	row := runtime.Row{
		"id":     int64(7),
		"name":   "Jane",
		"weight": 80.5,
		"active": int64(1),
		"bio":    nil,
	}

	assert.Equal(t, int64(7), row.Int("id"))
	assert.Equal(t, "Jane", row.String("name"))
	assert.Equal(t, 80.5, row.Float("weight"))
	assert.True(t, row.Bool("active"))
	assert.True(t, row.IsNull("bio"))
	assert.False(t, row.IsNull("id"))
	assert.True(t, row.IsNull("missing"))
}

func TestRowAccessors_StringForms(t *testing.T) {
	// mysql hands back numeric columns as []byte; scanRows turns those into
	// strings, so the accessors parse textual numbers too.
	row := runtime.Row{
		"id":     "42",
		"weight": "80.5",
		"active": "1",
	}

	assert.Equal(t, int64(42), row.Int("id"))
	assert.Equal(t, 80.5, row.Float("weight"))
	assert.True(t, row.Bool("active"))
}

func TestRowAccessors_NullZeroValues(t *testing.T) {
	row := runtime.Row{"bio": nil}
	assert.Equal(t, "", row.String("bio"))
	assert.Equal(t, int64(0), row.Int("bio"))
	assert.Equal(t, 0.0, row.Float("bio"))
	assert.False(t, row.Bool("bio"))
}
