package debug

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInitFromEnv(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{"", false},
		{"0", false},
		{"false", false},
		{"1", true},
		{"true", true},
		{"yes", true},
	}
	for _, tt := range tests {
		t.Setenv("ALLOY_DEBUG", tt.value)
		InitFromEnv()
		assert.Equal(t, tt.want, Enabled(), "ALLOY_DEBUG=%q", tt.value)
	}
	Init(false)
}
