package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfigKey(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "options.overscan", configKey("overscan"))
	assert.Equal(t, "options.overscan", configKey(" options.overscan "))
	assert.Equal(t, "options.terminal_policy.margin", configKey("terminal_policy.margin"))
}

func TestParseConfigValue(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
		want any
	}{
		{name: "number", raw: "3", want: float64(3)},
		{name: "bool", raw: "true", want: true},
		{name: "quoted string", raw: `"Pick one"`, want: "Pick one"},
		{name: "bare string", raw: "Pick one", want: "Pick one"},
		{name: "object", raw: `{"margin":1}`, want: map[string]any{"margin": float64(1)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, parseConfigValue(tt.raw))
		})
	}
}
