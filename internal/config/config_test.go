package config

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/combo/internal/window"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_loadFromReaders(t *testing.T) {
	t.Parallel()

	t.Run("later readers win", func(t *testing.T) {
		t.Parallel()
		cfg, err := loadFromReaders([]io.Reader{
			strings.NewReader(`{"options": {"overscan": 2, "wrap": true, "placeholder": "global"}}`),
			strings.NewReader(`{"options": {"placeholder": "local"}}`),
		})
		require.NoError(t, err)
		assert.Equal(t, 2, cfg.Overscan())
		assert.True(t, cfg.Options.Wrap)
		assert.Equal(t, "local", cfg.Options.Placeholder)
	})

	t.Run("no readers", func(t *testing.T) {
		t.Parallel()
		cfg, err := loadFromReaders(nil)
		require.NoError(t, err)
		assert.Equal(t, window.DefaultOverscan, cfg.Overscan())
		assert.Equal(t, window.TerminalPolicy(), cfg.Policy(true))
	})

	t.Run("partial terminal policy keeps defaults", func(t *testing.T) {
		t.Parallel()
		cfg, err := loadFromReaders([]io.Reader{
			strings.NewReader(`{"options": {"terminal_policy": {"group_padding": 0}}}`),
			strings.NewReader(`{"options": {"max_visible": 8}}`),
		})
		require.NoError(t, err)

		want := window.TerminalPolicy()
		want.GroupPadding = 0
		want.MaxVisible = 8
		assert.Equal(t, want, cfg.Policy(true))

		pixels := window.DefaultPolicy()
		pixels.MaxVisible = 8
		assert.Equal(t, pixels, cfg.Policy(false))
	})

	t.Run("invalid json", func(t *testing.T) {
		t.Parallel()
		_, err := loadFromReaders([]io.Reader{strings.NewReader(`{"options": `)})
		require.Error(t, err)
	})
}

func TestConfig_setDefaults(t *testing.T) {
	t.Parallel()
	cfg := &Config{}
	cfg.setDefaults("/tmp/work")

	assert.Equal(t, "/tmp/work", cfg.WorkingDir())
	assert.Equal(t, defaultPlaceholder, cfg.Options.Placeholder)
	assert.Equal(t, filepath.Join("/tmp/work", defaultDataDirectory), cfg.Options.DataDirectory)
	assert.Equal(t, window.TerminalPolicy(), *cfg.Options.TerminalPolicy)

	cfg = &Config{Options: &Options{DataDirectory: "data"}}
	cfg.setDefaults("/tmp/work")
	assert.Equal(t, filepath.Join("/tmp/work", "data"), cfg.Options.DataDirectory)
}

func TestConfig_applyEnv(t *testing.T) {
	t.Parallel()
	env := map[string]string{
		"COMBO_DEBUG":       "true",
		"COMBO_OVERSCAN":    "0",
		"COMBO_MAX_VISIBLE": "nope",
		"COMBO_PLACEHOLDER": "Pick one",
	}
	cfg := &Config{}
	cfg.setDefaults(t.TempDir())
	cfg.applyEnv(func(key string) string { return env[key] })

	assert.True(t, cfg.Options.Debug)
	assert.Equal(t, 0, cfg.Overscan())
	assert.Equal(t, 0, cfg.Options.MaxVisible)
	assert.Equal(t, "Pick one", cfg.Options.Placeholder)
}

func TestConfig_validate(t *testing.T) {
	t.Parallel()
	overscan := -1
	policy := window.TerminalPolicy()
	policy.ItemHeight = 0
	cfg := &Config{Options: &Options{
		Overscan:       &overscan,
		MaxVisible:     -2,
		TerminalPolicy: &policy,
	}}

	err := cfg.validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "overscan")
	assert.Contains(t, err.Error(), "max_visible")
	assert.Contains(t, err.Error(), "item_height")

	cfg = &Config{}
	cfg.setDefaults(t.TempDir())
	require.NoError(t, cfg.validate())
}

func TestConfig_SetConfigField(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "nested", "combo.json")
	cfg := &Config{dataConfigDir: path}

	require.NoError(t, cfg.SetConfigField("options.overscan", 3))
	require.NoError(t, cfg.SetConfigField("options.placeholder", "Search"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	loaded, err := LoadReader(strings.NewReader(string(data)))
	require.NoError(t, err)
	assert.Equal(t, 3, loaded.Overscan())
	assert.Equal(t, "Search", loaded.Options.Placeholder)
}
