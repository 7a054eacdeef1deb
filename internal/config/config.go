package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/combo/internal/window"
	"github.com/tidwall/sjson"
)

const (
	appName              = "combo"
	defaultDataDirectory = ".combo"
	defaultPlaceholder   = "Type to filter"
)

type Options struct {
	// Items rendered outside the viewport on each side.
	Overscan *int `json:"overscan,omitempty"`
	// Rows shown before the list starts scrolling.
	MaxVisible    int    `json:"max_visible,omitempty"`
	Placeholder   string `json:"placeholder,omitempty"`
	Wrap          bool   `json:"wrap,omitempty"`
	Mouse         bool   `json:"mouse,omitempty"`
	Debug         bool   `json:"debug,omitempty"`
	DataDirectory string `json:"data_directory,omitempty"` // Relative to the cwd
	// Cell sizes used by the terminal list, unset fields keep their default.
	TerminalPolicy *window.Policy `json:"terminal_policy,omitempty"`
}

// Config holds the configuration for combo.
type Config struct {
	Options *Options `json:"options,omitempty"`

	// Internal
	workingDir    string `json:"-"`
	dataConfigDir string `json:"-"`
}

func (c *Config) WorkingDir() string {
	return c.workingDir
}

// Overscan returns the configured overscan.
func (c *Config) Overscan() int {
	if c.Options == nil || c.Options.Overscan == nil {
		return window.DefaultOverscan
	}
	return *c.Options.Overscan
}

// Policy returns the sizing policy for the terminal list, or the pixel
// policy when terminal is false.
func (c *Config) Policy(terminal bool) window.Policy {
	p := window.DefaultPolicy()
	if terminal {
		p = window.TerminalPolicy()
		if c.Options != nil && c.Options.TerminalPolicy != nil {
			p = *c.Options.TerminalPolicy
		}
	}
	if c.Options != nil && c.Options.MaxVisible > 0 {
		p.MaxVisible = c.Options.MaxVisible
	}
	return p
}

func (c *Config) validate() error {
	var errs []error
	if c.Overscan() < 0 {
		errs = append(errs, fmt.Errorf("overscan must not be negative: %d", c.Overscan()))
	}
	if c.Options.MaxVisible < 0 {
		errs = append(errs, fmt.Errorf("max_visible must not be negative: %d", c.Options.MaxVisible))
	}
	if p := c.Options.TerminalPolicy; p != nil {
		if p.ItemHeight <= 0 {
			errs = append(errs, fmt.Errorf("terminal_policy.item_height must be positive: %d", p.ItemHeight))
		}
		if p.GroupHeaderHeight <= 0 {
			errs = append(errs, fmt.Errorf("terminal_policy.group_header_height must be positive: %d", p.GroupHeaderHeight))
		}
	}
	return errors.Join(errs...)
}

// SetConfigField writes value at key in the global data config.
func (c *Config) SetConfigField(key string, value any) error {
	// read the data
	data, err := os.ReadFile(c.dataConfigDir)
	if err != nil {
		if os.IsNotExist(err) {
			data = []byte("{}")
		} else {
			return fmt.Errorf("failed to read config file: %w", err)
		}
	}

	newValue, err := sjson.Set(string(data), key, value)
	if err != nil {
		return fmt.Errorf("failed to set config field %s: %w", key, err)
	}
	if err := os.MkdirAll(filepath.Dir(c.dataConfigDir), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(c.dataConfigDir, []byte(newValue), 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
