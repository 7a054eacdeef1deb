package config

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/combo/internal/log"
	"github.com/charmbracelet/combo/internal/window"
)

const envPrefix = "COMBO_"

// LoadReader config via io.Reader.
func LoadReader(fd io.Reader) (*Config, error) {
	data, err := io.ReadAll(fd)
	if err != nil {
		return nil, err
	}

	// pre-filled so partial policies keep their defaults
	policy := window.TerminalPolicy()
	config := Config{
		Options: &Options{TerminalPolicy: &policy},
	}
	if len(data) == 0 {
		return &config, nil
	}
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, err
	}
	return &config, nil
}

// Load loads the configuration from the default paths.
func Load(workingDir string, debug bool) (*Config, error) {
	// later paths win
	configPaths := []string{
		GlobalConfig(),
		GlobalConfigData(),
		filepath.Join(workingDir, fmt.Sprintf("%s.json", appName)),
		filepath.Join(workingDir, fmt.Sprintf(".%s.json", appName)),
	}
	cfg, err := loadFromConfigPaths(configPaths)
	if err != nil {
		return nil, fmt.Errorf("failed to load config from paths %v: %w", configPaths, err)
	}

	cfg.dataConfigDir = GlobalConfigData()
	cfg.setDefaults(workingDir)
	cfg.applyEnv(os.Getenv)

	if debug {
		cfg.Options.Debug = true
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	// Setup logs
	log.Setup(
		filepath.Join(cfg.Options.DataDirectory, "logs", fmt.Sprintf("%s.log", appName)),
		cfg.Options.Debug,
	)
	slog.Debug("Loaded config", "paths", configPaths, "overscan", cfg.Overscan())
	return cfg, nil
}

func (c *Config) setDefaults(workingDir string) {
	c.workingDir = workingDir
	if c.Options == nil {
		c.Options = &Options{}
	}
	if c.Options.Placeholder == "" {
		c.Options.Placeholder = defaultPlaceholder
	}
	if c.Options.DataDirectory == "" {
		c.Options.DataDirectory = filepath.Join(workingDir, defaultDataDirectory)
	} else if !filepath.IsAbs(c.Options.DataDirectory) {
		c.Options.DataDirectory = filepath.Join(workingDir, c.Options.DataDirectory)
	}
	if c.Options.TerminalPolicy == nil {
		policy := window.TerminalPolicy()
		c.Options.TerminalPolicy = &policy
	}
}

// applyEnv applies COMBO_* overrides. Unparsable values are logged and
// ignored.
func (c *Config) applyEnv(getenv func(string) string) {
	if v := getenv(envPrefix + "DEBUG"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Options.Debug = b
		} else {
			slog.Warn("Ignoring invalid environment value", "key", envPrefix+"DEBUG", "value", v)
		}
	}
	if v := getenv(envPrefix + "OVERSCAN"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Options.Overscan = &n
		} else {
			slog.Warn("Ignoring invalid environment value", "key", envPrefix+"OVERSCAN", "value", v)
		}
	}
	if v := getenv(envPrefix + "MAX_VISIBLE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Options.MaxVisible = n
		} else {
			slog.Warn("Ignoring invalid environment value", "key", envPrefix+"MAX_VISIBLE", "value", v)
		}
	}
	if v := getenv(envPrefix + "PLACEHOLDER"); v != "" {
		c.Options.Placeholder = v
	}
	if v := getenv(envPrefix + "DATA_DIR"); v != "" {
		c.Options.DataDirectory = v
	}
}

func loadFromConfigPaths(configPaths []string) (*Config, error) {
	var configs []io.Reader

	for _, path := range configPaths {
		fd, err := os.Open(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("failed to open config file %s: %w", path, err)
		}
		defer fd.Close()

		configs = append(configs, fd)
	}

	return loadFromReaders(configs)
}

func loadFromReaders(readers []io.Reader) (*Config, error) {
	if len(readers) == 0 {
		return LoadReader(strings.NewReader(""))
	}

	merged, err := Merge(readers)
	if err != nil {
		return nil, fmt.Errorf("failed to merge configuration readers: %w", err)
	}

	return LoadReader(merged)
}
