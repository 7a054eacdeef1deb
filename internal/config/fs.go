package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

var testConfigDir string

func baseConfigPath() string {
	if testConfigDir != "" {
		return testConfigDir
	}

	xdgConfigHome := os.Getenv("XDG_CONFIG_HOME")
	if xdgConfigHome != "" {
		return filepath.Join(xdgConfigHome, appName)
	}

	// windows: %LOCALAPPDATA%/combo, elsewhere $HOME/.config/combo
	if runtime.GOOS == "windows" {
		localAppData := os.Getenv("LOCALAPPDATA")
		if localAppData == "" {
			localAppData = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Local")
		}
		return filepath.Join(localAppData, appName)
	}

	return filepath.Join(os.Getenv("HOME"), ".config", appName)
}

func baseDataPath() string {
	if testConfigDir != "" {
		return testConfigDir
	}

	xdgDataHome := os.Getenv("XDG_DATA_HOME")
	if xdgDataHome != "" {
		return filepath.Join(xdgDataHome, appName)
	}

	// windows: %LOCALAPPDATA%/combo, elsewhere $HOME/.local/share/combo
	if runtime.GOOS == "windows" {
		localAppData := os.Getenv("LOCALAPPDATA")
		if localAppData == "" {
			localAppData = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Local")
		}
		return filepath.Join(localAppData, appName)
	}

	return filepath.Join(os.Getenv("HOME"), ".local", "share", appName)
}

// GlobalConfig returns the path of the user edited global config.
func GlobalConfig() string {
	return filepath.Join(baseConfigPath(), fmt.Sprintf("%s.json", appName))
}

// GlobalConfigData returns the path of the global config written by
// `combo config set`.
func GlobalConfigData() string {
	return filepath.Join(baseDataPath(), fmt.Sprintf("%s.json", appName))
}

// ConfigDir returns the directory holding the global config.
func ConfigDir() string {
	return baseConfigPath()
}

// DataDir returns the directory holding the global data config.
func DataDir() string {
	return baseDataPath()
}
