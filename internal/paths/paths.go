package paths

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/GhostWriters/dotenv/internal/constants"
	"github.com/GhostWriters/dotenv/internal/version"

	"github.com/adrg/xdg"
)

var (
	// ConfigHomeOverride allows overriding the config home for tests.
	ConfigHomeOverride string
	// StateHomeOverride allows overriding the state home for tests.
	StateHomeOverride string
)

// GetConfigDir returns the directory holding the configuration file,
// e.g. ~/.config/dotenv.
func GetConfigDir() string {
	appName := strings.ToLower(version.ApplicationName)
	if ConfigHomeOverride != "" {
		return filepath.Join(ConfigHomeOverride, appName)
	}
	if runtime.GOOS == "darwin" {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", appName)
	}
	return filepath.Join(xdg.ConfigHome, appName)
}

// GetConfigFilePath returns the absolute path to dotenv.toml.
func GetConfigFilePath() string {
	return filepath.Join(GetConfigDir(), constants.AppConfigFileName)
}

// GetStateDir returns the directory used for the log file.
func GetStateDir() string {
	if StateHomeOverride != "" {
		return StateHomeOverride
	}
	return filepath.Join(xdg.StateHome, strings.ToLower(version.ApplicationName))
}

// GetLogFilePath returns the absolute path to the application log.
func GetLogFilePath() string {
	return filepath.Join(GetStateDir(), constants.LogFileName)
}
