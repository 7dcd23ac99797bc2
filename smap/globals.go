package internal

import (
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
)

var (
	// DefaultAppName names the config directory and env prefix
	DefaultAppName    = "slicemap"
	DefaultConfigPath = filepath.Join(getHomeDir(), ".config", DefaultAppName)
	DefaultConfigFile = filepath.Join(DefaultConfigPath, "config.yaml")

	// Table defaults
	DefaultOrientation     = "a"
	DefaultDuplicatePolicy = "reject"
	DefaultBatchWorkers    = 4
	DefaultLogLevel        = "info"
)

func getHomeDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		cwd, cwdErr := os.Getwd()
		if cwdErr != nil {
			log.Printf("Unable to get home or working directory, using /tmp: %v", err)
			return "/tmp"
		}
		log.Printf("Unable to get home directory, using current working directory: %v", err)
		return cwd
	}
	return homeDir
}

// GetLogger returns a properly configured zerolog logger instance
func GetLogger() zerolog.Logger {
	return zerolog.New(os.Stderr).With().Timestamp().Logger()
}

// GetLeveledLogger is GetLogger filtered to the named level.
// Unknown or empty level names fall back to info.
func GetLeveledLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	return GetLogger().Level(lvl)
}
