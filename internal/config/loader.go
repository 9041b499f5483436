package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config captures environment driven configuration values for the meeting book.
type Config struct {
	SQLitePath  string
	LogLevel    slog.Level
	BusyTimeout time.Duration
	SeedSample  bool
}

// Load parses configuration values from the current process environment.
//
// Every variable is optional. Values that are present but malformed are
// collected and reported together so a single run surfaces all of them.
func Load() (Config, error) {
	cfg := Config{
		SQLitePath:  "data/meetingbook.db",
		LogLevel:    slog.LevelInfo,
		BusyTimeout: 5 * time.Second,
		SeedSample:  true,
	}

	invalid := make([]string, 0, 3)

	if path := strings.TrimSpace(os.Getenv("MEETINGBOOK_SQLITE_PATH")); path != "" {
		cfg.SQLitePath = path
	}

	if levelValue := strings.TrimSpace(os.Getenv("MEETINGBOOK_LOG_LEVEL")); levelValue != "" {
		level, ok := parseLevel(levelValue)
		if !ok {
			invalid = append(invalid, "MEETINGBOOK_LOG_LEVEL")
		} else {
			cfg.LogLevel = level
		}
	}

	if timeoutValue := strings.TrimSpace(os.Getenv("MEETINGBOOK_BUSY_TIMEOUT")); timeoutValue != "" {
		timeout, err := time.ParseDuration(timeoutValue)
		if err != nil || timeout < 0 {
			invalid = append(invalid, "MEETINGBOOK_BUSY_TIMEOUT")
		} else {
			cfg.BusyTimeout = timeout
		}
	}

	if seedValue := strings.TrimSpace(os.Getenv("MEETINGBOOK_SEED_SAMPLE")); seedValue != "" {
		seed, err := strconv.ParseBool(seedValue)
		if err != nil {
			invalid = append(invalid, "MEETINGBOOK_SEED_SAMPLE")
		} else {
			cfg.SeedSample = seed
		}
	}

	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("invalid environment variable values: %s", strings.Join(invalid, ", "))
	}

	return cfg, nil
}

func parseLevel(value string) (slog.Level, bool) {
	switch strings.ToLower(value) {
	case "debug":
		return slog.LevelDebug, true
	case "info":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	default:
		return 0, false
	}
}
