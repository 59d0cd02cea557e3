// Package config loads blockscan defaults from the environment.
package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Environment variables read by Load.
const (
	EnvOutput        = "BLOCKSCAN_OUTPUT"
	EnvReports       = "BLOCKSCAN_REPORTS"
	EnvWorkers       = "BLOCKSCAN_WORKERS"
	EnvArity         = "BLOCKSCAN_ARITY"
	EnvRowsPerFile   = "BLOCKSCAN_ROWS_PER_FILE"
	EnvSkipUnchanged = "BLOCKSCAN_SKIP_UNCHANGED"
	EnvLogLevel      = "BLOCKSCAN_LOG_LEVEL"
)

// Defaults used when neither the environment nor a flag sets a value.
const (
	DefaultOutput  = "blockscan-out"
	DefaultReports = ".blockscan-reports"
	DefaultWorkers = 1
	DefaultArity   = 10
)

// Config holds the CLI defaults. Flags override every field.
type Config struct {
	Output        string
	Reports       string
	Workers       int
	Arity         int
	RowsPerFile   int
	SkipUnchanged bool
	LogLevel      slog.Level
}

// Load reads an optional .env file, then BLOCKSCAN_* variables.
func Load(envFiles ...string) *Config {
	_ = godotenv.Load(envFiles...)

	return &Config{
		Output:        firstNonEmpty(os.Getenv(EnvOutput), DefaultOutput),
		Reports:       firstNonEmpty(os.Getenv(EnvReports), DefaultReports),
		Workers:       positiveInt(os.Getenv(EnvWorkers), DefaultWorkers),
		Arity:         positiveInt(os.Getenv(EnvArity), DefaultArity),
		RowsPerFile:   nonNegativeInt(os.Getenv(EnvRowsPerFile), 0),
		SkipUnchanged: parseBool(os.Getenv(EnvSkipUnchanged)),
		LogLevel:      parseLevel(os.Getenv(EnvLogLevel)),
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}

	return ""
}

func positiveInt(raw string, fallback int) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n <= 0 {
		return fallback
	}

	return n
}

func nonNegativeInt(raw string, fallback int) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 0 {
		return fallback
	}

	return n
}

func parseBool(raw string) bool {
	b, err := strconv.ParseBool(strings.TrimSpace(raw))

	return err == nil && b
}

func parseLevel(raw string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(raw))); err != nil {
		return slog.LevelWarn
	}

	return level
}
