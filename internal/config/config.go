package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all server configuration.
type Config struct {
	Addr           string
	DBPath         string
	BaseURL        string
	AttachmentsDir string
	ResetTokenTTL  time.Duration
}

// Default returns a Config with sensible defaults for local use.
func Default() Config {
	return Config{
		Addr:           ":8080",
		DBPath:         "taskboard.db",
		BaseURL:        "http://127.0.0.1:8080",
		AttachmentsDir: "attachments",
		ResetTokenTTL:  30 * time.Minute,
	}
}

// Load reads configuration from environment variables, falling back to
// defaults for any unset values.
func Load() Config {
	cfg := Default()

	if v := os.Getenv("TASKBOARD_ADDR"); v != "" {
		cfg.Addr = v
	}
	if v := os.Getenv("TASKBOARD_DB"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("TASKBOARD_BASE_URL"); v != "" {
		cfg.BaseURL = v
	}
	if v := os.Getenv("TASKBOARD_ATTACHMENTS_DIR"); v != "" {
		cfg.AttachmentsDir = v
	}
	if v := os.Getenv("TASKBOARD_RESET_TOKEN_TTL_MIN"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.ResetTokenTTL = time.Duration(n) * time.Minute
		}
	}
	return cfg
}
