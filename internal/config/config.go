package config

import (
	"os"
	"strconv"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

type Config struct {
	// HTTP server
	Addr         string
	MaxBodyBytes int64

	// Logging
	LogLevel  string
	LogFormat string

	// Parser defaults
	Strict     bool
	KeepQuotes bool
}

func Load() Config {
	cfg := Config{
		Addr:         envOr("XMLTREE_ADDR", ":8090"),
		MaxBodyBytes: envInt64("XMLTREE_MAX_BODY_BYTES", 10<<20), // 10MB

		LogLevel:  envOr("XMLTREE_LOG_LEVEL", "info"),
		LogFormat: envOr("XMLTREE_LOG_FORMAT", "text"),

		Strict:     envBool("XMLTREE_STRICT", false),
		KeepQuotes: envBool("XMLTREE_KEEP_QUOTES", false),
	}

	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = 10 << 20
	}

	return cfg
}

func (c Config) Validate() error {
	if c.Addr == "" {
		return errors.New("XMLTREE_ADDR must not be empty")
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return errors.Wrap(err, "XMLTREE_LOG_LEVEL")
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return errors.Errorf("XMLTREE_LOG_FORMAT must be text or json, got %q", c.LogFormat)
	}
	return nil
}

// Logger builds the logrus logger described by the config. Call Validate
// first; an unknown level falls back to info.
func (c Config) Logger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	if lvl, err := logrus.ParseLevel(c.LogLevel); err == nil {
		log.SetLevel(lvl)
	}
	if c.LogFormat == "json" {
		log.SetFormatter(&logrus.JSONFormatter{})
	}
	return log
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}
