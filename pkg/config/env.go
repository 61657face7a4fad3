// Package config reads typed values from the environment.
//
// Unset or empty variables yield the default. Values that fail to parse also
// yield the default, and a warning is logged so a typo does not go unnoticed.
package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// LookupEnv returns the variable's value and whether it is set to something non-empty.
func LookupEnv(key string) (string, bool) {
	v := os.Getenv(key)
	return v, v != ""
}

// GetEnvString returns the value of key, or defaultValue.
//
//	addr := GetEnvString("HTTP_ADDR", ":5000")
func GetEnvString(key, defaultValue string) string {
	if v, ok := LookupEnv(key); ok {
		return v
	}
	return defaultValue
}

// GetEnvInt parses key as a base 10 integer.
//
//	maxOpen := GetEnvInt("DB_MAX_OPEN_CONNS", 25)
func GetEnvInt(key string, defaultValue int) int {
	raw, ok := LookupEnv(key)
	if !ok {
		return defaultValue
	}
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		warnInvalid(key, raw, strconv.Itoa(defaultValue), err)
		return defaultValue
	}
	return v
}

// GetEnvFloat parses key as a float64.
//
//	rps := GetEnvFloat("SCRAPE_RATE_LIMIT", 1)
func GetEnvFloat(key string, defaultValue float64) float64 {
	raw, ok := LookupEnv(key)
	if !ok {
		return defaultValue
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		warnInvalid(key, raw, strconv.FormatFloat(defaultValue, 'g', -1, 64), err)
		return defaultValue
	}
	return v
}

// GetEnvBool accepts the spellings strconv.ParseBool does ("1", "t", "true", "FALSE", ...).
//
//	enabled := GetEnvBool("TRACING_ENABLED", false)
func GetEnvBool(key string, defaultValue bool) bool {
	raw, ok := LookupEnv(key)
	if !ok {
		return defaultValue
	}
	v, err := strconv.ParseBool(strings.TrimSpace(raw))
	if err != nil {
		warnInvalid(key, raw, strconv.FormatBool(defaultValue), err)
		return defaultValue
	}
	return v
}

// GetEnvDuration parses key with time.ParseDuration ("10s", "1h30m").
//
//	timeout := GetEnvDuration("SCRAPE_TIMEOUT", 10*time.Second)
func GetEnvDuration(key string, defaultValue time.Duration) time.Duration {
	raw, ok := LookupEnv(key)
	if !ok {
		return defaultValue
	}
	v, err := time.ParseDuration(strings.TrimSpace(raw))
	if err != nil {
		warnInvalid(key, raw, defaultValue.String(), err)
		return defaultValue
	}
	return v
}

// GetEnvStringList splits key on commas, trimming blanks and dropping empty items.
//
//	// CORS_ALLOWED_ORIGINS="https://a.example, https://b.example"
//	origins := GetEnvStringList("CORS_ALLOWED_ORIGINS", nil)
func GetEnvStringList(key string, defaultValue []string) []string {
	raw, ok := LookupEnv(key)
	if !ok {
		return defaultValue
	}
	var out []string
	for part := range strings.SplitSeq(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}

func warnInvalid(key, value, fallback string, err error) {
	slog.Warn("invalid environment variable, using default",
		slog.String("key", key),
		slog.String("value", value),
		slog.String("default", fallback),
		slog.String("error", err.Error()))
}
