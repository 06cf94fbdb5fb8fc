package ratelimit

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// EndpointConfig limits one group of endpoints.
type EndpointConfig struct {
	Method string        // HTTP method
	Prefix string        // path prefix, e.g. "/ai/"
	Suffix string        // optional path suffix, e.g. "/pdf"
	Limit  int           // requests per Window; 0 is unlimited
	Window time.Duration // refill window
	Burst  int           // burst capacity, defaults to Limit
}

// Config holds rate limiting configuration.
type Config struct {
	Enabled         bool
	DefaultLimit    int
	DefaultWindow   time.Duration
	CleanupInterval time.Duration
	IdleTTL         time.Duration // idle limiters older than this are dropped
	Allowlist       map[string]bool
	Blocklist       map[string]bool
	Endpoints       []EndpointConfig
}

// LoadConfig reads rate limiting settings from the environment.
func LoadConfig() *Config {
	if !envBool("RATE_LIMIT_ENABLED", true) {
		return &Config{Enabled: false}
	}
	return &Config{
		Enabled:         true,
		DefaultLimit:    envInt("RATE_LIMIT_DEFAULT_LIMIT", 600),
		DefaultWindow:   envDuration("RATE_LIMIT_DEFAULT_WINDOW", time.Minute),
		CleanupInterval: envDuration("RATE_LIMIT_CLEANUP_INTERVAL", 5*time.Minute),
		IdleTTL:         time.Hour,
		Allowlist:       parseIPList(os.Getenv("RATE_LIMIT_ALLOWLIST")),
		Blocklist:       parseIPList(os.Getenv("RATE_LIMIT_BLOCKLIST")),
		Endpoints:       DefaultEndpoints(),
	}
}

// DefaultEndpoints returns the per-tier limits. Model calls are the most
// expensive, then PDF/DOCX generation and thumbnails, then writes.
func DefaultEndpoints() []EndpointConfig {
	return []EndpointConfig{
		{Method: "POST", Prefix: "/ai/", Limit: 30, Window: time.Hour, Burst: 5},
		{Method: "POST", Prefix: "/resumes/", Suffix: "/enhance", Limit: 30, Window: time.Hour, Burst: 5},
		{Method: "POST", Prefix: "/resumes/", Suffix: "/ats-score", Limit: 30, Window: time.Hour, Burst: 5},

		{Method: "POST", Prefix: "/render/", Limit: 60, Window: time.Minute, Burst: 10},
		{Method: "GET", Prefix: "/resumes/", Suffix: "/pdf", Limit: 60, Window: time.Minute, Burst: 10},
		{Method: "GET", Prefix: "/resumes/", Suffix: "/docx", Limit: 60, Window: time.Minute, Burst: 10},
		{Method: "GET", Prefix: "/templates/", Suffix: "/thumbnail.png", Limit: 30, Window: time.Minute, Burst: 10},

		{Method: "POST", Prefix: "/resumes", Limit: 120, Window: time.Minute, Burst: 20},
		{Method: "PUT", Prefix: "/resumes/", Limit: 120, Window: time.Minute, Burst: 20},
		{Method: "DELETE", Prefix: "/resumes/", Limit: 120, Window: time.Minute, Burst: 20},
		{Method: "POST", Prefix: "/preview/sessions", Limit: 600, Window: time.Minute, Burst: 60},
	}
}

func envInt(key string, def int) int {
	if v, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return v
	}
	return def
}

func envBool(key string, def bool) bool {
	if v, err := strconv.ParseBool(os.Getenv(key)); err == nil {
		return v
	}
	return def
}

func envDuration(key string, def time.Duration) time.Duration {
	if v, err := time.ParseDuration(os.Getenv(key)); err == nil {
		return v
	}
	return def
}

func parseIPList(list string) map[string]bool {
	out := make(map[string]bool)
	for _, ip := range strings.Split(list, ",") {
		if ip = strings.TrimSpace(ip); ip != "" {
			out[ip] = true
		}
	}
	return out
}
