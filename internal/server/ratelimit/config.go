package ratelimit

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Environment variables read by LoadConfig.
const (
	EnvEnabled         = "RATE_LIMIT_ENABLED"
	EnvDefaultLimit    = "RATE_LIMIT_DEFAULT_LIMIT"
	EnvDefaultWindow   = "RATE_LIMIT_DEFAULT_WINDOW"
	EnvRenderLimit     = "RATE_LIMIT_RENDER_LIMIT"
	EnvCleanupInterval = "RATE_LIMIT_CLEANUP_INTERVAL"
	EnvWhitelist       = "RATE_LIMIT_WHITELIST"
	EnvBlacklist       = "RATE_LIMIT_BLACKLIST"
)

// Config holds rate limiting configuration.
type Config struct {
	Enabled         bool
	DefaultLimit    int
	DefaultWindow   time.Duration
	CleanupInterval time.Duration
	// IdleTTL is how long an unused bucket is kept.
	IdleTTL   time.Duration
	Whitelist map[string]bool
	Blacklist map[string]bool
	Endpoints []EndpointConfig
}

// EndpointConfig limits one method and path. A Path ending in "/" matches
// every path below it.
type EndpointConfig struct {
	Path   string
	Method string
	Limit  int
	Window time.Duration
	// Burst defaults to Limit when zero.
	Burst int
}

// DefaultConfig returns the built-in limits.
func DefaultConfig() *Config {
	return &Config{
		Enabled:         true,
		DefaultLimit:    600,
		DefaultWindow:   time.Minute,
		CleanupInterval: 5 * time.Minute,
		IdleTTL:         time.Hour,
		Whitelist:       map[string]bool{},
		Blacklist:       map[string]bool{},
		Endpoints:       DefaultEndpoints(60),
	}
}

// DefaultEndpoints returns limits for the endpoints that run LaTeX or
// parse uploads. renderLimit is requests per hour for rendering.
func DefaultEndpoints(renderLimit int) []EndpointConfig {
	burst := max(renderLimit/10, 1)
	return []EndpointConfig{
		{Path: "/render", Method: "POST", Limit: renderLimit, Window: time.Hour, Burst: burst},
		{Path: "/transform", Method: "POST", Limit: renderLimit, Window: time.Hour, Burst: burst},
		{Path: "/parse", Method: "POST", Limit: 120, Window: time.Minute, Burst: 20},
		{Path: "/theme", Method: "PUT", Limit: 30, Window: time.Minute, Burst: 5},
	}
}

// LoadConfig reads the RATE_LIMIT_* environment over DefaultConfig.
func LoadConfig() *Config {
	cfg := DefaultConfig()
	cfg.Enabled = envBool(EnvEnabled, cfg.Enabled)
	if !cfg.Enabled {
		return cfg
	}

	cfg.DefaultLimit = envInt(EnvDefaultLimit, cfg.DefaultLimit)
	cfg.DefaultWindow = envDuration(EnvDefaultWindow, cfg.DefaultWindow)
	cfg.CleanupInterval = envDuration(EnvCleanupInterval, cfg.CleanupInterval)
	cfg.Endpoints = DefaultEndpoints(envInt(EnvRenderLimit, 60))
	cfg.Whitelist = parseIPList(os.Getenv(EnvWhitelist))
	cfg.Blacklist = parseIPList(os.Getenv(EnvBlacklist))
	return cfg
}

// Match returns the endpoint limit for a request, or nil when the default
// applies. Exact paths win over prefixes.
func Match(path, method string, endpoints []EndpointConfig) *EndpointConfig {
	for i := range endpoints {
		if endpoints[i].Method == method && endpoints[i].Path == path {
			return &endpoints[i]
		}
	}
	for i := range endpoints {
		e := &endpoints[i]
		if e.Method == method && strings.HasSuffix(e.Path, "/") && strings.HasPrefix(path, e.Path) {
			return e
		}
	}
	return nil
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
	result := make(map[string]bool)
	for _, ip := range strings.Split(list, ",") {
		if ip = strings.TrimSpace(ip); ip != "" {
			result[ip] = true
		}
	}
	return result
}
