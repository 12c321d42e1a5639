package config

import (
	"os"
	"strings"
)

// Header overrides. Nothing else is read from the environment.
const (
	EnvUserAgent = "GOLGG_USER_AGENT"
	EnvHeaders   = "GOLGG_HEADERS"
)

func (c *Config) applyEnv() {
	c.HTTP.UserAgent = envOr(EnvUserAgent, c.HTTP.UserAgent)

	extra := envHeadersOr(EnvHeaders, nil)
	if len(extra) == 0 {
		return
	}
	merged := make(map[string]string, len(c.HTTP.Headers)+len(extra))
	for k, v := range c.HTTP.Headers {
		merged[k] = v
	}
	for k, v := range extra {
		merged[k] = v
	}
	c.HTTP.Headers = merged
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// envHeadersOr parses "Key: Value; Key2: Value2". Malformed pairs are skipped.
func envHeadersOr(key string, fallback map[string]string) map[string]string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	result := make(map[string]string)
	for _, pair := range strings.Split(v, ";") {
		name, value, ok := strings.Cut(pair, ":")
		if !ok {
			continue
		}
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		result[name] = strings.TrimSpace(value)
	}
	if len(result) == 0 {
		return fallback
	}
	return result
}
