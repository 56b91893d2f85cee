package config

import (
	"errors"
	"os"
	"strconv"
)

// DevFallbackSecret signs sessions when SESSION_SECRET is unset outside
// production. It is a known constant; any token it signs is worthless
// the moment an attacker reads this file, which is exactly why Load
// refuses it in production.
const DevFallbackSecret = "heimdall-dev-secret-do-not-deploy"

type Config struct {
	Env               string
	Port              string
	SessionSecret     string
	CanonicalDomain   string
	RedisURL          string
	EthRPCURL         string
	AcceptAuthAddrs   bool
	StatusUpstreamURL string

	// InsecureSecret is set when the dev fallback secret was
	// substituted, so the bootstrap can log it loudly.
	InsecureSecret bool
}

// Load reads configuration from the environment. It fails when
// ENV=production and no explicit session secret is configured.
func Load() (*Config, error) {
	cfg := &Config{
		Env:               getEnv("ENV", "development"),
		Port:              getEnv("PORT", "9000"),
		SessionSecret:     os.Getenv("SESSION_SECRET"),
		CanonicalDomain:   getEnv("CANONICAL_DOMAIN", "heimdall.farstack.xyz"),
		RedisURL:          os.Getenv("REDIS_URL"),
		EthRPCURL:         os.Getenv("ETH_RPC_URL"),
		AcceptAuthAddrs:   getEnvAsBool("ACCEPT_AUTH_ADDRESSES", true),
		StatusUpstreamURL: getEnv("STATUS_UPSTREAM_URL", "http://localhost:3000/api"),
	}

	if cfg.SessionSecret == "" {
		if cfg.Production() {
			return nil, errors.New("SESSION_SECRET is required when ENV=production")
		}
		cfg.SessionSecret = DevFallbackSecret
		cfg.InsecureSecret = true
	}

	return cfg, nil
}

// Production reports whether the process runs in the production
// environment, where the canonical domain overrides request headers.
func (c *Config) Production() bool {
	return c.Env == "production"
}

func getEnv(key string, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func getEnvAsBool(key string, defaultVal bool) bool {
	valStr := os.Getenv(key)
	if valStr == "" {
		return defaultVal
	}
	val, err := strconv.ParseBool(valStr)
	if err != nil {
		return defaultVal
	}
	return val
}
