package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// envPrefixes maps environment variable prefixes to config paths. Every
// prefix starts with the caller-supplied servicePrefix (e.g.
// "DISCOVERY_" for the discovery edge); unprefixed names such as
// RABBITMQ_URL or LOG_LEVEL are not read.
func envPrefixes(servicePrefix string) map[string]string {
	return map[string]string{
		servicePrefix + "APP_":        "app",
		servicePrefix + "AUTH_":       "auth",
		servicePrefix + "DOWNSTREAM_": "downstream",
		servicePrefix + "GATEWAY_":    "gateway",
		servicePrefix + "DATABASE_":   "database",
		servicePrefix + "RABBITMQ_":   "rabbitmq",
		servicePrefix + "REDIS_":      "redis",
		servicePrefix + "RATELIMIT_":  "ratelimit",
		servicePrefix + "OTEL_":       "otel",
		servicePrefix + "LOG_":        "log",
	}
}

// Load reads an optional YAML file named by <SERVICE>_CONFIG_FILE,
// layers environment variables on top, and validates the result —
// mirroring the teacher's internal/config/loader.go Load().
func Load(servicePrefix string) (*Config, error) {
	k := koanf.New(".")

	if configFile := os.Getenv(servicePrefix + "CONFIG_FILE"); configFile != "" {
		if err := loadFromFile(k, configFile); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", configFile, err)
		}
	}

	for prefix, path := range envPrefixes(servicePrefix) {
		if err := k.Load(env.Provider(prefix, ".", func(s string) string {
			return path + "." + strings.ToLower(strings.TrimPrefix(s, prefix))
		}), nil); err != nil {
			return nil, err
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

func loadFromFile(k *koanf.Koanf, path string) error {
	if _, err := os.Stat(path); err != nil {
		return err
	}
	if filepath.Ext(path) != ".yaml" && filepath.Ext(path) != ".yml" {
		return fmt.Errorf("unsupported config file format: %s", filepath.Ext(path))
	}
	return k.Load(file.Provider(path), yaml.Parser())
}
