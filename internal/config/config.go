// Package config loads runtime configuration from a YAML file with
// environment overrides for secrets and connection strings.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	apiKeyEnv   = "COMPANYFETCH_API_KEY"
	databaseEnv = "DATABASE_DSN"
	redisEnv    = "REDIS_URL"
)

// Config holds the settings required across the application.
type Config struct {
	API     APIConfig     `yaml:"api"`
	Fetch   FetchConfig   `yaml:"fetch"`
	Input   InputConfig   `yaml:"input"`
	Cache   CacheConfig   `yaml:"cache"`
	Export  ExportConfig  `yaml:"export"`
	Logging LoggingConfig `yaml:"logging"`
}

// APIConfig describes the remote GraphQL endpoint.
type APIConfig struct {
	BaseURL        string `yaml:"baseUrl"`
	APIKey         string `yaml:"apiKey"`
	APIKeyHeader   string `yaml:"apiKeyHeader"`
	BindKey        string `yaml:"bindKey"`
	TimeoutSeconds int    `yaml:"timeoutSeconds"`
	FragmentsPath  string `yaml:"fragmentsPath"`
}

// Timeout resolves the per-call timeout.
func (a APIConfig) Timeout() time.Duration {
	return time.Duration(a.TimeoutSeconds) * time.Second
}

// FetchConfig controls the batch controller.
type FetchConfig struct {
	BatchSize int `yaml:"batchSize"`
}

// InputConfig describes the identifier source file.
type InputConfig struct {
	IDFile   string `yaml:"idFile"`
	IDColumn string `yaml:"idColumn"`
}

// CacheConfig describes the optional Redis payload cache.
type CacheConfig struct {
	RedisAddr string `yaml:"redisAddr"`
	TTLHours  int    `yaml:"ttlHours"`
}

// Enabled reports whether the payload cache should be used.
func (c CacheConfig) Enabled() bool {
	return c.RedisAddr != ""
}

// TTL resolves the cache entry lifetime.
func (c CacheConfig) TTL() time.Duration {
	if c.TTLHours <= 0 {
		return 24 * time.Hour
	}
	return time.Duration(c.TTLHours) * time.Hour
}

// ExportConfig describes the sinks. Both are optional; CSV and Postgres can
// run side by side.
type ExportConfig struct {
	CSVPath     string `yaml:"csvPath"`
	DatabaseDSN string `yaml:"databaseDsn"`
	Table       string `yaml:"table"`
}

// LoggingConfig describes log output.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Pretty bool   `yaml:"pretty"`
}

func defaultConfig() Config {
	return Config{
		API: APIConfig{
			APIKeyHeader:   "x-api-key",
			BindKey:        "id",
			TimeoutSeconds: 60,
			FragmentsPath:  "graphql_fragments.json",
		},
		Fetch: FetchConfig{
			BatchSize: 100,
		},
		Input: InputConfig{
			IDColumn: "id",
		},
		Cache: CacheConfig{
			TTLHours: 24,
		},
		Export: ExportConfig{
			CSVPath: "companies.csv",
			Table:   "companies",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load reads YAML configuration from path and applies environment
// overrides. Zero-valued file fields keep their defaults.
func Load(path string) (Config, error) {
	cfg := defaultConfig()

	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}

	cfg.applyEnvOverrides()

	if cfg.API.BaseURL == "" {
		return Config{}, fmt.Errorf("config %s: api.baseUrl is required", path)
	}
	if cfg.Fetch.BatchSize <= 0 {
		cfg.Fetch.BatchSize = 100
	}
	if cfg.API.TimeoutSeconds <= 0 {
		cfg.API.TimeoutSeconds = 60
	}

	return cfg, nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(apiKeyEnv); v != "" {
		c.API.APIKey = v
	}

	if v := os.Getenv(databaseEnv); v != "" {
		c.Export.DatabaseDSN = v
	}

	if v := os.Getenv(redisEnv); v != "" {
		c.Cache.RedisAddr = v
	}
}
