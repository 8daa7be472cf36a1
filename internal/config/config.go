// Package config loads console settings from defaults, an optional YAML
// file, a .env file and VESSEL_CONSOLE_* environment variables, in
// increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g.
// VESSEL_CONSOLE_API_BASE_URL.
const EnvPrefix = "VESSEL_CONSOLE"

type Config struct {
	API      APIConfig      `mapstructure:"api"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Cache    CacheConfig    `mapstructure:"cache"`
	Report   ReportConfig   `mapstructure:"report"`
	Log      LogConfig      `mapstructure:"log"`
	Database DatabaseConfig `mapstructure:"database"`
}

type APIConfig struct {
	BaseURL    string        `mapstructure:"base_url"`
	Timeout    time.Duration `mapstructure:"timeout"`
	MaxRetries int           `mapstructure:"max_retries"`
	RetryDelay time.Duration `mapstructure:"retry_delay"`
}

// AuthConfig holds credentials for unattended runs of the report exporter.
type AuthConfig struct {
	Email    string `mapstructure:"email"`
	Password string `mapstructure:"password"`
}

// CacheConfig enables the Redis vessel-list cache when RedisAddr is set.
type CacheConfig struct {
	RedisAddr     string        `mapstructure:"redis_addr"`
	RedisPassword string        `mapstructure:"redis_password"`
	RedisDB       int           `mapstructure:"redis_db"`
	TTL           time.Duration `mapstructure:"ttl"`
}

type ReportConfig struct {
	KPI         float64 `mapstructure:"kpi"`
	Concurrency int     `mapstructure:"concurrency"`
	OutDir      string  `mapstructure:"out_dir"`
	Schedule    string  `mapstructure:"schedule"`
	Timezone    string  `mapstructure:"timezone"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("api.base_url", "http://localhost:3000")
	v.SetDefault("api.timeout", 30*time.Second)
	v.SetDefault("api.max_retries", 0)
	v.SetDefault("api.retry_delay", time.Second)
	v.SetDefault("auth.email", "")
	v.SetDefault("auth.password", "")
	v.SetDefault("cache.redis_addr", "")
	v.SetDefault("cache.redis_password", "")
	v.SetDefault("cache.redis_db", 0)
	v.SetDefault("cache.ttl", 30*time.Second)
	v.SetDefault("report.kpi", 950.0)
	v.SetDefault("report.concurrency", 4)
	v.SetDefault("report.out_dir", "reports")
	v.SetDefault("report.schedule", "")
	v.SetDefault("report.timezone", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "data/vessel-console.log")
	v.SetDefault("database.path", "data/vessel-console.db")
}

// Load reads the configuration. path may be empty; a missing .env file is
// only a warning.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Debugf(".env file not loaded: %v", err)
	}

	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	cfg.API.BaseURL = strings.TrimRight(strings.TrimSpace(cfg.API.BaseURL), "/")
	return cfg, nil
}

// Validate rejects settings the console cannot run with.
func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return errors.New("api.base_url cannot be empty")
	}
	if !strings.HasPrefix(c.API.BaseURL, "http://") && !strings.HasPrefix(c.API.BaseURL, "https://") {
		return fmt.Errorf("api.base_url must be an http(s) URL, got %q", c.API.BaseURL)
	}
	if c.API.Timeout <= 0 {
		return errors.New("api.timeout must be positive")
	}
	if c.API.MaxRetries < 0 {
		return errors.New("api.max_retries cannot be negative")
	}
	if c.Report.Concurrency <= 0 {
		return errors.New("report.concurrency must be positive")
	}
	if c.Report.KPI < 0 {
		return errors.New("report.kpi cannot be negative")
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	return nil
}

// Location is the zone used for trend bucketing and report periods; empty
// means the local zone.
func (c *Config) Location() (*time.Location, error) {
	if c.Report.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Report.Timezone)
	if err != nil {
		return nil, fmt.Errorf("report.timezone: %w", err)
	}
	return loc, nil
}

// CacheEnabled reports whether a Redis address is configured.
func (c *Config) CacheEnabled() bool {
	return c.Cache.RedisAddr != ""
}
