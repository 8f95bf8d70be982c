// Package config loads application configuration from an optional YAML
// file with TALLY_-prefixed environment overrides.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Storage  StorageConfig  `mapstructure:"storage"`
	Tracking TrackingConfig `mapstructure:"tracking"`
}

type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            string        `mapstructure:"port"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type StorageConfig struct {
	Path string `mapstructure:"path"`
}

type TrackingConfig struct {
	// WeekStart names the first day of the calendar week for weekly
	// windows and week buckets.
	WeekStart string `mapstructure:"week_start"`
	// ZeroIsEmpty rejects zero-valued entries as "not entered".
	ZeroIsEmpty bool `mapstructure:"zero_is_empty"`
	// SeedDefaults creates starter quantity types on an empty database.
	SeedDefaults bool `mapstructure:"seed_defaults"`
}

var weekdays = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// Load reads configuration from path, or from defaults and environment
// only when path is empty.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("server.host", "127.0.0.1")
	v.SetDefault("server.port", "8484")
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("storage.path", "tally.db")
	v.SetDefault("tracking.week_start", "monday")
	v.SetDefault("tracking.zero_is_empty", false)
	v.SetDefault("tracking.seed_defaults", true)

	v.SetEnvPrefix("TALLY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if _, ok := weekdays[strings.ToLower(cfg.Tracking.WeekStart)]; !ok {
		return nil, fmt.Errorf("invalid week_start %q", cfg.Tracking.WeekStart)
	}

	return &cfg, nil
}

// WeekStartDay resolves the configured week-start name.
func (c *Config) WeekStartDay() time.Weekday {
	if day, ok := weekdays[strings.ToLower(c.Tracking.WeekStart)]; ok {
		return day
	}
	return time.Monday
}

// Addr is the host:port the server binds to.
func (c *Config) Addr() string {
	return c.Server.Host + ":" + c.Server.Port
}
