package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Environment string `yaml:"environment"`
	Server      struct {
		Port            int           `yaml:"port"`
		ReadTimeout     time.Duration `yaml:"read_timeout"`
		WriteTimeout    time.Duration `yaml:"write_timeout"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	} `yaml:"server"`
	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"log"`
	Source struct {
		Type    string        `yaml:"type"` // postgres or http
		Timeout time.Duration `yaml:"timeout"`
	} `yaml:"source"`
	Postgres struct {
		Host         string        `yaml:"host"`
		Port         int           `yaml:"port"`
		Database     string        `yaml:"database"`
		User         string        `yaml:"user"`
		Password     string        `yaml:"password"`
		SSLMode      string        `yaml:"ssl_mode"`
		Table        string        `yaml:"table"`
		DialTimeout  time.Duration `yaml:"dial_timeout"`
		QueryTimeout time.Duration `yaml:"query_timeout"`
	} `yaml:"postgres"`
	HTTPSource struct {
		URL     string        `yaml:"url"`
		Timeout time.Duration `yaml:"timeout"`
	} `yaml:"http_source"`
	Cache struct {
		TTL   time.Duration `yaml:"ttl"`
		Redis struct {
			Enabled  bool   `yaml:"enabled"`
			Host     string `yaml:"host"`
			Port     int    `yaml:"port"`
			Password string `yaml:"password"`
			DB       int    `yaml:"db"`
			Prefix   string `yaml:"prefix"`
		} `yaml:"redis"`
	} `yaml:"cache"`
	Pipeline struct {
		RSIPeriod     int     `yaml:"rsi_period"`
		BullThreshold float64 `yaml:"bull_threshold"`
		BearThreshold float64 `yaml:"bear_threshold"`
		TopN          int     `yaml:"top_n"`
	} `yaml:"pipeline"`
}

// Load reads and parses a YAML configuration file.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	c.applyDefaults()

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &c, nil
}

// LoadWithEnv loads config from YAML and overrides with environment variables.
// Connection credentials are expected to arrive from the hosting environment.
func LoadWithEnv(path string) (*Config, error) {
	c, err := Load(path)
	if err != nil {
		return nil, err
	}

	if v := os.Getenv("DB_HOST"); v != "" {
		c.Postgres.Host = v
	}
	if v := os.Getenv("DB_USER"); v != "" {
		c.Postgres.User = v
	}
	if v := os.Getenv("DB_PASSWORD"); v != "" {
		c.Postgres.Password = v
	}
	if v := os.Getenv("DB_NAME"); v != "" {
		c.Postgres.Database = v
	}
	if v := os.Getenv("SOURCE"); v != "" {
		c.Source.Type = v
	}
	if v := os.Getenv("SNAPSHOT_URL"); v != "" {
		c.HTTPSource.URL = v
	}

	return c, nil
}

func (c *Config) applyDefaults() {
	if c.Postgres.Table == "" {
		c.Postgres.Table = "raw_etf_market_data"
	}
	if c.Postgres.SSLMode == "" {
		c.Postgres.SSLMode = "require"
	}
	if c.Source.Timeout == 0 {
		c.Source.Timeout = 10 * time.Second
	}
	if c.Cache.TTL == 0 {
		c.Cache.TTL = 5 * time.Minute
	}
	if c.Pipeline.RSIPeriod == 0 {
		c.Pipeline.RSIPeriod = 14
	}
	if c.Pipeline.BullThreshold == 0 {
		c.Pipeline.BullThreshold = 1.5
	}
	if c.Pipeline.BearThreshold == 0 {
		c.Pipeline.BearThreshold = -1.5
	}
	if c.Pipeline.TopN == 0 {
		c.Pipeline.TopN = 15
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Environment == "" {
		return fmt.Errorf("environment is required")
	}
	switch c.Source.Type {
	case "postgres":
		if c.Postgres.Host == "" {
			return fmt.Errorf("postgres.host is required for postgres source")
		}
		if c.Postgres.Database == "" {
			return fmt.Errorf("postgres.database is required for postgres source")
		}
	case "http":
		if c.HTTPSource.URL == "" {
			return fmt.Errorf("http_source.url is required for http source")
		}
	default:
		return fmt.Errorf("source.type must be 'postgres' or 'http', got '%s'", c.Source.Type)
	}
	if c.Pipeline.BearThreshold >= c.Pipeline.BullThreshold {
		return fmt.Errorf("pipeline.bear_threshold must be below pipeline.bull_threshold")
	}
	return nil
}
