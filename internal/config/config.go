package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type DatabaseConfig struct {
	// DSN enables the optional Postgres sink when non-empty.
	DSN string `yaml:"dsn"`
}

type Config struct {
	NmapPath    string `yaml:"nmap_path"`
	Concurrency int    `yaml:"concurrency"`

	ProbeTimeoutSec int `yaml:"probe_timeout_seconds"`
	NmapTimeoutSec  int `yaml:"nmap_timeout_seconds"`

	HistoryPath string         `yaml:"history_path"`
	Database    DatabaseConfig `yaml:"database"`

	Verbose bool `yaml:"verbose"`
}

// Default returns a Config with all defaults applied.
func Default() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

// LoadConfig reads a YAML config file and fills unset values with defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	cfg.applyDefaults()

	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.NmapPath == "" {
		c.NmapPath = "nmap"
	}
	if c.Concurrency <= 0 {
		c.Concurrency = 100
	}
	if c.ProbeTimeoutSec <= 0 {
		c.ProbeTimeoutSec = 1
	}
	if c.NmapTimeoutSec <= 0 {
		c.NmapTimeoutSec = 60
	}
	if c.HistoryPath == "" {
		c.HistoryPath = "connscan.db"
	}
}

func (c *Config) ProbeTimeout() time.Duration {
	return time.Duration(c.ProbeTimeoutSec) * time.Second
}

func (c *Config) NmapTimeout() time.Duration {
	return time.Duration(c.NmapTimeoutSec) * time.Second
}
