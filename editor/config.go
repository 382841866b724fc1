package editor

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds all editor configuration.
type Config struct {
	DBPath          string `yaml:"db_path"`
	InitialDarkMode bool   `yaml:"initial_dark_mode"`
	MaxSnapshots    int    `yaml:"max_snapshots"`
	DisableSanitize bool   `yaml:"disable_sanitize"`
}

func (c *Config) defaults() {
	if c.DBPath == "" {
		c.DBPath = "htmled.db"
	}
	if c.MaxSnapshots <= 0 {
		c.MaxSnapshots = 50
	}
}

// LoadConfigFile reads a YAML config file.
func LoadConfigFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
