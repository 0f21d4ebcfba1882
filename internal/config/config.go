package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the application's configuration.
type Config struct {
	Database struct {
		URL string `yaml:"url"`
	} `yaml:"database"`
	Auth struct {
		SecretKey       string `yaml:"secret_key"`
		Algorithm       string `yaml:"algorithm"`
		TokenExpMinutes int    `yaml:"token_exp_minutes"`
	} `yaml:"auth"`
	Server struct {
		Port string `yaml:"port"`
	} `yaml:"server"`
}

// LoadConfig reads configuration from the specified YAML file. Secrets may be
// overridden through the environment so they stay out of the config file.
func LoadConfig(configPath string) (*Config, error) {
	config := &Config{}

	file, err := os.Open(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	if err := decoder.Decode(config); err != nil {
		return nil, fmt.Errorf("failed to decode config file: %w", err)
	}

	if v := os.Getenv("DATABASE_URL"); v != "" {
		config.Database.URL = v
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		config.Auth.SecretKey = v
	}
	if v := os.Getenv("SERVER_PORT"); v != "" {
		config.Server.Port = v
	}

	if config.Auth.SecretKey == "" {
		return nil, fmt.Errorf("auth secret key is not set")
	}
	if config.Auth.Algorithm == "" {
		config.Auth.Algorithm = "HS256"
	}
	if config.Auth.TokenExpMinutes <= 0 {
		config.Auth.TokenExpMinutes = 30
	}

	return config, nil
}
