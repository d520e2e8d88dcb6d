package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Config represents service configuration loaded from YAML/env.
type Config struct {
	HTTP struct {
		Port string `yaml:"port" env:"CHARGEOPS_HTTP_PORT"`
	} `yaml:"http"`
	Database struct {
		DSN string `yaml:"dsn" env:"CHARGEOPS_POSTGRES_DSN"`
	} `yaml:"database"`
	Redis struct {
		Addr     string `yaml:"addr" env:"CHARGEOPS_REDIS_ADDR"`
		Password string `yaml:"password" env:"CHARGEOPS_REDIS_PASSWORD"`
	} `yaml:"redis"`
	JWT struct {
		Secret           string `yaml:"secret" env:"CHARGEOPS_JWT_SECRET"`
		ExpiresInMinutes int    `yaml:"expiresInMinutes" env:"CHARGEOPS_JWT_EXPIRES_MINUTES"`
	} `yaml:"jwt"`
}

// Load reads configuration from the optional YAML file and environment.
func Load() (*Config, error) {
	cfg := &Config{}
	cfg.HTTP.Port = "8080"
	cfg.JWT.ExpiresInMinutes = 480

	if err := loadConfig(cfg); err != nil {
		return nil, err
	}

	if cfg.Database.DSN == "" {
		return nil, errors.New("config: database DSN is required")
	}
	if cfg.JWT.Secret == "" {
		return nil, errors.New("config: jwt secret is required")
	}
	if cfg.JWT.ExpiresInMinutes <= 0 {
		cfg.JWT.ExpiresInMinutes = 480
	}

	return cfg, nil
}

// HTTPAddress ensures we always return host:port formatted string.
func (c *Config) HTTPAddress() string {
	port := strings.TrimSpace(c.HTTP.Port)
	if port == "" {
		port = "8080"
	}
	if strings.HasPrefix(port, ":") {
		return port
	}
	return fmt.Sprintf(":%s", port)
}

// JWTExpiration converts configured expiry to duration.
func (c *Config) JWTExpiration() time.Duration {
	if c.JWT.ExpiresInMinutes <= 0 {
		return 8 * time.Hour
	}
	return time.Duration(c.JWT.ExpiresInMinutes) * time.Minute
}
