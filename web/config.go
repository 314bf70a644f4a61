package main

import (
	"context"
	"encoding/base64"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	DSN            string `env:"DSN, required"`
	ListenAddr     string `env:"LISTEN_ADDR, default=0.0.0.0:8090"`
	MaxConnections int    `env:"DB_MAX_CONNECTIONS, default=10"`
	SigningSecret  string `env:"PONTUAL_SIGNING_SECRET, required"`
}

func LoadConfig(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) JWTSecret() ([]byte, error) {
	return base64.StdEncoding.DecodeString(c.SigningSecret)
}
