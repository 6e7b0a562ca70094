// Package config reads server settings from the environment, with an
// optional .env file for local runs.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	Addr string `env:"ADDR" envDefault:":8080"`

	// LogFile switches logging to a rotating file when set.
	LogFile  string `env:"LOG_FILE"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// CardsFile overrides the embedded card catalog.
	CardsFile string `env:"CARDS_FILE"`

	// SendBuffer is the per-session outbox capacity; a member that falls
	// this far behind is dropped from its room.
	SendBuffer int `env:"SEND_BUFFER" envDefault:"16"`
}

func Load() (Config, error) {
	_ = godotenv.Load() // .env is optional

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
