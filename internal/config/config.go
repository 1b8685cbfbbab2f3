// Package config reads the server configuration from the environment.
package config

import (
	"github.com/caarlos0/env/v11"
	"github.com/pkg/errors"
)

// Prefix is prepended to every environment variable name.
const Prefix = "NOTEBOOK_"

type Config struct {
	Logger  Logger  `envPrefix:"LOG_"`
	HTTP    HTTP    `envPrefix:"HTTP_"`
	Storage Storage `envPrefix:"DATA_"`
}

type Logger struct {
	Level string `env:"LEVEL" envDefault:"info"`
}

type HTTP struct {
	Address            string   `env:"ADDRESS,expand" envDefault:":3000"`
	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`
}

type Storage struct {
	Dir        string `env:"DIR,expand" envDefault:"."`
	File       string `env:"FILE" envDefault:"notes.json"`
	Adapter    string `env:"ADAPTER" envDefault:"fs"`
	Versioning bool   `env:"VERSIONING" envDefault:"false"`
	ReadOnly   bool   `env:"READ_ONLY" envDefault:"false"`
	Watch      bool   `env:"WATCH" envDefault:"false"`
}

// Parse reads the configuration from the process environment.
func Parse() (*Config, error) {
	return parse(env.Options{Prefix: Prefix})
}

// ParseMap reads the configuration from vars instead of the process environment.
func ParseMap(vars map[string]string) (*Config, error) {
	return parse(env.Options{Prefix: Prefix, Environment: vars})
}

func parse(opts env.Options) (*Config, error) {
	conf, err := env.ParseAsWithOptions[Config](opts)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return &conf, nil
}
