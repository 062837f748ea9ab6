// Package config provides functionality for managing configuration options
// for the application using command-line flags, an optional JSON file,
// and environment variables.
package config

import (
	"encoding/json"
	"errors"
	"flag"
	"log"
	"os"

	"github.com/caarlos0/env/v11"
)

// Options holds the configuration values for the application.
type Options struct {
	// Addr defines the server's listening address (ip:port).
	Addr string `json:"addr" env:"SERVER_ADDRESS"`

	// DatabaseDSN holds the database connection string for the application.
	DatabaseDSN string `json:"database_dsn" env:"DATABASE_DSN"`

	// SecretKey signs access tokens. Required.
	SecretKey string `json:"secret_key" env:"SECRET_KEY"`

	// TokenTTLMinutes is the default access token lifetime.
	TokenTTLMinutes int `json:"token_ttl_minutes" env:"TOKEN_TTL_MINUTES"`

	// Config is the path to the config file.
	Config string `json:"-" env:"CONFIG"`
}

// options holds the current configuration values.
var options = &Options{}

// init initializes command-line flags and sets default values.
func init() {
	flag.StringVar(&options.Addr, "a", "localhost:8080", "run on ip:port server")
	flag.StringVar(&options.DatabaseDSN, "d", "", "db address")
	flag.StringVar(&options.SecretKey, "s", "", "token signing secret")
	flag.IntVar(&options.TokenTTLMinutes, "ttl", 60, "token lifetime in minutes")
	flag.StringVar(&options.Config, "config", "config.json", "path to config file")
	flag.StringVar(&options.Config, "c", "config.json", "path to config file (shorthand)")
}

// Parse parses the command-line flags, the optional config file, and
// environment variables to set configuration values. Environment
// variables take precedence over the file, the file over flags. It
// returns a pointer to the Options struct containing the parsed values.
func Parse() *Options {
	flag.Parse()

	if configPath := os.Getenv("CONFIG"); configPath != "" {
		options.Config = configPath
	}

	if options.Config != "" {
		if _, err := os.Stat(options.Config); err == nil {
			data, err := os.ReadFile(options.Config)
			if err != nil {
				log.Fatalf("error while reading config file: %v", err)
			}
			if err := json.Unmarshal(data, options); err != nil {
				log.Fatalf("error while parsing config file: %v", err)
			}
		}
	}

	if err := env.Parse(options); err != nil {
		log.Fatalf("error while parsing environment: %v", err)
	}

	return options
}

// Validate checks that the options required at startup are present and
// well formed, so the process fails fast on a broken deployment.
func (o *Options) Validate() error {
	if o.DatabaseDSN == "" {
		return errors.New("database DSN is required")
	}
	if o.SecretKey == "" {
		return errors.New("token signing secret is required")
	}
	if o.TokenTTLMinutes <= 0 {
		return errors.New("token TTL must be a positive number of minutes")
	}
	return nil
}
