// Package config loads application configuration from the environment at
// process start. Precedence: environment variables over built-in defaults.
// The resulting Config is immutable for the life of the process.
package config

import (
	"fmt"
	"time"

	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

type ServerConfig struct {
	Port       int    `koanf:"port"`
	CORSOrigin string `koanf:"cors_origin"`
}

type MongoConfig struct {
	URL string `koanf:"url"`
	DB  string `koanf:"db"`
}

type AuthConfig struct {
	JWTSecret string        `koanf:"jwt_secret"`
	TokenTTL  time.Duration `koanf:"token_ttl"`
}

type BraintreeConfig struct {
	Environment string `koanf:"environment"`
	MerchantID  string `koanf:"merchant_id"`
	PublicKey   string `koanf:"public_key"`
	PrivateKey  string `koanf:"private_key"`
}

type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Mongo     MongoConfig     `koanf:"mongo"`
	Auth      AuthConfig      `koanf:"auth"`
	Braintree BraintreeConfig `koanf:"braintree"`
}

func defaultConfig() Config {
	return Config{
		Server: ServerConfig{
			Port:       8080,
			CORSOrigin: "http://localhost:3000",
		},
		Mongo: MongoConfig{
			DB: "ecommerce",
		},
		Auth: AuthConfig{
			TokenTTL: 7 * 24 * time.Hour,
		},
		Braintree: BraintreeConfig{
			Environment: "sandbox",
		},
	}
}

// envKeys maps the environment variables the deployment sets to their
// config paths. Unknown variables are ignored.
var envKeys = map[string]string{
	"PORT":                  "server.port",
	"CORS_ORIGIN":           "server.cors_origin",
	"MONGO_URL":             "mongo.url",
	"MONGO_DB":              "mongo.db",
	"JWT_SECRET":            "auth.jwt_secret",
	"JWT_TTL":               "auth.token_ttl",
	"BRAINTREE_ENV":         "braintree.environment",
	"BRAINTREE_MERCHANT_ID": "braintree.merchant_id",
	"BRAINTREE_PUBLIC_KEY":  "braintree.public_key",
	"BRAINTREE_PRIVATE_KEY": "braintree.private_key",
}

// Load builds the configuration from defaults overlaid with environment
// variables, then validates it.
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	envProvider := env.Provider("", ".", func(key string) string {
		return envKeys[key]
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the settings the server cannot start without.
func (c *Config) Validate() error {
	if c.Mongo.URL == "" {
		return fmt.Errorf("config: MONGO_URL is required")
	}
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("config: JWT_SECRET is required")
	}
	if c.Auth.TokenTTL <= 0 {
		return fmt.Errorf("config: JWT_TTL must be positive")
	}
	if c.Braintree.MerchantID == "" || c.Braintree.PublicKey == "" || c.Braintree.PrivateKey == "" {
		return fmt.Errorf("config: braintree merchant credentials are required")
	}
	return nil
}
