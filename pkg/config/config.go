package config

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	AppEnv   string `envconfig:"APP_ENV" default:"dev"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
	LogFile  string `envconfig:"LOG_FILE"`

	GRPCPort int `envconfig:"GRPC_PORT" default:"8081"`
	HTTPPort int `envconfig:"HTTP_PORT" default:"8080"`

	// CatalogSource is a file path (.json, .yaml, .yml) or an http(s) URL.
	CatalogSource string `envconfig:"CATALOG_SOURCE" default:"assets/catalog.json"`

	StoreDriver string `envconfig:"STORE_DRIVER" default:"bolt"`
	StorePath   string `envconfig:"STORE_PATH" default:"storefront.db"`

	OverridesKey string `envconfig:"OVERRIDES_KEY" default:"credmint_catalog_overrides_v1"`
	CartKey      string `envconfig:"CART_KEY" default:"credmint_cart_v1"`

	TickSpec string `envconfig:"TICK_SPEC" default:"@every 1s"`
}

// Load reads an optional .env file and then the process environment.
func Load(envFiles ...string) (Config, error) {
	// A missing .env file is normal outside local development.
	_ = godotenv.Load(envFiles...)

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	switch cfg.StoreDriver {
	case "bolt", "sqlite", "memory":
	default:
		return Config{}, fmt.Errorf("load config: unknown STORE_DRIVER %q", cfg.StoreDriver)
	}
	return cfg, nil
}
