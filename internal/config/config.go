// Package config loads runtime settings from the environment, with an
// optional file for local development.
package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config carries every setting the binaries read.
type Config struct {
	// ProductsTable is the DynamoDB table holding catalog records.
	ProductsTable string

	// DynamoEndpoint overrides the DynamoDB endpoint, e.g. a local
	// container. Empty uses the real service.
	DynamoEndpoint string

	// StripeSecretKey authenticates payment-intent calls. Only the
	// payment entrypoints need it.
	StripeSecretKey string

	// DefaultPageSize applies when a list request names no pageSize.
	DefaultPageSize int

	// MaxPageSize caps any requested pageSize.
	MaxPageSize int

	// HTTPAddr is the local server listen address.
	HTTPAddr string
}

// Load reads settings from the environment (PRODUCTS_TABLE,
// DYNAMODB_ENDPOINT, STRIPE_SECRET_KEY, DEFAULT_PAGE_SIZE, MAX_PAGE_SIZE,
// HTTP_ADDR) and, when path is non-empty, from that config file. File
// values override defaults; the environment overrides both.
func Load(path string) (Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("products_table", "storefront_products")
	v.SetDefault("dynamodb_endpoint", "")
	v.SetDefault("stripe_secret_key", "")
	v.SetDefault("default_page_size", 10)
	v.SetDefault("max_page_size", 100)
	v.SetDefault("http_addr", ":8080")

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	}

	cfg := Config{
		ProductsTable:   v.GetString("products_table"),
		DynamoEndpoint:  v.GetString("dynamodb_endpoint"),
		StripeSecretKey: v.GetString("stripe_secret_key"),
		DefaultPageSize: v.GetInt("default_page_size"),
		MaxPageSize:     v.GetInt("max_page_size"),
		HTTPAddr:        v.GetString("http_addr"),
	}
	cfg.validate()
	return cfg, nil
}

// validate fills or clamps values that came through empty or out of range.
func (c *Config) validate() {
	if c.ProductsTable == "" {
		c.ProductsTable = "storefront_products"
	}
	if c.MaxPageSize < 1 {
		c.MaxPageSize = 100
	}
	if c.DefaultPageSize < 1 {
		c.DefaultPageSize = 10
	}
	if c.DefaultPageSize > c.MaxPageSize {
		c.DefaultPageSize = c.MaxPageSize
	}
	if c.HTTPAddr == "" {
		c.HTTPAddr = ":8080"
	}
}
