package store

// DefaultTable is used when no table name is configured.
const DefaultTable = "storefront_products"

// Config holds configuration for the Store.
type Config struct {
	// Table is the name of the DynamoDB table holding product records.
	// Default: DefaultTable
	Table string
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{Table: DefaultTable}
}

// validate fills in defaults for zero values.
func (c *Config) validate() {
	if c.Table == "" {
		c.Table = DefaultTable
	}
}
