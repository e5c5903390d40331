// Package config loads and validates instance configuration from YAML,
// with ${VAR} references expanded from the environment.
package config

import "time"

// Config is the root configuration for a seatscout instance.
type Config struct {
	Instance InstanceConfig `yaml:"instance"`
	Vendors  VendorsConfig  `yaml:"vendors"`
	Database DatabaseConfig `yaml:"database"`
	Cache    CacheConfig    `yaml:"cache"`
	Server   ServerConfig   `yaml:"server"`
	Poller   PollerConfig   `yaml:"poller"`
}

// InstanceConfig identifies this instance.
type InstanceConfig struct {
	ID  string `yaml:"id"`
	Env string `yaml:"env"` // "dev" or "prod"
}

// VendorsConfig holds settings for each ticket vendor.
type VendorsConfig struct {
	StubHub      VendorConfig `yaml:"stubhub"`
	Ticketmaster VendorConfig `yaml:"ticketmaster"`
}

// VendorConfig holds one vendor's API settings and credentials.
type VendorConfig struct {
	TokenURL     string        `yaml:"token_url"`
	BaseURL      string        `yaml:"base_url"`
	APIKey       string        `yaml:"api_key"` // Extra query-param key (Ticketmaster)
	ClientID     string        `yaml:"client_id"`
	ClientSecret string        `yaml:"client_secret"`
	Scope        string        `yaml:"scope"` // Optional token-exchange scope
	Timeout      time.Duration `yaml:"timeout"`
}

// DatabaseConfig selects and configures the tracking store backend.
type DatabaseConfig struct {
	Driver     string   `yaml:"driver"` // "postgres" or "sqlite"
	Postgres   DBConfig `yaml:"postgres"`
	SQLitePath string   `yaml:"sqlite_path"`
}

// DBConfig holds a single PostgreSQL connection.
type DBConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"ssl_mode"`
	MaxConns int    `yaml:"max_conns"`
	MinConns int    `yaml:"min_conns"`
}

// CacheConfig holds listing-cache settings. When Redis.Addr is empty the
// in-memory cache is used.
type CacheConfig struct {
	Redis RedisConfig   `yaml:"redis"`
	TTL   time.Duration `yaml:"ttl"`
}

// RedisConfig holds Redis connection settings.
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port           int      `yaml:"port"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// PollerConfig holds price poller settings.
type PollerConfig struct {
	Interval    time.Duration `yaml:"interval"`
	Concurrency int           `yaml:"concurrency"`
	Timeout     time.Duration `yaml:"timeout"`
}
