package config

import "time"

// Default values for optional configuration fields.
const (
	DefaultStubHubTokenURL      = "https://api.stubhub.com/sellers/oauth/token"
	DefaultStubHubBaseURL       = "https://api.stubhub.com"
	DefaultTicketmasterTokenURL = "https://oauth.ticketmaster.com/oauth/token"
	DefaultTicketmasterBaseURL  = "https://app.ticketmaster.com/discovery/v2"
	DefaultVendorTimeout        = 10 * time.Second
	DefaultDBDriver             = "postgres"
	DefaultDBPort               = 5432
	DefaultDBSSLMode            = "prefer"
	DefaultMaxConns             = 10
	DefaultMinConns             = 2
	DefaultSQLitePath           = "seatscout.db"
	DefaultCacheTTL             = 2 * time.Minute
	DefaultServerPort           = 8080
	DefaultPollInterval         = 10 * time.Minute
	DefaultPollConcurrency      = 8
	DefaultPollTimeout          = 10 * time.Second
)

func (c *Config) applyDefaults() {
	// Vendor defaults
	if c.Vendors.StubHub.TokenURL == "" {
		c.Vendors.StubHub.TokenURL = DefaultStubHubTokenURL
	}
	if c.Vendors.StubHub.BaseURL == "" {
		c.Vendors.StubHub.BaseURL = DefaultStubHubBaseURL
	}
	if c.Vendors.Ticketmaster.TokenURL == "" {
		c.Vendors.Ticketmaster.TokenURL = DefaultTicketmasterTokenURL
	}
	if c.Vendors.Ticketmaster.BaseURL == "" {
		c.Vendors.Ticketmaster.BaseURL = DefaultTicketmasterBaseURL
	}
	applyVendorDefaults(&c.Vendors.StubHub)
	applyVendorDefaults(&c.Vendors.Ticketmaster)

	// Database defaults
	if c.Database.Driver == "" {
		c.Database.Driver = DefaultDBDriver
	}
	if c.Database.SQLitePath == "" {
		c.Database.SQLitePath = DefaultSQLitePath
	}
	applyDBDefaults(&c.Database.Postgres)

	// Cache defaults
	if c.Cache.TTL == 0 {
		c.Cache.TTL = DefaultCacheTTL
	}

	// Server defaults
	if c.Server.Port == 0 {
		c.Server.Port = DefaultServerPort
	}
	if len(c.Server.AllowedOrigins) == 0 {
		c.Server.AllowedOrigins = []string{"*"}
	}

	// Poller defaults
	if c.Poller.Interval == 0 {
		c.Poller.Interval = DefaultPollInterval
	}
	if c.Poller.Concurrency == 0 {
		c.Poller.Concurrency = DefaultPollConcurrency
	}
	if c.Poller.Timeout == 0 {
		c.Poller.Timeout = DefaultPollTimeout
	}
}

func applyVendorDefaults(v *VendorConfig) {
	if v.Timeout == 0 {
		v.Timeout = DefaultVendorTimeout
	}
}

func applyDBDefaults(db *DBConfig) {
	if db.Port == 0 {
		db.Port = DefaultDBPort
	}
	if db.SSLMode == "" {
		db.SSLMode = DefaultDBSSLMode
	}
	if db.MaxConns == 0 {
		db.MaxConns = DefaultMaxConns
	}
	if db.MinConns == 0 {
		db.MinConns = DefaultMinConns
	}
}
