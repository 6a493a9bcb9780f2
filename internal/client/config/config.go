package config

import (
	"errors"
	"fmt"
	"time"
)

var ErrInvalidConfig = errors.New("invalid config")

// Config holds runtime settings for the pricekeeper client.
//
// Fields:
//   - ServerEndpointAddr: host:port of the price store gRPC endpoint.
//   - OnlineCheckInterval: how often the client probes server reachability.
//   - SyncInterval: how often queued entries are pushed while online.
//   - RequestTimeout: upper bound for a single remote insert.
//   - DatabasePath: SQLite file holding the pending queue.
//   - AccessToken: JWT sent with every request.
//   - OwnerID: owner stamped on new entries; taken from the token when empty.
type Config struct {
	ServerEndpointAddr  string
	OnlineCheckInterval time.Duration
	SyncInterval        time.Duration
	RequestTimeout      time.Duration
	DatabasePath        string
	AccessToken         string
	OwnerID             string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "127.0.0.1:50051"
	c.OnlineCheckInterval = 3 * time.Second
	c.SyncInterval = 5 * time.Minute
	c.RequestTimeout = 15 * time.Second
	c.DatabasePath = "pricekeeper.db"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// the environment, JSON (if present) and command-line flags (if present).
// Later sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}

// Validate reports intervals that cannot drive a ticker or a request deadline.
func (c *Config) Validate() error {
	var errs []error
	if c.OnlineCheckInterval <= 0 {
		errs = append(errs, fmt.Errorf("%w: online check interval must be positive, got %s", ErrInvalidConfig, c.OnlineCheckInterval))
	}
	if c.SyncInterval <= 0 {
		errs = append(errs, fmt.Errorf("%w: sync interval must be positive, got %s", ErrInvalidConfig, c.SyncInterval))
	}
	if c.RequestTimeout <= 0 {
		errs = append(errs, fmt.Errorf("%w: request timeout must be positive, got %s", ErrInvalidConfig, c.RequestTimeout))
	}
	return errors.Join(errs...)
}
