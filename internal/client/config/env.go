package config

import (
	"os"
	"strconv"
	"time"

	"github.com/dmitrijs2005/pricekeeper/internal/flagx"
	"github.com/joho/godotenv"
)

const (
	EnvServerAddr          = "PRICEKEEPER_SERVER_ADDR"
	EnvOnlineCheckInterval = "PRICEKEEPER_ONLINE_CHECK_INTERVAL"
	EnvSyncInterval        = "PRICEKEEPER_SYNC_INTERVAL"
	EnvRequestTimeout      = "PRICEKEEPER_REQUEST_TIMEOUT"
	EnvDatabasePath        = "PRICEKEEPER_DB_PATH"
	EnvAccessToken         = "PRICEKEEPER_ACCESS_TOKEN"
	EnvOwnerID             = "PRICEKEEPER_OWNER_ID"
)

// parseEnv overlays Config with PRICEKEEPER_* variables. A dotenv file named
// by -env fills in variables missing from the process environment.
// Panics when the file cannot be read or a duration is malformed.
func parseEnv(cfg *Config) {
	var file map[string]string
	if path := flagx.EnvFileFlags(); path != "" {
		m, err := godotenv.Read(path)
		if err != nil {
			panic(err)
		}
		file = m
	}

	lookup := func(key string) string {
		if v, ok := os.LookupEnv(key); ok {
			return v
		}
		return file[key]
	}

	if v := lookup(EnvServerAddr); v != "" {
		cfg.ServerEndpointAddr = v
	}
	if v := lookup(EnvDatabasePath); v != "" {
		cfg.DatabasePath = v
	}
	if v := lookup(EnvAccessToken); v != "" {
		cfg.AccessToken = v
	}
	if v := lookup(EnvOwnerID); v != "" {
		cfg.OwnerID = v
	}
	if v := lookup(EnvOnlineCheckInterval); v != "" {
		cfg.OnlineCheckInterval = envDuration(v)
	}
	if v := lookup(EnvSyncInterval); v != "" {
		cfg.SyncInterval = envDuration(v)
	}
	if v := lookup(EnvRequestTimeout); v != "" {
		cfg.RequestTimeout = envDuration(v)
	}
}

// envDuration accepts "90s" style durations or a bare number of seconds.
func envDuration(v string) time.Duration {
	if n, err := strconv.Atoi(v); err == nil {
		return time.Duration(n) * time.Second
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		panic(err)
	}
	return d
}
