package config

import (
	"os"
	"strconv"
	"time"

	"github.com/dmitrijs2005/pricekeeper/internal/flagx"
	"github.com/joho/godotenv"
)

const (
	EnvGRPCAddr       = "PRICEKEEPER_GRPC_ADDR"
	EnvHTTPAddr       = "PRICEKEEPER_HTTP_ADDR"
	EnvDatabaseDSN    = "PRICEKEEPER_DATABASE_DSN"
	EnvSecretKey      = "PRICEKEEPER_SECRET_KEY"
	EnvTokenValidity  = "PRICEKEEPER_TOKEN_VALIDITY"
	EnvRateLimitRPS   = "PRICEKEEPER_RATE_LIMIT_RPS"
	EnvRateLimitBurst = "PRICEKEEPER_RATE_LIMIT_BURST"
)

// parseEnv overlays Config with PRICEKEEPER_* variables, falling back to the
// dotenv file named by -env. Panics on unreadable files or malformed numbers.
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

	if v := lookup(EnvGRPCAddr); v != "" {
		cfg.EndpointAddrGRPC = v
	}
	if v := lookup(EnvHTTPAddr); v != "" {
		cfg.EndpointAddrHTTP = v
	}
	if v := lookup(EnvDatabaseDSN); v != "" {
		cfg.DatabaseDSN = v
	}
	if v := lookup(EnvSecretKey); v != "" {
		cfg.SecretKey = v
	}
	if v := lookup(EnvTokenValidity); v != "" {
		cfg.TokenValidityDuration = envHours(v)
	}
	if v := lookup(EnvRateLimitRPS); v != "" {
		rps, err := strconv.ParseFloat(v, 64)
		if err != nil {
			panic(err)
		}
		cfg.RateLimitRPS = rps
	}
	if v := lookup(EnvRateLimitBurst); v != "" {
		burst, err := strconv.Atoi(v)
		if err != nil {
			panic(err)
		}
		cfg.RateLimitBurst = burst
	}
}

// envHours accepts "36h" style durations or a bare number of hours.
func envHours(v string) time.Duration {
	if n, err := strconv.Atoi(v); err == nil {
		return time.Duration(n) * time.Hour
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		panic(err)
	}
	return d
}
