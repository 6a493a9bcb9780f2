// Package config loads runtime configuration for the pricekeeper client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Environment variables prefixed PRICEKEEPER_, optionally seeded from a
//     dotenv file given with -env. Real environment values win over the file.
//  3. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   address:port of the price store gRPC endpoint
//	-i int      online status check interval (seconds)
//	-s int      periodic sync interval (seconds)
//	-t int      remote request timeout (seconds)
//	-d string   path of the local SQLite queue
//	-k string   access token
//	-o string   owner id
//
// # JSON schema
//
// The JSON loader uses timex.Duration for intervals, so values can be either
// strings like "3s" or integer nanoseconds:
//
//	{
//	  "server_endpoint_addr": "127.0.0.1:50051",
//	  "online_check_interval": "3s",
//	  "sync_interval": "5m",
//	  "request_timeout": "15s",
//	  "database_path": "pricekeeper.db",
//	  "access_token": "...",
//	  "owner_id": "..."
//	}
package config
