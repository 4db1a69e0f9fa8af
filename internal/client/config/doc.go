// Package config loads runtime configuration for the MDD command-line client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults). The API base URL
//     default can be set at link time:
//     -ldflags "-X github.com/elducche/mddcli/internal/client/config.DefaultAPIURL=https://mdd.example"
//  2. Environment variables prefixed MDD_, with a .env file in the working
//     directory filling in variables the process environment lacks.
//  3. Optional JSON file selected with -c or -config.
//  4. Command-line flags, which override everything else.
//
// Supported flags
//
//	-a string   API base URL
//	-d string   path of the local SQLite database
//	-s string   session backend: sqlite, memory or redis
//	-l string   log level: debug, info, warn, error
//
// # JSON schema
//
// Durations accept strings like "5s" or integer nanoseconds:
//
//	{
//	  "api_url": "http://localhost:8080",
//	  "db_path": "mdd.db",
//	  "session_backend": "sqlite",
//	  "redis_addr": "127.0.0.1:6379",
//	  "log_level": "warn",
//	  "log_backend": "zap",
//	  "alert_ttl": "5s",
//	  "success_alerts": false
//	}
package config
