package config

import (
	"fmt"
	"time"

	"github.com/elducche/mddcli/internal/flagx"
)

// DefaultAPIURL is overridden at link time for packaged builds.
var DefaultAPIURL = "http://localhost:8080"

// Session backends.
const (
	SessionSQLite = "sqlite"
	SessionMemory = "memory"
	SessionRedis  = "redis"
)

// Config holds runtime settings for the MDD CLI.
//
// Fields:
//   - APIURL: backend base URL; "/api/..." paths are appended to it.
//   - DBPath: SQLite file holding the persisted session.
//   - SessionBackend: where the token lives (sqlite, memory, redis).
//   - RedisAddr: host:port of Redis when SessionBackend is redis.
//   - LogLevel / LogBackend: logger level and implementation (zap or slog).
//   - AlertTTL: how long an alert stays on screen.
//   - SuccessAlerts: raise alerts from "text" fields of successful responses.
type Config struct {
	APIURL         string
	DBPath         string
	SessionBackend string
	RedisAddr      string
	LogLevel       string
	LogBackend     string
	AlertTTL       time.Duration
	SuccessAlerts  bool
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIURL = DefaultAPIURL
	c.DBPath = "mdd.db"
	c.SessionBackend = SessionSQLite
	c.RedisAddr = "127.0.0.1:6379"
	c.LogLevel = "warn"
	c.LogBackend = "zap"
	c.AlertTTL = 5 * time.Second
	c.SuccessAlerts = false
}

// LoadConfig applies defaults, the environment (and .env), the JSON file
// named by -c/-config, and finally the flags in args. args excludes the
// program name.
func LoadConfig(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	lookup, err := envLookup(EnvFile)
	if err != nil {
		return nil, err
	}
	if err := parseEnv(cfg, lookup); err != nil {
		return nil, err
	}
	if err := parseJson(cfg, flagx.ConfigFile(args)); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.SessionBackend {
	case SessionSQLite, SessionMemory, SessionRedis:
	default:
		return fmt.Errorf("unknown session backend %q", c.SessionBackend)
	}
	if c.APIURL == "" {
		return fmt.Errorf("api url is empty")
	}
	if c.AlertTTL <= 0 {
		return fmt.Errorf("alert ttl must be positive, got %s", c.AlertTTL)
	}
	return nil
}
