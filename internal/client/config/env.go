package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// EnvFile is read from the working directory when present.
const EnvFile = ".env"

// envLookup resolves variables from the process environment first, then from
// the dotenv file at path. The process environment is not modified.
func envLookup(path string) (func(string) (string, bool), error) {
	file := map[string]string{}
	if _, err := os.Stat(path); err == nil {
		if file, err = godotenv.Read(path); err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}

	return func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
		v, ok := file[key]
		return v, ok
	}, nil
}

// parseEnv overlays cfg with MDD_* variables. Empty values are ignored.
func parseEnv(cfg *Config, lookup func(string) (string, bool)) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}

	str("MDD_API_URL", &cfg.APIURL)
	str("MDD_DB_PATH", &cfg.DBPath)
	str("MDD_SESSION_BACKEND", &cfg.SessionBackend)
	str("MDD_REDIS_ADDR", &cfg.RedisAddr)
	str("MDD_LOG_LEVEL", &cfg.LogLevel)
	str("MDD_LOG_BACKEND", &cfg.LogBackend)

	if v, ok := lookup("MDD_ALERT_TTL"); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("MDD_ALERT_TTL: %w", err)
		}
		cfg.AlertTTL = d
	}
	if v, ok := lookup("MDD_SUCCESS_ALERTS"); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("MDD_SUCCESS_ALERTS: %w", err)
		}
		cfg.SuccessAlerts = b
	}
	return nil
}
