package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/elducche/mddcli/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Absent keys
// leave the corresponding Config field untouched.
type JsonConfig struct {
	APIURL         string         `json:"api_url"`
	DBPath         string         `json:"db_path"`
	SessionBackend string         `json:"session_backend"`
	RedisAddr      string         `json:"redis_addr"`
	LogLevel       string         `json:"log_level"`
	LogBackend     string         `json:"log_backend"`
	AlertTTL       timex.Duration `json:"alert_ttl"`
	SuccessAlerts  *bool          `json:"success_alerts"`
}

// parseJson overlays cfg with the file at path. An empty path is a no-op.
func parseJson(cfg *Config, path string) error {
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&cfg.APIURL, jc.APIURL)
	set(&cfg.DBPath, jc.DBPath)
	set(&cfg.SessionBackend, jc.SessionBackend)
	set(&cfg.RedisAddr, jc.RedisAddr)
	set(&cfg.LogLevel, jc.LogLevel)
	set(&cfg.LogBackend, jc.LogBackend)

	if jc.AlertTTL.Duration != 0 {
		cfg.AlertTTL = jc.AlertTTL.Duration
	}
	if jc.SuccessAlerts != nil {
		cfg.SuccessAlerts = *jc.SuccessAlerts
	}
	return nil
}
