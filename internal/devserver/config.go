package devserver

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/elducche/mddcli/internal/flagx"
	"github.com/elducche/mddcli/internal/timex"
)

// Config holds runtime settings for the development backend.
//
// Fields:
//   - Addr: listen address.
//   - SecretKey: HMAC secret for signing tokens (HS256). Development only.
//   - TokenTTL: lifetime of issued tokens.
//   - LogLevel: logger level.
type Config struct {
	Addr      string
	SecretKey string
	TokenTTL  time.Duration
	LogLevel  string
}

// LoadDefaults populates c with development defaults.
func (c *Config) LoadDefaults() {
	c.Addr = ":8080"
	c.SecretKey = "dev-secret"
	c.TokenTTL = 24 * time.Hour
	c.LogLevel = "info"
}

type jsonConfig struct {
	Addr      string         `json:"addr"`
	SecretKey string         `json:"secret_key"`
	TokenTTL  timex.Duration `json:"token_ttl"`
	LogLevel  string         `json:"log_level"`
}

// LoadConfig applies defaults, then the JSON file named by -c/-config, then
// the flags -a, -k, -t (token TTL in minutes) and -l.
func LoadConfig(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if path := flagx.ConfigFile(args); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		var jc jsonConfig
		if err := json.Unmarshal(data, &jc); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
		if jc.Addr != "" {
			cfg.Addr = jc.Addr
		}
		if jc.SecretKey != "" {
			cfg.SecretKey = jc.SecretKey
		}
		if jc.TokenTTL.Duration != 0 {
			cfg.TokenTTL = jc.TokenTTL.Duration
		}
		if jc.LogLevel != "" {
			cfg.LogLevel = jc.LogLevel
		}
	}

	fs := flag.NewFlagSet("devserver", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&cfg.Addr, "a", cfg.Addr, "address and port to listen on")
	fs.StringVar(&cfg.SecretKey, "k", cfg.SecretKey, "token signing key")
	ttl := fs.Int("t", int(cfg.TokenTTL.Minutes()), "token validity (in minutes)")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")

	if err := fs.Parse(flagx.FilterArgs(args, []string{"-a", "-k", "-t", "-l"})); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}
	cfg.TokenTTL = time.Duration(*ttl) * time.Minute

	return cfg, nil
}
