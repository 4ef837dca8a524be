package cliconfig

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	goMockAuth "github.com/MrEthical07/goMockAuth"
)

// Environment variables that override the file.
const (
	EnvRedisAddr = "MOCKAUTH_REDIS_ADDR"
	EnvLogLevel  = "MOCKAUTH_LOG_LEVEL"
	EnvHTTPAddr  = "MOCKAUTH_HTTP_ADDR"
)

// Config is the on-disk configuration of the mockauth command.
type Config struct {
	// logging
	LogLevel      string `toml:"log_level"`
	LogsPath      string `toml:"logs_path"`
	LogToStdout   bool   `toml:"log_to_stdout"`
	LogFormatJSON bool   `toml:"log_json"`
	// session slot
	RedisAddr   string `toml:"redis_addr"`
	RedisPrefix string `toml:"redis_prefix"`
	SessionTTL  string `toml:"session_ttl"`
	// service
	HTTPAddr string  `toml:"http_addr"`
	Debug    bool    `toml:"debug"`
	Latency  Latency `toml:"latency"`

	ReservedUsernames []string `toml:"reserved_usernames"`
}

// Latency is written as Go duration strings, e.g. "300ms".
type Latency struct {
	Min      string `toml:"min"`
	Spread   string `toml:"spread"`
	Disabled bool   `toml:"disabled"`
}

// Default mirrors goMockAuth.DefaultConfig plus the command's own settings.
func Default() Config {
	return Config{
		LogLevel:    "info",
		LogToStdout: true,
		RedisPrefix: "ms",
		HTTPAddr:    ":8080",
		Debug:       true,
		Latency: Latency{
			Min:    "300ms",
			Spread: "500ms",
		},
		ReservedUsernames: []string{"bitovi"},
	}
}

// Load reads the TOML file at path over Default, then applies the variables from
// envFile and the process environment. An empty path skips the file. A missing
// envFile is ignored; the process environment wins over it.
func Load(path, envFile string) (Config, error) {
	cfg := Default()

	if path != "" {
		md, err := toml.DecodeFile(path, &cfg)
		if err != nil {
			return Config{}, fmt.Errorf("decode %s: %w", path, err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, 0, len(undecoded))
			for _, k := range undecoded {
				keys = append(keys, k.String())
			}
			return Config{}, fmt.Errorf("unknown keys in %s: %s", path, strings.Join(keys, ", "))
		}
	}

	env := map[string]string{}
	if envFile != "" {
		fromFile, err := godotenv.Read(envFile)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("read %s: %w", envFile, err)
		}
		for k, v := range fromFile {
			env[k] = v
		}
	}
	lookup := func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
		v, ok := env[key]
		return v, ok
	}

	if v, ok := lookup(EnvRedisAddr); ok {
		cfg.RedisAddr = v
	}
	if v, ok := lookup(EnvLogLevel); ok {
		cfg.LogLevel = v
	}
	if v, ok := lookup(EnvHTTPAddr); ok {
		cfg.HTTPAddr = v
	}

	return cfg, nil
}

// EngineConfig converts c into an engine configuration and validates it.
func (c Config) EngineConfig() (goMockAuth.Config, error) {
	out := goMockAuth.DefaultConfig()

	var err error
	if out.Latency.Min, err = parseDuration("latency.min", c.Latency.Min, out.Latency.Min); err != nil {
		return goMockAuth.Config{}, err
	}
	if out.Latency.Spread, err = parseDuration("latency.spread", c.Latency.Spread, out.Latency.Spread); err != nil {
		return goMockAuth.Config{}, err
	}
	if out.Session.TTL, err = parseDuration("session_ttl", c.SessionTTL, 0); err != nil {
		return goMockAuth.Config{}, err
	}
	out.Latency.Disabled = c.Latency.Disabled
	out.Debug.Enabled = c.Debug
	if c.RedisPrefix != "" {
		out.Session.RedisPrefix = c.RedisPrefix
	}
	if c.ReservedUsernames != nil {
		out.Validation.ReservedUsernames = append([]string(nil), c.ReservedUsernames...)
	}

	if err := out.Validate(); err != nil {
		return goMockAuth.Config{}, err
	}
	return out, nil
}

func parseDuration(field, raw string, fallback time.Duration) (time.Duration, error) {
	if strings.TrimSpace(raw) == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", field, err)
	}
	return d, nil
}
