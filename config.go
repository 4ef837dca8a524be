package goMockAuth

import (
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/MrEthical07/goMockAuth/internal/latency"
)

// Config holds every tunable of the Engine. Obtain one from DefaultConfig, adjust it,
// and pass it to Builder.WithConfig.
type Config struct {
	Latency    LatencyConfig
	Validation ValidationConfig
	Session    SessionConfig
	Debug      DebugConfig
	Audit      AuditConfig
	Metrics    MetricsConfig
}

/*
====================================
LATENCY CONFIG
====================================
*/

// LatencyConfig shapes the simulated network round trip. Each call waits
// Min + U[0,1)·Spread.
type LatencyConfig struct {
	Min      time.Duration
	Spread   time.Duration
	Disabled bool
}

/*
====================================
VALIDATION CONFIG
====================================
*/

// ValidationConfig controls the credential rules, checked in this order: password
// length, username length, username pattern, reserved usernames.
type ValidationConfig struct {
	MinPasswordLength int
	MinUsernameLength int
	UsernamePattern   string
	ReservedUsernames []string // compared case-insensitively
}

/*
====================================
SESSION CONFIG
====================================
*/

// SessionConfig applies to the Redis-backed holder built by Builder.WithRedis.
type SessionConfig struct {
	RedisPrefix string
	TTL         time.Duration // 0 keeps the slot until logout
}

/*
====================================
DEBUG / AUDIT / METRICS CONFIG
====================================
*/

// DebugConfig sets the default for the per-call debug flag.
type DebugConfig struct {
	Enabled bool
}

// AuditConfig controls the asynchronous audit dispatcher.
type AuditConfig struct {
	Enabled    bool
	BufferSize int
	DropIfFull bool
}

// MetricsConfig controls in-process counters and the latency histogram.
type MetricsConfig struct {
	Enabled                 bool
	EnableLatencyHistograms bool
}

const defaultUsernamePattern = `^[A-Za-z0-9-_]+$`

// DefaultConfig returns the configuration the mock service ships with.
func DefaultConfig() Config {
	return defaultConfig()
}

func defaultConfig() Config {
	return Config{
		Latency: LatencyConfig{
			Min:    latency.DefaultMin,
			Spread: latency.DefaultSpread,
		},
		Validation: ValidationConfig{
			MinPasswordLength: 6,
			MinUsernameLength: 3,
			UsernamePattern:   defaultUsernamePattern,
			ReservedUsernames: []string{"bitovi"},
		},
		Session: SessionConfig{
			RedisPrefix: "ms",
		},
		Debug: DebugConfig{
			Enabled: true,
		},
		Audit: AuditConfig{
			Enabled:    false,
			BufferSize: 64,
			DropIfFull: true,
		},
		Metrics: MetricsConfig{
			Enabled:                 true,
			EnableLatencyHistograms: true,
		},
	}
}

func cloneConfig(cfg Config) Config {
	out := cfg
	if cfg.Validation.ReservedUsernames != nil {
		out.Validation.ReservedUsernames = append([]string(nil), cfg.Validation.ReservedUsernames...)
	}
	return out
}

// Validate reports the first inconsistent setting in c.
func (c *Config) Validate() error {
	// Latency
	if c.Latency.Min < 0 {
		return errors.New("Latency Min must be >= 0")
	}
	if c.Latency.Spread < 0 {
		return errors.New("Latency Spread must be >= 0")
	}

	// Validation
	if c.Validation.MinPasswordLength < 0 {
		return errors.New("Validation MinPasswordLength must be >= 0")
	}
	if c.Validation.MinUsernameLength < 0 {
		return errors.New("Validation MinUsernameLength must be >= 0")
	}
	if strings.TrimSpace(c.Validation.UsernamePattern) == "" {
		return errors.New("Validation UsernamePattern must not be empty")
	}
	if _, err := regexp.Compile(c.Validation.UsernamePattern); err != nil {
		return errors.New("Validation UsernamePattern does not compile: " + err.Error())
	}
	for _, name := range c.Validation.ReservedUsernames {
		if strings.TrimSpace(name) == "" {
			return errors.New("Validation ReservedUsernames must not contain blank names")
		}
	}

	// Session
	if strings.TrimSpace(c.Session.RedisPrefix) == "" {
		return errors.New("Session RedisPrefix must not be empty")
	}
	if c.Session.TTL < 0 {
		return errors.New("Session TTL must be >= 0")
	}

	// Audit
	if c.Audit.Enabled && c.Audit.BufferSize <= 0 {
		return errors.New("Audit BufferSize must be > 0 when Audit is enabled")
	}

	// Metrics
	if c.Metrics.EnableLatencyHistograms && !c.Metrics.Enabled {
		return errors.New("Metrics EnableLatencyHistograms requires Metrics Enabled")
	}

	return nil
}
