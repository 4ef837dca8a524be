package goMockAuth

import (
	"errors"
	"time"

	"github.com/MrEthical07/goMockAuth/internal"
	"github.com/MrEthical07/goMockAuth/internal/latency"
	"github.com/MrEthical07/goMockAuth/session"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// LatencySource yields the duration of the next simulated round trip.
type LatencySource interface {
	Next() time.Duration
}

// FixedLatency returns a source that always waits d. Tests use FixedLatency(0).
func FixedLatency(d time.Duration) LatencySource {
	return latency.Fixed(d)
}

// Builder assembles an Engine. A Builder can be used for a single Build.
type Builder struct {
	config Config
	redis  redis.UniversalClient
	holder session.Holder

	latency   LatencySource
	newID     func() (string, error)
	now       func() time.Time
	logger    logrus.FieldLogger
	auditSink AuditSink

	built bool
}

// New returns a Builder preloaded with DefaultConfig.
func New() *Builder {
	return &Builder{
		config: defaultConfig(),
	}
}

func (b *Builder) WithConfig(cfg Config) *Builder {
	b.config = cloneConfig(cfg)
	return b
}

// WithRedis keeps the active session in Redis under Config.Session.RedisPrefix.
// It is ignored when WithSessionHolder is also used.
func (b *Builder) WithRedis(client redis.UniversalClient) *Builder {
	b.redis = client
	return b
}

// WithSessionHolder injects the slot the Engine reads and writes.
func (b *Builder) WithSessionHolder(h session.Holder) *Builder {
	b.holder = h
	return b
}

// WithLatencySource replaces the randomized delay built from Config.Latency.
func (b *Builder) WithLatencySource(src LatencySource) *Builder {
	b.latency = src
	return b
}

// WithIdentifierGenerator replaces the uuid v4 generator used for UserID and Token.
func (b *Builder) WithIdentifierGenerator(gen func() (string, error)) *Builder {
	b.newID = gen
	return b
}

// WithClock replaces time.Now for Session.CreatedAt.
func (b *Builder) WithClock(now func() time.Time) *Builder {
	b.now = now
	return b
}

// WithLogger sets the destination of debug diagnostics.
func (b *Builder) WithLogger(logger logrus.FieldLogger) *Builder {
	b.logger = logger
	return b
}

// WithAuditSink sets where audit events go once Config.Audit.Enabled is set. Without
// one, events are written through the engine's logger.
func (b *Builder) WithAuditSink(sink AuditSink) *Builder {
	b.auditSink = sink
	return b
}

func (b *Builder) WithDebug(enabled bool) *Builder {
	b.config.Debug.Enabled = enabled
	return b
}

func (b *Builder) WithMetricsEnabled(enabled bool) *Builder {
	b.config.Metrics.Enabled = enabled
	return b
}

func (b *Builder) WithLatencyHistograms(enabled bool) *Builder {
	b.config.Metrics.EnableLatencyHistograms = enabled
	return b
}

// Build validates the configuration and returns a ready Engine.
func (b *Builder) Build() (*Engine, error) {
	if b.built {
		return nil, errors.New("builder already used")
	}

	cfg := cloneConfig(b.config)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	rules, err := newCredentialRules(cfg.Validation)
	if err != nil {
		return nil, err
	}

	// -------- SESSION HOLDER --------
	holder := b.holder
	if holder == nil && b.redis != nil {
		holder = session.NewStore(b.redis, cfg.Session.RedisPrefix, cfg.Session.TTL)
	}
	if holder == nil {
		holder = session.NewMemoryHolder()
	}

	// -------- LATENCY --------
	src := b.latency
	if src == nil {
		if cfg.Latency.Disabled {
			src = latency.Fixed(0)
		} else {
			uniform, err := latency.NewUniform(cfg.Latency.Min, cfg.Latency.Spread, nil)
			if err != nil {
				return nil, err
			}
			src = uniform
		}
	}

	logger := b.logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	now := b.now
	if now == nil {
		now = time.Now
	}

	engine := &Engine{
		config:  cloneConfig(cfg),
		rules:   rules,
		holder:  holder,
		latency: src,
		newID:   internal.IdentifierFunc(b.newID),
		now:     now,
		logger:  logger,
	}
	sink := b.auditSink
	if sink == nil {
		sink = NewAuditLogSink(logger)
	}
	engine.audit = newAuditQueue(cfg.Audit, sink)
	engine.metrics = NewMetrics(cfg.Metrics)

	b.built = true

	return engine, nil
}
