package goMockAuth

import (
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
)

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis.Run failed: %v", err)
	}

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return mr, client
}

// newTestEngine builds an Engine with zero latency and a captured logger. mutate may
// adjust the builder before Build.
func newTestEngine(t *testing.T, mutate func(*Builder)) (*Engine, *logtest.Hook) {
	t.Helper()

	logger, hook := logtest.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	b := New().
		WithLatencySource(FixedLatency(0)).
		WithLogger(logger)
	if mutate != nil {
		mutate(b)
	}

	engine, err := b.Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	t.Cleanup(engine.Close)

	return engine, hook
}

func validCreds() Credentials {
	return Credentials{Username: "alice", Password: "secret1"}
}
