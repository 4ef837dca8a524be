package main

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	goMockAuth "github.com/MrEthical07/goMockAuth"

	"github.com/brianvoe/gofakeit/v6"
)

type loadtestCommand struct {
	app *app

	Workers int   `short:"w" long:"workers" default:"64" description:"concurrent workers"`
	Ops     int   `short:"n" long:"ops" default:"100000" description:"login/logout cycles in total"`
	Seed    int64 `long:"seed" default:"1" description:"seed for generated usernames"`
}

func (c *loadtestCommand) Execute([]string) error {
	if c.Workers <= 0 || c.Ops <= 0 {
		return fmt.Errorf("workers and ops must be > 0")
	}

	env, err := c.app.setup(func(cfg *goMockAuth.Config, _ *goMockAuth.Builder) {
		cfg.Latency.Disabled = true
		cfg.Debug.Enabled = false
	})
	if err != nil {
		return err
	}
	defer env.close()

	users := generateCredentials(c.Seed, 1024)
	login, logout := runCycles(context.Background(), env.engine, users, c.Ops, c.Workers)

	fmt.Fprintln(c.app.stdout, "---- results ----")
	printStats(c.app, "login", login)
	printStats(c.app, "logout", logout)
	return nil
}

// generateCredentials returns n credentials that pass every validation rule.
func generateCredentials(seed int64, n int) []goMockAuth.Credentials {
	faker := gofakeit.New(seed)
	out := make([]goMockAuth.Credentials, 0, n)
	for len(out) < n {
		username := faker.Regex(`[a-z][a-z0-9_-]{2,11}`)
		if username == "bitovi" {
			continue
		}
		out = append(out, goMockAuth.Credentials{
			Username: username,
			Password: faker.Password(true, true, true, false, false, 12),
		})
	}
	return out
}

func runCycles(ctx context.Context, engine *goMockAuth.Engine, users []goMockAuth.Credentials, ops, workers int) (phaseStats, phaseStats) {
	var (
		wg             sync.WaitGroup
		cursor         int64
		loginFailures  int64
		logoutFailures int64
		mu             sync.Mutex
		loginSamples   = make([]time.Duration, 0, ops)
		logoutSamples  = make([]time.Duration, 0, ops)
	)

	start := time.Now()
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				i := int(atomic.AddInt64(&cursor, 1)) - 1
				if i >= ops {
					return
				}
				creds := users[i%len(users)]

				t0 := time.Now()
				_, err := engine.Login(ctx, creds)
				dLogin := time.Since(t0)
				if err != nil {
					atomic.AddInt64(&loginFailures, 1)
				}

				t1 := time.Now()
				_, err = engine.Logout(ctx)
				dLogout := time.Since(t1)
				if err != nil {
					atomic.AddInt64(&logoutFailures, 1)
				}

				mu.Lock()
				loginSamples = append(loginSamples, dLogin)
				logoutSamples = append(logoutSamples, dLogout)
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	total := time.Since(start)

	return computeStats(total, loginSamples, loginFailures), computeStats(total, logoutSamples, logoutFailures)
}

type phaseStats struct {
	total    time.Duration
	ops      int
	failures int64
	p50      time.Duration
	p95      time.Duration
	p99      time.Duration
	opsPerS  float64
}

func computeStats(total time.Duration, samples []time.Duration, failures int64) phaseStats {
	if len(samples) == 0 {
		return phaseStats{total: total}
	}
	sort.Slice(samples, func(i, j int) bool { return samples[i] < samples[j] })
	return phaseStats{
		total:    total,
		ops:      len(samples),
		failures: failures,
		p50:      percentile(samples, 50),
		p95:      percentile(samples, 95),
		p99:      percentile(samples, 99),
		opsPerS:  float64(len(samples)) / total.Seconds(),
	}
}

func percentile(samples []time.Duration, p int) time.Duration {
	if len(samples) == 0 {
		return 0
	}
	if p <= 0 {
		return samples[0]
	}
	if p >= 100 {
		return samples[len(samples)-1]
	}
	idx := (len(samples) - 1) * p / 100
	return samples[idx]
}

func printStats(a *app, name string, s phaseStats) {
	fmt.Fprintf(a.stdout, "%s: ops=%d failures=%d total=%s ops/sec=%.0f p50=%s p95=%s p99=%s\n",
		name,
		s.ops,
		s.failures,
		s.total.Round(time.Millisecond),
		s.opsPerS,
		s.p50.Round(time.Microsecond),
		s.p95.Round(time.Microsecond),
		s.p99.Round(time.Microsecond),
	)
}
