package prometheus

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	goMockAuth "github.com/MrEthical07/goMockAuth"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	snapshot goMockAuth.MetricsSnapshot
	dropped  uint64
}

func (f fakeSource) MetricsSnapshot() goMockAuth.MetricsSnapshot { return f.snapshot }
func (f fakeSource) AuditDropped() uint64                        { return f.dropped }

func scrape(t *testing.T, c *Collector) string {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	Handler(c).ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	return string(body)
}

func TestCollectEmptyWhenMetricsDisabled(t *testing.T) {
	c := NewCollectorFromSource(fakeSource{
		snapshot: goMockAuth.MetricsSnapshot{
			Counters:   map[goMockAuth.MetricID]uint64{},
			Histograms: map[goMockAuth.MetricID][]uint64{},
		},
	})

	assert.Equal(t, 0, testutil.CollectAndCount(c))
}

func TestCollectCounters(t *testing.T) {
	c := NewCollectorFromSource(fakeSource{
		snapshot: goMockAuth.MetricsSnapshot{
			Counters: map[goMockAuth.MetricID]uint64{
				goMockAuth.MetricLoginSuccess:  7,
				goMockAuth.MetricUsernameTaken: 2,
			},
			Histograms: map[goMockAuth.MetricID][]uint64{},
		},
		dropped: 3,
	})

	expected := `
# HELP mockauth_login_success_total Logins that created a session.
# TYPE mockauth_login_success_total counter
mockauth_login_success_total 7
# HELP mockauth_username_taken_total Logins rejected because the username is reserved.
# TYPE mockauth_username_taken_total counter
mockauth_username_taken_total 2
# HELP mockauth_audit_dropped_total Dropped audit events due to dispatcher backpressure.
# TYPE mockauth_audit_dropped_total counter
mockauth_audit_dropped_total 3
`
	err := testutil.CollectAndCompare(c, strings.NewReader(expected),
		"mockauth_login_success_total",
		"mockauth_username_taken_total",
		"mockauth_audit_dropped_total",
	)
	require.NoError(t, err)
}

func TestHandlerRendersCumulativeHistogram(t *testing.T) {
	c := NewCollectorFromSource(fakeSource{
		snapshot: goMockAuth.MetricsSnapshot{
			Counters: map[goMockAuth.MetricID]uint64{goMockAuth.MetricLoginSuccess: 1},
			Histograms: map[goMockAuth.MetricID][]uint64{
				goMockAuth.MetricSimulatedLatency: {1, 2, 3, 4, 5, 6, 7, 8},
			},
		},
	})

	out := scrape(t, c)
	assert.Contains(t, out, `mockauth_simulated_latency_seconds_bucket{le="0.3"} 1`)
	assert.Contains(t, out, `mockauth_simulated_latency_seconds_bucket{le="0.8"} 21`)
	assert.Contains(t, out, `mockauth_simulated_latency_seconds_bucket{le="+Inf"} 36`)
	assert.Contains(t, out, "mockauth_simulated_latency_seconds_count 36")
}

func TestCollectorOverEngine(t *testing.T) {
	engine, err := goMockAuth.New().
		WithLatencySource(goMockAuth.FixedLatency(0)).
		WithDebug(false).
		Build()
	require.NoError(t, err)
	defer engine.Close()

	ctx := context.Background()
	_, err = engine.Login(ctx, goMockAuth.Credentials{Username: "alice", Password: "secret1"})
	require.NoError(t, err)
	_, err = engine.Logout(ctx)
	require.NoError(t, err)

	out := scrape(t, NewCollector(engine))
	assert.Contains(t, out, "mockauth_login_success_total 1")
	assert.Contains(t, out, "mockauth_session_cleared_total 1")
	assert.Contains(t, out, `mockauth_simulated_latency_seconds_bucket{le="0.3"} 2`)
}
