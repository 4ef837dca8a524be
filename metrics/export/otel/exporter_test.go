package otel

import (
	"context"
	"sync"
	"testing"

	goMockAuth "github.com/MrEthical07/goMockAuth"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

type fakeSource struct {
	mu       sync.RWMutex
	snapshot goMockAuth.MetricsSnapshot
	dropped  uint64
}

func (f *fakeSource) MetricsSnapshot() goMockAuth.MetricsSnapshot {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := goMockAuth.MetricsSnapshot{
		Counters:   make(map[goMockAuth.MetricID]uint64, len(f.snapshot.Counters)),
		Histograms: make(map[goMockAuth.MetricID][]uint64, len(f.snapshot.Histograms)),
	}
	for k, v := range f.snapshot.Counters {
		out.Counters[k] = v
	}
	for k, buckets := range f.snapshot.Histograms {
		next := make([]uint64, len(buckets))
		copy(next, buckets)
		out.Histograms[k] = next
	}
	return out
}

func (f *fakeSource) AuditDropped() uint64 {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.dropped
}

func newManualMeter(t *testing.T) (*sdkmetric.ManualReader, *sdkmetric.MeterProvider) {
	t.Helper()
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })
	return reader, provider
}

func int64Value(t *testing.T, rm metricdata.ResourceMetrics, name string) (int64, bool) {
	t.Helper()
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != name {
				continue
			}
			switch data := m.Data.(type) {
			case metricdata.Sum[int64]:
				if len(data.DataPoints) > 0 {
					return data.DataPoints[0].Value, true
				}
			case metricdata.Gauge[int64]:
				if len(data.DataPoints) > 0 {
					return data.DataPoints[0].Value, true
				}
			}
		}
	}
	return 0, false
}

func TestExporterRegistersAndCollects(t *testing.T) {
	reader, provider := newManualMeter(t)
	meter := provider.Meter("mockauth-test")

	src := &fakeSource{
		snapshot: goMockAuth.MetricsSnapshot{
			Counters: map[goMockAuth.MetricID]uint64{
				goMockAuth.MetricLoginSuccess: 3,
			},
			Histograms: map[goMockAuth.MetricID][]uint64{
				goMockAuth.MetricSimulatedLatency: {1, 1, 1, 1, 1, 1, 1, 1},
			},
		},
		dropped: 1,
	}

	exp, err := NewOTelExporterFromSource(meter, src)
	if err != nil {
		t.Fatalf("NewOTelExporterFromSource failed: %v", err)
	}
	defer func() {
		if err := exp.Close(); err != nil {
			t.Fatalf("Close failed: %v", err)
		}
	}()

	var rm metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("Collect failed: %v", err)
	}

	if v, ok := int64Value(t, rm, "mockauth_login_success_total"); !ok || v != 3 {
		t.Fatalf("expected login success 3, got %d (found=%v)", v, ok)
	}
	if v, ok := int64Value(t, rm, "mockauth_simulated_latency_seconds_bucket_le_0_5"); !ok || v != 3 {
		t.Fatalf("expected cumulative bucket 3, got %d (found=%v)", v, ok)
	}
	if v, ok := int64Value(t, rm, "mockauth_simulated_latency_seconds_count"); !ok || v != 8 {
		t.Fatalf("expected count 8, got %d (found=%v)", v, ok)
	}
	if v, ok := int64Value(t, rm, "mockauth_audit_dropped_total"); !ok || v != 1 {
		t.Fatalf("expected dropped 1, got %d (found=%v)", v, ok)
	}
}

func TestExporterRejectsNilInputs(t *testing.T) {
	_, provider := newManualMeter(t)
	meter := provider.Meter("mockauth-test")

	if _, err := NewOTelExporterFromSource(meter, nil); err != ErrNilSource {
		t.Fatalf("expected ErrNilSource, got %v", err)
	}
	if _, err := NewOTelExporterFromSource(nil, &fakeSource{}); err != ErrNilMeter {
		t.Fatalf("expected ErrNilMeter, got %v", err)
	}
}

func TestExporterConcurrentCollectNoPanic(t *testing.T) {
	reader, provider := newManualMeter(t)
	meter := provider.Meter("mockauth-test")

	src := &fakeSource{
		snapshot: goMockAuth.MetricsSnapshot{
			Counters: map[goMockAuth.MetricID]uint64{
				goMockAuth.MetricLoginSuccess: 1,
			},
			Histograms: map[goMockAuth.MetricID][]uint64{
				goMockAuth.MetricSimulatedLatency: {1, 0, 0, 0, 0, 0, 0, 0},
			},
		},
	}

	exp, err := NewOTelExporterFromSource(meter, src)
	if err != nil {
		t.Fatalf("NewOTelExporterFromSource failed: %v", err)
	}
	defer func() {
		if err := exp.Close(); err != nil {
			t.Fatalf("Close failed: %v", err)
		}
	}()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(v uint64) {
			defer wg.Done()
			src.mu.Lock()
			src.snapshot.Counters[goMockAuth.MetricLoginSuccess] = v
			src.mu.Unlock()

			var rm metricdata.ResourceMetrics
			_ = reader.Collect(context.Background(), &rm)
		}(uint64(i + 1))
	}
	wg.Wait()
}
