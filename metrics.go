package goMockAuth

import (
	"sync/atomic"
	"time"
)

// MetricID identifies one engine counter or histogram.
type MetricID uint16

const (
	// MetricLoginSuccess counts logins that created a session.
	MetricLoginSuccess MetricID = iota
	// MetricLoginFailure counts logins that returned any error.
	MetricLoginFailure
	// MetricPasswordTooShort counts failures of the password length rule.
	MetricPasswordTooShort
	// MetricUsernameTooShort counts failures of the username length rule.
	MetricUsernameTooShort
	// MetricUsernameInvalid counts failures of the username character rule.
	MetricUsernameInvalid
	// MetricUsernameTaken counts failures of the reserved username rule.
	MetricUsernameTaken
	// MetricLogout counts completed logouts.
	MetricLogout
	// MetricLogoutWithoutSession counts logouts that found no active session.
	MetricLogoutWithoutSession
	// MetricSessionCreated counts sessions written to the holder.
	MetricSessionCreated
	// MetricSessionCleared counts sessions removed by logout.
	MetricSessionCleared
	// MetricSimulatedLatency is the histogram of simulated round trips.
	MetricSimulatedLatency
	metricIDCount
)

const (
	histBucketCount = 8
	cacheLineSize   = 64
)

type metricHistogram struct {
	buckets [histBucketCount]uint64
}

type paddedCounter struct {
	value uint64
	_     [cacheLineSize - 8]byte
}

// Metrics is a fixed set of lock-free counters plus one latency histogram.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	enabled       bool
	enableLatency bool
	counters      [metricIDCount]paddedCounter
	histograms    [metricIDCount]metricHistogram
}

// MetricsSnapshot is a point-in-time copy of every counter and histogram.
type MetricsSnapshot struct {
	Counters   map[MetricID]uint64
	Histograms map[MetricID][]uint64
}

// NewMetrics returns a Metrics configured by cfg.
func NewMetrics(cfg MetricsConfig) *Metrics {
	return &Metrics{
		enabled:       cfg.Enabled,
		enableLatency: cfg.Enabled && cfg.EnableLatencyHistograms,
	}
}

func (m *Metrics) Enabled() bool {
	return m != nil && m.enabled
}

func (m *Metrics) LatencyEnabled() bool {
	return m != nil && m.enableLatency
}

// Inc adds one to counter id.
func (m *Metrics) Inc(id MetricID) {
	if m == nil || !m.enabled || id >= metricIDCount {
		return
	}
	atomic.AddUint64(&m.counters[id].value, 1)
}

// Observe records d in the histogram of id. Only MetricSimulatedLatency has one.
func (m *Metrics) Observe(id MetricID, d time.Duration) {
	if m == nil || !m.enabled || !m.enableLatency || id >= metricIDCount {
		return
	}
	if id != MetricSimulatedLatency {
		return
	}

	b := bucketIndex(d)
	atomic.AddUint64(&m.histograms[id].buckets[b], 1)
}

func (m *Metrics) Value(id MetricID) uint64 {
	if m == nil || id >= metricIDCount {
		return 0
	}
	return atomic.LoadUint64(&m.counters[id].value)
}

// Snapshot copies the current values. Disabled metrics yield empty maps.
func (m *Metrics) Snapshot() MetricsSnapshot {
	if m == nil || !m.enabled {
		return MetricsSnapshot{
			Counters:   map[MetricID]uint64{},
			Histograms: map[MetricID][]uint64{},
		}
	}

	s := MetricsSnapshot{
		Counters:   make(map[MetricID]uint64, int(metricIDCount)),
		Histograms: make(map[MetricID][]uint64, 1),
	}

	for id := MetricID(0); id < metricIDCount; id++ {
		if id == MetricSimulatedLatency {
			continue
		}
		s.Counters[id] = atomic.LoadUint64(&m.counters[id].value)
	}

	if m.enableLatency {
		buckets := make([]uint64, histBucketCount)
		for i := 0; i < histBucketCount; i++ {
			buckets[i] = atomic.LoadUint64(&m.histograms[MetricSimulatedLatency].buckets[i])
		}
		s.Histograms[MetricSimulatedLatency] = buckets
	}

	return s
}

// bucketIndex maps d onto upper bounds 300, 400, 500, 600, 700, 800, 1000 ms, +Inf.
func bucketIndex(d time.Duration) int {
	ms := d.Milliseconds()

	switch {
	case ms <= 300:
		return 0
	case ms <= 400:
		return 1
	case ms <= 500:
		return 2
	case ms <= 600:
		return 3
	case ms <= 700:
		return 4
	case ms <= 800:
		return 5
	case ms <= 1000:
		return 6
	default:
		return 7
	}
}

func validationMetric(err error) (MetricID, bool) {
	v, ok := asValidationError(err)
	if !ok {
		return 0, false
	}
	switch v.Kind {
	case ErrPasswordTooShort:
		return MetricPasswordTooShort, true
	case ErrUsernameTooShort:
		return MetricUsernameTooShort, true
	case ErrUsernameInvalid:
		return MetricUsernameInvalid, true
	case ErrUsernameTaken:
		return MetricUsernameTaken, true
	}
	return 0, false
}
