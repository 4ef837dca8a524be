package internaldefs

import (
	goMockAuth "github.com/MrEthical07/goMockAuth"
)

// CounterDef names one engine counter for exporters.
type CounterDef struct {
	ID   goMockAuth.MetricID
	Name string
	Help string
}

// HistogramDef names one engine histogram for exporters.
type HistogramDef struct {
	ID   goMockAuth.MetricID
	Name string
	Help string
}

// CounterDefs lists every exported counter in a stable order.
var CounterDefs = []CounterDef{
	{ID: goMockAuth.MetricLoginSuccess, Name: "mockauth_login_success_total", Help: "Logins that created a session."},
	{ID: goMockAuth.MetricLoginFailure, Name: "mockauth_login_failure_total", Help: "Logins that returned an error."},
	{ID: goMockAuth.MetricPasswordTooShort, Name: "mockauth_password_too_short_total", Help: "Logins rejected by the password length rule."},
	{ID: goMockAuth.MetricUsernameTooShort, Name: "mockauth_username_too_short_total", Help: "Logins rejected by the username length rule."},
	{ID: goMockAuth.MetricUsernameInvalid, Name: "mockauth_username_invalid_total", Help: "Logins rejected by the username character rule."},
	{ID: goMockAuth.MetricUsernameTaken, Name: "mockauth_username_taken_total", Help: "Logins rejected because the username is reserved."},
	{ID: goMockAuth.MetricLogout, Name: "mockauth_logout_total", Help: "Completed logouts."},
	{ID: goMockAuth.MetricLogoutWithoutSession, Name: "mockauth_logout_without_session_total", Help: "Logouts that found no active session."},
	{ID: goMockAuth.MetricSessionCreated, Name: "mockauth_session_created_total", Help: "Sessions written to the holder."},
	{ID: goMockAuth.MetricSessionCleared, Name: "mockauth_session_cleared_total", Help: "Sessions cleared by logout."},
}

// HistogramDefs lists every exported histogram.
var HistogramDefs = []HistogramDef{
	{ID: goMockAuth.MetricSimulatedLatency, Name: "mockauth_simulated_latency_seconds", Help: "Simulated network round trip."},
}

// AuditDroppedName is the counter of audit events dropped by a full queue.
const (
	AuditDroppedName = "mockauth_audit_dropped_total"
	AuditDroppedHelp = "Dropped audit events due to dispatcher backpressure."
)

// HistogramBounds are the bucket upper bounds in seconds, as exposition labels.
var HistogramBounds = []string{
	"0.3",
	"0.4",
	"0.5",
	"0.6",
	"0.7",
	"0.8",
	"1",
	"+Inf",
}

// HistogramBoundSuffix are HistogramBounds in a form usable inside instrument names.
var HistogramBoundSuffix = []string{
	"0_3",
	"0_4",
	"0_5",
	"0_6",
	"0_7",
	"0_8",
	"1",
	"inf",
}

// HistogramUpperBounds are HistogramBounds without +Inf, as floats.
var HistogramUpperBounds = []float64{0.3, 0.4, 0.5, 0.6, 0.7, 0.8, 1}

// NormalizeBuckets copies raw into a fixed array, padding with zeros.
func NormalizeBuckets(raw []uint64) [8]uint64 {
	var out [8]uint64
	for i := 0; i < len(out) && i < len(raw); i++ {
		out[i] = raw[i]
	}
	return out
}

// CumulativeBuckets turns per-bucket counts into running totals.
func CumulativeBuckets(raw [8]uint64) [8]uint64 {
	var out [8]uint64
	var running uint64
	for i := 0; i < len(raw); i++ {
		running += raw[i]
		out[i] = running
	}
	return out
}

// ApproximateSum estimates the histogram sum in seconds by weighting every bucket
// with its upper bound. Observations in +Inf count at the last finite bound.
func ApproximateSum(raw [8]uint64) float64 {
	var sum float64
	for i, n := range raw {
		bound := HistogramUpperBounds[len(HistogramUpperBounds)-1]
		if i < len(HistogramUpperBounds) {
			bound = HistogramUpperBounds[i]
		}
		sum += float64(n) * bound
	}
	return sum
}
