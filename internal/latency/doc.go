// Package latency simulates network round-trip time for the mock login engine.
//
// A [Source] picks the next duration; [Wait] sleeps for it while honouring context
// cancellation. [Uniform] reproduces the default 300ms + U[0,1)·500ms latency and
// [Fixed] gives tests a deterministic (usually zero) delay.
package latency
