package goMockAuth

import (
	"context"
	"sync"
	"sync/atomic"
)

// auditQueue hands events from Login and Logout to the sink on a single goroutine,
// so a slow sink never stretches the simulated round trip.
//
// Sends and the final close of events are serialised by mu: pushes hold the read
// lock, shutdown takes the write lock, so nothing is ever sent on a closed channel.
type auditQueue struct {
	sink   AuditSink
	events chan AuditEvent
	lossy  bool

	mu      sync.RWMutex
	shut    bool
	dropped atomic.Uint64
	done    chan struct{}
}

// newAuditQueue starts the delivery goroutine. It returns nil when auditing is off,
// and every method accepts a nil receiver.
func newAuditQueue(cfg AuditConfig, sink AuditSink) *auditQueue {
	if !cfg.Enabled || sink == nil {
		return nil
	}
	size := cfg.BufferSize
	if size <= 0 {
		size = 1
	}

	q := &auditQueue{
		sink:   sink,
		events: make(chan AuditEvent, size),
		lossy:  cfg.DropIfFull,
		done:   make(chan struct{}),
	}
	go q.deliver()
	return q
}

// deliver runs until events is closed and empty.
func (q *auditQueue) deliver() {
	defer close(q.done)
	for ev := range q.events {
		q.sink.Emit(context.Background(), ev)
	}
}

// push queues ev. A lossy queue drops ev when full; otherwise push waits for room
// until ctx ends. Either way a lost event is counted.
func (q *auditQueue) push(ctx context.Context, ev AuditEvent) {
	if q == nil {
		return
	}
	q.mu.RLock()
	defer q.mu.RUnlock()
	if q.shut {
		return
	}

	if q.lossy {
		select {
		case q.events <- ev:
		default:
			q.dropped.Add(1)
		}
		return
	}

	if ctx == nil {
		ctx = context.Background()
	}
	select {
	case q.events <- ev:
	case <-ctx.Done():
		q.dropped.Add(1)
	}
}

// shutdown stops intake and waits until every queued event reached the sink.
func (q *auditQueue) shutdown() {
	if q == nil {
		return
	}
	q.mu.Lock()
	if !q.shut {
		q.shut = true
		close(q.events)
	}
	q.mu.Unlock()
	<-q.done
}

func (q *auditQueue) lost() uint64 {
	if q == nil {
		return 0
	}
	return q.dropped.Load()
}
