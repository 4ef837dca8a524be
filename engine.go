package goMockAuth

import (
	"context"
	"errors"
	"time"

	"github.com/MrEthical07/goMockAuth/internal"
	"github.com/MrEthical07/goMockAuth/internal/latency"
	"github.com/MrEthical07/goMockAuth/session"
	"github.com/sirupsen/logrus"
)

// Engine is the mock session service: it simulates a network round trip, validates
// credentials in memory and keeps at most one active session in its holder.
//
// Engine methods are safe for concurrent use. Concurrent logins are last-writer-wins;
// a logout returns and clears the slot in one atomic step.
type Engine struct {
	config  Config
	rules   *credentialRules
	holder  session.Holder
	latency LatencySource
	newID   internal.IdentifierFunc
	now     func() time.Time
	logger  logrus.FieldLogger
	audit   *auditQueue
	metrics *Metrics
}

// Close delivers queued audit events and stops the audit goroutine. The session holder is not closed;
// it belongs to the caller.
func (e *Engine) Close() {
	if e == nil {
		return
	}
	e.audit.shutdown()
}

// AuditDropped reports how many audit events never reached the sink because the
// queue was full or the caller's context ended first.
func (e *Engine) AuditDropped() uint64 {
	if e == nil {
		return 0
	}
	return e.audit.lost()
}

// MetricsSnapshot returns the current counters and latency histogram.
func (e *Engine) MetricsSnapshot() MetricsSnapshot {
	if e == nil || e.metrics == nil {
		return MetricsSnapshot{
			Counters:   map[MetricID]uint64{},
			Histograms: map[MetricID][]uint64{},
		}
	}
	return e.metrics.Snapshot()
}

func (e *Engine) metricInc(id MetricID) {
	if e == nil || e.metrics == nil {
		return
	}
	e.metrics.Inc(id)
}

func (e *Engine) ready() bool {
	return e != nil && e.holder != nil && e.latency != nil && e.rules != nil
}

// Delay waits one simulated round trip and returns its length. Every call draws a
// fresh duration. It returns ctx.Err() if ctx ends first.
func (e *Engine) Delay(ctx context.Context) (time.Duration, error) {
	if !e.ready() {
		return 0, ErrEngineNotReady
	}
	d := e.latency.Next()
	if err := latency.Wait(ctx, d); err != nil {
		return 0, err
	}
	e.metrics.Observe(MetricSimulatedLatency, d)
	return d, nil
}

// Login waits one simulated round trip, validates creds and, on success, replaces the
// active session with a freshly generated UserID/Token pair.
//
// Validation stops at the first failing rule: password length, username length,
// username characters, reserved username. Failures are returned as *ValidationError
// and leave the previous session in place. With debug on (Config.Debug.Enabled or
// WithDebug) the outcome is logged before returning.
func (e *Engine) Login(ctx context.Context, creds Credentials, opts ...CallOption) (*Session, error) {
	if !e.ready() {
		return nil, ErrEngineNotReady
	}
	o := e.resolveCallOptions(opts)

	sess, err := e.login(ctx, creds)
	if abandoned(err) {
		return nil, err
	}
	if err != nil {
		e.metricInc(MetricLoginFailure)
		if id, ok := validationMetric(err); ok {
			e.metricInc(id)
		}
		e.recordAudit(ctx, AuditEvent{
			Kind:     AuditLoginFailure,
			Username: creds.Username,
			Reason:   auditReason(err),
		})
		if o.debug {
			e.logError(ctx, "login", err)
		}
		return nil, err
	}

	e.metricInc(MetricLoginSuccess)
	e.metricInc(MetricSessionCreated)
	e.recordAudit(ctx, AuditEvent{
		Kind:     AuditLoginSuccess,
		Username: creds.Username,
		UserID:   sess.UserID,
	})
	if o.debug {
		e.logLoginSuccess(ctx, creds.Username, sess)
	}

	return sess, nil
}

func (e *Engine) login(ctx context.Context, creds Credentials) (*Session, error) {
	if _, err := e.Delay(ctx); err != nil {
		return nil, err
	}

	if err := e.rules.check(creds); err != nil {
		return nil, err
	}

	userID, token, err := internal.NewIdentifierPair(e.newID)
	if err != nil {
		return nil, errors.Join(ErrSessionCreationFailed, ErrIdentifierGeneration, err)
	}

	sess := &Session{
		UserID:    userID,
		Token:     token,
		CreatedAt: e.now().Unix(),
	}
	if err := e.holder.Store(ctx, sess); err != nil {
		return nil, errors.Join(ErrSessionCreationFailed, ErrSessionStoreUnavailable, err)
	}

	return sess, nil
}

// Logout waits one simulated round trip, then returns the active session and clears
// the slot. It returns (nil, nil) when no session was active.
//
// The error return is only reached when the holder itself fails, e.g. a Redis holder
// that cannot be contacted, or when ctx ends during the wait.
func (e *Engine) Logout(ctx context.Context, opts ...CallOption) (*Session, error) {
	if !e.ready() {
		return nil, ErrEngineNotReady
	}
	o := e.resolveCallOptions(opts)

	sess, err := e.logout(ctx)
	if abandoned(err) {
		return nil, err
	}
	if err != nil {
		e.recordAudit(ctx, AuditEvent{Kind: AuditLogout, Reason: auditReason(err)})
		if o.debug {
			e.logError(ctx, "logout", err)
		}
		return nil, err
	}

	e.metricInc(MetricLogout)
	userID := ""
	if sess == nil {
		e.metricInc(MetricLogoutWithoutSession)
	} else {
		e.metricInc(MetricSessionCleared)
		userID = sess.UserID
	}
	e.recordAudit(ctx, AuditEvent{
		Kind:       AuditLogout,
		UserID:     userID,
		HadSession: sess != nil,
	})
	if o.debug {
		e.logLogoutSuccess(ctx, sess)
	}

	return sess, nil
}

func (e *Engine) logout(ctx context.Context) (*Session, error) {
	if _, err := e.Delay(ctx); err != nil {
		return nil, err
	}

	sess, err := e.holder.Take(ctx)
	if err != nil {
		return nil, errors.Join(ErrSessionStoreUnavailable, err)
	}
	return sess, nil
}

// abandoned reports whether err only says that the caller's context ended while
// the call was waiting. Such calls record no outcome: no diagnostic line, no
// counters and no audit event.
func abandoned(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// Current returns the active session without waiting and without clearing it.
func (e *Engine) Current(ctx context.Context) (*Session, error) {
	if !e.ready() {
		return nil, ErrEngineNotReady
	}
	sess, err := e.holder.Load(ctx)
	if err != nil {
		return nil, errors.Join(ErrSessionStoreUnavailable, err)
	}
	return sess, nil
}
