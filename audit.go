package goMockAuth

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

// AuditKind names what a Login or Logout call did to the session slot.
type AuditKind string

const (
	// AuditLoginSuccess is recorded when a login replaced the active session.
	AuditLoginSuccess AuditKind = "login_success"
	// AuditLoginFailure is recorded when a login was rejected or could not store
	// its session.
	AuditLoginFailure AuditKind = "login_failure"
	// AuditLogout is recorded for every completed or failed logout. A failed logout
	// carries a Reason.
	AuditLogout AuditKind = "logout"
)

// AuditEvent records one Login or Logout outcome. The password is never part of it.
type AuditEvent struct {
	At         time.Time   `json:"at"`
	Kind       AuditKind   `json:"kind"`
	Username   string      `json:"username,omitempty"`
	UserID     string      `json:"user_id,omitempty"`
	HadSession bool        `json:"had_session,omitempty"`
	Reason     AuditReason `json:"reason,omitempty"`
	IP         string      `json:"ip,omitempty"`
	RequestID  string      `json:"request_id,omitempty"`
}

// Failed reports whether the call behind the event returned an error.
func (ev AuditEvent) Failed() bool {
	return ev.Reason != ""
}

func (ev AuditEvent) fields() logrus.Fields {
	fields := logrus.Fields{
		"audit": string(ev.Kind),
		"at":    ev.At.Format(time.RFC3339Nano),
	}
	if ev.Username != "" {
		fields["username"] = ev.Username
	}
	if ev.UserID != "" {
		fields["user_id"] = ev.UserID
	}
	if ev.Kind == AuditLogout && !ev.Failed() {
		fields["had_session"] = ev.HadSession
	}
	if ev.Failed() {
		fields["reason"] = string(ev.Reason)
	}
	if ev.IP != "" {
		fields["ip"] = ev.IP
	}
	if ev.RequestID != "" {
		fields["request_id"] = ev.RequestID
	}
	return fields
}

// AuditSink receives events from the engine's audit goroutine, one at a time.
type AuditSink interface {
	Emit(ctx context.Context, event AuditEvent)
}

// AuditSinkFunc adapts a function to AuditSink.
type AuditSinkFunc func(ctx context.Context, event AuditEvent)

func (f AuditSinkFunc) Emit(ctx context.Context, event AuditEvent) {
	f(ctx, event)
}

// AuditLogSink writes each event as one logrus entry: Info for successful calls,
// Warn for failed ones. Pair it with a JSON formatter to get one JSON object per
// event.
type AuditLogSink struct {
	logger logrus.FieldLogger
}

// NewAuditLogSink returns a sink writing to logger. A nil logger uses the logrus
// standard logger.
func NewAuditLogSink(logger logrus.FieldLogger) *AuditLogSink {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &AuditLogSink{logger: logger}
}

func (s *AuditLogSink) Emit(_ context.Context, event AuditEvent) {
	entry := s.logger.WithFields(event.fields())
	if event.Failed() {
		entry.Warn("session audit")
		return
	}
	entry.Info("session audit")
}
