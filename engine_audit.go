package goMockAuth

import (
	"context"
	"errors"
)

// AuditReason is the machine-readable cause recorded on failed events.
type AuditReason string

const (
	AuditReasonPasswordTooShort      AuditReason = "password_too_short"
	AuditReasonUsernameTooShort      AuditReason = "username_too_short"
	AuditReasonUsernameInvalid       AuditReason = "username_invalid"
	AuditReasonUsernameTaken         AuditReason = "username_taken"
	AuditReasonSessionCreationFailed AuditReason = "session_creation_failed"
	AuditReasonStoreUnavailable      AuditReason = "store_unavailable"
	AuditReasonInternal              AuditReason = "internal_error"
)

// recordAudit stamps ev with the time and the request fields carried by ctx and
// queues it.
func (e *Engine) recordAudit(ctx context.Context, ev AuditEvent) {
	if e == nil || e.audit == nil {
		return
	}
	ev.At = e.now().UTC()
	ev.IP = clientIPFromContext(ctx)
	ev.RequestID = requestIDFromContext(ctx)
	e.audit.push(ctx, ev)
}

func auditReason(err error) AuditReason {
	if err == nil {
		return ""
	}

	switch {
	case errors.Is(err, ErrPasswordTooShort):
		return AuditReasonPasswordTooShort
	case errors.Is(err, ErrUsernameTooShort):
		return AuditReasonUsernameTooShort
	case errors.Is(err, ErrUsernameInvalid):
		return AuditReasonUsernameInvalid
	case errors.Is(err, ErrUsernameTaken):
		return AuditReasonUsernameTaken
	case errors.Is(err, ErrSessionStoreUnavailable):
		return AuditReasonStoreUnavailable
	case errors.Is(err, ErrSessionCreationFailed):
		return AuditReasonSessionCreationFailed
	default:
		return AuditReasonInternal
	}
}
