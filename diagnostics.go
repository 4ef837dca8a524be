package goMockAuth

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
)

// Diagnostic lines are a developer side channel. Success is logged at Info and
// failures at Error; the outcome field carries the same distinction for formatters
// that drop levels.
const (
	outcomeSuccess = "success"
	outcomeError   = "error"
)

func (e *Engine) diagnostics(ctx context.Context) *logrus.Entry {
	entry := e.logger.WithField("component", "mock-session")
	if ip := clientIPFromContext(ctx); ip != "" {
		entry = entry.WithField("ip", ip)
	}
	if requestID := requestIDFromContext(ctx); requestID != "" {
		entry = entry.WithField("request_id", requestID)
	}
	return entry
}

func (e *Engine) logLoginSuccess(ctx context.Context, username string, s *Session) {
	e.diagnostics(ctx).WithFields(logrus.Fields{
		"outcome": outcomeSuccess,
		"user_id": s.UserID,
		"token":   s.Token,
	}).Info(fmt.Sprintf("Login API request for %s is successful", username))
}

func (e *Engine) logLogoutSuccess(ctx context.Context, s *Session) {
	entry := e.diagnostics(ctx).WithField("outcome", outcomeSuccess)
	if s == nil {
		entry.Info("Logout API request is successful")
		return
	}
	entry.WithField("user_id", s.UserID).
		Info("Logout API request is successful for token: " + s.Token)
}

// logError writes validation failures by their message and anything else as an
// unexpected error with the cause attached.
func (e *Engine) logError(ctx context.Context, op string, err error) {
	entry := e.diagnostics(ctx).WithFields(logrus.Fields{
		"outcome":   outcomeError,
		"operation": op,
	})
	if v, ok := asValidationError(err); ok {
		entry.Error(v.Error())
		return
	}
	entry.WithError(err).Error("Unexpected error")
}
