package test

import (
	"context"
	"net/http"
	"testing"
	"time"

	goMockAuth "github.com/MrEthical07/goMockAuth"
	"github.com/MrEthical07/goMockAuth/middleware"
	"github.com/MrEthical07/goMockAuth/session"
)

// This test intentionally guards public API compile-compat for consumers.
func TestPublicAPISurfaceCompile(t *testing.T) {
	_ = goMockAuth.New
	_ = goMockAuth.DefaultConfig

	var _ *goMockAuth.Engine
	var _ goMockAuth.Config
	var _ goMockAuth.Credentials
	var _ *goMockAuth.Session
	var _ goMockAuth.AuditSink
	var _ goMockAuth.AuditSink = goMockAuth.NewAuditLogSink(nil)
	var _ goMockAuth.AuditSink = goMockAuth.AuditSinkFunc(nil)
	var _ goMockAuth.LatencySource = goMockAuth.FixedLatency(0)
	var _ session.Holder = session.NewMemoryHolder()

	var _ error = goMockAuth.ErrValidation
	var _ error = goMockAuth.ErrPasswordTooShort
	var _ error = goMockAuth.ErrUsernameTooShort
	var _ error = goMockAuth.ErrUsernameInvalid
	var _ error = goMockAuth.ErrUsernameTaken
	var _ error = goMockAuth.ErrSessionCreationFailed
	var _ error = goMockAuth.ErrSessionStoreUnavailable
	var _ error = &goMockAuth.ValidationError{}

	var _ func(*goMockAuth.Engine) func(http.Handler) http.Handler = middleware.RequireSession

	var _ func(*goMockAuth.Engine, context.Context, goMockAuth.Credentials, ...goMockAuth.CallOption) (*goMockAuth.Session, error) = (*goMockAuth.Engine).Login
	var _ func(*goMockAuth.Engine, context.Context, ...goMockAuth.CallOption) (*goMockAuth.Session, error) = (*goMockAuth.Engine).Logout
	var _ func(*goMockAuth.Engine, context.Context) (time.Duration, error) = (*goMockAuth.Engine).Delay
	var _ func(*goMockAuth.Engine, context.Context) (*goMockAuth.Session, error) = (*goMockAuth.Engine).Current
}
