package goMockAuth

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestLoginSuccessLogsInfoLine(t *testing.T) {
	engine, hook := newTestEngine(t, nil)

	sess, err := engine.Login(WithClientIP(context.Background(), "192.0.2.9"), validCreds())
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	entries := hook.AllEntries()
	if len(entries) != 1 {
		t.Fatalf("expected 1 log entry, got %d", len(entries))
	}
	entry := entries[0]
	if entry.Level != logrus.InfoLevel {
		t.Fatalf("expected info level, got %s", entry.Level)
	}
	if entry.Message != "Login API request for alice is successful" {
		t.Fatalf("unexpected message %q", entry.Message)
	}
	if entry.Data["outcome"] != outcomeSuccess || entry.Data["token"] != sess.Token {
		t.Fatalf("unexpected fields %v", entry.Data)
	}
	if entry.Data["ip"] != "192.0.2.9" {
		t.Fatalf("expected ip field, got %v", entry.Data)
	}
	for _, v := range entry.Data {
		if s, ok := v.(string); ok && s == "secret1" {
			t.Fatal("password leaked into log fields")
		}
	}
}

func TestLoginFailureLogsValidationMessage(t *testing.T) {
	engine, hook := newTestEngine(t, nil)

	_, err := engine.Login(context.Background(), Credentials{Username: "alice", Password: "123"})
	if err == nil {
		t.Fatal("expected failure")
	}

	entry := hook.LastEntry()
	if entry == nil {
		t.Fatal("expected a log entry")
	}
	if entry.Level != logrus.ErrorLevel {
		t.Fatalf("expected error level, got %s", entry.Level)
	}
	if entry.Message != err.Error() {
		t.Fatalf("expected message %q, got %q", err.Error(), entry.Message)
	}
	if entry.Data["outcome"] != outcomeError || entry.Data["operation"] != "login" {
		t.Fatalf("unexpected fields %v", entry.Data)
	}
}

func TestUnexpectedErrorLogsGenericLine(t *testing.T) {
	boom := errors.New("no entropy")
	engine, hook := newTestEngine(t, func(b *Builder) {
		b.WithIdentifierGenerator(func() (string, error) { return "", boom })
	})

	_, _ = engine.Login(context.Background(), validCreds())

	entry := hook.LastEntry()
	if entry == nil {
		t.Fatal("expected a log entry")
	}
	if entry.Message != "Unexpected error" {
		t.Fatalf("unexpected message %q", entry.Message)
	}
	logged, ok := entry.Data[logrus.ErrorKey].(error)
	if !ok || !errors.Is(logged, boom) {
		t.Fatalf("expected cause attached, got %v", entry.Data[logrus.ErrorKey])
	}
}

func TestLogoutLogsTokenWhenSessionPresent(t *testing.T) {
	engine, hook := newTestEngine(t, nil)
	ctx := context.Background()

	sess, err := engine.Login(ctx, validCreds(), Quiet())
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if _, err := engine.Logout(ctx); err != nil {
		t.Fatalf("logout failed: %v", err)
	}

	entry := hook.LastEntry()
	if entry == nil || !strings.HasSuffix(entry.Message, "for token: "+sess.Token) {
		t.Fatalf("expected token in logout line, got %+v", entry)
	}

	if _, err := engine.Logout(ctx); err != nil {
		t.Fatalf("logout failed: %v", err)
	}
	entry = hook.LastEntry()
	if entry.Message != "Logout API request is successful" {
		t.Fatalf("unexpected message %q", entry.Message)
	}
}

func TestDebugFlagControlsOutput(t *testing.T) {
	tests := []struct {
		name        string
		configDebug bool
		opts        []CallOption
		wantLogs    int
	}{
		{name: "config on", configDebug: true, wantLogs: 1},
		{name: "config off", configDebug: false, wantLogs: 0},
		{name: "quiet overrides config", configDebug: true, opts: []CallOption{Quiet()}, wantLogs: 0},
		{name: "call enables", configDebug: false, opts: []CallOption{WithDebug(true)}, wantLogs: 1},
		{name: "last option wins", configDebug: false, opts: []CallOption{WithDebug(true), Quiet()}, wantLogs: 0},
		{name: "nil option ignored", configDebug: true, opts: []CallOption{nil}, wantLogs: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine, hook := newTestEngine(t, func(b *Builder) { b.WithDebug(tt.configDebug) })

			if _, err := engine.Login(context.Background(), validCreds(), tt.opts...); err != nil {
				t.Fatalf("login failed: %v", err)
			}
			if got := len(hook.AllEntries()); got != tt.wantLogs {
				t.Fatalf("expected %d log entries, got %d", tt.wantLogs, got)
			}
		})
	}
}

func TestQuietFailureStillReturnsError(t *testing.T) {
	engine, hook := newTestEngine(t, nil)

	_, err := engine.Login(context.Background(), Credentials{Username: "a", Password: "123456"}, Quiet())
	if !errors.Is(err, ErrUsernameTooShort) {
		t.Fatalf("expected ErrUsernameTooShort, got %v", err)
	}
	if len(hook.AllEntries()) != 0 {
		t.Fatal("quiet call must not log")
	}
}
