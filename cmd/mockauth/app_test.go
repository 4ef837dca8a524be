package main

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"
	"time"

	goMockAuth "github.com/MrEthical07/goMockAuth"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCLI(t *testing.T, args ...string) (int, string, string) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	base := []string{"--env-file", filepath.Join(t.TempDir(), ".env"), "--no-delay"}
	code := run(append(base, args...), &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestHelp(t *testing.T) {
	code, out, _ := runCLI(t, "--help")
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "login")
	assert.Contains(t, out, "loadtest")
}

func TestLoginThenLogoutAcrossInvocations(t *testing.T) {
	mr := miniredis.RunT(t)

	code, out, stderr := runCLI(t, "--quiet", "--redis-addr", mr.Addr(), "login", "-u", "alice", "-p", "secret1")
	require.Equal(t, 0, code, stderr)

	var sess goMockAuth.Session
	require.NoError(t, json.Unmarshal([]byte(out), &sess))
	assert.NotEmpty(t, sess.Token)
	assert.True(t, mr.Exists("ms:active"))

	code, out, stderr = runCLI(t, "--quiet", "--redis-addr", mr.Addr(), "logout")
	require.Equal(t, 0, code, stderr)

	var cleared struct {
		Session *goMockAuth.Session `json:"session"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &cleared))
	require.NotNil(t, cleared.Session)
	assert.Equal(t, sess.Token, cleared.Session.Token)

	code, out, _ = runCLI(t, "--quiet", "--redis-addr", mr.Addr(), "logout")
	require.Equal(t, 0, code)
	assert.JSONEq(t, `{"session":null}`, out)
}

func TestLoginValidationFailure(t *testing.T) {
	code, out, stderr := runCLI(t, "login", "-u", "bitovi", "-p", "secret1")
	assert.Equal(t, 1, code)
	assert.Empty(t, out)
	assert.Contains(t, stderr, `"bitovi" username is already taken`)
}

func TestLoginRequiresFlags(t *testing.T) {
	code, _, stderr := runCLI(t, "login", "-u", "alice")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "password")
}

func TestDebugLineGoesToStderr(t *testing.T) {
	code, out, stderr := runCLI(t, "--log-level", "info", "login", "-u", "alice", "-p", "secret1")
	require.Equal(t, 0, code, stderr)
	assert.Contains(t, stderr, "Login API request for alice is successful")
	assert.NotContains(t, out, "Login API request")
}

func TestLoadtest(t *testing.T) {
	code, out, stderr := runCLI(t, "loadtest", "--workers", "4", "--ops", "200")
	require.Equal(t, 0, code, stderr)
	assert.Contains(t, out, "login: ops=200 failures=0")
	assert.Contains(t, out, "logout: ops=200 failures=0")
}

func TestLoadtestRejectsZeroWorkers(t *testing.T) {
	code, _, stderr := runCLI(t, "loadtest", "--workers", "0")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "must be > 0")
}

func TestGeneratedCredentialsAreValid(t *testing.T) {
	engine, err := goMockAuth.New().
		WithLatencySource(goMockAuth.FixedLatency(0)).
		WithDebug(false).
		Build()
	require.NoError(t, err)
	defer engine.Close()

	for _, creds := range generateCredentials(7, 200) {
		_, err := engine.Login(t.Context(), creds)
		require.NoError(t, err, "%+v", creds)
	}
}

func TestPercentile(t *testing.T) {
	samples := make([]time.Duration, 100)
	for i := range samples {
		samples[i] = time.Duration(i+1) * time.Millisecond
	}

	assert.Equal(t, time.Millisecond, percentile(samples, 0))
	assert.Equal(t, 50*time.Millisecond, percentile(samples, 50))
	assert.Equal(t, 99*time.Millisecond, percentile(samples, 99))
	assert.Equal(t, 100*time.Millisecond, percentile(samples, 100))
	assert.Equal(t, time.Duration(0), percentile(nil, 50))
}

func TestComputeStatsEmpty(t *testing.T) {
	s := computeStats(time.Second, nil, 0)
	assert.Equal(t, 0, s.ops)
	assert.True(t, strings.HasPrefix(s.total.String(), "1s"))
}
