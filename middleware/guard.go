package middleware

import (
	"context"
	"crypto/subtle"
	"net/http"
	"strings"

	goMockAuth "github.com/MrEthical07/goMockAuth"
)

type sessionContextKey struct{}

// SessionFromContext returns the session attached by RequireSession.
func SessionFromContext(ctx context.Context) (*goMockAuth.Session, bool) {
	s, ok := ctx.Value(sessionContextKey{}).(*goMockAuth.Session)
	return s, ok
}

// RequireSession admits requests whose bearer token is the token of the active
// session and rejects everything else with 401. The active session is read without
// the simulated delay.
func RequireSession(engine *goMockAuth.Engine) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if engine == nil {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			token, ok := bearerToken(r.Header.Get("Authorization"))
			if !ok {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			current, err := engine.Current(r.Context())
			if err != nil {
				http.Error(w, "session store unavailable", http.StatusServiceUnavailable)
				return
			}
			if current == nil || subtle.ConstantTimeCompare([]byte(current.Token), []byte(token)) != 1 {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), sessionContextKey{}, current)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(value string) (string, bool) {
	const bearer = "Bearer "
	if !strings.HasPrefix(value, bearer) {
		return "", false
	}

	token := value[len(bearer):]
	if token == "" {
		return "", false
	}

	return token, true
}
