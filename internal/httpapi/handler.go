package httpapi

import (
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"runtime/debug"
	"time"

	goMockAuth "github.com/MrEthical07/goMockAuth"
	"github.com/MrEthical07/goMockAuth/internal"
	"github.com/MrEthical07/goMockAuth/middleware"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

// RequestIDHeader carries the correlation id in both directions.
const RequestIDHeader = "X-Request-ID"

// Handler serves the mock session engine to a UI host.
type Handler struct {
	engine *goMockAuth.Engine
	logger logrus.FieldLogger
}

func NewHandler(engine *goMockAuth.Engine, logger logrus.FieldLogger) *Handler {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Handler{
		engine: engine,
		logger: logger,
	}
}

// SetupRoutes mounts the API under router.
func (h *Handler) SetupRoutes(router *mux.Router) {
	router.HandleFunc("/login", h.handleLogin).Methods("POST").Name("login")
	router.HandleFunc("/logout", h.handleLogout).Methods("POST").Name("logout")
	router.HandleFunc("/session", h.handleSession).Methods("GET").Name("session")
	router.Handle("/whoami", middleware.RequireSession(h.engine)(http.HandlerFunc(h.handleWhoAmI))).
		Methods("GET").Name("whoami")
}

// NewRouter returns a router with the API under /api and, when metrics is non-nil,
// the metrics handler under /metrics.
func NewRouter(engine *goMockAuth.Engine, logger logrus.FieldLogger, metrics http.Handler) *mux.Router {
	h := NewHandler(engine, logger)

	r := mux.NewRouter()
	r.Use(PanicRecovery(h.logger), RequestContext())

	h.SetupRoutes(r.PathPrefix("/api").Subrouter())
	if metrics != nil {
		r.Handle("/metrics", metrics).Methods("GET").Name("metrics")
	}

	return r
}

// NewServer wraps router in an http.Server with conservative timeouts. The
// simulated delay tops out well below WriteTimeout.
func NewServer(addr string, router http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
}

type sessionResponse struct {
	Session *goMockAuth.Session `json:"session"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var creds goMockAuth.Credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "malformed credentials"})
		return
	}

	sess, err := h.engine.Login(r.Context(), creds)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, sess)
}

func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	sess, err := h.engine.Logout(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, sessionResponse{Session: sess})
}

func (h *Handler) handleSession(w http.ResponseWriter, r *http.Request) {
	sess, err := h.engine.Current(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, sessionResponse{Session: sess})
}

func (h *Handler) handleWhoAmI(w http.ResponseWriter, r *http.Request) {
	sess, _ := middleware.SessionFromContext(r.Context())
	writeJSON(w, http.StatusOK, map[string]string{"userId": sess.UserID})
}

// writeError maps engine errors to status codes. Validation messages are shown to
// the caller as-is; everything else gets a generic text.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	if v, ok := goMockAuth.AsValidationError(err); ok {
		status := http.StatusBadRequest
		if errors.Is(err, goMockAuth.ErrUsernameTaken) {
			status = http.StatusConflict
		}
		writeJSON(w, status, errorResponse{Error: v.Error()})
		return
	}

	h.logger.WithFields(logrus.Fields{
		"path":       r.URL.Path,
		"request_id": w.Header().Get(RequestIDHeader),
	}).WithError(err).Warn("request failed")

	switch {
	case errors.Is(err, goMockAuth.ErrSessionStoreUnavailable):
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "session store unavailable"})
	case r.Context().Err() != nil:
		writeJSON(w, http.StatusRequestTimeout, errorResponse{Error: "request cancelled"})
	default:
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// RequestContext copies the client IP and a request id into the request context so
// the engine's diagnostics and audit events carry them. A missing X-Request-ID is
// generated.
func RequestContext() mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			host, _, err := net.SplitHostPort(r.RemoteAddr)
			if err != nil {
				host = r.RemoteAddr
			}

			requestID := r.Header.Get(RequestIDHeader)
			if requestID == "" {
				if id, err := internal.NewIdentifier(); err == nil {
					requestID = id
				}
			}
			w.Header().Set(RequestIDHeader, requestID)

			ctx := goMockAuth.WithClientIP(r.Context(), host)
			ctx = goMockAuth.WithRequestID(ctx, requestID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// PanicRecovery turns a handler panic into a 500 and logs the stack.
func PanicRecovery(logger logrus.FieldLogger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					logger.Errorf("http: panic serving %s: %v\n%s", req.URL.Path, rec, debug.Stack())
					http.Error(w, "internal error", http.StatusInternalServerError)
				}
			}()

			next.ServeHTTP(w, req)
		})
	}
}
