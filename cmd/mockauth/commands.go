package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	goMockAuth "github.com/MrEthical07/goMockAuth"
	"github.com/MrEthical07/goMockAuth/internal/httpapi"
	"github.com/MrEthical07/goMockAuth/internal/logging"
	"github.com/MrEthical07/goMockAuth/metrics/export/prometheus"
)

type loginCommand struct {
	app *app

	Username string `short:"u" long:"username" required:"true" description:"username"`
	Password string `short:"p" long:"password" required:"true" description:"password"`
}

func (c *loginCommand) Execute([]string) error {
	env, err := c.app.setup()
	if err != nil {
		return err
	}
	defer env.close()

	sess, err := env.engine.Login(context.Background(), goMockAuth.Credentials{
		Username: c.Username,
		Password: c.Password,
	})
	if err != nil {
		return err
	}
	return c.app.printJSON(sess)
}

type logoutCommand struct {
	app *app
}

func (c *logoutCommand) Execute([]string) error {
	env, err := c.app.setup()
	if err != nil {
		return err
	}
	defer env.close()

	sess, err := env.engine.Logout(context.Background())
	if err != nil {
		return err
	}
	return c.app.printJSON(map[string]*goMockAuth.Session{"session": sess})
}

func (a *app) printJSON(v any) error {
	enc := json.NewEncoder(a.stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

type serveCommand struct {
	app *app

	Addr  string `long:"addr" description:"listen address, overrides http_addr"`
	Audit bool   `long:"audit" description:"write audit events as JSON lines to stdout"`
}

func (c *serveCommand) Execute([]string) error {
	var tweaks []engineTweak
	if c.Audit {
		tweaks = append(tweaks, func(cfg *goMockAuth.Config, b *goMockAuth.Builder) {
			cfg.Audit.Enabled = true
			auditLog := logging.Setup(logging.Params{
				LogLevel:      "info",
				LogFormatJSON: true,
				Stdout:        c.app.stdout,
			})
			b.WithAuditSink(goMockAuth.NewAuditLogSink(auditLog))
		})
	}

	env, err := c.app.setup(tweaks...)
	if err != nil {
		return err
	}
	defer env.close()

	addr := env.cfg.HTTPAddr
	if c.Addr != "" {
		addr = c.Addr
	}

	router := httpapi.NewRouter(env.engine, env.logger, prometheus.Handler(prometheus.NewCollector(env.engine)))
	server := httpapi.NewServer(addr, router)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		env.logger.Infof("listening on %s", addr)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	env.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
