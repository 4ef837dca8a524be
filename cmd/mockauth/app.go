package main

import (
	"errors"
	"fmt"
	"io"

	goMockAuth "github.com/MrEthical07/goMockAuth"
	"github.com/MrEthical07/goMockAuth/internal/cliconfig"
	"github.com/MrEthical07/goMockAuth/internal/logging"

	"github.com/alicebob/miniredis/v2"
	"github.com/jessevdk/go-flags"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

type globalOptions struct {
	Config        string `short:"c" long:"config" description:"TOML config file"`
	EnvFile       string `long:"env-file" default:".env" description:"dotenv file with MOCKAUTH_* overrides"`
	RedisAddr     string `long:"redis-addr" description:"keep the active session in this Redis instance"`
	EmbeddedRedis bool   `long:"embedded-redis" description:"keep the active session in an in-process Redis"`
	NoDelay       bool   `long:"no-delay" description:"skip the simulated network latency"`
	Quiet         bool   `short:"q" long:"quiet" description:"turn off diagnostic lines"`
	LogLevel      string `long:"log-level" description:"trace, debug, info, warn, error"`
}

// app carries what every command needs. Commands receive it through their struct.
type app struct {
	opts   globalOptions
	stdout io.Writer
	stderr io.Writer
}

func run(args []string, stdout, stderr io.Writer) int {
	a := &app{stdout: stdout, stderr: stderr}

	parser := flags.NewParser(&a.opts, flags.HelpFlag|flags.PassDoubleDash)
	parser.Name = "mockauth"

	mustAdd := func(name, short, long string, cmd any) {
		if _, err := parser.AddCommand(name, short, long, cmd); err != nil {
			panic(err)
		}
	}
	mustAdd("login", "Log in and print the new session", "", &loginCommand{app: a})
	mustAdd("logout", "Log out and print the cleared session", "", &logoutCommand{app: a})
	mustAdd("serve", "Serve the HTTP API and /metrics", "", &serveCommand{app: a})
	mustAdd("loadtest", "Run concurrent login/logout cycles", "", &loadtestCommand{app: a})

	if _, err := parser.ParseArgs(args); err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			fmt.Fprintln(stdout, flagsErr.Message)
			return 0
		}
		fmt.Fprintln(stderr, err)
		return 1
	}
	return 0
}

// environment is everything built from options and config for one command.
type environment struct {
	cfg    cliconfig.Config
	logger *logrus.Logger
	engine *goMockAuth.Engine
	close  func()
}

type engineTweak func(*goMockAuth.Config, *goMockAuth.Builder)

func (a *app) setup(tweaks ...engineTweak) (*environment, error) {
	cfg, err := cliconfig.Load(a.opts.Config, a.opts.EnvFile)
	if err != nil {
		return nil, err
	}
	if a.opts.RedisAddr != "" {
		cfg.RedisAddr = a.opts.RedisAddr
	}
	if a.opts.LogLevel != "" {
		cfg.LogLevel = a.opts.LogLevel
	}
	if a.opts.NoDelay {
		cfg.Latency.Disabled = true
	}
	if a.opts.Quiet {
		cfg.Debug = false
	}

	logger := logging.Setup(logging.Params{
		LogFileName:   cfg.LogsPath,
		LogToStdout:   cfg.LogToStdout,
		LogLevel:      cfg.LogLevel,
		LogFormatJSON: cfg.LogFormatJSON,
		Stdout:        a.stderr,
	})

	engineCfg, err := cfg.EngineConfig()
	if err != nil {
		return nil, err
	}

	var closers []func()
	closeAll := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	b := goMockAuth.New().WithLogger(logger)

	addr := cfg.RedisAddr
	if addr == "" && a.opts.EmbeddedRedis {
		mr, err := miniredis.Run()
		if err != nil {
			return nil, fmt.Errorf("start embedded redis: %w", err)
		}
		closers = append(closers, mr.Close)
		addr = mr.Addr()
		logger.Infof("using embedded redis at %s", addr)
	}
	if addr != "" {
		client := redis.NewUniversalClient(&redis.UniversalOptions{
			Addrs: []string{addr},
		})
		closers = append(closers, func() { _ = client.Close() })
		b.WithRedis(client)
	}

	for _, tweak := range tweaks {
		tweak(&engineCfg, b)
	}
	b.WithConfig(engineCfg)

	engine, err := b.Build()
	if err != nil {
		closeAll()
		return nil, err
	}
	closers = append(closers, engine.Close)

	return &environment{
		cfg:    cfg,
		logger: logger,
		engine: engine,
		close:  closeAll,
	}, nil
}
