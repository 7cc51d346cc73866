package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/stonefield/jiraSOAP/adapters/clock"
	"github.com/stonefield/jiraSOAP/adapters/idgen"
	"github.com/stonefield/jiraSOAP/adapters/memory"
	"github.com/stonefield/jiraSOAP/adapters/soap"
	"github.com/stonefield/jiraSOAP/adapters/sqlite"
	"github.com/stonefield/jiraSOAP/app"
	"github.com/stonefield/jiraSOAP/config"
	"github.com/stonefield/jiraSOAP/core/rpc"
	"github.com/stonefield/jiraSOAP/ports"
)

// runtime is everything a command needs to talk to the server.
type runtime struct {
	cfg    *config.Config
	live   func() *config.Config // set when a Holder owns the config
	logger zerolog.Logger
	client   *app.Client
	sessions ports.SessionStore
	clock    ports.Clock
	db     *sqlite.DB
	out    io.Writer
}

func loadConfig() (*config.Config, error) {
	path := cfgFile
	if path == "" {
		path = config.DefaultPath()
	}
	cfg, err := config.LoadWithFallback(path)
	if err != nil {
		return nil, err
	}
	if outputFormat != "" {
		cfg.Output.Format = outputFormat
	}
	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}
	return cfg, nil
}

func setupLogger(cfg config.LoggingConfig) zerolog.Logger {
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil {
		level = zerolog.WarnLevel
	}
	zerolog.SetGlobalLevel(level)

	// stdout is reserved for command output
	if cfg.Format == "console" {
		output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
		return zerolog.New(output).With().Timestamp().Logger()
	}
	return zerolog.New(os.Stderr).With().Timestamp().Logger()
}

func openSessions(cfg config.SessionConfig) (ports.SessionStore, *sqlite.DB, error) {
	switch cfg.Store {
	case "memory":
		return memory.NewSessionStore(), nil, nil
	default:
		db, err := sqlite.OpenMigrated(cfg.DSN)
		if err != nil {
			return nil, nil, fmt.Errorf("open session store: %w", err)
		}
		return sqlite.NewSessionStore(db), db, nil
	}
}

// newRuntime wires config, transport, dispatcher and client. observer may be
// nil.
func newRuntime(cfg *config.Config, logger zerolog.Logger, observer ports.CallObserver) (*runtime, error) {
	sessions, db, err := openSessions(cfg.Session)
	if err != nil {
		return nil, err
	}

	clk := clock.System{}
	transport := soap.NewClient(soap.ClientConfig{
		BaseURL:   cfg.Endpoint.URL,
		Path:      cfg.Endpoint.Path,
		Namespace: cfg.Endpoint.Namespace,
		Timeout:   cfg.Endpoint.Timeout,
		Headers:   cfg.Endpoint.Headers,
		Logger:    logger,
	})
	dispatcher := rpc.NewDispatcher(rpc.Deps{
		Transport: transport,
		Observer:  observer,
		IDGen:     idgen.UUID{},
		Clock:     clk,
		Logger:    logger,
	})
	client := app.NewClient(app.ClientDeps{
		Dispatcher: dispatcher,
		Sessions:   sessions,
		Clock:      clk,
		Logger:     logger,
	}, app.ClientConfig{Endpoint: cfg.Endpoint.URL})

	logger.Debug().
		Str("endpoint", transport.Endpoint()).
		Str("session_store", cfg.Session.Store).
		Msg("client ready")

	return &runtime{
		cfg:    cfg,
		logger: logger,
		client:   client,
		sessions: sessions,
		clock:    clk,
		db:     db,
		out:    os.Stdout,
	}, nil
}

// settings returns the current config: the holder's latest when one is
// attached, the startup config otherwise.
func (rt *runtime) settings() *config.Config {
	if rt.live != nil {
		return rt.live()
	}
	return rt.cfg
}

func (rt *runtime) Close() error {
	if rt.db != nil {
		return rt.db.Close()
	}
	return nil
}

var errNoSession = errors.New("not logged in: run 'jirasoap login' or set auth.username and auth.password")

// ensureLogin resumes the saved session, or logs in with configured
// credentials when there is none or it is older than session.max_age.
func (rt *runtime) ensureLogin(ctx context.Context) error {
	cfg := rt.settings()
	resumed, err := rt.client.Resume(ctx)
	if err != nil {
		return err
	}
	if resumed && !rt.client.Session().IsStale(rt.clock.Now(), cfg.Session.MaxAge) {
		rt.logger.Debug().Str("username", rt.client.Username()).Msg("resumed session")
		return nil
	}

	if cfg.Auth.Username == "" || cfg.Auth.Password == "" {
		if resumed {
			return fmt.Errorf("session expired: %w", errNoSession)
		}
		return errNoSession
	}
	_, err = rt.client.Login(ctx, cfg.Auth.Username, cfg.Auth.Password)
	return err
}

// withClient builds a logged-in runtime around fn.
func withClient(fn func(ctx context.Context, rt *runtime, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		rt, err := newRuntime(cfg, setupLogger(cfg.Logging), nil)
		if err != nil {
			return err
		}
		defer rt.Close()

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		if err := rt.ensureLogin(ctx); err != nil {
			return err
		}
		rt.out = cmd.OutOrStdout()
		return fn(ctx, rt, args)
	}
}
