package cli

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"Hello-Servers/internals/auth"
	"Hello-Servers/internals/config"
	"Hello-Servers/internals/handlers/greeting"
	"Hello-Servers/internals/handlers/jwtauth"
	"Hello-Servers/internals/handlers/session"
	"Hello-Servers/internals/logging"
	"Hello-Servers/internals/models"
	"Hello-Servers/internals/server"
	"Hello-Servers/internals/store"
	"Hello-Servers/internals/views"
)

// app is everything one variant needs to serve requests.
type app struct {
	router  http.Handler
	cleanup func()
}

type buildFunc func(ctx context.Context, cfg *config.Config, v *views.Renderer, logger *slog.Logger) (*app, error)

var variants = []struct {
	name  string
	short string
	build buildFunc
	login bool
}{
	{"static", "Serve a static Hello World page", buildStatic, false},
	{"query", "Serve a page greeting the name query parameter", buildQuery, false},
	{"session", "Serve the session-cookie login flow", buildSession, true},
	{"jwt", "Serve the JWT login flow", buildJWT, true},
}

func init() {
	for _, v := range variants {
		rootCmd.AddCommand(&cobra.Command{
			Use:   v.name,
			Short: v.short,
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return runVariant(cmd, v.name, v.build, v.login)
			},
		})
	}
}

func runVariant(cmd *cobra.Command, name string, build buildFunc, login bool) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	logger := logging.New(os.Stderr, cfg.Log.Level, cfg.Log.Format).With("variant", name)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	v, err := views.NewRenderer(cfg.Server.Port, cfg.Render.LegacyUnescaped)
	if err != nil {
		return err
	}
	if cfg.Render.LegacyUnescaped {
		logger.Warn("legacy unescaped rendering enabled; pages reflect raw user input")
	}

	a, err := build(ctx, cfg, v, logger)
	if err != nil {
		return fmt.Errorf("failed to start %s server: %w", name, err)
	}
	defer a.cleanup()

	if login {
		logBanner(logger)
	}
	return server.New(cfg, a.router, logger).Run(ctx)
}

func logBanner(logger *slog.Logger) {
	for _, acct := range models.DemoAccounts() {
		logger.Info("demo account", "username", acct.Username, "password", acct.Password)
	}
}

func buildStatic(_ context.Context, _ *config.Config, v *views.Renderer, logger *slog.Logger) (*app, error) {
	return &app{router: greeting.NewStaticRouter(v, logger), cleanup: func() {}}, nil
}

func buildQuery(_ context.Context, _ *config.Config, v *views.Renderer, logger *slog.Logger) (*app, error) {
	return &app{router: greeting.NewQueryRouter(v, logger), cleanup: func() {}}, nil
}

func buildSession(ctx context.Context, cfg *config.Config, v *views.Renderer, logger *slog.Logger) (*app, error) {
	users, cleanup, err := newUserStore(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	sessions, err := store.NewSessionStore(cfg.Auth.SessionCapacity)
	if err != nil {
		cleanup()
		return nil, err
	}
	return &app{router: session.NewRouter(users, sessions, v, logger), cleanup: cleanup}, nil
}

func buildJWT(ctx context.Context, cfg *config.Config, v *views.Renderer, logger *slog.Logger) (*app, error) {
	if cfg.UsesDefaultSecret() {
		logger.Warn("using the built-in JWT secret; set auth.jwt_secret or HELLO_JWT_SECRET")
	}
	users, cleanup, err := newUserStore(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	issuer := auth.NewIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	return &app{router: jwtauth.NewRouter(users, issuer, v, logger), cleanup: cleanup}, nil
}

// newUserStore picks the sqlite store when a path is configured and seeds
// it with the demo accounts.
func newUserStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (store.UserStore, func(), error) {
	var users store.UserStore
	cleanup := func() {}

	if path := cfg.Database.SQLitePath; path != "" {
		db, err := store.NewSQLiteUserStore(path)
		if err != nil {
			return nil, nil, err
		}
		users = db
		cleanup = func() {
			if err := db.Close(); err != nil {
				logger.Error("failed to close database", "error", err)
			}
		}
		logger.Info("using sqlite user store", "path", path)
	} else {
		users = store.NewMemoryUserStore()
	}

	if err := store.Seed(ctx, users, models.DemoAccounts(), cfg.Auth.PasswordCost); err != nil {
		cleanup()
		return nil, nil, err
	}
	return users, cleanup, nil
}
