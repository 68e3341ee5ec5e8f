package cmd

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	htmlrender "github.com/bnema/todos/internal/adapters/render/html"
	"github.com/bnema/todos/internal/adapters/web"
	"github.com/bnema/todos/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	generatedSecretBytes = 32
	readHeaderTimeout    = 10 * time.Second
)

func newServeCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the todo lists web application",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := wireApp(opts, cmd.ErrOrStderr(), func(v *viper.Viper) error {
				return v.BindPFlag(config.KeyServerAddr, cmd.Flags().Lookup("addr"))
			})
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return runServer(ctx, app, cmd.ErrOrStderr())
		},
	}

	cmd.Flags().String("addr", "", "listen address, overrides server.addr")
	return cmd
}

func runServer(ctx context.Context, app *app, status io.Writer) error {
	secret, err := sessionSecret(app)
	if err != nil {
		return err
	}

	renderer, err := htmlrender.NewRenderer()
	if err != nil {
		return fmt.Errorf("load templates: %w", err)
	}

	server, err := web.NewServer(web.Config{
		CookieName: app.cfg.Session.CookieName,
		Secret:     secret,
		Stylesheet: htmlrender.Stylesheet(),
	}, app.lists, app.sessions, renderer, app.log)
	if err != nil {
		return err
	}

	config.Watch(app.viper, func(cfg config.Config) {
		app.log.SetLevel(cfg.Log.Level)
		app.log.Info("config reloaded", "level", cfg.Log.Level)
	}, func(err error) {
		app.log.Warn("ignoring invalid config change", "error", err)
	})

	go app.store.Run(ctx, app.cfg.Session.SweepInterval, func(removed int) {
		app.log.Debug("swept idle sessions", "removed", removed)
	})

	listener, err := net.Listen("tcp", app.cfg.Server.Addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", app.cfg.Server.Addr, err)
	}

	httpServer := &http.Server{
		Handler:           server.Handler(),
		ReadHeaderTimeout: readHeaderTimeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- httpServer.Serve(listener)
	}()
	app.log.Info("listening", "addr", listener.Addr().String())

	select {
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve http: %w", err)
	case <-ctx.Done():
	}

	app.log.Info("shutting down", "timeout", app.cfg.Server.ShutdownTimeout)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), app.cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := runShutdownSpinner(shutdownCtx, status, httpServer.Shutdown); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}

	return nil
}

// sessionSecret falls back to a random key, which invalidates every cookie
// when the process restarts.
func sessionSecret(app *app) ([]byte, error) {
	if app.cfg.Session.Secret != "" {
		return []byte(app.cfg.Session.Secret), nil
	}

	secret := make([]byte, generatedSecretBytes)
	if _, err := rand.Read(secret); err != nil {
		return nil, fmt.Errorf("generate session secret: %w", err)
	}
	app.log.Warn("session.secret is not set, using a random secret for this process")

	return secret, nil
}
