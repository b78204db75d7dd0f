package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gage_backend/internal/handlers"
	"gage_backend/internal/logger"
	"gage_backend/internal/server"

	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

func newServeCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:          "serve",
		Short:        "Start the HTTP server",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), opts)
		},
	}
}

func runServe(ctx context.Context, opts *rootOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}
	a, err := bootstrap(ctx, opts)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := a.close(); cerr != nil {
			a.log.Errorw("failed to close warehouse", "err", cerr)
		}
	}()

	apiHandler := handlers.NewHandler(a.services, a.log, handlers.Options{
		AuthMode:       a.cfg.Auth.Mode,
		CookieName:     a.cfg.Auth.CookieName,
		CookieSecure:   a.cfg.Auth.CookieSecure,
		AllowedOrigins: a.cfg.CORS.AllowedOrigins,
	})

	srv := server.New(server.Options{
		ReadHeaderTimeout: a.cfg.HTTP.ReadHeaderTimeout,
		WriteTimeout:      a.cfg.HTTP.WriteTimeout,
		IdleTimeout:       a.cfg.HTTP.IdleTimeout,
	})
	errCh := runHTTPServer(srv, a.cfg.Port, apiHandler, a.log)

	return waitForShutdown(errCh, srv, a.log)
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, port string, handler *handlers.Handler, log *logger.Logger) <-chan error {
	errCh := make(chan error, 1)
	go func() {
		if port == "" {
			port = "8080"
		}
		log.Infow("starting server", "port", port)
		errCh <- srv.Run(port, handler.InitRoutes())
	}()
	return errCh
}

// waitForShutdown blocks until a termination signal or a server failure,
// then drains in-flight requests.
func waitForShutdown(errCh <-chan error, srv *server.Server, log *logger.Logger) error {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-errCh:
		if err != nil {
			log.Errorw("error starting server", "err", err)
		}
		return err
	case <-quit:
	}

	log.Infow("shutting down server...")

	// allow in-flight requests to complete
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorw("server forced to shutdown", "err", err)
		return err
	}
	return nil
}
