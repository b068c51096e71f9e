package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/RoyceAzure/lab/ordercenter/internal/api"
	"github.com/RoyceAzure/lab/ordercenter/internal/api/handler"
	"github.com/RoyceAzure/lab/ordercenter/internal/api/router"
	"github.com/RoyceAzure/lab/ordercenter/internal/appcontext"
	"github.com/RoyceAzure/lab/ordercenter/internal/config"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

func newServeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			loader, err := config.NewLoader(opts.configPath)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, loader)
		},
	}
}

func runServe(ctx context.Context, loader *config.Loader) error {
	cf := loader.Get()
	logger := appcontext.NewLogger(cf, nil)

	loader.Watch(func(newCf *config.Config) {
		appcontext.SetLogLevel(newCf.LogLevel)
		logger.Info().Str("log_level", newCf.LogLevel).Msg("config reloaded")
	}, func(err error) {
		logger.Error().Err(err).Msg("reload config failed, keep current config")
	})

	app, err := appcontext.NewApplicationContext(ctx, cf, logger)
	if err != nil {
		return err
	}

	server := api.NewServer(handler.NewOrderHandler(app.OrderService), handler.NewProductHandler(app.ProductService))
	opts := router.Options{Logger: logger, Metrics: app.Metrics}
	if app.Limiter != nil {
		opts.Limiter = app.Limiter
	}
	r := router.SetupRouter(server, opts)
	for _, route := range router.Routes(r) {
		logger.Debug().Msg(route)
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cf.ServerPort),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info().Str("addr", srv.Addr).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info().Msg("received shutdown signal")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cf.ShutdownTimeout)
		defer cancel()

		var errs []error
		if err := srv.Shutdown(shutdownCtx); err != nil {
			errs = append(errs, fmt.Errorf("server shutdown: %w", err))
		}
		if err := app.Shutdown(shutdownCtx); err != nil {
			errs = append(errs, fmt.Errorf("application shutdown: %w", err))
		}
		logger.Info().Msg("closed completed")
		return errors.Join(errs...)
	})
	return g.Wait()
}
