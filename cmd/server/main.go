package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/portfolio/backend/internal/config"
	"github.com/portfolio/backend/internal/handler"
	"github.com/portfolio/backend/internal/logging"
	"github.com/portfolio/backend/internal/repository"
	"github.com/portfolio/backend/internal/service"
	"golang.org/x/sync/errgroup"
)

const rateLimiterPruneInterval = 5 * time.Minute

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Setup("INFO", "")
		logging.Fatal("load config failed", "error", err)
	}
	logging.Setup(cfg.LogLevel, cfg.LogFile)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := repository.Open(ctx, cfg.DatabaseDriver, cfg.DatabaseURL)
	if err != nil {
		logging.Fatal("failed to connect to database", "driver", cfg.DatabaseDriver, "error", err)
	}
	defer closeStore()

	contactService := service.NewContactService(store)

	var limiter *handler.RateLimiter
	if cfg.RateLimit > 0 {
		limiter = handler.NewRateLimiter(cfg.RateLimit, cfg.TrustedProxies)
	}

	server := &http.Server{
		Addr: cfg.HTTPAddr,
		Handler: handler.NewRouter(handler.RouterConfig{
			DB:             store,
			ContactService: contactService,
			FrontendURL:    cfg.FrontendURL,
			AdminToken:     cfg.AdminToken,
			RateLimiter:    limiter,
			Metrics:        cfg.MetricsEnabled,
		}),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		slog.Info("server listening",
			"addr", server.Addr,
			"driver", cfg.DatabaseDriver,
			"admin", cfg.AdminEnabled(),
			"rate_limit", cfg.RateLimit,
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	if limiter != nil {
		eg.Go(func() error {
			limiter.Run(ctx, rateLimiterPruneInterval)
			return nil
		})
	}
	eg.Go(func() error {
		<-ctx.Done()
		slog.Info("shutting down", "timeout", cfg.ShutdownTimeout.String())
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := eg.Wait(); err != nil {
		closeStore()
		logging.Fatal("server error", "error", err)
	}
	slog.Info("server stopped")
}
