package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"redislite/internal/command"
	"redislite/internal/config"
	"redislite/internal/logging"
	"redislite/internal/metrics"
	"redislite/internal/server"
	storage "redislite/internal/storage/cache"
	"redislite/internal/storage/monitor"
)

func main() {
	cfg, err := config.Load(os.Args[1:], os.Getenv)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintln(os.Stderr, "redislite:", err)
		os.Exit(2)
	}

	logger := logging.Setup(logging.Config{
		Level:  cfg.LogLevel,
		Pretty: cfg.LogPretty,
		Output: os.Stderr,
	})

	if err := run(cfg, logger); err != nil {
		logger.Fatal().Err(err).Msg("server failed")
	}
	logger.Info().Msg("bye")
}

func run(cfg config.Config, logger zerolog.Logger) error {
	cacheLog := logger.With().Str("component", "cache").Logger()

	// Создаём LRU-кеш
	cache, err := storage.New(cfg.Capacity,
		storage.WithGetCallback(metrics.ObserveGet),
		storage.WithEvictCallback(func(key, _ string) {
			metrics.CacheEvictions.Inc()
			cacheLog.Debug().Str("key", key).Msg("evicted")
		}),
	)
	if err != nil {
		return err
	}

	// Метрики размера кеша
	mon := monitor.New(cache, cfg.StatsInterval, cacheLog)
	mon.Start()
	defer mon.Stop()

	proc := command.NewProcessor(cache, logger.With().Str("component", "command").Logger())
	srv := server.New(cfg.Addr(), proc,
		server.WithLogger(logger.With().Str("component", "server").Logger()),
		server.WithReadBufferSize(cfg.ReadBufferSize),
		server.WithMaxLineBytes(cfg.MaxLineBytes),
		server.WithMaxConnections(cfg.MaxConnections),
		server.WithIdleTimeout(cfg.IdleTimeout),
	)

	// Graceful shutdown: перехватываем SIGINT/SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info().
			Str("addr", cfg.Addr()).
			Int("capacity", cfg.Capacity).
			Msg("starting redislite")

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, server.ErrServerClosed) {
			return err
		}
		return nil
	})

	var metricsSrv *http.Server
	if cfg.MetricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", metrics.Handler())
		metricsSrv = &http.Server{
			Addr:              cfg.MetricsAddr,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		}

		g.Go(func() error {
			logger.Info().Str("addr", cfg.MetricsAddr).Msg("metrics listening")
			if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("metrics server: %w", err)
			}
			return nil
		})
	}

	g.Go(func() error {
		<-ctx.Done()
		logger.Info().Msg("shutting down gracefully")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		var errs []error
		if err := srv.Shutdown(shutdownCtx); err != nil {
			errs = append(errs, fmt.Errorf("tcp shutdown: %w", err))
		}
		if metricsSrv != nil {
			if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
				errs = append(errs, fmt.Errorf("metrics shutdown: %w", err))
			}
		}
		return errors.Join(errs...)
	})

	return g.Wait()
}
