package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/npco2/bioc-calc/internal/config"
	"github.com/npco2/bioc-calc/internal/metrics"
	"github.com/npco2/bioc-calc/internal/report"
	"github.com/npco2/bioc-calc/internal/server"
)

func runServe(ctx context.Context, args []string, cfg *config.Config, logger zerolog.Logger) error {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	fs.StringVar(&cfg.Addr, "addr", cfg.Addr, "address to listen on")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	srv := server.New(server.Config{
		Calculator:    newEngine(cfg, logger),
		Recorder:      metrics.NewRecorder(),
		Logger:        logger,
		ReportOptions: report.Options{PageSize: cfg.ReportPageSize},
		ReportFooter:  cfg.ReportFooter,
	})

	httpServer := &http.Server{
		Addr:              cfg.Addr,
		Handler:           srv.Handler(),
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadTimeout,
		WriteTimeout:      cfg.WriteTimeout,
	}

	shutdownDone := make(chan error, 1)
	go func() {
		<-ctx.Done()
		logger.Info().Msg("received shutdown signal")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		shutdownDone <- httpServer.Shutdown(shutdownCtx)
	}()

	logger.Info().
		Str("addr", cfg.Addr).
		Bool("parallel_scenarios", cfg.ParallelScenarios).
		Msg("starting bioc-calc API")

	start := time.Now()
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server failed: %w", err)
	}
	if err := <-shutdownDone; err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}
	logger.Info().Dur("uptime", time.Since(start)).Msg("server stopped")
	return nil
}
