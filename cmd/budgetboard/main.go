package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"budgetboard/internal/amqp"
	"budgetboard/internal/cli"
	apphttp "budgetboard/internal/http"
	"budgetboard/internal/log"
	"budgetboard/internal/services"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger(log.ComponentApp)
	cfg := cli.LoadAndValidateConfig(logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	result := cli.InitBackend(ctx, logger, cfg)
	defer func() {
		if result.Cleanup == nil {
			return
		}
		if err := result.Cleanup(); err != nil {
			logger.Error("Record store cleanup failed", log.FieldError, err)
		}
	}()

	// The export queue is optional: without it record writes still land
	// in the store and the worker's periodic export picks them up.
	var publisher services.ExportPublisher
	if cfg.AMQPURL != "" {
		client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Warn("Export queue unavailable, continuing without it", log.FieldError, err)
		} else {
			publisher = client
		}
	}

	recordService := services.NewRecordService(result.Store, publisher)
	defer func() {
		if err := recordService.Close(); err != nil {
			logger.Error("Service shutdown failed", log.FieldError, err)
		}
	}()

	sessions := cli.InitSessions(logger, cfg)

	srv := apphttp.NewServer(apphttp.Config{
		Addr:     ":" + cfg.Port,
		Projects: cfg.Projects,
		CacheTTL: cfg.CacheTTL,
		Logger:   logger.WithComponent(log.ComponentHTTP),
	}, result.Store, recordService, sessions)

	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 10 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		logger.Info("Shutdown signal received", "signal", sig.String())

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cli.ShutdownTimeout)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", log.FieldError, err)
		}
		cancel()
	}()

	logger.Info("Starting budgetboard server",
		"port", cfg.Port, "backend", cfg.DataBackend, "projects", len(cfg.Projects))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("Server error", log.FieldError, err, "port", cfg.Port)
		os.Exit(1)
	}

	<-ctx.Done()
	logger.Info("Server stopped gracefully")
}
