package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"castromotors/pkg/api"
	"castromotors/pkg/config"
	"castromotors/pkg/dealership"
	"castromotors/pkg/dealership/memory"
	"castromotors/pkg/garage"
	"castromotors/pkg/logger"
	"castromotors/pkg/otel"
)

// @title CastroMotors API
// @version 1.0
// @description Car dealership catalogue, orders and garage checkout
// @host localhost:8080
// @BasePath /
func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.New(os.Stderr, logger.LevelError, "castromotors", nil).Error(context.Background(), "load config", "error", err)
		os.Exit(1)
	}

	log := logger.New(os.Stdout, logger.ParseLevel(cfg.LogLevel), cfg.ServiceName, otel.GetTraceID)
	defer log.Sync()

	tp, shutdown, err := otel.InitTracing(log, otel.Config{
		ServiceName: cfg.ServiceName,
		Host:        cfg.Tracing.Host,
		Probability: cfg.Tracing.Probability,
	})
	if err != nil {
		log.Error(context.Background(), "init tracing", "error", err)
		os.Exit(1)
	}
	defer shutdown(context.Background())

	store := memory.NewStore()
	a := api.New(
		dealership.NewServices(store, log),
		garage.NewService(store, log),
		log,
		tp.Tracer(cfg.ServiceName),
	)

	srv := &http.Server{Addr: cfg.Addr, Handler: a.Router()}

	go func() {
		log.Info(context.Background(), "listening", "addr", cfg.Addr, "tls", cfg.TLSEnabled())
		var err error
		if cfg.TLSEnabled() {
			err = srv.ListenAndServeTLS(cfg.TLSCert, cfg.TLSKey)
		} else {
			err = srv.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error(context.Background(), "server closed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info(context.Background(), "shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error(ctx, "shutdown", "error", err)
	}
}
