package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	zlog "github.com/rs/zerolog/log"

	"github.com/dharmasatrya/faregate/internal/app"
	"github.com/dharmasatrya/faregate/internal/config"
	"github.com/dharmasatrya/faregate/internal/handler"
	"github.com/dharmasatrya/faregate/internal/logging"
	"github.com/dharmasatrya/faregate/internal/metrics"
)

const appName = "faregate"

func main() {
	if err := run(); err != nil {
		zlog.Fatal().Err(err).Msg("server stopped with error")
	}
	zlog.Info().Msg("server stopped")
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log := logging.New(os.Stderr, cfg.LogLevel, cfg.LogFormat)
	zlog.Logger = log

	displayAppname(appName)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	a, err := app.New(cfg, log, reg)
	if err != nil {
		return err
	}
	defer a.Close()

	e := handler.NewRouter(a.Service, handler.RouterConfig{
		Logger:  log,
		Metrics: metrics.Handler(reg),
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("upstream", cfg.BaseURL).Msg("starting fare search server")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("start server: %w", err)
	case <-waitForStopSignal():
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func waitForStopSignal() <-chan os.Signal {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	return stop
}

func displayAppname(name string) {
	figure.NewFigure(name, "cybermedium", true).Print()
	fmt.Println()
}
