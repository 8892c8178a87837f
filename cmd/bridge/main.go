package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpadapter "github.com/couchcryptid/weather-station-bridge/internal/adapter/http"
	kafkaadapter "github.com/couchcryptid/weather-station-bridge/internal/adapter/kafka"
	"github.com/couchcryptid/weather-station-bridge/internal/adapter/mqtt"
	"github.com/couchcryptid/weather-station-bridge/internal/config"
	"github.com/couchcryptid/weather-station-bridge/internal/observability"
	"github.com/couchcryptid/weather-station-bridge/internal/pipeline"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	mqttClient, err := mqtt.Connect(cfg, logger)
	if err != nil {
		logger.Error("failed to connect to mqtt broker", "error", err)
		os.Exit(1)
	}

	// Kafka forwarding is optional (feature-flagged via [kafka] enabled).
	var forwarder pipeline.Forwarder
	var forwarderClose func() error
	if cfg.Kafka.Enabled {
		f := kafkaadapter.NewForwarder(cfg, logger)
		forwarder = f
		forwarderClose = f.Close
		logger.Info("kafka forwarding enabled", "brokers", cfg.Kafka.Brokers, "topic", cfg.Kafka.Topic)
	} else {
		logger.Info("kafka forwarding disabled")
	}

	bridge := pipeline.New(cfg, mqttClient, forwarder, logger, metrics)

	// Announce every sensor to the automation hub before the first report.
	if err := bridge.PublishDiscovery(); err != nil {
		logger.Error("discovery publication incomplete", "error", err)
	}

	srv := httpadapter.NewServer(cfg.HTTPAddr, bridge, bridge, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if forwarderClose != nil {
		if err := forwarderClose(); err != nil {
			logger.Error("kafka forwarder close error", "error", err)
		}
	}
	mqttClient.Close()

	logger.Info("shutdown complete")
}
