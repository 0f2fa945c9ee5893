package main

import (
	"encoding/json"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/nandanugg/tourist-safety/config"
	"github.com/nandanugg/tourist-safety/module/core"
)

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	cfg.AMQPConnectionName += "-event-listener"
	return cfg, nil
}

func main() {
	cfg, err := loadConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := config.NewLogger(cfg)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	conn, err := config.NewRabbitMQ(cfg)
	if err != nil {
		logger.Fatal("rabbitmq connect", zap.Error(err))
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		logger.Fatal("rabbitmq channel", zap.Error(err))
	}
	defer func() { _ = ch.Close() }()

	if err := core.DeclareAlertTopology(ch); err != nil {
		logger.Fatal("declare topology", zap.Error(err))
	}

	msgs, err := ch.Consume(core.AlertQueue, "", true, false, false, false, nil)
	if err != nil {
		logger.Fatal("consume", zap.Error(err))
	}

	logger.Info("waiting for geofence alerts", zap.String("queue", core.AlertQueue))

	go func() {
		for msg := range msgs {
			var alert core.AlertMessage
			if err := json.Unmarshal(msg.Body, &alert); err != nil {
				logger.Warn("undecodable alert", zap.Error(err))
				continue
			}
			fields := []zap.Field{
				zap.String("alert_id", alert.ID),
				zap.String("tourist_id", alert.TouristID),
				zap.String("geofence", alert.Geofence),
				zap.String("classification", alert.Classification),
				zap.Float64("latitude", alert.Location.Latitude),
				zap.Float64("longitude", alert.Location.Longitude),
			}
			if alert.Classification == "hazard" {
				logger.Warn(alert.Message, fields...)
			} else {
				logger.Info(alert.Message, fields...)
			}
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	logger.Info("shutting down")
}
