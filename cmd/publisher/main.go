package main

import (
	"encoding/json"
	"fmt"
	"log"
	"math/rand"
	"os"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/nandanugg/tourist-safety/config"
)

type locationMessage struct {
	TouristID string  `json:"tourist_id"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Accuracy  float64 `json:"accuracy"`
	Timestamp int64   `json:"timestamp"`
}

// hotspots are the seeded geofence centers in New Delhi.
var hotspots = [][2]float64{
	{28.6139, 77.2090},
	{28.6119, 77.2070},
}

func randomTouristID() string {
	return fmt.Sprintf("T-%04d", rand.Intn(10000))
}

// loadConfig reads the shared environment config. The server holds
// MQTT_CLIENT_ID, and a shared ID would make the broker drop one session.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	cfg.MQTTClientID = "safety-mock-publisher"
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

	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "usage: %s <interval_seconds>\n", os.Args[0])
		os.Exit(1)
	}

	intervalSec, err := strconv.Atoi(os.Args[1])
	if err != nil || intervalSec <= 0 {
		fmt.Fprintf(os.Stderr, "error: interval must be a positive integer\n")
		os.Exit(1)
	}

	client, err := config.NewMQTT(cfg)
	if err != nil {
		logger.Fatal("mqtt connect", zap.Error(err))
	}
	defer client.Disconnect(250)

	touristPool := make([]string, 5)
	for i := range touristPool {
		touristPool[i] = randomTouristID()
	}

	logger.Info("publishing mock locations",
		zap.String("broker", cfg.MQTTBroker),
		zap.Int("interval_seconds", intervalSec),
		zap.Strings("tourists", touristPool),
	)

	ticker := time.NewTicker(time.Duration(intervalSec) * time.Second)
	defer ticker.Stop()

	for range ticker.C {
		tid := touristPool[rand.Intn(len(touristPool))]

		// 40% of fixes land within ~400m of a seeded geofence
		var lat, lon float64
		if rand.Float64() < 0.4 {
			h := hotspots[rand.Intn(len(hotspots))]
			lat = h[0] + (rand.Float64()-0.5)*0.007
			lon = h[1] + (rand.Float64()-0.5)*0.007
		} else {
			lat = 28.4 + rand.Float64()*0.5
			lon = 76.9 + rand.Float64()*0.6
		}

		msg := locationMessage{
			TouristID: tid,
			Latitude:  lat,
			Longitude: lon,
			Accuracy:  5 + rand.Float64()*25,
			Timestamp: time.Now().Unix(),
		}

		payload, _ := json.Marshal(msg)
		topic := fmt.Sprintf("/safety/tourist/%s/location", tid)

		token := client.Publish(topic, 1, false, payload)
		token.Wait()
		if err := token.Error(); err != nil {
			logger.Error("publish", zap.String("topic", topic), zap.Error(err))
			continue
		}

		logger.Debug("published", zap.String("topic", topic), zap.ByteString("payload", payload))
	}
}
