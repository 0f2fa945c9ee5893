package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_ReadsBrokerFromEnv(t *testing.T) {
	t.Setenv("MQTT_BROKER", "tcp://mqtt.internal:1883")
	t.Setenv("MQTT_CLIENT_ID", "safety-server")

	cfg, err := loadConfig()
	require.NoError(t, err)

	assert.Equal(t, "tcp://mqtt.internal:1883", cfg.MQTTBroker)
	assert.Equal(t, "safety-mock-publisher", cfg.MQTTClientID)
}

func TestLoadConfig_InvalidEnv(t *testing.T) {
	t.Setenv("REDIS_LOCATION_TTL", "-1m")

	_, err := loadConfig()
	assert.Error(t, err)
}
