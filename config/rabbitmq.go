package config

import (
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
)

func NewRabbitMQ(cfg *Config) (*amqp.Connection, error) {
	conn, err := amqp.DialConfig(cfg.RabbitMQURL, amqp.Config{Properties: connectionProperties(cfg)})
	if err != nil {
		return nil, fmt.Errorf("rabbitmq connect: %w", err)
	}
	return conn, nil
}

func connectionProperties(cfg *Config) amqp.Table {
	props := amqp.NewConnectionProperties()
	props.SetClientConnectionName(cfg.AMQPConnectionName)
	return props
}
