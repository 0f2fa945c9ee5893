package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/nandanugg/tourist-safety/module/core/domain"
	"github.com/nandanugg/tourist-safety/module/core/internal/repository/publisher"
)

var _ publisher.AlertPublisher = (*AlertPublisher)(nil)

const (
	ExchangeName = "safety.events"
	QueueName    = "geofence_alerts"
)

type channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

type AlertPublisher struct {
	ch channel
}

func NewAlertPublisher(conn *amqp.Connection) (*AlertPublisher, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("rabbitmq channel: %w", err)
	}

	if err := DeclareTopology(ch); err != nil {
		return nil, err
	}

	return &AlertPublisher{ch: ch}, nil
}

// DeclareTopology declares the fanout exchange and the durable alert queue
// bound to it. Both the publisher and the event listener call it.
func DeclareTopology(ch *amqp.Channel) error {
	if err := ch.ExchangeDeclare(ExchangeName, "fanout", true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare exchange: %w", err)
	}

	if _, err := ch.QueueDeclare(QueueName, true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare queue: %w", err)
	}

	if err := ch.QueueBind(QueueName, "", ExchangeName, false, nil); err != nil {
		return fmt.Errorf("bind queue: %w", err)
	}
	return nil
}

type AlertMessage struct {
	ID             string            `json:"id"`
	TouristID      string            `json:"tourist_id"`
	GeofenceID     string            `json:"geofence_id"`
	Geofence       string            `json:"geofence"`
	Classification string            `json:"classification"`
	Type           domain.AlertLevel `json:"type"`
	Message        string            `json:"message"`
	Location       alertLocation     `json:"location"`
	Timestamp      int64             `json:"timestamp"`
}

type alertLocation struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Accuracy  float64 `json:"accuracy,omitempty"`
}

func (p *AlertPublisher) PublishAlert(ctx context.Context, alert *domain.GeofenceAlert) error {
	body, err := json.Marshal(toAlertMessage(alert))
	if err != nil {
		return fmt.Errorf("marshal alert: %w", err)
	}

	return p.ch.PublishWithContext(ctx, ExchangeName, "", false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Body:         body,
	})
}

func toAlertMessage(alert *domain.GeofenceAlert) AlertMessage {
	return AlertMessage{
		ID:             alert.ID,
		TouristID:      alert.TouristID,
		GeofenceID:     alert.GeofenceID,
		Geofence:       alert.GeofenceName,
		Classification: string(alert.Classification),
		Type:           alert.Level,
		Message:        alert.Message,
		Location: alertLocation{
			Latitude:  alert.Location.Lat,
			Longitude: alert.Location.Lon,
			Accuracy:  alert.Location.Accuracy,
		},
		Timestamp: alert.Timestamp,
	}
}
