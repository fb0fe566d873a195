package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/kaushikharsh25/sbms/module/core/domain"
	"github.com/kaushikharsh25/sbms/module/core/internal/repository/publisher"
)

var _ publisher.ArrivalPublisher = (*ArrivalPublisher)(nil)

const (
	exchangeName = "bus.events"
	queueName    = "stop_arrivals"
)

type ArrivalPublisher struct {
	ch *amqp.Channel
}

func NewArrivalPublisher(conn *amqp.Connection) (*ArrivalPublisher, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("rabbitmq channel: %w", err)
	}

	if err := ch.ExchangeDeclare(exchangeName, "fanout", true, false, false, false, nil); err != nil {
		return nil, fmt.Errorf("declare exchange: %w", err)
	}

	if _, err := ch.QueueDeclare(queueName, true, false, false, false, nil); err != nil {
		return nil, fmt.Errorf("declare queue: %w", err)
	}

	if err := ch.QueueBind(queueName, "", exchangeName, false, nil); err != nil {
		return nil, fmt.Errorf("bind queue: %w", err)
	}

	return &ArrivalPublisher{ch: ch}, nil
}

type arrivalMessage struct {
	VehicleID    string        `json:"vehicle_id"`
	RouteID      string        `json:"route_id"`
	StopName     string        `json:"stop_name"`
	StopSequence int           `json:"stop_sequence"`
	Location     arrivalCoords `json:"location"`
	Timestamp    int64         `json:"timestamp"`
}

type arrivalCoords struct {
	Longitude float64 `json:"longitude"`
	Latitude  float64 `json:"latitude"`
}

func (p *ArrivalPublisher) PublishArrival(ctx context.Context, arrival *domain.StopArrival) error {
	msg := arrivalMessage{
		VehicleID:    arrival.VehicleID,
		RouteID:      arrival.RouteID,
		StopName:     arrival.StopName,
		StopSequence: arrival.StopSequence,
		Location: arrivalCoords{
			Longitude: arrival.Coords.Lng,
			Latitude:  arrival.Coords.Lat,
		},
		Timestamp: arrival.Timestamp,
	}

	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal arrival: %w", err)
	}

	return p.ch.PublishWithContext(ctx, exchangeName, "", false, false, amqp.Publishing{
		ContentType: "application/json",
		Body:        body,
	})
}
