package subscriber

import (
	"context"
	"encoding/json"
	"log"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/kaushikharsh25/sbms/module/core/domain"
	"github.com/kaushikharsh25/sbms/module/core/service"
)

// Operator devices publish here after the broker authenticated them, so
// the payload carries the operator id the broker verified.
const topicPattern = "/bus/vehicle/+/location"

type locationService interface {
	Ingest(ctx context.Context, in service.IngestInput) (*domain.PositionRecord, error)
}

type arrivalService interface {
	CheckAndAlert(ctx context.Context, rec *domain.PositionRecord) error
}

type locationMessage struct {
	VehicleID  string   `json:"vehicle_id"`
	OperatorID string   `json:"operator_id"`
	Longitude  float64  `json:"longitude"`
	Latitude   float64  `json:"latitude"`
	SpeedKph   *float64 `json:"speed_kph,omitempty"`
	Heading    *float64 `json:"heading,omitempty"`
}

type LocationSubscriber struct {
	client      mqtt.Client
	locationSvc locationService
	arrivalSvc  arrivalService
}

func NewLocationSubscriber(client mqtt.Client, locationSvc locationService, arrivalSvc arrivalService) *LocationSubscriber {
	return &LocationSubscriber{
		client:      client,
		locationSvc: locationSvc,
		arrivalSvc:  arrivalSvc,
	}
}

func (s *LocationSubscriber) Start() error {
	token := s.client.Subscribe(topicPattern, 1, s.handleMessage)
	token.Wait()
	return token.Error()
}

func (s *LocationSubscriber) handleMessage(_ mqtt.Client, msg mqtt.Message) {
	var raw locationMessage
	if err := json.Unmarshal(msg.Payload(), &raw); err != nil {
		log.Printf("invalid location message: %v", err)
		return
	}

	ctx := context.Background()

	rec, err := s.locationSvc.Ingest(ctx, service.IngestInput{
		VehicleID:  raw.VehicleID,
		OperatorID: raw.OperatorID,
		Coords:     domain.Coordinates{Lng: raw.Longitude, Lat: raw.Latitude},
		SpeedKph:   raw.SpeedKph,
		Heading:    raw.Heading,
	})
	if err != nil {
		log.Printf("ingest location error: %v", err)
		return
	}

	if err := s.arrivalSvc.CheckAndAlert(ctx, rec); err != nil {
		log.Printf("arrival check error: %v", err)
	}
}
