package main

import (
	"encoding/json"
	"fmt"
	"log"
	"math/rand"
	"os"
	"strconv"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

// Mock operator device: publishes position reports for a small pool of
// buses drifting around a city center, so the ingest path can be exercised
// without real hardware.

type locationMessage struct {
	VehicleID  string   `json:"vehicle_id"`
	OperatorID string   `json:"operator_id"`
	Longitude  float64  `json:"longitude"`
	Latitude   float64  `json:"latitude"`
	SpeedKph   *float64 `json:"speed_kph,omitempty"`
	Heading    *float64 `json:"heading,omitempty"`
}

// City center the mock buses orbit (Bengaluru).
const (
	centerLng = 77.5946
	centerLat = 12.9716
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "usage: %s <interval_seconds>\n", os.Args[0])
		os.Exit(1)
	}

	intervalSec, err := strconv.Atoi(os.Args[1])
	if err != nil || intervalSec <= 0 {
		fmt.Fprintf(os.Stderr, "error: interval must be a positive integer\n")
		os.Exit(1)
	}

	broker := "tcp://localhost:1883"
	if v := os.Getenv("MQTT_BROKER"); v != "" {
		broker = v
	}

	opts := mqtt.NewClientOptions().
		AddBroker(broker).
		SetClientID("sbms-mock-device")

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		log.Fatalf("mqtt connect: %v", token.Error())
	}
	defer client.Disconnect(250)

	vehiclePool := []string{"bus-101", "bus-102", "bus-103", "bus-104", "bus-105"}

	log.Printf("connected to %s, publishing every %ds...", broker, intervalSec)
	log.Printf("vehicle pool: %v", vehiclePool)

	ticker := time.NewTicker(time.Duration(intervalSec) * time.Second)
	defer ticker.Stop()

	for range ticker.C {
		vid := vehiclePool[rand.Intn(len(vehiclePool))]

		// ~2km drift around the center
		lng := centerLng + (rand.Float64()-0.5)*0.04
		lat := centerLat + (rand.Float64()-0.5)*0.04
		speed := rand.Float64() * 60
		heading := rand.Float64() * 360

		msg := locationMessage{
			VehicleID:  vid,
			OperatorID: "operator-" + vid,
			Longitude:  lng,
			Latitude:   lat,
			SpeedKph:   &speed,
			Heading:    &heading,
		}

		payload, _ := json.Marshal(msg)
		topic := fmt.Sprintf("/bus/vehicle/%s/location", vid)

		token := client.Publish(topic, 1, false, payload)
		token.Wait()

		log.Printf("published to %s: %s", topic, payload)
	}
}
