package domain

// StopArrival is published to the event bus when an ingested position
// lands within the arrival radius of a stop on the vehicle's route.
// Downstream consumers (e.g. a notifier) own what happens next.
type StopArrival struct {
	VehicleID    string      `json:"vehicle_id"`
	RouteID      string      `json:"route_id"`
	StopName     string      `json:"stop_name"`
	StopSequence int         `json:"stop_sequence"`
	Coords       Coordinates `json:"coordinates"`
	Timestamp    int64       `json:"timestamp"`
}
