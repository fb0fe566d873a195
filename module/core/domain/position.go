package domain

import "time"

// Coordinates is a (longitude, latitude) pair. The axis order matches the
// wire format and the database columns; keep it that way everywhere in the
// core. Routing providers that want lat-first get translated inside their
// own client, nowhere else.
type Coordinates struct {
	Lng float64 `json:"longitude"`
	Lat float64 `json:"latitude"`
}

// PositionRecord is one immutable location report for a vehicle. Records
// are append-only: a stationary vehicle reporting the same coordinates
// still produces a new record, which preserves the true ping history.
type PositionRecord struct {
	ID         string      `json:"id"`
	VehicleID  string      `json:"vehicle_id"`
	OperatorID string      `json:"operator_id"`
	Coords     Coordinates `json:"coordinates"`
	SpeedKph   *float64    `json:"speed_kph,omitempty"`
	Heading    *float64    `json:"heading,omitempty"`
	// CreatedAt and Seq are assigned by the store on insert. Seq breaks
	// ties deterministically when two records share a timestamp.
	CreatedAt time.Time `json:"created_at"`
	Seq       int64     `json:"-"`
}
