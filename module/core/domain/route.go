package domain

// Vehicle is a registry-owned bus record. The core reads it and never
// mutates it; create/update/delete belong to the fleet-admin surface of
// the registry service.
type Vehicle struct {
	ID          string  `json:"id"`
	NumberPlate string  `json:"number_plate"`
	Capacity    int     `json:"capacity"`
	OperatorID  *string `json:"operator_id,omitempty"`
	RouteID     *string `json:"route_id,omitempty"`
	IsActive    bool    `json:"is_active"`
}

// Stop is a named point on a route. Sequence numbers are positive and
// unique within a route but not necessarily contiguous.
type Stop struct {
	Name     string      `json:"name"`
	Coords   Coordinates `json:"coordinates"`
	Sequence int         `json:"sequence"`
}

// Route is an ordered list of stops, registry-owned and read-only here.
type Route struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Stops []Stop `json:"stops"`
}

// StopBySequence resolves a stop by sequence number equality. Sequences
// may be sparse, so this never falls back to the nearest one.
func (r *Route) StopBySequence(seq int) (Stop, bool) {
	for _, s := range r.Stops {
		if s.Sequence == seq {
			return s, true
		}
	}
	return Stop{}, false
}
