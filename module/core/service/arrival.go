package service

import (
	"context"
	"errors"
	"math"

	"github.com/kaushikharsh25/sbms/module/core/domain"
	"github.com/kaushikharsh25/sbms/module/core/internal/repository/database"
	"github.com/kaushikharsh25/sbms/module/core/internal/repository/publisher"
)

const earthRadiusMeters = 6371000

// ArrivalMetrics is implemented by the metrics collector. Nil disables it.
type ArrivalMetrics interface {
	ArrivalPublished()
}

// ArrivalService publishes a stop-arrival event when a fresh position
// lands within the arrival radius of a stop on the vehicle's assigned
// route. Delivery of rider notifications belongs to a downstream
// consumer of the queue.
type ArrivalService struct {
	publisher    publisher.ArrivalPublisher
	registry     database.RegistryRepository
	radiusMeters float64
	metrics      ArrivalMetrics
}

func NewArrivalService(pub publisher.ArrivalPublisher, registry database.RegistryRepository, radiusMeters float64, metrics ArrivalMetrics) *ArrivalService {
	return &ArrivalService{publisher: pub, registry: registry, radiusMeters: radiusMeters, metrics: metrics}
}

func (s *ArrivalService) CheckAndAlert(ctx context.Context, rec *domain.PositionRecord) error {
	vehicle, err := s.registry.GetVehicle(ctx, rec.VehicleID)
	if err != nil {
		return err
	}
	if vehicle.RouteID == nil {
		return nil
	}

	route, err := s.registry.GetRoute(ctx, *vehicle.RouteID)
	if err != nil {
		if errors.Is(err, domain.ErrRouteNotFound) {
			return nil
		}
		return err
	}

	for _, stop := range route.Stops {
		dist := haversine(rec.Coords.Lat, rec.Coords.Lng, stop.Coords.Lat, stop.Coords.Lng)
		if dist > s.radiusMeters {
			continue
		}
		arrival := &domain.StopArrival{
			VehicleID:    rec.VehicleID,
			RouteID:      route.ID,
			StopName:     stop.Name,
			StopSequence: stop.Sequence,
			Coords:       rec.Coords,
			Timestamp:    rec.CreatedAt.Unix(),
		}
		if err := s.publisher.PublishArrival(ctx, arrival); err != nil {
			return err
		}
		if s.metrics != nil {
			s.metrics.ArrivalPublished()
		}
	}
	return nil
}

func haversine(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := toRad(lat2 - lat1)
	dLon := toRad(lon2 - lon1)
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(lat1))*math.Cos(toRad(lat2))*math.Sin(dLon/2)*math.Sin(dLon/2)
	return earthRadiusMeters * 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

func toRad(deg float64) float64 {
	return deg * math.Pi / 180
}
