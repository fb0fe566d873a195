package service

import (
	"context"
	"errors"

	"github.com/kaushikharsh25/sbms/module/core/domain"
	"github.com/kaushikharsh25/sbms/module/core/internal/repository/database"
	"github.com/kaushikharsh25/sbms/module/core/internal/repository/routing"
)

// EtaMetrics is implemented by the metrics collector. Nil disables it.
type EtaMetrics interface {
	EtaResolved(outcome string)
}

// EtaService answers "how long until vehicle V reaches stop N of its
// route". Each request walks vehicle → route → stop → latest position →
// provider, terminating at the first missing piece with a distinct error
// the handler can map. No retries happen here; callers seeing
// ErrProvidersUnavailable may re-issue the whole request after backoff.
type EtaService struct {
	registry  database.RegistryRepository
	positions database.PositionRepository
	provider  routing.Provider
	metrics   EtaMetrics
}

func NewEtaService(registry database.RegistryRepository, positions database.PositionRepository, provider routing.Provider, metrics EtaMetrics) *EtaService {
	return &EtaService{registry: registry, positions: positions, provider: provider, metrics: metrics}
}

func (s *EtaService) Resolve(ctx context.Context, vehicleID string, stopSeq int) (int, error) {
	vehicle, err := s.registry.GetVehicle(ctx, vehicleID)
	if err != nil {
		return 0, s.outcome("vehicle_missing", err)
	}
	if vehicle.RouteID == nil {
		return 0, s.outcome("route_missing", domain.ErrRouteNotAssigned)
	}

	route, err := s.registry.GetRoute(ctx, *vehicle.RouteID)
	if err != nil {
		return 0, s.outcome("route_missing", err)
	}

	stop, ok := route.StopBySequence(stopSeq)
	if !ok {
		return 0, s.outcome("stop_missing", domain.ErrStopNotFound)
	}

	latest, err := s.positions.GetLatest(ctx, vehicleID)
	if err != nil {
		return 0, s.outcome("no_position", err)
	}

	seconds, err := s.provider.Estimate(ctx, latest.Coords, stop.Coords)
	if err != nil {
		if errors.Is(err, routing.ErrUnavailable) {
			return 0, s.outcome("providers_unavailable", domain.ErrProvidersUnavailable)
		}
		return 0, s.outcome("error", err)
	}

	s.record("resolved")
	return seconds, nil
}

func (s *EtaService) outcome(name string, err error) error {
	s.record(name)
	return err
}

func (s *EtaService) record(name string) {
	if s.metrics != nil {
		s.metrics.EtaResolved(name)
	}
}
