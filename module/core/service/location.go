package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/kaushikharsh25/sbms/module/core/domain"
	"github.com/kaushikharsh25/sbms/module/core/internal/repository/database"
)

const (
	defaultHistoryLimit = 100
	maxHistoryLimit     = 500
)

// IngestInput is one position report from a vehicle operator. The caller's
// role is enforced before this layer; both the HTTP handler and the MQTT
// subscriber funnel into the same Ingest.
type IngestInput struct {
	VehicleID  string
	OperatorID string
	Coords     domain.Coordinates
	SpeedKph   *float64
	Heading    *float64
}

// IngestMetrics is implemented by the metrics collector. Nil disables it.
type IngestMetrics interface {
	IngestAccepted()
	IngestRejected()
}

type LocationService struct {
	positions database.PositionRepository
	registry  database.RegistryRepository
	metrics   IngestMetrics
}

func NewLocationService(positions database.PositionRepository, registry database.RegistryRepository, metrics IngestMetrics) *LocationService {
	return &LocationService{positions: positions, registry: registry, metrics: metrics}
}

// Ingest validates and appends one immutable position record. Each call
// creates a new record even for unchanged coordinates; deduplicating would
// destroy the ping history. Nothing else is mutated, in particular not the
// vehicle row.
func (s *LocationService) Ingest(ctx context.Context, in IngestInput) (*domain.PositionRecord, error) {
	if err := validateIngest(in); err != nil {
		s.rejected()
		return nil, err
	}

	if _, err := s.registry.GetVehicle(ctx, in.VehicleID); err != nil {
		s.rejected()
		return nil, err
	}

	rec := &domain.PositionRecord{
		ID:         uuid.NewString(),
		VehicleID:  in.VehicleID,
		OperatorID: in.OperatorID,
		Coords:     in.Coords,
		SpeedKph:   in.SpeedKph,
		Heading:    in.Heading,
	}

	if err := s.positions.Insert(ctx, rec); err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.IngestAccepted()
	}
	return rec, nil
}

func (s *LocationService) GetLatest(ctx context.Context, vehicleID string) (*domain.PositionRecord, error) {
	return s.positions.GetLatest(ctx, vehicleID)
}

// GetHistory returns records newest first. The limit defaults to 100 and
// is capped to keep scans bounded.
func (s *LocationService) GetHistory(ctx context.Context, vehicleID string, limit int) ([]domain.PositionRecord, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}
	return s.positions.GetHistory(ctx, vehicleID, limit)
}

func (s *LocationService) rejected() {
	if s.metrics != nil {
		s.metrics.IngestRejected()
	}
}

func validateIngest(in IngestInput) error {
	if in.VehicleID == "" {
		return domain.NewValidationError("vehicle_id", "required")
	}
	if in.OperatorID == "" {
		return domain.NewValidationError("operator_id", "required")
	}
	if in.Coords.Lng < -180 || in.Coords.Lng > 180 {
		return domain.NewValidationError("longitude", "must be between -180 and 180")
	}
	if in.Coords.Lat < -90 || in.Coords.Lat > 90 {
		return domain.NewValidationError("latitude", "must be between -90 and 90")
	}
	if in.SpeedKph != nil && *in.SpeedKph < 0 {
		return domain.NewValidationError("speed_kph", "must be non-negative")
	}
	if in.Heading != nil && (*in.Heading < 0 || *in.Heading > 360) {
		return domain.NewValidationError("heading", "must be between 0 and 360")
	}
	return nil
}
