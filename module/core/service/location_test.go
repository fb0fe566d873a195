package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/kaushikharsh25/sbms/module/core/domain"
)

type mockPositionRepo struct {
	insertFn     func(ctx context.Context, rec *domain.PositionRecord) error
	getLatestFn  func(ctx context.Context, vehicleID string) (*domain.PositionRecord, error)
	getHistoryFn func(ctx context.Context, vehicleID string, limit int) ([]domain.PositionRecord, error)
}

func (m *mockPositionRepo) Insert(ctx context.Context, rec *domain.PositionRecord) error {
	return m.insertFn(ctx, rec)
}

func (m *mockPositionRepo) GetLatest(ctx context.Context, vehicleID string) (*domain.PositionRecord, error) {
	return m.getLatestFn(ctx, vehicleID)
}

func (m *mockPositionRepo) GetHistory(ctx context.Context, vehicleID string, limit int) ([]domain.PositionRecord, error) {
	return m.getHistoryFn(ctx, vehicleID, limit)
}

type mockRegistryRepo struct {
	getVehicleFn func(ctx context.Context, id string) (*domain.Vehicle, error)
	getRouteFn   func(ctx context.Context, id string) (*domain.Route, error)
}

func (m *mockRegistryRepo) GetVehicle(ctx context.Context, id string) (*domain.Vehicle, error) {
	return m.getVehicleFn(ctx, id)
}

func (m *mockRegistryRepo) GetRoute(ctx context.Context, id string) (*domain.Route, error) {
	return m.getRouteFn(ctx, id)
}

func knownVehicle(id string) *mockRegistryRepo {
	return &mockRegistryRepo{
		getVehicleFn: func(_ context.Context, got string) (*domain.Vehicle, error) {
			if got != id {
				return nil, domain.ErrVehicleNotFound
			}
			return &domain.Vehicle{ID: id, NumberPlate: "KA01AB1234", Capacity: 50, IsActive: true}, nil
		},
	}
}

func TestIngest_Success(t *testing.T) {
	var inserted *domain.PositionRecord
	positions := &mockPositionRepo{
		insertFn: func(_ context.Context, rec *domain.PositionRecord) error {
			inserted = rec
			return nil
		},
	}

	svc := NewLocationService(positions, knownVehicle("bus-101"), nil)
	speed := 42.5
	rec, err := svc.Ingest(context.Background(), IngestInput{
		VehicleID:  "bus-101",
		OperatorID: "op-1",
		Coords:     domain.Coordinates{Lng: 77.5946, Lat: 12.9716},
		SpeedKph:   &speed,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inserted == nil {
		t.Fatal("expected Insert to be called")
	}
	if rec.ID == "" {
		t.Error("expected a generated record id")
	}
	if rec.Coords.Lng != 77.5946 || rec.Coords.Lat != 12.9716 {
		t.Errorf("coordinates changed in flight: %+v", rec.Coords)
	}
	if rec.SpeedKph == nil || *rec.SpeedKph != 42.5 {
		t.Errorf("expected speed 42.5, got %v", rec.SpeedKph)
	}
}

func TestIngest_UnknownVehicle(t *testing.T) {
	positions := &mockPositionRepo{
		insertFn: func(_ context.Context, _ *domain.PositionRecord) error {
			t.Fatal("Insert should not be called")
			return nil
		},
	}

	svc := NewLocationService(positions, knownVehicle("bus-101"), nil)
	_, err := svc.Ingest(context.Background(), IngestInput{
		VehicleID:  "bus-999",
		OperatorID: "op-1",
		Coords:     domain.Coordinates{Lng: 77.59, Lat: 12.97},
	})
	if !errors.Is(err, domain.ErrVehicleNotFound) {
		t.Fatalf("expected ErrVehicleNotFound, got %v", err)
	}
}

func TestIngest_Validation(t *testing.T) {
	positions := &mockPositionRepo{
		insertFn: func(_ context.Context, _ *domain.PositionRecord) error {
			t.Fatal("Insert should not be called")
			return nil
		},
	}
	svc := NewLocationService(positions, knownVehicle("bus-101"), nil)

	badHeading := 400.0
	badSpeed := -1.0
	cases := []struct {
		name  string
		input IngestInput
		field string
	}{
		{"missing vehicle", IngestInput{OperatorID: "op-1", Coords: domain.Coordinates{Lng: 77, Lat: 12}}, "vehicle_id"},
		{"missing operator", IngestInput{VehicleID: "bus-101", Coords: domain.Coordinates{Lng: 77, Lat: 12}}, "operator_id"},
		{"lng out of range", IngestInput{VehicleID: "bus-101", OperatorID: "op-1", Coords: domain.Coordinates{Lng: 181, Lat: 12}}, "longitude"},
		{"lat out of range", IngestInput{VehicleID: "bus-101", OperatorID: "op-1", Coords: domain.Coordinates{Lng: 77, Lat: -91}}, "latitude"},
		{"negative speed", IngestInput{VehicleID: "bus-101", OperatorID: "op-1", Coords: domain.Coordinates{Lng: 77, Lat: 12}, SpeedKph: &badSpeed}, "speed_kph"},
		{"heading out of range", IngestInput{VehicleID: "bus-101", OperatorID: "op-1", Coords: domain.Coordinates{Lng: 77, Lat: 12}, Heading: &badHeading}, "heading"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Ingest(context.Background(), tc.input)
			var verr *domain.ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if verr.Field != tc.field {
				t.Errorf("expected field %s, got %s", tc.field, verr.Field)
			}
		})
	}
}

func TestIngest_RepeatedPushesCreateDistinctRecords(t *testing.T) {
	var inserted []*domain.PositionRecord
	positions := &mockPositionRepo{
		insertFn: func(_ context.Context, rec *domain.PositionRecord) error {
			inserted = append(inserted, rec)
			return nil
		},
	}

	svc := NewLocationService(positions, knownVehicle("bus-101"), nil)
	in := IngestInput{
		VehicleID:  "bus-101",
		OperatorID: "op-1",
		Coords:     domain.Coordinates{Lng: 77.5946, Lat: 12.9716},
	}

	// A stationary bus pushing identical coordinates must still produce a
	// record per push; the store never deduplicates.
	for i := 0; i < 3; i++ {
		if _, err := svc.Ingest(context.Background(), in); err != nil {
			t.Fatalf("push %d: %v", i, err)
		}
	}

	if len(inserted) != 3 {
		t.Fatalf("expected 3 inserts, got %d", len(inserted))
	}
	if inserted[0].ID == inserted[1].ID || inserted[1].ID == inserted[2].ID {
		t.Error("expected distinct record ids per push")
	}
}

func TestGetHistory_LimitBounds(t *testing.T) {
	var gotLimit int
	positions := &mockPositionRepo{
		getHistoryFn: func(_ context.Context, _ string, limit int) ([]domain.PositionRecord, error) {
			gotLimit = limit
			return nil, nil
		},
	}
	svc := NewLocationService(positions, knownVehicle("bus-101"), nil)

	if _, err := svc.GetHistory(context.Background(), "bus-101", 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotLimit != 100 {
		t.Errorf("expected default limit 100, got %d", gotLimit)
	}

	if _, err := svc.GetHistory(context.Background(), "bus-101", 10000); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotLimit != 500 {
		t.Errorf("expected capped limit 500, got %d", gotLimit)
	}

	if _, err := svc.GetHistory(context.Background(), "bus-101", 25); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotLimit != 25 {
		t.Errorf("expected limit 25 passed through, got %d", gotLimit)
	}
}

func TestGetLatest_PassThrough(t *testing.T) {
	ts := time.Unix(1715003456, 0)
	positions := &mockPositionRepo{
		getLatestFn: func(_ context.Context, vehicleID string) (*domain.PositionRecord, error) {
			return &domain.PositionRecord{
				VehicleID: vehicleID,
				Coords:    domain.Coordinates{Lng: 77.5946, Lat: 12.9716},
				CreatedAt: ts,
			}, nil
		},
	}

	svc := NewLocationService(positions, knownVehicle("bus-101"), nil)
	rec, err := svc.GetLatest(context.Background(), "bus-101")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.VehicleID != "bus-101" {
		t.Errorf("expected bus-101, got %s", rec.VehicleID)
	}
	if !rec.CreatedAt.Equal(ts) {
		t.Errorf("expected %v, got %v", ts, rec.CreatedAt)
	}
}
