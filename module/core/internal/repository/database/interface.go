package database

import (
	"context"

	"github.com/kaushikharsh25/sbms/module/core/domain"
)

// PositionRepository is the append-only time-series store of position
// reports. Inserts never conflict with concurrent reads; "latest" is a
// derived view, not an update-in-place.
type PositionRepository interface {
	Insert(ctx context.Context, rec *domain.PositionRecord) error
	GetLatest(ctx context.Context, vehicleID string) (*domain.PositionRecord, error)
	GetHistory(ctx context.Context, vehicleID string, limit int) ([]domain.PositionRecord, error)
}

// RegistryRepository is a read adapter over the externally owned
// route/vehicle registry.
type RegistryRepository interface {
	GetVehicle(ctx context.Context, id string) (*domain.Vehicle, error)
	GetRoute(ctx context.Context, id string) (*domain.Route, error)
}
