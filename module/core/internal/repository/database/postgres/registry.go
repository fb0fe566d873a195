package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/kaushikharsh25/sbms/module/core/domain"
	"github.com/kaushikharsh25/sbms/module/core/internal/repository/database"
)

var _ database.RegistryRepository = (*RegistryRepo)(nil)

// RegistryRepo reads vehicle and route records owned by the registry
// service. The core never writes these tables.
type RegistryRepo struct {
	db *sql.DB
}

func NewRegistryRepo(db *sql.DB) *RegistryRepo {
	return &RegistryRepo{db: db}
}

func (r *RegistryRepo) GetVehicle(ctx context.Context, id string) (*domain.Vehicle, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, number_plate, capacity, operator_id, route_id, is_active
		 FROM vehicles WHERE id = $1`,
		id,
	)

	var v domain.Vehicle
	if err := row.Scan(&v.ID, &v.NumberPlate, &v.Capacity, &v.OperatorID, &v.RouteID, &v.IsActive); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrVehicleNotFound
		}
		return nil, err
	}
	return &v, nil
}

func (r *RegistryRepo) GetRoute(ctx context.Context, id string) (*domain.Route, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, name FROM routes WHERE id = $1`,
		id,
	)

	var rt domain.Route
	if err := row.Scan(&rt.ID, &rt.Name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrRouteNotFound
		}
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT name, longitude, latitude, seq
		 FROM route_stops WHERE route_id = $1 ORDER BY seq ASC`,
		id,
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var s domain.Stop
		if err := rows.Scan(&s.Name, &s.Coords.Lng, &s.Coords.Lat, &s.Sequence); err != nil {
			return nil, err
		}
		rt.Stops = append(rt.Stops, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &rt, nil
}
