package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/kaushikharsh25/sbms/module/core/domain"
	"github.com/kaushikharsh25/sbms/module/core/internal/repository/database"
)

var _ database.PositionRepository = (*PositionRepo)(nil)

type PositionRepo struct {
	db *sql.DB
}

func NewPositionRepo(db *sql.DB) *PositionRepo {
	return &PositionRepo{db: db}
}

// Insert appends one record. created_at and seq come back from the
// database so callers see the server-assigned timestamp and tie-break key.
func (r *PositionRepo) Insert(ctx context.Context, rec *domain.PositionRecord) error {
	row := r.db.QueryRowContext(ctx,
		`INSERT INTO position_records (id, vehicle_id, operator_id, longitude, latitude, speed_kph, heading)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING seq, created_at`,
		rec.ID, rec.VehicleID, rec.OperatorID, rec.Coords.Lng, rec.Coords.Lat, rec.SpeedKph, rec.Heading,
	)
	return row.Scan(&rec.Seq, &rec.CreatedAt)
}

// GetLatest returns the newest record for the vehicle. Ordering by
// created_at then seq keeps the result deterministic even if two inserts
// land on the same timestamp.
func (r *PositionRepo) GetLatest(ctx context.Context, vehicleID string) (*domain.PositionRecord, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, vehicle_id, operator_id, longitude, latitude, speed_kph, heading, created_at, seq
		 FROM position_records WHERE vehicle_id = $1
		 ORDER BY created_at DESC, seq DESC LIMIT 1`,
		vehicleID,
	)

	rec, err := scanRecord(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNoPosition
		}
		return nil, err
	}
	return rec, nil
}

func (r *PositionRepo) GetHistory(ctx context.Context, vehicleID string, limit int) ([]domain.PositionRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, vehicle_id, operator_id, longitude, latitude, speed_kph, heading, created_at, seq
		 FROM position_records WHERE vehicle_id = $1
		 ORDER BY created_at DESC, seq DESC LIMIT $2`,
		vehicleID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var results []domain.PositionRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, *rec)
	}
	return results, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (*domain.PositionRecord, error) {
	var rec domain.PositionRecord
	if err := row.Scan(
		&rec.ID, &rec.VehicleID, &rec.OperatorID,
		&rec.Coords.Lng, &rec.Coords.Lat,
		&rec.SpeedKph, &rec.Heading,
		&rec.CreatedAt, &rec.Seq,
	); err != nil {
		return nil, err
	}
	return &rec, nil
}
