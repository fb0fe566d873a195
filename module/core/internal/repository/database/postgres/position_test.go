package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/kaushikharsh25/sbms/module/core/domain"
)

func TestInsert_Success(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = db.Close() }()

	ts := time.Unix(1715003456, 0)
	rows := sqlmock.NewRows([]string{"seq", "created_at"}).AddRow(int64(7), ts)

	mock.ExpectQuery(`INSERT INTO position_records`).
		WithArgs("rec-1", "bus-101", "op-1", 77.5946, 12.9716, nil, nil).
		WillReturnRows(rows)

	repo := NewPositionRepo(db)
	rec := &domain.PositionRecord{
		ID:         "rec-1",
		VehicleID:  "bus-101",
		OperatorID: "op-1",
		Coords:     domain.Coordinates{Lng: 77.5946, Lat: 12.9716},
	}
	if err := repo.Insert(context.Background(), rec); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Seq != 7 {
		t.Errorf("expected seq 7, got %d", rec.Seq)
	}
	if !rec.CreatedAt.Equal(ts) {
		t.Errorf("expected %v, got %v", ts, rec.CreatedAt)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestInsert_Error(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = db.Close() }()

	mock.ExpectQuery(`INSERT INTO position_records`).
		WillReturnError(sqlmock.ErrCancelled)

	repo := NewPositionRepo(db)
	err = repo.Insert(context.Background(), &domain.PositionRecord{
		ID:         "rec-1",
		VehicleID:  "bus-101",
		OperatorID: "op-1",
		Coords:     domain.Coordinates{Lng: 77.5946, Lat: 12.9716},
	})
	if err == nil {
		t.Fatal("expected error")
	}
}

func recordRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "vehicle_id", "operator_id", "longitude", "latitude",
		"speed_kph", "heading", "created_at", "seq",
	})
}

func TestGetLatest_Success(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = db.Close() }()

	ts := time.Unix(1715003456, 0)
	rows := recordRows().
		AddRow("rec-2", "bus-101", "op-1", 77.60, 12.98, 40.0, 180.0, ts, int64(9))

	mock.ExpectQuery(`SELECT (.+) FROM position_records WHERE vehicle_id = (.+) ORDER BY created_at DESC, seq DESC LIMIT 1`).
		WithArgs("bus-101").
		WillReturnRows(rows)

	repo := NewPositionRepo(db)
	rec, err := repo.GetLatest(context.Background(), "bus-101")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.ID != "rec-2" {
		t.Errorf("expected rec-2, got %s", rec.ID)
	}
	if rec.Coords.Lng != 77.60 || rec.Coords.Lat != 12.98 {
		t.Errorf("unexpected coordinates %+v", rec.Coords)
	}
	if rec.SpeedKph == nil || *rec.SpeedKph != 40.0 {
		t.Errorf("expected speed 40, got %v", rec.SpeedKph)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestGetLatest_NoPosition(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = db.Close() }()

	mock.ExpectQuery(`SELECT (.+) FROM position_records`).
		WithArgs("bus-999").
		WillReturnRows(recordRows())

	repo := NewPositionRepo(db)
	_, err = repo.GetLatest(context.Background(), "bus-999")
	if !errors.Is(err, domain.ErrNoPosition) {
		t.Fatalf("expected ErrNoPosition, got %v", err)
	}
}

func TestGetHistory_NewestFirst(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = db.Close() }()

	ts1 := time.Unix(1715005000, 0)
	ts2 := time.Unix(1715000000, 0)
	rows := recordRows().
		AddRow("rec-2", "bus-101", "op-1", 77.61, 12.99, nil, nil, ts1, int64(2)).
		AddRow("rec-1", "bus-101", "op-1", 77.60, 12.98, nil, nil, ts2, int64(1))

	mock.ExpectQuery(`SELECT (.+) FROM position_records WHERE vehicle_id = (.+) ORDER BY created_at DESC, seq DESC LIMIT (.+)`).
		WithArgs("bus-101", 100).
		WillReturnRows(rows)

	repo := NewPositionRepo(db)
	results, err := repo.GetHistory(context.Background(), "bus-101", 100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].ID != "rec-2" || results[1].ID != "rec-1" {
		t.Errorf("expected newest first, got %s then %s", results[0].ID, results[1].ID)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestGetHistory_Empty(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = db.Close() }()

	mock.ExpectQuery(`SELECT (.+) FROM position_records`).
		WithArgs("bus-101", 100).
		WillReturnRows(recordRows())

	repo := NewPositionRepo(db)
	results, err := repo.GetHistory(context.Background(), "bus-101", 100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 0 {
		t.Fatalf("expected 0 results, got %d", len(results))
	}
}
