package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/nandanugg/tourist-safety/module/core/domain"
	"github.com/nandanugg/tourist-safety/module/core/internal/repository/database"
)

var _ database.LocationRepository = (*LocationRepo)(nil)

type LocationRepo struct {
	db *sql.DB
}

func NewLocationRepo(db *sql.DB) *LocationRepo {
	return &LocationRepo{db: db}
}

func (r *LocationRepo) Insert(ctx context.Context, loc *domain.TouristLocation) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO tourist_locations (tourist_id, latitude, longitude, accuracy, timestamp) VALUES ($1, $2, $3, $4, $5)`,
		loc.TouristID, loc.Location.Lat, loc.Location.Lon, loc.Location.Accuracy, loc.Location.Timestamp,
	)
	return err
}

func (r *LocationRepo) GetLatest(ctx context.Context, touristID string) (*domain.TouristLocation, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT tourist_id, latitude, longitude, accuracy, timestamp FROM tourist_locations WHERE tourist_id = $1 ORDER BY timestamp DESC LIMIT 1`,
		touristID,
	)

	var tl domain.TouristLocation
	if err := scanLocation(row, &tl); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrTouristNotFound
		}
		return nil, err
	}
	return &tl, nil
}

func (r *LocationRepo) GetHistory(ctx context.Context, query *domain.HistoryQuery) ([]domain.TouristLocation, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT tourist_id, latitude, longitude, accuracy, timestamp FROM tourist_locations WHERE tourist_id = $1 AND timestamp >= $2 AND timestamp <= $3 ORDER BY timestamp ASC`,
		query.TouristID, query.Start, query.End,
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var results []domain.TouristLocation
	for rows.Next() {
		var tl domain.TouristLocation
		if err := scanLocation(rows, &tl); err != nil {
			return nil, err
		}
		results = append(results, tl)
	}
	return results, rows.Err()
}

func (r *LocationRepo) GetAllTourists(ctx context.Context) ([]domain.Tourist, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT DISTINCT tourist_id FROM tourist_locations ORDER BY tourist_id`,
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var results []domain.Tourist
	for rows.Next() {
		var t domain.Tourist
		if err := rows.Scan(&t.TouristID); err != nil {
			return nil, err
		}
		results = append(results, t)
	}
	return results, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanLocation(s scanner, tl *domain.TouristLocation) error {
	return s.Scan(&tl.TouristID, &tl.Location.Lat, &tl.Location.Lon, &tl.Location.Accuracy, &tl.Location.Timestamp)
}
