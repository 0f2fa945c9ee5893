package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/nandanugg/tourist-safety/module/core/domain"
	"github.com/nandanugg/tourist-safety/module/core/internal/repository/database"
)

var _ database.AlertRepository = (*AlertRepo)(nil)

const alertColumns = `id, tourist_id, geofence_id, geofence_name, classification, level, message, latitude, longitude, accuracy, timestamp, is_read`

type AlertRepo struct {
	db *sql.DB
}

func NewAlertRepo(db *sql.DB) *AlertRepo {
	return &AlertRepo{db: db}
}

func (r *AlertRepo) Insert(ctx context.Context, a *domain.GeofenceAlert) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO alerts (`+alertColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		a.ID, a.TouristID, a.GeofenceID, a.GeofenceName, string(a.Classification), string(a.Level), a.Message,
		a.Location.Lat, a.Location.Lon, a.Location.Accuracy, time.Unix(a.Timestamp, 0), a.Read,
	)
	return err
}

func (r *AlertRepo) Get(ctx context.Context, id string) (*domain.GeofenceAlert, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+alertColumns+` FROM alerts WHERE id = $1`, id)

	var a domain.GeofenceAlert
	if err := scanAlert(row, &a); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrAlertNotFound
		}
		return nil, err
	}
	return &a, nil
}

// ListByTourist returns the tourist's alerts, newest first.
func (r *AlertRepo) ListByTourist(ctx context.Context, touristID string) ([]domain.GeofenceAlert, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+alertColumns+` FROM alerts WHERE tourist_id = $1 ORDER BY timestamp DESC, id ASC`,
		touristID,
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	results := []domain.GeofenceAlert{}
	for rows.Next() {
		var a domain.GeofenceAlert
		if err := scanAlert(rows, &a); err != nil {
			return nil, err
		}
		results = append(results, a)
	}
	return results, rows.Err()
}

func (r *AlertRepo) MarkRead(ctx context.Context, id string) error {
	return r.execOne(ctx, `UPDATE alerts SET is_read = TRUE WHERE id = $1`, id)
}

func (r *AlertRepo) Delete(ctx context.Context, id string) error {
	return r.execOne(ctx, `DELETE FROM alerts WHERE id = $1`, id)
}

func (r *AlertRepo) execOne(ctx context.Context, q, id string) error {
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrAlertNotFound
	}
	return nil
}

func scanAlert(s scanner, a *domain.GeofenceAlert) error {
	var classification, level string
	var ts time.Time
	if err := s.Scan(&a.ID, &a.TouristID, &a.GeofenceID, &a.GeofenceName, &classification, &level, &a.Message,
		&a.Location.Lat, &a.Location.Lon, &a.Location.Accuracy, &ts, &a.Read); err != nil {
		return err
	}
	a.Classification = domain.Classification(classification)
	a.Level = domain.AlertLevel(level)
	a.Location.Timestamp = ts
	a.Timestamp = ts.Unix()
	return nil
}
