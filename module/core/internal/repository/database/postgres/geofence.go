package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/nandanugg/tourist-safety/module/core/domain"
	"github.com/nandanugg/tourist-safety/module/core/internal/repository/database"
)

var _ database.GeofenceRepository = (*GeofenceRepo)(nil)

const geofenceColumns = `id, name, center_lat, center_lon, radius, classification, active, notify, created_at`

type GeofenceRepo struct {
	db *sql.DB
}

func NewGeofenceRepo(db *sql.DB) *GeofenceRepo {
	return &GeofenceRepo{db: db}
}

func (r *GeofenceRepo) Insert(ctx context.Context, gf *domain.Geofence) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO geofences (`+geofenceColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		gf.ID, gf.Name, gf.Center.Lat, gf.Center.Lon, gf.Radius, string(gf.Classification), gf.Active, gf.Notify, gf.CreatedAt,
	)
	return err
}

func (r *GeofenceRepo) Get(ctx context.Context, id string) (*domain.Geofence, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+geofenceColumns+` FROM geofences WHERE id = $1`,
		id,
	)

	var gf domain.Geofence
	if err := scanGeofence(row, &gf); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrGeofenceNotFound
		}
		return nil, err
	}
	return &gf, nil
}

func (r *GeofenceRepo) List(ctx context.Context) ([]domain.Geofence, error) {
	return r.query(ctx, `SELECT `+geofenceColumns+` FROM geofences ORDER BY created_at ASC, id ASC`)
}

// ListActive returns active zones in creation order, which is the order
// their matches are reported in.
func (r *GeofenceRepo) ListActive(ctx context.Context) ([]domain.Geofence, error) {
	return r.query(ctx, `SELECT `+geofenceColumns+` FROM geofences WHERE active = TRUE ORDER BY created_at ASC, id ASC`)
}

func (r *GeofenceRepo) SetActive(ctx context.Context, id string, active bool) error {
	res, err := r.db.ExecContext(ctx, `UPDATE geofences SET active = $1 WHERE id = $2`, active, id)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func (r *GeofenceRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM geofences WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func (r *GeofenceRepo) query(ctx context.Context, q string) ([]domain.Geofence, error) {
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	results := []domain.Geofence{}
	for rows.Next() {
		var gf domain.Geofence
		if err := scanGeofence(rows, &gf); err != nil {
			return nil, err
		}
		results = append(results, gf)
	}
	return results, rows.Err()
}

func scanGeofence(s scanner, gf *domain.Geofence) error {
	var classification string
	if err := s.Scan(&gf.ID, &gf.Name, &gf.Center.Lat, &gf.Center.Lon, &gf.Radius, &classification, &gf.Active, &gf.Notify, &gf.CreatedAt); err != nil {
		return err
	}
	gf.Classification = domain.Classification(classification)
	return nil
}

func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return domain.ErrGeofenceNotFound
	}
	return nil
}
