package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/mr1hm/go-astrosky/internal/models"
)

// Fixed-width UTC layout so timestamps compare correctly as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

const observationColumns = `id, device_id, object_type, object_id, object_name, object_details,
	timestamp, lat, lon, place_name, equipment, notes, created_at, updated_at`

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, s)
}

func nullable(p *string) sql.NullString {
	if p == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *p, Valid: true}
}

func (s *SQLiteDB) Upsert(ctx context.Context, o *models.Observation) (bool, error) {
	return upsert(ctx, s.db, o, time.Now())
}

func (s *SQLiteDB) Sync(ctx context.Context, obs []models.Observation) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin sync: %w", err)
	}
	defer tx.Rollback()

	now := time.Now()
	created := 0
	for i := range obs {
		isNew, err := upsert(ctx, tx, &obs[i], now)
		if err != nil {
			return 0, fmt.Errorf("observation %d: %w", i, err)
		}
		if isNew {
			created++
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit sync: %w", err)
	}
	slog.Debug("observations synced", "count", len(obs), "created", created)
	return created, nil
}

func upsert(ctx context.Context, ex execer, o *models.Observation, now time.Time) (bool, error) {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	if err := o.Validate(); err != nil {
		return false, err
	}

	var existingCreated string
	err := ex.QueryRowContext(ctx, `SELECT created_at FROM observations WHERE id = ?`, o.ID).Scan(&existingCreated)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		o.CreatedAt = now.UTC()
		o.UpdatedAt = o.CreatedAt
		_, err = ex.ExecContext(ctx, `INSERT INTO observations (`+observationColumns+`)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			o.ID, o.DeviceID, o.ObjectType, o.ObjectID, o.ObjectName, nullable(o.ObjectDetails),
			formatTime(o.Timestamp), o.Lat, o.Lon, nullable(o.PlaceName), string(o.Equipment), nullable(o.Notes),
			formatTime(o.CreatedAt), formatTime(o.UpdatedAt))
		if err != nil {
			return false, fmt.Errorf("insert observation: %w", err)
		}
		return true, nil
	case err != nil:
		return false, fmt.Errorf("lookup observation: %w", err)
	}

	if o.CreatedAt, err = parseTime(existingCreated); err != nil {
		return false, fmt.Errorf("parse created_at: %w", err)
	}
	o.UpdatedAt = now.UTC()
	_, err = ex.ExecContext(ctx, `UPDATE observations SET
			device_id = ?, object_type = ?, object_id = ?, object_name = ?, object_details = ?,
			timestamp = ?, lat = ?, lon = ?, place_name = ?, equipment = ?, notes = ?, updated_at = ?
		WHERE id = ?`,
		o.DeviceID, o.ObjectType, o.ObjectID, o.ObjectName, nullable(o.ObjectDetails),
		formatTime(o.Timestamp), o.Lat, o.Lon, nullable(o.PlaceName), string(o.Equipment), nullable(o.Notes),
		formatTime(o.UpdatedAt), o.ID)
	if err != nil {
		return false, fmt.Errorf("update observation: %w", err)
	}
	return false, nil
}

// ListByDevice returns a device's observations, newest first.
func (s *SQLiteDB) ListByDevice(ctx context.Context, deviceID string) ([]models.Observation, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+observationColumns+`
		FROM observations WHERE device_id = ? ORDER BY timestamp DESC, id`, deviceID)
	if err != nil {
		return nil, fmt.Errorf("list observations: %w", err)
	}
	defer rows.Close()

	out := []models.Observation{}
	for rows.Next() {
		o, err := scanObservation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

func scanObservation(rows *sql.Rows) (models.Observation, error) {
	var (
		o                       models.Observation
		equipment               string
		ts, createdAt, updateAt string
	)
	err := rows.Scan(&o.ID, &o.DeviceID, &o.ObjectType, &o.ObjectID, &o.ObjectName, &o.ObjectDetails,
		&ts, &o.Lat, &o.Lon, &o.PlaceName, &equipment, &o.Notes, &createdAt, &updateAt)
	if err != nil {
		return o, fmt.Errorf("scan observation: %w", err)
	}
	o.Equipment = models.Equipment(equipment)
	if o.Timestamp, err = parseTime(ts); err != nil {
		return o, fmt.Errorf("parse timestamp: %w", err)
	}
	if o.CreatedAt, err = parseTime(createdAt); err != nil {
		return o, fmt.Errorf("parse created_at: %w", err)
	}
	if o.UpdatedAt, err = parseTime(updateAt); err != nil {
		return o, fmt.Errorf("parse updated_at: %w", err)
	}
	return o, nil
}

// Nearby aggregates observations inside a lat/lon box of RadiusKm/111
// degrees around the point, made at or after Since. Results are ordered by
// observation count, then object ID.
func (s *SQLiteDB) Nearby(ctx context.Context, f NearbyFilter) ([]models.NearbyStats, error) {
	deg := f.RadiusKm / KmPerDegree
	rows, err := s.db.QueryContext(ctx, `
		SELECT object_id, object_name, object_type, equipment, COUNT(*), MAX(timestamp)
		FROM observations
		WHERE lat BETWEEN ? AND ? AND lon BETWEEN ? AND ? AND timestamp >= ?
		GROUP BY object_id, equipment`,
		f.Lat-deg, f.Lat+deg, f.Lon-deg, f.Lon+deg, formatTime(f.Since))
	if err != nil {
		return nil, fmt.Errorf("nearby observations: %w", err)
	}
	defer rows.Close()

	byObject := map[string]*models.NearbyStats{}
	for rows.Next() {
		var (
			id, name, typ, equipment, latest string
			count                            int
		)
		if err := rows.Scan(&id, &name, &typ, &equipment, &count, &latest); err != nil {
			return nil, fmt.Errorf("scan nearby: %w", err)
		}
		ts, err := parseTime(latest)
		if err != nil {
			return nil, fmt.Errorf("parse timestamp: %w", err)
		}

		st, ok := byObject[id]
		if !ok {
			st = &models.NearbyStats{
				ObjectID:           id,
				ObjectName:         name,
				ObjectType:         typ,
				LatestObservation:  ts,
				EquipmentBreakdown: map[models.Equipment]int{},
			}
			byObject[id] = st
		}
		st.ObservationCount += count
		st.EquipmentBreakdown[models.Equipment(equipment)] += count
		if ts.After(st.LatestObservation) {
			st.LatestObservation = ts
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	out := make([]models.NearbyStats, 0, len(byObject))
	for _, st := range byObject {
		out = append(out, *st)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ObservationCount != out[j].ObservationCount {
			return out[i].ObservationCount > out[j].ObservationCount
		}
		return out[i].ObjectID < out[j].ObjectID
	})
	return out, nil
}

// Delete removes an observation owned by deviceID. It returns ErrNotFound
// when no such row exists for that device.
func (s *SQLiteDB) Delete(ctx context.Context, id, deviceID string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM observations WHERE id = ? AND device_id = ?`, id, deviceID)
	if err != nil {
		return fmt.Errorf("delete observation: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLiteDB) CountByDevice(ctx context.Context, deviceID string) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM observations WHERE device_id = ?`, deviceID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count observations: %w", err)
	}
	return n, nil
}
