package repository

import (
	"context"
	"errors"
	"time"

	"github.com/mr1hm/go-astrosky/internal/models"
)

var ErrNotFound = errors.New("observation not found")

// KmPerDegree converts a search radius to the half-width of the lat/lon
// bounding box used by Nearby.
const KmPerDegree = 111.0

type NearbyFilter struct {
	Lat      float64
	Lon      float64
	RadiusKm float64
	Since    time.Time
}

type ObservationRepository interface {
	// Upsert inserts or replaces an observation by ID, assigning a new ID
	// when empty. created reports whether a new row was written.
	Upsert(ctx context.Context, o *models.Observation) (created bool, err error)
	// Sync upserts a batch in one transaction and returns how many rows were new.
	Sync(ctx context.Context, obs []models.Observation) (int, error)
	ListByDevice(ctx context.Context, deviceID string) ([]models.Observation, error)
	Nearby(ctx context.Context, f NearbyFilter) ([]models.NearbyStats, error)
	Delete(ctx context.Context, id, deviceID string) error
	CountByDevice(ctx context.Context, deviceID string) (int, error)
}
