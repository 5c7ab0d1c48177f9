package models

import (
	"errors"
	"fmt"
	"math"
)

var ErrInvalidLocation = errors.New("invalid location")

type Location struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

func NewLocation(lat, lon float64) (Location, error) {
	loc := Location{Lat: lat, Lon: lon}
	if err := loc.Validate(); err != nil {
		return Location{}, err
	}
	return loc, nil
}

func (l Location) Validate() error {
	if math.IsNaN(l.Lat) || l.Lat < -90 || l.Lat > 90 {
		return fmt.Errorf("%w: latitude must be between -90 and 90, got %v", ErrInvalidLocation, l.Lat)
	}
	if math.IsNaN(l.Lon) || l.Lon < -180 || l.Lon > 180 {
		return fmt.Errorf("%w: longitude must be between -180 and 180, got %v", ErrInvalidLocation, l.Lon)
	}
	return nil
}

var compassPoints = [8]string{"N", "NE", "E", "SE", "S", "SW", "W", "NW"}

// CompassDirection returns the nearest of the 8 compass points for an azimuth
// in degrees. Exact boundaries round half to even.
func CompassDirection(azimuth float64) string {
	idx := int(math.RoundToEven(azimuth/45)) % 8
	if idx < 0 {
		idx += 8
	}
	return compassPoints[idx]
}
