// Package ephem provides Sun, Moon and planet positions and event searches on
// top of the meeus algorithms. Planets come from mean orbital elements, good
// to well under a degree between 1800 and 2050, which is plenty for naked-eye
// and small-telescope planning.
package ephem

import (
	"errors"
	"time"
)

var (
	// ErrNotFound is returned by searches that find no matching instant.
	ErrNotFound = errors.New("no matching instant found")
	// ErrOutOfRange is returned for instants outside the validity span of the
	// orbital element tables.
	ErrOutOfRange = errors.New("instant outside ephemeris range")
)

const (
	minYear = 1800
	maxYear = 2050
)

type Body int

const (
	Sun Body = iota
	Moon
	Mercury
	Venus
	Mars
	Jupiter
	Saturn
	Uranus
	Neptune
)

var bodyNames = [...]string{"Sun", "Moon", "Mercury", "Venus", "Mars", "Jupiter", "Saturn", "Uranus", "Neptune"}

func (b Body) String() string {
	if b < 0 || int(b) >= len(bodyNames) {
		return "Unknown"
	}
	return bodyNames[b]
}

// Planets lists the seven non-Earth planets in order from the Sun.
var Planets = []Body{Mercury, Venus, Mars, Jupiter, Saturn, Uranus, Neptune}

// OuterPlanets lists the planets that can reach opposition.
var OuterPlanets = []Body{Mars, Jupiter, Saturn, Uranus, Neptune}

// Observer is a ground-based observing site.
type Observer struct {
	LatDeg float64 // north positive
	LonDeg float64 // east positive
}

// AltAz is an apparent horizontal position.
type AltAz struct {
	AltDeg float64 // 0 = horizon, 90 = zenith
	AzDeg  float64 // 0 = N, 90 = E
}

// DiscreteEvent marks the instant a StateFunc changes to Code.
type DiscreteEvent struct {
	Time time.Time
	Code int
}

// StateFunc maps an instant to a small integer state, e.g. above/below the
// horizon. Step must be shorter than the shortest run of any one state.
type StateFunc struct {
	Step time.Duration
	At   func(t time.Time) (int, error)
}

// Provider is the ephemeris capability consumed by the sky components.
type Provider interface {
	ApparentAltAz(body Body, obs Observer, t time.Time) (AltAz, error)
	FindDiscreteEvents(f StateFunc, start, end time.Time) ([]DiscreteEvent, error)
	RisingSetting(body Body, obs Observer) StateFunc
	TwilightLevels(obs Observer) StateFunc
	FixedAltAz(raDeg, decDeg float64, obs Observer, t time.Time) (AltAz, error)
	GeocentricVector(body Body, t time.Time) (Vec3, error)
	MoonPhaseAngle(t time.Time) (float64, error)
	SearchPhaseAngle(targetDeg float64, start time.Time, window time.Duration) (time.Time, error)
	SearchRelativeLongitude(body Body, targetDeg float64, start time.Time) (time.Time, error)
	SeasonInstants(year int) ([4]time.Time, error)
}

func checkRange(t time.Time) error {
	if y := t.UTC().Year(); y < minYear || y > maxYear {
		return ErrOutOfRange
	}
	return nil
}
