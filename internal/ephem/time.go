package ephem

import (
	"math"
	"time"

	"github.com/soniakeys/meeus/v3/julian"
	"github.com/soniakeys/meeus/v3/sidereal"
	"github.com/soniakeys/unit"
)

// deltaT approximates TT - UT1 for the current era.
const deltaT = 69 * time.Second

// jde returns the Julian Ephemeris Day of t.
func jde(t time.Time) float64 {
	return julian.TimeToJD(t.UTC().Add(deltaT))
}

// fromJDE is the inverse of jde.
func fromJDE(j float64) time.Time {
	return julian.JDToTime(j).UTC().Add(-deltaT)
}

// localSiderealTime returns apparent sidereal time at the observer's
// longitude (east positive), in seconds of sidereal day.
func localSiderealTime(t time.Time, lonDeg float64) unit.Time {
	st := sidereal.Apparent(julian.TimeToJD(t.UTC())) + unit.Time(lonDeg*240)
	return unit.Time(math.Mod(float64(st)+86400, 86400))
}

func normalize360(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	return deg
}

// wrap180 maps an angle into [-180, 180).
func wrap180(deg float64) float64 {
	return normalize360(deg+180) - 180
}
