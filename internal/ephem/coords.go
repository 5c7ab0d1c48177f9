package ephem

import (
	"math"
	"time"

	"github.com/soniakeys/meeus/v3/coord"
	"github.com/soniakeys/meeus/v3/nutation"
	"github.com/soniakeys/unit"
)

// trueObliquity is the obliquity of the ecliptic of date including nutation.
func trueObliquity(j float64) unit.Angle {
	_, deps := nutation.Nutation(j)
	return nutation.MeanObliquity(j) + deps
}

func eclipticToEquatorial(lon, lat unit.Angle, j float64) (unit.RA, unit.Angle) {
	sEps, cEps := math.Sincos(trueObliquity(j).Rad())
	return coord.EclToEq(lon, lat, sEps, cEps)
}

// horizontal converts equatorial coordinates to altitude and azimuth, with
// azimuth measured from north through east.
func horizontal(ra unit.RA, dec unit.Angle, obs Observer, t time.Time) AltAz {
	// local sidereal time already carries the longitude
	az, alt := coord.EqToHz(ra, dec, unit.AngleFromDeg(obs.LatDeg), 0, localSiderealTime(t, obs.LonDeg))
	return AltAz{AltDeg: alt.Deg(), AzDeg: normalize360(az.Deg() + 180)}
}
