package ephem

import (
	"math"

	"github.com/soniakeys/meeus/v3/base"
	"github.com/soniakeys/meeus/v3/kepler"
	"github.com/soniakeys/meeus/v3/moonposition"
	"github.com/soniakeys/meeus/v3/nutation"
	"github.com/soniakeys/meeus/v3/planetelements"
	"github.com/soniakeys/meeus/v3/solar"
	"github.com/soniakeys/unit"
)

const kmPerAU = 149597870.7

// lightTimeDaysPerAU is the light travel time over 1 AU in days.
const lightTimeDaysPerAU = 0.0057755183

var elementIndex = map[Body]int{
	Mercury: planetelements.Mercury,
	Venus:   planetelements.Venus,
	Mars:    planetelements.Mars,
	Jupiter: planetelements.Jupiter,
	Saturn:  planetelements.Saturn,
	Uranus:  planetelements.Uranus,
	Neptune: planetelements.Neptune,
}

// heliocentric returns the ecliptic heliocentric position of date in AU from
// mean orbital elements.
func heliocentric(p int, j float64) Vec3 {
	var el planetelements.Elements
	planetelements.Mean(p, j, &el)

	E := kepler.Kepler3(el.Ecc, el.Lon-el.Peri)
	nu := kepler.True(E, el.Ecc)
	r := kepler.Radius(E, el.Ecc, el.Axis)

	su, cu := math.Sincos((el.Peri - el.Node + nu).Rad())
	sn, cn := math.Sincos(el.Node.Rad())
	si, ci := math.Sincos(el.Inc.Rad())
	return Vec3{
		X: r * (cn*cu - sn*su*ci),
		Y: r * (sn*cu + cn*su*ci),
		Z: r * su * si,
	}
}

// planetApparent returns a planet's geocentric ecliptic longitude and
// latitude of date and its distance in AU, corrected for light time.
func planetApparent(p int, j float64) (lon, lat unit.Angle, distAU float64) {
	earth := heliocentric(planetelements.Earth, j)

	geo := heliocentric(p, j).Sub(earth)
	geo = heliocentric(p, j-geo.Norm()*lightTimeDaysPerAU).Sub(earth)

	lonDeg, latDeg := geo.Spherical()
	dpsi, _ := nutation.Nutation(j)
	return unit.AngleFromDeg(lonDeg) + dpsi, unit.AngleFromDeg(latDeg), geo.Norm()
}

func sunApparent(j float64) (lon unit.Angle, distAU float64) {
	T := base.J2000Century(j)
	return solar.ApparentLongitude(T), solar.Radius(T)
}

func moonApparent(j float64) (lon, lat unit.Angle, distKm float64) {
	lon, lat, distKm = moonposition.Position(j)
	dpsi, _ := nutation.Nutation(j)
	return lon + dpsi, lat, distKm
}
