package ephem

import (
	"fmt"
	"math"
	"time"

	"github.com/soniakeys/meeus/v3/moonposition"
	"github.com/soniakeys/meeus/v3/solstice"
	"github.com/soniakeys/unit"
)

// Rise/set states.
const (
	StateBelow = 0
	StateAbove = 1
)

// Twilight levels, darkest first.
const (
	Night = iota
	AstronomicalTwilight
	NauticalTwilight
	CivilTwilight
	Day
)

const (
	sunMoonHorizon = -0.8333 // refraction plus semi-diameter
	planetHorizon  = -0.5667 // refraction only
)

// Ephemeris implements Provider on the meeus algorithms. It holds no mutable
// state after construction and is safe for concurrent use.
type Ephemeris struct {
	step time.Duration
}

var _ Provider = (*Ephemeris)(nil)

func New() *Ephemeris {
	return &Ephemeris{step: 5 * time.Minute}
}

func (e *Ephemeris) eclipticOfDate(body Body, j float64) (lon, lat unit.Angle, distAU float64, err error) {
	switch body {
	case Sun:
		lon, dist := sunApparent(j)
		return lon, 0, dist, nil
	case Moon:
		lon, lat, km := moonApparent(j)
		return lon, lat, km / kmPerAU, nil
	}
	p, ok := elementIndex[body]
	if !ok {
		return 0, 0, 0, fmt.Errorf("unknown body: %d", body)
	}
	lon, lat, dist := planetApparent(p, j)
	return lon, lat, dist, nil
}

// ApparentAltAz returns the unrefracted topocentric altitude and azimuth.
func (e *Ephemeris) ApparentAltAz(body Body, obs Observer, t time.Time) (AltAz, error) {
	if err := checkRange(t); err != nil {
		return AltAz{}, err
	}

	j := jde(t)
	lon, lat, dist, err := e.eclipticOfDate(body, j)
	if err != nil {
		return AltAz{}, err
	}

	ra, dec := eclipticToEquatorial(lon, lat, j)
	pos := horizontal(ra, dec, obs, t)
	if body == Moon {
		parallax := moonposition.Parallax(dist * kmPerAU)
		pos.AltDeg -= parallax.Deg() * math.Cos(unit.AngleFromDeg(pos.AltDeg).Rad())
	}
	return pos, nil
}

// FixedAltAz returns altitude and azimuth for catalog (J2000) coordinates.
func (e *Ephemeris) FixedAltAz(raDeg, decDeg float64, obs Observer, t time.Time) (AltAz, error) {
	if err := checkRange(t); err != nil {
		return AltAz{}, err
	}
	return horizontal(unit.RAFromDeg(raDeg), unit.AngleFromDeg(decDeg), obs, t), nil
}

// RisingSetting reports StateAbove while the body's upper limb is above the horizon.
func (e *Ephemeris) RisingSetting(body Body, obs Observer) StateFunc {
	horizon := planetHorizon
	if body == Sun || body == Moon {
		horizon = sunMoonHorizon
	}

	return StateFunc{
		Step: e.step,
		At: func(t time.Time) (int, error) {
			pos, err := e.ApparentAltAz(body, obs, t)
			if err != nil {
				return 0, err
			}
			if pos.AltDeg > horizon {
				return StateAbove, nil
			}
			return StateBelow, nil
		},
	}
}

// TwilightLevels reports Night through Day from the Sun's altitude.
func (e *Ephemeris) TwilightLevels(obs Observer) StateFunc {
	return StateFunc{
		Step: e.step,
		At: func(t time.Time) (int, error) {
			pos, err := e.ApparentAltAz(Sun, obs, t)
			if err != nil {
				return 0, err
			}
			switch alt := pos.AltDeg; {
			case alt >= sunMoonHorizon:
				return Day, nil
			case alt >= -6:
				return CivilTwilight, nil
			case alt >= -12:
				return NauticalTwilight, nil
			case alt >= -18:
				return AstronomicalTwilight, nil
			default:
				return Night, nil
			}
		},
	}
}

func (e *Ephemeris) GeocentricVector(body Body, t time.Time) (Vec3, error) {
	if err := checkRange(t); err != nil {
		return Vec3{}, err
	}
	lon, lat, dist, err := e.eclipticOfDate(body, jde(t))
	if err != nil {
		return Vec3{}, err
	}
	return fromSpherical(lon.Deg(), lat.Deg(), dist), nil
}

// MoonPhaseAngle returns the Moon's elongation in ecliptic longitude from the
// Sun: 0 at new moon, 180 at full.
func (e *Ephemeris) MoonPhaseAngle(t time.Time) (float64, error) {
	if err := checkRange(t); err != nil {
		return 0, err
	}
	j := jde(t)
	moonLon, _, _ := moonApparent(j)
	sunLon, _ := sunApparent(j)
	return normalize360((moonLon - sunLon).Deg()), nil
}

func (e *Ephemeris) relativeLongitude(body Body, t time.Time) (float64, error) {
	if err := checkRange(t); err != nil {
		return 0, err
	}
	j := jde(t)
	lon, _, _, err := e.eclipticOfDate(body, j)
	if err != nil {
		return 0, err
	}
	sunLon, _ := sunApparent(j)
	return normalize360((lon - sunLon).Deg()), nil
}

// SeasonInstants returns the March equinox, June solstice, September equinox
// and December solstice of year.
func (e *Ephemeris) SeasonInstants(year int) ([4]time.Time, error) {
	var out [4]time.Time
	if year < minYear || year > maxYear {
		return out, ErrOutOfRange
	}

	for k, season := range []func(int) float64{solstice.March, solstice.June, solstice.September, solstice.December} {
		out[k] = fromJDE(season(year))
	}
	return out, nil
}
