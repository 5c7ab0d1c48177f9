// Package sky turns ephemeris positions and static catalogs into observing
// information: sun and moon times, visible planets and deep-sky objects,
// meteor showers and upcoming events.
package sky

import (
	"math"
	"time"

	"github.com/mr1hm/go-astrosky/internal/ephem"
	"github.com/mr1hm/go-astrosky/internal/models"
)

type Calculator struct {
	eph ephem.Provider
}

func New(eph ephem.Provider) *Calculator {
	return &Calculator{eph: eph}
}

func observer(loc models.Location) ephem.Observer {
	return ephem.Observer{LatDeg: loc.Lat, LonDeg: loc.Lon}
}

// dayStart returns UTC midnight of the calendar day containing t.
func dayStart(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// localNoon returns mean solar noon at the given longitude on day.
func localNoon(day time.Time, lonDeg float64) time.Time {
	return day.Add(12*time.Hour - time.Duration(lonDeg/15*float64(time.Hour)))
}

// riseSet returns the last rise and set of body within the UTC day.
func (c *Calculator) riseSet(body ephem.Body, obs ephem.Observer, day time.Time) (rise, set *time.Time, err error) {
	events, err := c.eph.FindDiscreteEvents(c.eph.RisingSetting(body, obs), day, day.Add(24*time.Hour))
	if err != nil {
		return nil, nil, err
	}
	for _, ev := range events {
		t := ev.Time
		if ev.Code == ephem.StateAbove {
			rise = &t
		} else {
			set = &t
		}
	}
	return rise, set, nil
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
