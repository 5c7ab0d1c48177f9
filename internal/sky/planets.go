package sky

import (
	"fmt"
	"sort"
	"time"

	"github.com/mr1hm/go-astrosky/internal/ephem"
	"github.com/mr1hm/go-astrosky/internal/models"
)

var planetDescriptions = map[ephem.Body]string{
	ephem.Mercury: "Elusive, close to Sun",
	ephem.Venus:   "Brilliant, unmistakable",
	ephem.Mars:    "Reddish hue",
	ephem.Jupiter: "Bright, steady light",
	ephem.Saturn:  "Golden, rings in telescope",
	ephem.Uranus:  "Faint, blue-green",
	ephem.Neptune: "Very faint, needs telescope",
}

// VisiblePlanets returns the planets above the horizon at the given instant,
// highest first. Rise and set times are those falling inside the UTC day.
func (c *Calculator) VisiblePlanets(loc models.Location, at time.Time) ([]models.PlanetEntry, error) {
	obs := observer(loc)
	day := dayStart(at)

	entries := make([]models.PlanetEntry, 0, len(ephem.Planets))
	for _, body := range ephem.Planets {
		pos, err := c.eph.ApparentAltAz(body, obs, at)
		if err != nil {
			return nil, fmt.Errorf("%s position: %w", body, err)
		}
		alt := round1(pos.AltDeg)
		if alt <= 0 {
			continue
		}

		rise, set, err := c.riseSet(body, obs, day)
		if err != nil {
			return nil, fmt.Errorf("%s rise/set: %w", body, err)
		}

		entries = append(entries, models.PlanetEntry{
			Name:        body.String(),
			Direction:   models.CompassDirection(pos.AzDeg),
			Azimuth:     round1(pos.AzDeg),
			Altitude:    alt,
			RiseTime:    rise,
			SetTime:     set,
			Description: planetDescriptions[body],
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Altitude > entries[j].Altitude
	})
	return entries, nil
}
