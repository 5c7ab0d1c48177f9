package sky

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/mr1hm/go-astrosky/internal/ephem"
	"github.com/mr1hm/go-astrosky/internal/models"
)

const conjunctionMaxSeparation = 5.0

var fullMoonNames = [12]string{
	"Wolf Moon", "Snow Moon", "Worm Moon", "Pink Moon", "Flower Moon", "Strawberry Moon",
	"Buck Moon", "Sturgeon Moon", "Harvest Moon", "Hunter's Moon", "Beaver Moon", "Cold Moon",
}

var seasonEvents = [4]struct {
	kind        models.EventType
	title       string
	description string
}{
	{models.EventEquinox, "March Equinox", "Day and night are nearly equal; spring begins in the north"},
	{models.EventSolstice, "June Solstice", "Longest day in the Northern Hemisphere"},
	{models.EventEquinox, "September Equinox", "Day and night are nearly equal; autumn begins in the north"},
	{models.EventSolstice, "December Solstice", "Longest night in the Northern Hemisphere"},
}

// UpcomingEvents lists moon phases, conjunctions, oppositions and seasons in
// the days following start, sorted by date. Failures are logged and yield an
// empty list. The searches are geocentric; loc is currently unused.
func (c *Calculator) UpcomingEvents(loc models.Location, start time.Time, days int) (events []models.AstroEvent) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("events computation panicked", "panic", r)
			events = []models.AstroEvent{}
		}
	}()

	events, err := c.upcomingEvents(start.UTC(), days)
	if err != nil {
		slog.Error("events computation failed", "error", err)
		return []models.AstroEvent{}
	}
	return events
}

func (c *Calculator) upcomingEvents(start time.Time, days int) ([]models.AstroEvent, error) {
	if days <= 0 {
		return []models.AstroEvent{}, nil
	}
	end := start.Add(time.Duration(days) * 24 * time.Hour)

	events, err := c.moonPhaseEvents(start, end)
	if err != nil {
		return nil, err
	}

	conj, err := c.conjunctions(start, days)
	if err != nil {
		return nil, err
	}
	events = append(events, conj...)
	events = append(events, c.oppositions(start, end)...)

	seasons, err := c.seasonEvents(start, end)
	if err != nil {
		return nil, err
	}
	events = append(events, seasons...)

	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Date.Before(events[j].Date)
	})
	return events, nil
}

func (c *Calculator) moonPhaseEvents(start, end time.Time) ([]models.AstroEvent, error) {
	events := []models.AstroEvent{}
	window := end.Sub(start)

	full, err := c.eph.SearchPhaseAngle(180, start, window)
	switch {
	case err == nil:
		events = append(events, models.AstroEvent{
			Type:        models.EventMoonPhase,
			Date:        full,
			Title:       fmt.Sprintf("Full Moon (%s)", fullMoonNames[full.Month()-1]),
			Description: "The Moon is fully lit and rises around sunset",
			Bodies:      []string{ephem.Moon.String()},
		})
	case !errors.Is(err, ephem.ErrNotFound):
		return nil, fmt.Errorf("full moon search: %w", err)
	}

	newMoon, err := c.eph.SearchPhaseAngle(0, start, window)
	switch {
	case err == nil:
		events = append(events, models.AstroEvent{
			Type:        models.EventMoonPhase,
			Date:        newMoon,
			Title:       "New Moon",
			Description: "No moonlight; best nights for faint deep-sky objects",
			Bodies:      []string{ephem.Moon.String()},
		})
	case !errors.Is(err, ephem.ErrNotFound):
		return nil, fmt.Errorf("new moon search: %w", err)
	}
	return events, nil
}

// conjunctions samples each day at 12:00 UTC and reports every planet/planet
// and planet/Moon pair within conjunctionMaxSeparation degrees.
func (c *Calculator) conjunctions(start time.Time, days int) ([]models.AstroEvent, error) {
	bodies := append([]ephem.Body{ephem.Moon}, ephem.Planets...)
	events := []models.AstroEvent{}
	seen := make(map[string]bool)

	first := dayStart(start).Add(12 * time.Hour)
	for d := 0; d < days; d++ {
		at := first.AddDate(0, 0, d)

		vectors := make([]ephem.Vec3, len(bodies))
		for i, b := range bodies {
			v, err := c.eph.GeocentricVector(b, at)
			if err != nil {
				return nil, fmt.Errorf("%s vector: %w", b, err)
			}
			vectors[i] = v
		}

		for i := 0; i < len(bodies); i++ {
			for j := i + 1; j < len(bodies); j++ {
				sep := ephem.AngleBetween(vectors[i], vectors[j])
				if sep > conjunctionMaxSeparation {
					continue
				}
				names := []string{bodies[i].String(), bodies[j].String()}
				sort.Strings(names)
				key := at.Format("2006-01-02") + "|" + names[0] + "|" + names[1]
				if seen[key] {
					continue
				}
				seen[key] = true
				events = append(events, models.AstroEvent{
					Type:        models.EventConjunction,
					Date:        at,
					Title:       fmt.Sprintf("%s and %s conjunction", names[0], names[1]),
					Description: fmt.Sprintf("%s and %s appear %.1f° apart", names[0], names[1], sep),
					Bodies:      names,
				})
			}
		}
	}
	return events, nil
}

// oppositions searches each outer planet independently; a failed search only
// drops that planet.
func (c *Calculator) oppositions(start, end time.Time) []models.AstroEvent {
	events := []models.AstroEvent{}
	for _, b := range ephem.OuterPlanets {
		at, err := c.eph.SearchRelativeLongitude(b, 180, start)
		if err != nil {
			if !errors.Is(err, ephem.ErrNotFound) {
				slog.Warn("opposition search failed", "planet", b.String(), "error", err)
			}
			continue
		}
		if at.Before(start) || at.After(end) {
			continue
		}
		events = append(events, models.AstroEvent{
			Type:        models.EventOpposition,
			Date:        at,
			Title:       fmt.Sprintf("%s at Opposition", b),
			Description: fmt.Sprintf("%s is opposite the Sun and visible all night at its brightest", b),
			Bodies:      []string{b.String()},
		})
	}
	return events
}

func (c *Calculator) seasonEvents(start, end time.Time) ([]models.AstroEvent, error) {
	years := []int{start.Year()}
	if end.Year() != start.Year() {
		years = append(years, end.Year())
	}

	events := []models.AstroEvent{}
	for _, y := range years {
		instants, err := c.eph.SeasonInstants(y)
		if err != nil {
			return nil, fmt.Errorf("seasons %d: %w", y, err)
		}
		for i, at := range instants {
			if at.Before(start) || at.After(end) {
				continue
			}
			s := seasonEvents[i]
			events = append(events, models.AstroEvent{
				Type:        s.kind,
				Date:        at,
				Title:       s.title,
				Description: s.description,
				Bodies:      []string{ephem.Sun.String()},
			})
		}
	}
	return events, nil
}
