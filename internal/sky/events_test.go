package sky

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mr1hm/go-astrosky/internal/ephem"
	"github.com/mr1hm/go-astrosky/internal/models"
)

func TestUpcomingEventsFullMoon(t *testing.T) {
	c := newCalculator()
	start := time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC)

	events := c.UpcomingEvents(newYork, start, 30)
	require.NotEmpty(t, events)

	var full *models.AstroEvent
	for i := range events {
		if events[i].Type == models.EventMoonPhase && events[i].Title != "New Moon" {
			full = &events[i]
		}
	}
	require.NotNil(t, full, "full moon in December window")
	assert.Equal(t, "2025-12-04", full.Date.Format("2006-01-02"))
	assert.Contains(t, full.Title, "Full")
	assert.Contains(t, full.Title, "Cold Moon")

	for i := 1; i < len(events); i++ {
		assert.False(t, events[i].Date.Before(events[i-1].Date), "events sorted by date")
	}

	var solstice bool
	for _, e := range events {
		if e.Type == models.EventSolstice && e.Title == "December Solstice" {
			solstice = true
		}
	}
	assert.True(t, solstice)
}

func TestUpcomingEventsOppositions(t *testing.T) {
	c := newCalculator()
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	events := c.UpcomingEvents(newYork, start, 365)

	var opposed []string
	for _, e := range events {
		if e.Type == models.EventOpposition {
			require.Len(t, e.Bodies, 1)
			opposed = append(opposed, e.Bodies[0])
			assert.False(t, e.Date.Before(start))
			assert.False(t, e.Date.After(start.AddDate(0, 0, 365)))
		}
	}
	assert.NotContains(t, opposed, "Mercury")
	assert.NotContains(t, opposed, "Venus")
	assert.Contains(t, opposed, "Saturn")
	assert.Contains(t, opposed, "Jupiter")
}

func TestUpcomingEventsConjunction(t *testing.T) {
	c := newCalculator()
	start := time.Date(2025, 8, 10, 0, 0, 0, 0, time.UTC)

	events := c.UpcomingEvents(newYork, start, 5)

	seen := make(map[string]bool)
	var venusJupiter bool
	for _, e := range events {
		if e.Type != models.EventConjunction {
			continue
		}
		require.Len(t, e.Bodies, 2)
		assert.LessOrEqual(t, e.Bodies[0], e.Bodies[1], "pair is sorted")
		key := e.Date.Format("2006-01-02") + e.Bodies[0] + e.Bodies[1]
		assert.False(t, seen[key], "duplicate %s", key)
		seen[key] = true
		if e.Bodies[0] == "Jupiter" && e.Bodies[1] == "Venus" {
			venusJupiter = true
		}
	}
	assert.True(t, venusJupiter)
}

func TestUpcomingEventsEquinox(t *testing.T) {
	c := newCalculator()
	events := c.UpcomingEvents(newYork, time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC), 10)

	var found bool
	for _, e := range events {
		if e.Type == models.EventEquinox {
			found = true
			assert.Equal(t, "March Equinox", e.Title)
			assert.Equal(t, 20, e.Date.Day())
		}
	}
	assert.True(t, found)
}

func TestUpcomingEventsZeroDays(t *testing.T) {
	events := newCalculator().UpcomingEvents(newYork, time.Now(), 0)
	assert.NotNil(t, events)
	assert.Empty(t, events)
}

type failingProvider struct {
	ephem.Provider
}

func (failingProvider) SearchPhaseAngle(float64, time.Time, time.Duration) (time.Time, error) {
	return time.Time{}, errors.New("ephemeris unavailable")
}

func TestUpcomingEventsSwallowsFailures(t *testing.T) {
	c := New(failingProvider{})
	events := c.UpcomingEvents(newYork, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), 30)
	assert.NotNil(t, events)
	assert.Empty(t, events)
}

func TestUpcomingEventsRecoversFromPanic(t *testing.T) {
	// The embedded nil Provider panics on any method not overridden.
	c := New(struct{ ephem.Provider }{})
	events := c.UpcomingEvents(newYork, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), 30)
	assert.NotNil(t, events)
	assert.Empty(t, events)
}
