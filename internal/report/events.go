package report

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mr1hm/go-astrosky/internal/models"
)

const (
	DefaultEventDays = 7
	MaxEventDays     = 30
)

// EventFilter selects event kinds in standalone listings; "seasonal" covers
// equinoxes and solstices.
type EventFilter string

const (
	FilterAll         EventFilter = ""
	FilterConjunction EventFilter = "conjunction"
	FilterOpposition  EventFilter = "opposition"
	FilterMoon        EventFilter = "moon"
	FilterSeasonal    EventFilter = "seasonal"
)

var ErrUnknownEventType = errors.New("unknown event type")

func ParseEventFilter(s string) (EventFilter, error) {
	switch f := EventFilter(strings.ToLower(strings.TrimSpace(s))); f {
	case FilterAll, FilterConjunction, FilterOpposition, FilterMoon, FilterSeasonal:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q (valid: conjunction, opposition, moon, seasonal)", ErrUnknownEventType, s)
	}
}

func (f EventFilter) Match(e models.AstroEvent) bool {
	switch f {
	case FilterAll:
		return true
	case FilterConjunction:
		return e.Type == models.EventConjunction
	case FilterOpposition:
		return e.Type == models.EventOpposition
	case FilterMoon:
		return e.Type == models.EventMoonPhase
	case FilterSeasonal:
		return e.Type == models.EventEquinox || e.Type == models.EventSolstice
	default:
		return false
	}
}

// Events lists upcoming events over days, clamped to [1, MaxEventDays].
func (b *Builder) Events(loc models.Location, start time.Time, days int, filter EventFilter) []models.AstroEvent {
	days = max(1, min(days, MaxEventDays))

	out := []models.AstroEvent{}
	for _, e := range b.sky.UpcomingEvents(loc, start, days) {
		if filter.Match(e) {
			out = append(out, e)
		}
	}
	return out
}
