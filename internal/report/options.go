package report

import (
	"errors"
	"fmt"
	"slices"
	"time"
)

var ErrInvalidTime = errors.New("invalid time of day")

// Options controls which sections a report contains. A nil Only means no
// allow-list; Only takes precedence over Exclude.
type Options struct {
	AtTime     string
	Only       []Section
	Exclude    []Section
	Conditions bool
}

func (o Options) Includes(s Section) bool {
	if o.Only != nil {
		return slices.Contains(o.Only, s)
	}
	if o.Exclude != nil {
		return !slices.Contains(o.Exclude, s)
	}
	return true
}

// ApplyAtTime replaces the UTC time of day of date with an "HH:MM" clock
// time. An empty clock leaves date unchanged.
func ApplyAtTime(date time.Time, clock string) (time.Time, error) {
	if clock == "" {
		return date.UTC(), nil
	}
	t, err := time.Parse("15:04", clock)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q, expected HH:MM", ErrInvalidTime, clock)
	}
	y, m, d := date.UTC().Date()
	return time.Date(y, m, d, t.Hour(), t.Minute(), 0, 0, time.UTC), nil
}
