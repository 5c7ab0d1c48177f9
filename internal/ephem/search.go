package ephem

import (
	"math"
	"time"
)

const (
	phaseSearchStep     = 6 * time.Hour
	longitudeSearchStep = 24 * time.Hour
	// longest synodic period of any outer planet (Mars) plus margin
	longitudeSearchSpan = 800 * 24 * time.Hour
)

// FindDiscreteEvents samples f across [start, end] and returns every state
// change, each refined to within one second.
func (e *Ephemeris) FindDiscreteEvents(f StateFunc, start, end time.Time) ([]DiscreteEvent, error) {
	step := f.Step
	if step <= 0 {
		step = e.step
	}

	s0, err := f.At(start)
	if err != nil {
		return nil, err
	}

	var events []DiscreteEvent
	for t0 := start; t0.Before(end); {
		t1 := t0.Add(step)
		if t1.After(end) {
			t1 = end
		}
		s1, err := f.At(t1)
		if err != nil {
			return nil, err
		}
		if s1 != s0 {
			at, err := refineState(f, t0, t1, s0)
			if err != nil {
				return nil, err
			}
			events = append(events, DiscreteEvent{Time: at, Code: s1})
		}
		t0, s0 = t1, s1
	}
	return events, nil
}

func refineState(f StateFunc, lo, hi time.Time, s0 int) (time.Time, error) {
	for hi.Sub(lo) > time.Second {
		mid := lo.Add(hi.Sub(lo) / 2)
		s, err := f.At(mid)
		if err != nil {
			return time.Time{}, err
		}
		if s == s0 {
			lo = mid
		} else {
			hi = mid
		}
	}
	return hi, nil
}

// SearchPhaseAngle finds the first instant in [start, start+window] at which
// the Moon's phase angle reaches targetDeg.
func (e *Ephemeris) SearchPhaseAngle(targetDeg float64, start time.Time, window time.Duration) (time.Time, error) {
	f := func(t time.Time) (float64, error) {
		angle, err := e.MoonPhaseAngle(t)
		return wrap180(angle - targetDeg), err
	}
	return findRoot(f, start, start.Add(window), phaseSearchStep)
}

// SearchRelativeLongitude finds the next instant after start at which the
// body's ecliptic longitude minus the Sun's equals targetDeg. Bodies that
// never reach the target (inner planets at 180) yield ErrNotFound.
func (e *Ephemeris) SearchRelativeLongitude(body Body, targetDeg float64, start time.Time) (time.Time, error) {
	f := func(t time.Time) (float64, error) {
		rel, err := e.relativeLongitude(body, t)
		return wrap180(rel - targetDeg), err
	}
	return findRoot(f, start, start.Add(longitudeSearchSpan), longitudeSearchStep)
}

// findRoot returns the first zero crossing of an angular difference f. Jumps
// of 90 degrees or more between samples are the wrap at +-180, not roots.
func findRoot(f func(time.Time) (float64, error), start, end time.Time, step time.Duration) (time.Time, error) {
	v0, err := f(start)
	if err != nil {
		return time.Time{}, err
	}

	for t0 := start; t0.Before(end); {
		t1 := t0.Add(step)
		if t1.After(end) {
			t1 = end
		}
		v1, err := f(t1)
		if err != nil {
			return time.Time{}, err
		}
		if (v0 < 0) != (v1 < 0) && math.Abs(v1-v0) < 90 {
			return bisect(f, t0, t1, v0 < 0)
		}
		t0, v0 = t1, v1
	}
	return time.Time{}, ErrNotFound
}

func bisect(f func(time.Time) (float64, error), lo, hi time.Time, loNegative bool) (time.Time, error) {
	for hi.Sub(lo) > time.Second {
		mid := lo.Add(hi.Sub(lo) / 2)
		v, err := f(mid)
		if err != nil {
			return time.Time{}, err
		}
		if (v < 0) == loNegative {
			lo = mid
		} else {
			hi = mid
		}
	}
	return lo.Add(hi.Sub(lo) / 2), nil
}
