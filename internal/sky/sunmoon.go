package sky

import (
	"fmt"
	"math"
	"time"

	"github.com/mr1hm/go-astrosky/internal/ephem"
	"github.com/mr1hm/go-astrosky/internal/models"
)

// Fallback clock times used when the Sun never crosses the relevant level.
const (
	fallbackSunrise      = 6 * time.Hour
	fallbackSunset       = 18 * time.Hour
	fallbackTwilightFrom = 21 * time.Hour
	fallbackTwilightTo   = 5 * time.Hour
)

// SunTimes computes sunrise, sunset and astronomical twilight for the UTC day
// containing at.
func (c *Calculator) SunTimes(loc models.Location, at time.Time) (models.SunTimes, error) {
	obs := observer(loc)
	day := dayStart(at)

	sunrise, sunset, err := c.riseSet(ephem.Sun, obs, day)
	if err != nil {
		return models.SunTimes{}, fmt.Errorf("sun rise/set: %w", err)
	}

	twilight, err := c.eph.FindDiscreteEvents(c.eph.TwilightLevels(obs), day, day.Add(24*time.Hour))
	if err != nil {
		return models.SunTimes{}, fmt.Errorf("twilight: %w", err)
	}

	noon := localNoon(day, loc.Lon)
	var duskEnd, dawnStart *time.Time
	for _, ev := range twilight {
		t := ev.Time
		switch {
		case ev.Code == ephem.Night && duskEnd == nil && t.After(noon):
			duskEnd = &t
		case ev.Code == ephem.AstronomicalTwilight && dawnStart == nil && t.Before(noon):
			dawnStart = &t
		}
	}

	return models.SunTimes{
		Sunrise:                   orDefault(sunrise, day.Add(fallbackSunrise)),
		Sunset:                    orDefault(sunset, day.Add(fallbackSunset)),
		AstronomicalTwilightStart: orDefault(duskEnd, day.Add(fallbackTwilightFrom)),
		AstronomicalTwilightEnd:   orDefault(dawnStart, day.Add(fallbackTwilightTo)),
	}, nil
}

// MoonInfo computes the phase at the exact instant and the Moon's rise and
// set within the UTC day.
func (c *Calculator) MoonInfo(loc models.Location, at time.Time) (models.MoonInfo, error) {
	angle, err := c.eph.MoonPhaseAngle(at)
	if err != nil {
		return models.MoonInfo{}, fmt.Errorf("moon phase: %w", err)
	}

	moonrise, moonset, err := c.riseSet(ephem.Moon, observer(loc), dayStart(at))
	if err != nil {
		return models.MoonInfo{}, fmt.Errorf("moon rise/set: %w", err)
	}

	return models.NewMoonInfo(PhaseName(angle), Illumination(angle), moonrise, moonset)
}

// Illumination approximates the illuminated percentage from the phase angle.
func Illumination(phaseAngle float64) float64 {
	return (1 - math.Abs(180-phaseAngle)/180) * 100
}

// PhaseName buckets a phase angle into eight 45 degree windows centred on the
// canonical phases.
func PhaseName(phaseAngle float64) models.PhaseName {
	switch a := math.Mod(phaseAngle, 360); {
	case a < 22.5 || a >= 337.5:
		return models.PhaseNew
	case a < 67.5:
		return models.PhaseWaxingCrescent
	case a < 112.5:
		return models.PhaseFirstQuarter
	case a < 157.5:
		return models.PhaseWaxingGibbous
	case a < 202.5:
		return models.PhaseFull
	case a < 247.5:
		return models.PhaseWaningGibbous
	case a < 292.5:
		return models.PhaseLastQuarter
	default:
		return models.PhaseWaningCrescent
	}
}

func orDefault(t *time.Time, fallback time.Time) time.Time {
	if t == nil {
		return fallback
	}
	return *t
}
