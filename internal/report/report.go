// Package report assembles sky reports from the ephemeris-backed components
// and the best-effort network feeds.
package report

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/mr1hm/go-astrosky/internal/feeds"
	"github.com/mr1hm/go-astrosky/internal/models"
	"github.com/mr1hm/go-astrosky/internal/sky"
)

// TonightEventDays is the events horizon used by the nightly report.
const TonightEventDays = 2

// ErrDataUnavailable means a required ephemeris computation failed and no
// report can be built.
var ErrDataUnavailable = errors.New("sky data unavailable")

type PassSource interface {
	ISSPasses(ctx context.Context, loc models.Location, days, minVisibility int) feeds.Result[[]models.Pass]
}

type WeatherSource interface {
	Conditions(ctx context.Context, loc models.Location, at time.Time) feeds.Result[models.ObservingConditions]
}

// Builder builds reports. Any of the network sources may be nil, in which
// case the matching section is left at its default.
type Builder struct {
	sky     *sky.Calculator
	passes  PassSource
	weather WeatherSource
	aurora  feeds.AuroraSource
}

func NewBuilder(calc *sky.Calculator, passes PassSource, weather WeatherSource, aurora feeds.AuroraSource) *Builder {
	return &Builder{
		sky:     calc,
		passes:  passes,
		weather: weather,
		aurora:  aurora,
	}
}

func (b *Builder) Sky() *sky.Calculator {
	return b.sky
}

// Build assembles the report for loc on date. Network-bound sections run
// concurrently with the ephemeris work; their failures only empty their own
// section.
func (b *Builder) Build(ctx context.Context, loc models.Location, date time.Time, opts Options) (*models.Report, error) {
	if err := loc.Validate(); err != nil {
		return nil, err
	}
	instant, err := ApplyAtTime(date, opts.AtTime)
	if err != nil {
		return nil, err
	}

	r := &models.Report{
		Date:      instant,
		Location:  loc,
		Planets:   []models.PlanetEntry{},
		ISSPasses: []models.Pass{},
		Meteors:   []models.ShowerEntry{},
		DeepSky:   []models.DSOEntry{},
		Events:    []models.AstroEvent{},
	}

	g, gctx := errgroup.WithContext(ctx)
	if opts.Includes(SectionISS) && b.passes != nil {
		g.Go(func() error {
			r.ISSPasses = b.passes.ISSPasses(gctx, loc, feeds.DefaultISSDays, feeds.DefaultISSMinVisibility).Value
			return nil
		})
	}
	if opts.Conditions && b.weather != nil {
		g.Go(func() error {
			c := b.weather.Conditions(gctx, loc, instant).Value
			r.Weather = &c
			return nil
		})
	}
	if opts.Conditions && b.aurora != nil {
		g.Go(func() error {
			a := b.aurora.Forecast(gctx, loc).Value
			r.Aurora = &a
			return nil
		})
	}

	skyErr := b.fillSky(r, loc, instant, opts)
	_ = g.Wait()
	if skyErr != nil {
		return nil, fmt.Errorf("%w: %v", ErrDataUnavailable, skyErr)
	}
	if r.ISSPasses == nil {
		r.ISSPasses = []models.Pass{}
	}
	return r, nil
}

func (b *Builder) fillSky(r *models.Report, loc models.Location, instant time.Time, opts Options) error {
	sun, err := b.sky.SunTimes(loc, instant)
	if err != nil {
		return err
	}
	r.Sun = sun

	moon, err := b.sky.MoonInfo(loc, instant)
	if err != nil {
		return err
	}
	if opts.Includes(SectionMoon) {
		r.Moon = &moon
	}

	if opts.Includes(SectionPlanets) {
		if r.Planets, err = b.sky.VisiblePlanets(loc, instant); err != nil {
			return err
		}
	}
	if opts.Includes(SectionDeepSky) {
		if r.DeepSky, err = b.sky.VisibleDSO(loc, instant, sky.DefaultDSOLimit, sky.DefaultMinAltitude); err != nil {
			return err
		}
	}
	if opts.Includes(SectionMeteors) {
		r.Meteors = sky.ActiveShowers(instant)
	}
	if opts.Includes(SectionEvents) {
		r.Events = b.sky.UpcomingEvents(loc, instant, TonightEventDays)
	}
	return nil
}
