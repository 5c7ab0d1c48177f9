package feeds

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"net/url"
	"sort"
	"sync"
	"time"

	"github.com/mr1hm/go-astrosky/internal/models"
	"github.com/mr1hm/go-astrosky/internal/worker"
)

const (
	SourceN2YO     = "n2yo"
	DefaultN2YOURL = "https://api.n2yo.com/rest/v1"

	ISSNoradID = 25544

	DefaultISSDays          = 2
	DefaultISSMinVisibility = 60

	DefaultSatelliteDays          = 3
	DefaultSatelliteMinVisibility = 120
	DefaultSatelliteMaxResults    = 10

	starlinkMaxMagnitude   = 2.0
	brightPassMaxMagnitude = -2.0
)

// Satellite is a watchlist entry.
type Satellite struct {
	NoradID  int
	Name     string
	Category models.SatelliteCategory
}

// Watchlist holds the notable satellites followed by a sample of recent
// Starlink launches.
var Watchlist = []Satellite{
	{20580, "Hubble Space Telescope", models.CategoryTelescope},
	{48274, "Tiangong Space Station", models.CategoryStation},
	{59559, "Starlink-31337", models.CategoryStarlink},
	{58589, "Starlink-6148", models.CategoryStarlink},
	{58590, "Starlink-6149", models.CategoryStarlink},
	{58591, "Starlink-6150", models.CategoryStarlink},
	{58592, "Starlink-6151", models.CategoryStarlink},
	{58593, "Starlink-6152", models.CategoryStarlink},
	{59834, "Starlink-7001", models.CategoryStarlink},
	{59835, "Starlink-7002", models.CategoryStarlink},
	{59836, "Starlink-7003", models.CategoryStarlink},
}

type n2yoResponse struct {
	Error  string     `json:"error"`
	Passes []n2yoPass `json:"passes"`
}

type n2yoPass struct {
	StartAz  float64 `json:"startAz"`
	StartUTC int64   `json:"startUTC"`
	MaxEl    float64 `json:"maxEl"`
	EndAz    float64 `json:"endAz"`
	Mag      float64 `json:"mag"`
	Duration int     `json:"duration"` // seconds
}

// N2YOClient predicts visual passes through the N2YO REST API.
type N2YOClient struct {
	*Fetcher
	apiKey    string
	workers   int
	watchlist []Satellite
}

func NewN2YOClient(apiKey string, workers int, opts ...Option) *N2YOClient {
	return &N2YOClient{
		Fetcher:   newFetcher(SourceN2YO, DefaultN2YOURL, opts...),
		apiKey:    apiKey,
		workers:   workers,
		watchlist: Watchlist,
	}
}

func (c *N2YOClient) passesURL(noradID int, loc models.Location, days, minVisibility int) string {
	return fmt.Sprintf("%s/satellite/visualpasses/%d/%v/%v/0/%d/%d?apiKey=%s",
		c.baseURL, noradID, loc.Lat, loc.Lon, days, minVisibility, url.QueryEscape(c.apiKey))
}

func (c *N2YOClient) fetchPasses(ctx context.Context, noradID int, loc models.Location, days, minVisibility int) ([]n2yoPass, *FetchError) {
	if c.apiKey == "" {
		slog.Debug("N2YO_API_KEY not set, skipping pass predictions", "norad_id", noradID)
		return nil, c.fail(KindMissingCredential, nil)
	}

	var data n2yoResponse
	if ferr := c.getJSON(ctx, c.passesURL(noradID, loc, days, minVisibility), &data); ferr != nil {
		return nil, ferr
	}
	if data.Error != "" {
		return nil, c.fail(KindStatus, fmt.Errorf("n2yo error: %s", data.Error))
	}
	return data.Passes, nil
}

// ISSPasses returns upcoming visible ISS passes, or an empty list on failure.
func (c *N2YOClient) ISSPasses(ctx context.Context, loc models.Location, days, minVisibility int) Result[[]models.Pass] {
	start := time.Now()
	result := Result[[]models.Pass]{Value: []models.Pass{}, FetchedAt: start}

	raw, ferr := c.fetchPasses(ctx, ISSNoradID, loc, days, minVisibility)
	result.Duration = time.Since(start)
	if ferr != nil {
		result.Err = ferr
		return result
	}

	for _, p := range raw {
		result.Value = append(result.Value, toPass(p, issBrightness))
	}
	return result
}

// SatellitePasses queries every watchlist satellite concurrently and returns
// the earliest maxResults passes. A failing satellite only loses its passes.
func (c *N2YOClient) SatellitePasses(ctx context.Context, loc models.Location, days, minVisibility, maxResults int) Result[models.SatelliteInfo] {
	start := time.Now()
	result := Result[models.SatelliteInfo]{Value: emptySatelliteInfo(), FetchedAt: start}

	if c.apiKey == "" {
		result.Err = c.fail(KindMissingCredential, nil)
		return result
	}

	var (
		mu       sync.Mutex
		passes   []models.SatellitePass
		failures int
		firstErr *FetchError
	)
	worker.Run(ctx, "satellites", c.workers, c.watchlist, func(ctx context.Context, sat Satellite) error {
		raw, ferr := c.fetchPasses(ctx, sat.NoradID, loc, days, minVisibility)

		mu.Lock()
		defer mu.Unlock()
		if ferr != nil {
			failures++
			if firstErr == nil {
				firstErr = ferr
			}
			return ferr
		}
		for _, p := range raw {
			if sat.Category == models.CategoryStarlink && p.Mag > starlinkMaxMagnitude {
				continue
			}
			passes = append(passes, models.SatellitePass{
				Pass:      toPass(p, satelliteBrightness),
				Satellite: sat.Name,
				NoradID:   sat.NoradID,
				Category:  sat.Category,
			})
		}
		return nil
	})
	result.Duration = time.Since(start)

	if failures > 0 && failures == len(c.watchlist) {
		result.Err = firstErr
		return result
	}
	if failures > 0 {
		slog.Debug("some satellites unavailable", "source", SourceN2YO, "failed", failures, "total", len(c.watchlist))
	}

	result.Value = summarizePasses(passes, maxResults)
	return result
}

func summarizePasses(passes []models.SatellitePass, maxResults int) models.SatelliteInfo {
	sort.SliceStable(passes, func(i, j int) bool {
		if !passes[i].StartTime.Equal(passes[j].StartTime) {
			return passes[i].StartTime.Before(passes[j].StartTime)
		}
		return passes[i].NoradID < passes[j].NoradID
	})
	if maxResults > 0 && len(passes) > maxResults {
		passes = passes[:maxResults]
	}

	info := emptySatelliteInfo()
	info.Passes = append(info.Passes, passes...)
	info.TotalPasses = len(passes)
	for i := range info.Passes {
		p := &info.Passes[i]
		switch p.Category {
		case models.CategoryStarlink:
			info.StarlinkPasses++
		case models.CategoryStation:
			info.StationPasses++
		}
		if info.NextBrightPass == nil && p.Magnitude <= brightPassMaxMagnitude {
			bright := *p
			info.NextBrightPass = &bright
		}
	}
	return info
}

func emptySatelliteInfo() models.SatelliteInfo {
	return models.SatelliteInfo{Passes: []models.SatellitePass{}}
}

func toPass(p n2yoPass, brightness func(float64) string) models.Pass {
	return models.Pass{
		StartTime:       time.Unix(p.StartUTC, 0).UTC(),
		DurationMinutes: p.Duration / 60,
		MaxAltitude:     p.MaxEl,
		StartDirection:  models.CompassDirection(p.StartAz),
		EndDirection:    models.CompassDirection(p.EndAz),
		Brightness:      brightness(p.Mag),
		Magnitude:       math.Round(p.Mag*10) / 10,
	}
}

func issBrightness(mag float64) string {
	switch {
	case mag <= -3.0:
		return "Bright!"
	case mag <= -1.5:
		return "Moderate"
	default:
		return "Faint"
	}
}

func satelliteBrightness(mag float64) string {
	switch {
	case mag <= -4.0:
		return "Brilliant!"
	case mag <= -2.5:
		return "Bright"
	case mag <= -1.0:
		return "Moderate"
	default:
		return "Faint"
	}
}
