package feeds

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/mr1hm/go-astrosky/internal/models"
)

const (
	SourceNOAA       = "noaa"
	DefaultNOAAKpURL = "https://services.swpc.noaa.gov/products/noaa-planetary-k-index.json"

	DefaultKpCurrent = 2.0
	DefaultKp24hMax  = 3.0

	// Kp is published every three hours; eight readings cover a day.
	kpReadingsPerDay = 8
)

// Minimum geomagnetic latitude at which aurora may be seen, by integer Kp.
var kpVisibleLatitude = [10]float64{66, 64, 62, 60, 58, 55, 50, 45, 40, 35}

// KpReading is the latest planetary Kp and the maximum over the last day.
type KpReading struct {
	Current float64
	Max24h  float64
}

// DefaultKpReading is the quiet baseline used when the feed is unavailable.
func DefaultKpReading() KpReading {
	return KpReading{Current: DefaultKpCurrent, Max24h: DefaultKp24hMax}
}

// AuroraSource produces an aurora forecast for a location.
type AuroraSource interface {
	Forecast(ctx context.Context, loc models.Location) Result[models.AuroraForecast]
}

type AuroraClient struct {
	*Fetcher
}

func NewAuroraClient(opts ...Option) *AuroraClient {
	return &AuroraClient{Fetcher: newFetcher(SourceNOAA, DefaultNOAAKpURL, opts...)}
}

// FetchKp reads the planetary K-index product. The feed is a JSON array of
// rows, either arrays with a header row or objects keyed by column name.
func (c *AuroraClient) FetchKp(ctx context.Context) Result[KpReading] {
	start := time.Now()
	result := Result[KpReading]{Value: DefaultKpReading(), FetchedAt: start}

	var rows []json.RawMessage
	ferr := c.getJSON(ctx, c.baseURL, &rows)
	result.Duration = time.Since(start)
	if ferr != nil {
		result.Err = ferr
		return result
	}

	values, err := parseKpRows(rows)
	if err != nil {
		result.Err = c.fail(KindMalformed, err)
		return result
	}

	recent := values
	if len(recent) > kpReadingsPerDay {
		recent = recent[len(recent)-kpReadingsPerDay:]
	}
	reading := KpReading{Current: recent[len(recent)-1]}
	for _, v := range recent {
		reading.Max24h = math.Max(reading.Max24h, v)
	}
	result.Value = reading
	return result
}

func (c *AuroraClient) Forecast(ctx context.Context, loc models.Location) Result[models.AuroraForecast] {
	kp := c.FetchKp(ctx)
	return Result[models.AuroraForecast]{
		Value:     BuildAuroraForecast(loc.Lat, kp.Value),
		Err:       kp.Err,
		FetchedAt: kp.FetchedAt,
		Duration:  kp.Duration,
	}
}

func parseKpRows(rows []json.RawMessage) ([]float64, error) {
	var values []float64
	for i, raw := range rows {
		kp, err := parseKpRow(raw)
		if err != nil {
			if i == 0 {
				continue // header row
			}
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		values = append(values, kp)
	}
	if len(values) == 0 {
		return nil, errors.New("no Kp readings")
	}
	return values, nil
}

func parseKpRow(raw json.RawMessage) (float64, error) {
	var cols []any
	if err := json.Unmarshal(raw, &cols); err == nil {
		if len(cols) < 2 {
			return 0, errors.New("missing Kp column")
		}
		return kpValue(cols[1])
	}

	var obj map[string]any
	if err := json.Unmarshal(raw, &obj); err != nil {
		return 0, fmt.Errorf("unrecognised row: %w", err)
	}
	v, ok := obj["Kp"]
	if !ok {
		v, ok = obj["kp_index"]
	}
	if !ok {
		return 0, errors.New("missing Kp field")
	}
	return kpValue(v)
}

func kpValue(v any) (float64, error) {
	switch x := v.(type) {
	case float64:
		return x, nil
	case string:
		return strconv.ParseFloat(x, 64)
	default:
		return 0, fmt.Errorf("unexpected Kp value %v", v)
	}
}

// BuildAuroraForecast derives visibility for an observer latitude from a Kp
// reading.
func BuildAuroraForecast(lat float64, kp KpReading) models.AuroraForecast {
	visibleLat := VisibleLatitude(kp.Current)
	probability := VisibilityProbability(lat, visibleLat, kp.Current)

	return models.AuroraForecast{
		KpCurrent:             math.Round(kp.Current*10) / 10,
		Kp24hMax:              math.Round(kp.Max24h*10) / 10,
		GeomagneticStorm:      kp.Current >= 5,
		StormLevel:            StormLevel(kp.Current),
		VisibilityProbability: probability,
		VisibleLatitude:       visibleLat,
		BestTime:              bestViewingTime(kp.Current),
		ActivityLevel:         ActivityLevel(kp.Current),
		Summary:               auroraSummary(kp.Current, probability, lat),
	}
}

func VisibleLatitude(kp float64) float64 {
	idx := int(kp)
	if idx < 0 {
		idx = 0
	}
	if idx > 9 {
		idx = 9
	}
	return kpVisibleLatitude[idx]
}

func ActivityLevel(kp float64) string {
	switch {
	case kp >= 7:
		return "Storm"
	case kp >= 5:
		return "Active"
	case kp >= 3:
		return "Unsettled"
	default:
		return "Quiet"
	}
}

func StormLevel(kp float64) string {
	g := int(kp) - 4
	if g < 1 {
		return "G0"
	}
	if g > 5 {
		g = 5
	}
	return fmt.Sprintf("G%d", g)
}

// VisibilityProbability estimates the chance of seeing aurora from lat, in
// percent.
func VisibilityProbability(lat, visibleLat, kp float64) int {
	absLat := math.Abs(lat)
	if absLat >= visibleLat {
		return min(100, int(80+math.Min(20, (absLat-visibleLat)*2)))
	}

	deficit := visibleLat - absLat
	switch {
	case deficit > 20:
		return 0
	case deficit > 15:
		return 5
	case deficit > 10:
		return 10 + int(kp*2)
	case deficit > 5:
		return 25 + int(kp*5)
	default:
		return 50 + int(kp*5)
	}
}

func auroraSummary(kp float64, probability int, lat float64) string {
	name, toward, away := "Aurora Borealis", "north", "south"
	if lat < 0 {
		name, toward, away = "Aurora Australis", "south", "north"
	}

	switch {
	case probability >= 80:
		return name + " likely visible tonight! Get away from city lights for best views."
	case probability >= 50:
		return fmt.Sprintf("Good chance of %s activity. Watch for displays to the %s.", name, toward)
	case probability >= 20:
		return fmt.Sprintf("Possible %s if activity increases. Monitor for G2+ storm conditions.", name)
	case kp >= 5:
		return fmt.Sprintf("Geomagnetic storm active but you're too far %s. Travel %s for better chances.", away, toward)
	default:
		return fmt.Sprintf("Aurora activity quiet. Typical visible latitude: %.0f°N/S.", VisibleLatitude(kp))
	}
}

func bestViewingTime(kp float64) string {
	switch {
	case kp >= 5:
		return "Active now - check immediately if skies are clear"
	case kp >= 3:
		return "Best viewing: midnight to 3am local time"
	default:
		return "Low activity - best chances midnight to 4am if conditions improve"
	}
}
