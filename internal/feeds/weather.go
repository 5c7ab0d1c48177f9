package feeds

import (
	"context"
	"fmt"
	"math"
	"net/url"
	"strings"
	"time"

	"github.com/mr1hm/go-astrosky/internal/models"
)

const (
	SourceOpenMeteo       = "openmeteo"
	DefaultOpenMeteoURL   = "https://api.open-meteo.com/v1/forecast"
	DefaultWeatherTimeout = 5 * time.Second

	ConditionExcellent = "Excellent"
	ConditionGood      = "Good"
	ConditionFair      = "Fair"
	ConditionPoor      = "Poor"
	ConditionUnknown   = "Unknown"
)

type openMeteoResponse struct {
	Current struct {
		CloudCover  *float64 `json:"cloud_cover"`
		Humidity    *float64 `json:"relative_humidity_2m"`
		Visibility  *float64 `json:"visibility"` // metres
		WindSpeed   *float64 `json:"wind_speed_10m"`
		Temperature *float64 `json:"temperature_2m"`
	} `json:"current"`
}

type WeatherClient struct {
	*Fetcher
}

func NewWeatherClient(opts ...Option) *WeatherClient {
	opts = append([]Option{WithTimeout(DefaultWeatherTimeout)}, opts...)
	return &WeatherClient{Fetcher: newFetcher(SourceOpenMeteo, DefaultOpenMeteoURL, opts...)}
}

// UnknownConditions is returned when the weather feed is unavailable.
func UnknownConditions() models.ObservingConditions {
	return models.ObservingConditions{
		CloudCover:   -1,
		Humidity:     -1,
		VisibilityKm: -1,
		WindSpeedKmh: -1,
		TemperatureC: -1,
		Condition:    ConditionUnknown,
		Summary:      "Weather data unavailable. Check local conditions.",
	}
}

// Conditions reports the current observing conditions at loc. The feed only
// provides current weather, so at is not used to select a forecast hour.
func (c *WeatherClient) Conditions(ctx context.Context, loc models.Location, at time.Time) Result[models.ObservingConditions] {
	start := time.Now()
	result := Result[models.ObservingConditions]{Value: UnknownConditions(), FetchedAt: start}

	q := url.Values{}
	q.Set("latitude", fmt.Sprint(loc.Lat))
	q.Set("longitude", fmt.Sprint(loc.Lon))
	q.Set("current", "cloud_cover,relative_humidity_2m,visibility,wind_speed_10m,temperature_2m")
	q.Set("timezone", "auto")

	var data openMeteoResponse
	ferr := c.getJSON(ctx, c.baseURL+"?"+q.Encode(), &data)
	result.Duration = time.Since(start)
	if ferr != nil {
		result.Err = ferr
		return result
	}

	cur := data.Current
	result.Value = AssessConditions(
		math.Trunc(valueOr(cur.CloudCover, 50)),
		math.Trunc(valueOr(cur.Humidity, 50)),
		round1(valueOr(cur.Visibility, 10000)/1000),
		round1(valueOr(cur.WindSpeed, 0)),
		round1(valueOr(cur.Temperature, 15)),
	)
	return result
}

// AssessConditions grades observing quality and writes a summary.
func AssessConditions(cloudCover, humidity, visibilityKm, windKmh, tempC float64) models.ObservingConditions {
	condition := observingCondition(cloudCover, humidity, visibilityKm)
	return models.ObservingConditions{
		CloudCover:   cloudCover,
		Humidity:     humidity,
		VisibilityKm: visibilityKm,
		WindSpeedKmh: windKmh,
		TemperatureC: tempC,
		Condition:    condition,
		Summary:      conditionsSummary(cloudCover, humidity, visibilityKm, windKmh, condition),
	}
}

func observingCondition(cloudCover, humidity, visibilityKm float64) string {
	if cloudCover >= 80 {
		return ConditionPoor
	}
	if cloudCover >= 60 {
		return ConditionFair
	}

	score := 0
	switch {
	case cloudCover < 10:
		score += 3
	case cloudCover < 30:
		score += 2
	default:
		score++
	}
	switch {
	case humidity < 50:
		score += 2
	case humidity < 70:
		score++
	}
	switch {
	case visibilityKm >= 20:
		score += 2
	case visibilityKm >= 10:
		score++
	}

	switch {
	case score >= 6:
		return ConditionExcellent
	case score >= 4:
		return ConditionGood
	case score >= 2:
		return ConditionFair
	default:
		return ConditionPoor
	}
}

func conditionsSummary(cloudCover, humidity, visibilityKm, windKmh float64, condition string) string {
	var parts []string

	switch {
	case cloudCover < 10:
		parts = append(parts, "Clear skies")
	case cloudCover < 30:
		parts = append(parts, "Mostly clear")
	case cloudCover < 60:
		parts = append(parts, "Partly cloudy")
	case cloudCover < 80:
		parts = append(parts, "Mostly cloudy")
	default:
		parts = append(parts, "Overcast")
	}

	if humidity > 80 {
		parts = append(parts, "hazy conditions")
	} else if humidity < 40 && visibilityKm > 20 {
		parts = append(parts, "excellent transparency")
	}

	if windKmh > 30 {
		parts = append(parts, "windy")
	} else if windKmh > 20 {
		parts = append(parts, "breezy")
	}

	summary := strings.Join(parts, ", ")
	switch condition {
	case ConditionExcellent:
		return summary + ". Perfect for deep sky observing!"
	case ConditionGood:
		return summary + ". Good night for astronomy."
	case ConditionFair:
		return summary + ". Planets and bright objects visible."
	default:
		return summary + ". Consider rescheduling observations."
	}
}

func valueOr(v *float64, def float64) float64 {
	if v == nil {
		return def
	}
	return *v
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
