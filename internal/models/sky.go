package models

import (
	"fmt"
	"math"
	"time"
)

type SunTimes struct {
	Sunrise                   time.Time `json:"sunrise"`
	Sunset                    time.Time `json:"sunset"`
	AstronomicalTwilightStart time.Time `json:"astronomical_twilight_start"`
	AstronomicalTwilightEnd   time.Time `json:"astronomical_twilight_end"`
}

type PhaseName string

const (
	PhaseNew            PhaseName = "New Moon"
	PhaseWaxingCrescent PhaseName = "Waxing Crescent"
	PhaseFirstQuarter   PhaseName = "First Quarter"
	PhaseWaxingGibbous  PhaseName = "Waxing Gibbous"
	PhaseFull           PhaseName = "Full Moon"
	PhaseWaningGibbous  PhaseName = "Waning Gibbous"
	PhaseLastQuarter    PhaseName = "Last Quarter"
	PhaseWaningCrescent PhaseName = "Waning Crescent"
)

type DarknessQuality string

const (
	DarknessExcellent DarknessQuality = "Excellent"
	DarknessGood      DarknessQuality = "Good"
	DarknessFair      DarknessQuality = "Fair"
	DarknessPoor      DarknessQuality = "Poor"
)

// DarknessFromIllumination grades sky darkness from the Moon's illuminated percentage.
func DarknessFromIllumination(illumination float64) DarknessQuality {
	switch {
	case illumination < 25:
		return DarknessExcellent
	case illumination < 50:
		return DarknessGood
	case illumination < 75:
		return DarknessFair
	default:
		return DarknessPoor
	}
}

type MoonInfo struct {
	PhaseName       PhaseName       `json:"phase_name"`
	Illumination    float64         `json:"illumination"`
	DarknessQuality DarknessQuality `json:"darkness_quality"`
	Moonrise        *time.Time      `json:"moonrise"`
	Moonset         *time.Time      `json:"moonset"`
}

// NewMoonInfo grades darkness from the exact illumination and keeps one
// decimal for display.
func NewMoonInfo(phase PhaseName, illumination float64, moonrise, moonset *time.Time) (MoonInfo, error) {
	if illumination < 0 || illumination > 100 {
		return MoonInfo{}, fmt.Errorf("illumination out of range: %v", illumination)
	}
	return MoonInfo{
		PhaseName:       phase,
		Illumination:    math.Round(illumination*10) / 10,
		DarknessQuality: DarknessFromIllumination(illumination),
		Moonrise:        moonrise,
		Moonset:         moonset,
	}, nil
}

type PlanetEntry struct {
	Name        string     `json:"name"`
	Direction   string     `json:"direction"`
	Azimuth     float64    `json:"azimuth"`
	Altitude    float64    `json:"altitude"`
	RiseTime    *time.Time `json:"rise_time"`
	SetTime     *time.Time `json:"set_time"`
	Description string     `json:"description"`
}

type ShowerEntry struct {
	Name                 string `json:"name"`
	ZHR                  int    `json:"zhr"`
	PeakDate             string `json:"peak_date"`
	RadiantConstellation string `json:"radiant_constellation"`
	IsPeak               bool   `json:"is_peak"`
}

type DSOEntry struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Constellation string  `json:"constellation"`
	Magnitude     float64 `json:"mag"`
	Size          float64 `json:"size"`
	Type          string  `json:"type"`
	Equipment     string  `json:"equipment"`
	Tip           string  `json:"tip"`
	Altitude      float64 `json:"altitude"`
	Azimuth       float64 `json:"azimuth"`
}

type EventType string

const (
	EventConjunction EventType = "conjunction"
	EventOpposition  EventType = "opposition"
	EventMoonPhase   EventType = "moon_phase"
	EventEquinox     EventType = "equinox"
	EventSolstice    EventType = "solstice"
)

type AstroEvent struct {
	Type        EventType `json:"type"`
	Date        time.Time `json:"date"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Bodies      []string  `json:"bodies"`
}
