package models

import "time"

type Pass struct {
	StartTime       time.Time `json:"start_time"`
	DurationMinutes int       `json:"duration_minutes"`
	MaxAltitude     float64   `json:"max_altitude"`
	StartDirection  string    `json:"start_direction"`
	EndDirection    string    `json:"end_direction"`
	Brightness      string    `json:"brightness"`
	Magnitude       float64   `json:"magnitude"`
}

type SatelliteCategory string

const (
	CategoryStation   SatelliteCategory = "station"
	CategoryTelescope SatelliteCategory = "telescope"
	CategoryStarlink  SatelliteCategory = "starlink"
)

type SatellitePass struct {
	Pass
	Satellite string            `json:"satellite"`
	NoradID   int               `json:"norad_id"`
	Category  SatelliteCategory `json:"category"`
}

type SatelliteInfo struct {
	TotalPasses    int             `json:"total_passes"`
	StarlinkPasses int             `json:"starlink_passes"`
	StationPasses  int             `json:"station_passes"`
	NextBrightPass *SatellitePass  `json:"next_bright_pass"`
	Passes         []SatellitePass `json:"passes"`
}
