package models

import "time"

// Report is the assembled sky report for one location and instant. Collection
// fields are never nil so the JSON shape stays the same under any section filter.
type Report struct {
	Date      time.Time            `json:"date"`
	Location  Location             `json:"location"`
	Sun       SunTimes             `json:"sun"`
	Moon      *MoonInfo            `json:"moon"`
	Weather   *ObservingConditions `json:"weather"`
	Aurora    *AuroraForecast      `json:"aurora"`
	Planets   []PlanetEntry        `json:"planets"`
	ISSPasses []Pass               `json:"iss_passes"`
	Meteors   []ShowerEntry        `json:"meteors"`
	DeepSky   []DSOEntry           `json:"deep_sky"`
	Events    []AstroEvent         `json:"events"`
}
