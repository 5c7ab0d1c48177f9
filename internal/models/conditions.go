package models

type AuroraForecast struct {
	KpCurrent             float64 `json:"kp_current"`
	Kp24hMax              float64 `json:"kp_24h_max"`
	GeomagneticStorm      bool    `json:"geomagnetic_storm"`
	StormLevel            string  `json:"storm_level"`
	VisibilityProbability int     `json:"visibility_probability"`
	VisibleLatitude       float64 `json:"visible_latitude"`
	BestTime              string  `json:"best_time"`
	ActivityLevel         string  `json:"activity_level"`
	Summary               string  `json:"summary"`
}

type ObservingConditions struct {
	CloudCover   float64 `json:"cloud_cover"`
	Humidity     float64 `json:"humidity"`
	VisibilityKm float64 `json:"visibility_km"`
	WindSpeedKmh float64 `json:"wind_speed_kmh"`
	TemperatureC float64 `json:"temperature_c"`
	Condition    string  `json:"condition"`
	Summary      string  `json:"summary"`
}
