package api

import (
	"github.com/mr1hm/go-astrosky/internal/models"
)

type FeatureCollection struct {
	Type     string    `json:"type"`
	Features []Feature `json:"features"`
}
type Feature struct {
	Type       string         `json:"type"`
	Geometry   Geometry       `json:"geometry"`
	Properties map[string]any `json:"properties"`
}
type Geometry struct {
	Type        string    `json:"type"`
	Coordinates []float64 `json:"coordinates"`
}

// toGeoJSON maps observations to Point features; coordinates are [lon, lat].
func toGeoJSON(observations []models.Observation) FeatureCollection {
	features := make([]Feature, 0, len(observations))

	for _, o := range observations {
		props := map[string]any{
			"id":          o.ID,
			"object_type": o.ObjectType,
			"object_id":   o.ObjectID,
			"object_name": o.ObjectName,
			"equipment":   string(o.Equipment),
			"timestamp":   o.Timestamp,
		}
		if o.PlaceName != nil {
			props["place_name"] = *o.PlaceName
		}
		features = append(features, Feature{
			Type: "Feature",
			Geometry: Geometry{
				Type:        "Point",
				Coordinates: []float64{o.Lon, o.Lat},
			},
			Properties: props,
		})
	}

	return FeatureCollection{
		Type:     "FeatureCollection",
		Features: features,
	}
}
