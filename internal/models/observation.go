package models

import (
	"errors"
	"time"
)

type Equipment string

const (
	EquipmentNakedEye   Equipment = "naked-eye"
	EquipmentBinoculars Equipment = "binoculars"
	EquipmentTelescope  Equipment = "telescope"
)

type Observation struct {
	ID            string    `json:"id"`
	DeviceID      string    `json:"device_id"`
	ObjectType    string    `json:"object_type"`
	ObjectID      string    `json:"object_id"`
	ObjectName    string    `json:"object_name"`
	ObjectDetails *string   `json:"object_details"`
	Timestamp     time.Time `json:"timestamp"`
	Lat           float64   `json:"lat"`
	Lon           float64   `json:"lon"`
	PlaceName     *string   `json:"place_name"`
	Equipment     Equipment `json:"equipment"`
	Notes         *string   `json:"notes"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (o *Observation) Validate() error {
	if o.DeviceID == "" {
		return errors.New("device_id is required")
	}
	if o.ObjectType == "" || o.ObjectID == "" || o.ObjectName == "" {
		return errors.New("object_type, object_id and object_name are required")
	}
	if o.Equipment == "" {
		return errors.New("equipment is required")
	}
	if o.Timestamp.IsZero() {
		return errors.New("timestamp is required")
	}
	return Location{Lat: o.Lat, Lon: o.Lon}.Validate()
}

// NearbyStats aggregates observations of one object around a location.
type NearbyStats struct {
	ObjectID           string            `json:"object_id"`
	ObjectName         string            `json:"object_name"`
	ObjectType         string            `json:"object_type"`
	ObservationCount   int               `json:"observation_count"`
	LatestObservation  time.Time         `json:"latest_observation"`
	EquipmentBreakdown map[Equipment]int `json:"equipment_breakdown"`
}
