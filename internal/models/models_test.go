package models

import (
	"errors"
	"testing"
	"time"
)

func TestDarknessFromIllumination(t *testing.T) {
	tests := []struct {
		illumination float64
		want         DarknessQuality
	}{
		{0, DarknessExcellent},
		{24.9, DarknessExcellent},
		{25.0, DarknessGood},
		{49.9, DarknessGood},
		{50.0, DarknessFair},
		{74.9, DarknessFair},
		{75.0, DarknessPoor},
		{100, DarknessPoor},
	}
	for _, tt := range tests {
		if got := DarknessFromIllumination(tt.illumination); got != tt.want {
			t.Errorf("DarknessFromIllumination(%v) = %s, want %s", tt.illumination, got, tt.want)
		}
	}
}

func TestNewMoonInfo_RejectsOutOfRange(t *testing.T) {
	for _, v := range []float64{-0.1, 100.1} {
		if _, err := NewMoonInfo(PhaseFull, v, nil, nil); err == nil {
			t.Errorf("expected error for illumination %v", v)
		}
	}

	m, err := NewMoonInfo(PhaseWaxingCrescent, 24.96, nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.Illumination != 25 || m.DarknessQuality != DarknessExcellent {
		t.Errorf("got %v%% %s, want 25%% Excellent", m.Illumination, m.DarknessQuality)
	}

	m, err = NewMoonInfo(PhaseFull, 99, nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.DarknessQuality != DarknessPoor {
		t.Errorf("expected Poor darkness, got %s", m.DarknessQuality)
	}
}

func TestCompassDirection(t *testing.T) {
	tests := []struct {
		azimuth float64
		want    string
	}{
		{0, "N"},
		{22.4, "N"},
		{22.5, "N"},
		{22.6, "NE"},
		{67.5, "E"},
		{90, "E"},
		{112.5, "E"},
		{180, "S"},
		{270, "W"},
		{337.5, "N"},
		{337.6, "N"},
		{359.9, "N"},
		{-45, "NW"},
	}
	for _, tt := range tests {
		if got := CompassDirection(tt.azimuth); got != tt.want {
			t.Errorf("CompassDirection(%v) = %s, want %s", tt.azimuth, got, tt.want)
		}
	}
}

func TestNewLocation(t *testing.T) {
	if _, err := NewLocation(40.7128, -74.0060); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, c := range [][2]float64{{90.1, 0}, {-90.1, 0}, {0, 180.5}, {0, -181}} {
		_, err := NewLocation(c[0], c[1])
		if !errors.Is(err, ErrInvalidLocation) {
			t.Errorf("NewLocation(%v, %v) error = %v, want ErrInvalidLocation", c[0], c[1], err)
		}
	}
}

func TestObservationValidate(t *testing.T) {
	valid := func() Observation {
		return Observation{
			ID:         "obs-1",
			DeviceID:   "device-a",
			ObjectType: "planet",
			ObjectID:   "planet-saturn",
			ObjectName: "Saturn",
			Timestamp:  time.Date(2025, 8, 12, 3, 0, 0, 0, time.UTC),
			Lat:        40.7,
			Lon:        -74,
			Equipment:  EquipmentTelescope,
		}
	}

	o := valid()
	if err := o.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*Observation)
	}{
		{"missing device", func(o *Observation) { o.DeviceID = "" }},
		{"missing object id", func(o *Observation) { o.ObjectID = "" }},
		{"missing equipment", func(o *Observation) { o.Equipment = "" }},
		{"zero timestamp", func(o *Observation) { o.Timestamp = time.Time{} }},
		{"bad latitude", func(o *Observation) { o.Lat = 91 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := valid()
			tt.mutate(&o)
			if err := o.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}
