package sky

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func showerNames(date time.Time) []string {
	var names []string
	for _, s := range ActiveShowers(date) {
		names = append(names, s.Name)
	}
	return names
}

func TestActiveShowers(t *testing.T) {
	tests := []struct {
		name    string
		date    time.Time
		include []string
		exclude []string
	}{
		{"Ursids near peak", time.Date(2025, 12, 22, 0, 0, 0, 0, time.UTC), []string{"Ursids"}, []string{"Geminids"}},
		{"Perseids peak", time.Date(2025, 8, 12, 0, 0, 0, 0, time.UTC), []string{"Perseids"}, []string{"Orionids"}},
		{"Quadrantids before new year", time.Date(2025, 12, 30, 0, 0, 0, 0, time.UTC), []string{"Quadrantids"}, nil},
		{"Quadrantids after new year", time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC), []string{"Quadrantids"}, nil},
		{"Quadrantids over", time.Date(2026, 1, 13, 0, 0, 0, 0, time.UTC), nil, []string{"Quadrantids"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			names := showerNames(tt.date)
			for _, n := range tt.include {
				assert.Contains(t, names, n)
			}
			for _, n := range tt.exclude {
				assert.NotContains(t, names, n)
			}
		})
	}
}

func TestActiveShowersQuietDate(t *testing.T) {
	showers := ActiveShowers(time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC))
	assert.NotNil(t, showers)
	assert.Empty(t, showers)
}

func TestActiveShowersPeakAndOrder(t *testing.T) {
	for _, day := range []int{11, 12, 13} {
		showers := ActiveShowers(time.Date(2025, 8, day, 0, 0, 0, 0, time.UTC))
		for _, s := range showers {
			if s.Name == "Perseids" {
				assert.True(t, s.IsPeak, "Aug %d", day)
				assert.Equal(t, "Aug 12", s.PeakDate)
			}
		}
	}

	showers := ActiveShowers(time.Date(2025, 8, 14, 0, 0, 0, 0, time.UTC))
	for i, s := range showers {
		if s.Name == "Perseids" {
			assert.False(t, s.IsPeak)
		}
		if i > 0 {
			assert.GreaterOrEqual(t, showers[i-1].ZHR, s.ZHR)
		}
	}
}

func TestShowerCatalogInvariants(t *testing.T) {
	for _, s := range Showers {
		assert.Greater(t, s.ZHR, 0, s.Name)
		assert.NotEmpty(t, s.Radiant, s.Name)
		peak := time.Date(2025, s.Peak.Month, s.Peak.Day, 0, 0, 0, 0, time.UTC)
		assert.True(t, s.ActiveOn(peak), "%s active at its own peak", s.Name)
	}
}
