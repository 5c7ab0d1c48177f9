package sky

import (
	"sort"
	"time"

	"github.com/mr1hm/go-astrosky/internal/models"
)

type MonthDay struct {
	Month time.Month
	Day   int
}

func (md MonthDay) ordinal() int {
	return int(md.Month)*100 + md.Day
}

type Shower struct {
	Name    string
	Start   MonthDay
	End     MonthDay
	Peak    MonthDay
	ZHR     int
	Radiant string
}

// Showers lists the major annual meteor showers. Ranges may wrap the year end.
var Showers = []Shower{
	{"Quadrantids", MonthDay{time.December, 28}, MonthDay{time.January, 12}, MonthDay{time.January, 3}, 120, "Boötes"},
	{"Lyrids", MonthDay{time.April, 14}, MonthDay{time.April, 30}, MonthDay{time.April, 22}, 18, "Lyra"},
	{"Eta Aquariids", MonthDay{time.April, 19}, MonthDay{time.May, 28}, MonthDay{time.May, 6}, 50, "Aquarius"},
	{"Alpha Capricornids", MonthDay{time.July, 3}, MonthDay{time.August, 15}, MonthDay{time.July, 30}, 5, "Capricornus"},
	{"Southern Delta Aquariids", MonthDay{time.July, 12}, MonthDay{time.August, 23}, MonthDay{time.July, 30}, 25, "Aquarius"},
	{"Perseids", MonthDay{time.July, 17}, MonthDay{time.August, 24}, MonthDay{time.August, 12}, 100, "Perseus"},
	{"Draconids", MonthDay{time.October, 6}, MonthDay{time.October, 10}, MonthDay{time.October, 8}, 10, "Draco"},
	{"Southern Taurids", MonthDay{time.September, 10}, MonthDay{time.November, 20}, MonthDay{time.October, 10}, 5, "Taurus"},
	{"Orionids", MonthDay{time.October, 2}, MonthDay{time.November, 7}, MonthDay{time.October, 21}, 20, "Orion"},
	{"Northern Taurids", MonthDay{time.October, 20}, MonthDay{time.December, 10}, MonthDay{time.November, 12}, 5, "Taurus"},
	{"Leonids", MonthDay{time.November, 6}, MonthDay{time.November, 30}, MonthDay{time.November, 17}, 15, "Leo"},
	{"Geminids", MonthDay{time.December, 4}, MonthDay{time.December, 20}, MonthDay{time.December, 14}, 150, "Gemini"},
	{"Ursids", MonthDay{time.December, 17}, MonthDay{time.December, 26}, MonthDay{time.December, 22}, 10, "Ursa Minor"},
}

// ActiveOn reports whether date's month and day fall in the shower's range,
// inclusive at both ends.
func (s Shower) ActiveOn(date time.Time) bool {
	md := MonthDay{date.Month(), date.Day()}.ordinal()
	start, end := s.Start.ordinal(), s.End.ordinal()
	if s.Start.Month > s.End.Month {
		return md >= start || md <= end
	}
	return md >= start && md <= end
}

// AtPeak is true within one day of the peak, in the peak month only.
func (s Shower) AtPeak(date time.Time) bool {
	if date.Month() != s.Peak.Month {
		return false
	}
	diff := date.Day() - s.Peak.Day
	return diff >= -1 && diff <= 1
}

func (s Shower) peakLabel() string {
	return time.Date(2000, s.Peak.Month, s.Peak.Day, 0, 0, 0, 0, time.UTC).Format("Jan 2")
}

// ActiveShowers returns the showers active on date, highest rate first.
func ActiveShowers(date time.Time) []models.ShowerEntry {
	date = date.UTC()
	active := []models.ShowerEntry{}
	for _, s := range Showers {
		if !s.ActiveOn(date) {
			continue
		}
		active = append(active, models.ShowerEntry{
			Name:                 s.Name,
			ZHR:                  s.ZHR,
			PeakDate:             s.peakLabel(),
			RadiantConstellation: s.Radiant,
			IsPeak:               s.AtPeak(date),
		})
	}
	sort.SliceStable(active, func(i, j int) bool {
		return active[i].ZHR > active[j].ZHR
	})
	return active
}
