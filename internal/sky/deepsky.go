package sky

import (
	"fmt"
	"sort"
	"time"

	"github.com/mr1hm/go-astrosky/internal/models"
)

const (
	DefaultDSOLimit    = 5
	DefaultMinAltitude = 20.0
)

// VisibleDSO returns up to limit catalog objects at or above minAltitude,
// brightest first. A non-positive limit falls back to DefaultDSOLimit.
func (c *Calculator) VisibleDSO(loc models.Location, at time.Time, limit int, minAltitude float64) ([]models.DSOEntry, error) {
	if limit <= 0 {
		limit = DefaultDSOLimit
	}
	obs := observer(loc)

	var visible []models.DSOEntry
	for _, obj := range Messier {
		pos, err := c.eph.FixedAltAz(obj.RADeg, obj.DecDeg, obs, at)
		if err != nil {
			return nil, fmt.Errorf("%s position: %w", obj.ID, err)
		}
		if pos.AltDeg < minAltitude {
			continue
		}
		visible = append(visible, models.DSOEntry{
			ID:            obj.ID,
			Name:          obj.DisplayName(),
			Constellation: obj.Constellation,
			Magnitude:     obj.Magnitude,
			Size:          obj.Size,
			Type:          obj.Type,
			Equipment:     obj.Equipment(),
			Tip:           obj.ObservingTip(),
			Altitude:      round1(pos.AltDeg),
			Azimuth:       round1(pos.AzDeg),
		})
	}

	sort.SliceStable(visible, func(i, j int) bool {
		return visible[i].Magnitude < visible[j].Magnitude
	})
	if len(visible) > limit {
		visible = visible[:limit]
	}
	if visible == nil {
		visible = []models.DSOEntry{}
	}
	return visible, nil
}
