package locations

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mr1hm/go-astrosky/internal/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(filepath.Join(t.TempDir(), "astrosky", "locations.json"))
}

var (
	nyc    = models.Location{Lat: 40.7128, Lon: -74.006}
	london = models.Location{Lat: 51.5074, Lon: -0.1278}
)

func TestStore_EmptyWhenMissing(t *testing.T) {
	s := newTestStore(t)

	sites, err := s.List()
	require.NoError(t, err)
	assert.Empty(t, sites)

	_, err = s.Default()
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStore_AddAndGet(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Add("home", nyc, false))

	loc, err := s.Get("home")
	require.NoError(t, err)
	assert.Equal(t, nyc, loc)

	_, err = s.Get("missing")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = os.Stat(s.Path())
	assert.NoError(t, err)
}

func TestStore_AddDuplicate(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Add("home", nyc, false))

	err := s.Add("home", london, false)
	assert.ErrorIs(t, err, ErrExists)

	loc, err := s.Get("home")
	require.NoError(t, err)
	assert.Equal(t, nyc, loc)
}

func TestStore_AddValidates(t *testing.T) {
	s := newTestStore(t)

	err := s.Add("bad", models.Location{Lat: 91}, false)
	assert.ErrorIs(t, err, models.ErrInvalidLocation)

	assert.Error(t, s.Add("", nyc, false))
}

func TestStore_DefaultLifecycle(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Add("home", nyc, true))
	require.NoError(t, s.Add("london", london, false))

	def, err := s.Default()
	require.NoError(t, err)
	assert.Equal(t, "home", def.Name)
	assert.Equal(t, nyc, def.Location)

	require.NoError(t, s.SetDefault("london"))
	def, err = s.Default()
	require.NoError(t, err)
	assert.Equal(t, "london", def.Name)

	assert.ErrorIs(t, s.SetDefault("paris"), ErrNotFound)

	require.NoError(t, s.Remove("london"))
	_, err = s.Default()
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStore_ListSortedWithDefault(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Add("zurich", models.Location{Lat: 47.37, Lon: 8.54}, false))
	require.NoError(t, s.Add("home", nyc, true))
	require.NoError(t, s.Add("london", london, false))

	sites, err := s.List()
	require.NoError(t, err)
	require.Len(t, sites, 3)
	assert.Equal(t, "home", sites[0].Name)
	assert.True(t, sites[0].IsDefault)
	assert.Equal(t, "london", sites[1].Name)
	assert.False(t, sites[1].IsDefault)
	assert.Equal(t, "zurich", sites[2].Name)
}

func TestStore_Remove(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Add("home", nyc, false))

	require.NoError(t, s.Remove("home"))
	assert.ErrorIs(t, s.Remove("home"), ErrNotFound)
}

func TestStore_PersistsAcrossInstances(t *testing.T) {
	path := filepath.Join(t.TempDir(), "locations.json")
	require.NoError(t, NewStore(path).Add("home", nyc, true))

	def, err := NewStore(path).Default()
	require.NoError(t, err)
	assert.Equal(t, "home", def.Name)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"default": "home"`)
	assert.Contains(t, string(raw), `"lat": 40.7128`)
}

func TestStore_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "locations.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := NewStore(path).List()
	assert.Error(t, err)
}
