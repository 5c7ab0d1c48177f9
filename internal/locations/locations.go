// Package locations persists named observing sites for the CLI in a small
// JSON file.
package locations

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/mr1hm/go-astrosky/internal/models"
)

var (
	ErrNotFound = errors.New("location not found")
	ErrExists   = errors.New("location already exists")
)

// Site is a saved location.
type Site struct {
	Name      string
	Location  models.Location
	IsDefault bool
}

type fileData struct {
	Default   *string                    `json:"default"`
	Locations map[string]models.Location `json:"locations"`
}

// Store reads and writes the locations file. Every call reloads the file so
// concurrent CLI invocations see each other's writes.
type Store struct {
	mu   sync.Mutex
	path string
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

// DefaultPath returns ~/.config/astrosky/locations.json.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolving config dir: %w", err)
	}
	return filepath.Join(dir, "astrosky", "locations.json"), nil
}

func (s *Store) Path() string {
	return s.path
}

func (s *Store) load() (*fileData, error) {
	data := &fileData{Locations: map[string]models.Location{}}
	raw, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return data, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", s.path, err)
	}
	if err := json.Unmarshal(raw, data); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", s.path, err)
	}
	if data.Locations == nil {
		data.Locations = map[string]models.Location{}
	}
	return data, nil
}

func (s *Store) save(data *fileData) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}
	raw, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return err
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replacing %s: %w", s.path, err)
	}
	slog.Debug("saved locations", "path", s.path, "count", len(data.Locations))
	return nil
}

// Add saves a new location. Names are unique; adding an existing name
// returns ErrExists.
func (s *Store) Add(name string, loc models.Location, makeDefault bool) error {
	if name == "" {
		return errors.New("location name is required")
	}
	if err := loc.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.load()
	if err != nil {
		return err
	}
	if _, ok := data.Locations[name]; ok {
		return fmt.Errorf("%w: %q", ErrExists, name)
	}
	data.Locations[name] = loc
	if makeDefault {
		data.Default = &name
	}
	return s.save(data)
}

func (s *Store) Get(name string) (models.Location, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.load()
	if err != nil {
		return models.Location{}, err
	}
	loc, ok := data.Locations[name]
	if !ok {
		return models.Location{}, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return loc, nil
}

// Default returns the default site, or ErrNotFound when none is set.
func (s *Store) Default() (Site, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.load()
	if err != nil {
		return Site{}, err
	}
	if data.Default == nil {
		return Site{}, ErrNotFound
	}
	loc, ok := data.Locations[*data.Default]
	if !ok {
		return Site{}, fmt.Errorf("%w: default %q", ErrNotFound, *data.Default)
	}
	return Site{Name: *data.Default, Location: loc, IsDefault: true}, nil
}

// List returns all saved sites sorted by name.
func (s *Store) List() ([]Site, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.load()
	if err != nil {
		return nil, err
	}
	sites := make([]Site, 0, len(data.Locations))
	for name, loc := range data.Locations {
		sites = append(sites, Site{
			Name:      name,
			Location:  loc,
			IsDefault: data.Default != nil && *data.Default == name,
		})
	}
	sort.Slice(sites, func(i, j int) bool { return sites[i].Name < sites[j].Name })
	return sites, nil
}

// Remove deletes a site, clearing the default if it pointed at it.
func (s *Store) Remove(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.load()
	if err != nil {
		return err
	}
	if _, ok := data.Locations[name]; !ok {
		return fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	delete(data.Locations, name)
	if data.Default != nil && *data.Default == name {
		data.Default = nil
	}
	return s.save(data)
}

func (s *Store) SetDefault(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.load()
	if err != nil {
		return err
	}
	if _, ok := data.Locations[name]; !ok {
		return fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	data.Default = &name
	return s.save(data)
}
