// Package location resolves free-text city names to provider terminal and
// station ids, and measures distances between points.
package location

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync/atomic"

	"gopkg.in/yaml.v3"

	"github.com/randytsao24/tripmate/internal/logging"
	"github.com/randytsao24/tripmate/internal/metrics"
	"github.com/randytsao24/tripmate/internal/models"
)

// Directory is an immutable lookup from canonical city key to provider
// locations. Build a new one to change contents.
type Directory struct {
	byCity  map[string][]models.LocationCandidate
	entries []models.LocationCandidate
}

// NewDirectory groups candidates by canonical city, keeping insertion order.
// Candidates without a city are keyed by Normalize(DisplayName).
func NewDirectory(candidates []models.LocationCandidate) *Directory {
	d := &Directory{
		byCity:  make(map[string][]models.LocationCandidate),
		entries: make([]models.LocationCandidate, 0, len(candidates)),
	}
	for _, c := range candidates {
		if c.CanonicalCity == "" {
			c.CanonicalCity = Normalize(c.DisplayName)
		}
		d.byCity[c.CanonicalCity] = append(d.byCity[c.CanonicalCity], c)
		d.entries = append(d.entries, c)
	}
	return d
}

// Lookup returns ids filed under key, then ids of any entry whose display name
// contains key, de-duplicated in first-seen order.
func (d *Directory) Lookup(key string) []string {
	if d == nil {
		return nil
	}

	seen := make(map[string]struct{})
	var ids []string
	add := func(id string) {
		if _, ok := seen[id]; ok {
			return
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}

	for _, c := range d.byCity[key] {
		add(c.ProviderID)
	}
	if key == "" {
		return ids
	}
	for _, c := range d.entries {
		if strings.Contains(c.DisplayName, key) {
			add(c.ProviderID)
		}
	}
	return ids
}

// Len returns the number of candidates
func (d *Directory) Len() int {
	if d == nil {
		return 0
	}
	return len(d.entries)
}

// Cities returns the canonical keys in sorted order
func (d *Directory) Cities() []string {
	if d == nil {
		return nil
	}
	cities := make([]string, 0, len(d.byCity))
	for city := range d.byCity {
		cities = append(cities, city)
	}
	sort.Strings(cities)
	return cities
}

// Store holds the live directory. Readers never block; Swap replaces the
// whole value.
type Store struct {
	name string
	cur  atomic.Pointer[Directory]
}

// NewStore creates a store serving d (nil is treated as empty)
func NewStore(name string, d *Directory) *Store {
	s := &Store{name: name}
	s.Swap(d)
	return s
}

// Name identifies the store in logs
func (s *Store) Name() string {
	return s.name
}

// Load returns the current directory
func (s *Store) Load() *Directory {
	return s.cur.Load()
}

// Swap installs d as the live directory
func (s *Store) Swap(d *Directory) {
	if d == nil {
		d = NewDirectory(nil)
	}
	s.cur.Store(d)
	metrics.DirectoryEntries.WithLabelValues(s.name).Set(float64(d.Len()))
}

// Cities lists the canonical cities of the live directory
func (s *Store) Cities() []string {
	return s.Load().Cities()
}

// Resolve normalizes text and looks it up in the live directory
func (s *Store) Resolve(text string) []string {
	return s.Load().Lookup(Normalize(text))
}

// DirectoryProvider supplies the full candidate list for one mode
type DirectoryProvider interface {
	FetchAll(ctx context.Context) ([]models.LocationCandidate, error)
}

// Build fetches candidates once. A failed fetch is logged and yields an empty
// directory so the process keeps running.
func Build(ctx context.Context, name string, p DirectoryProvider) *Directory {
	candidates, err := p.FetchAll(ctx)
	if err != nil {
		logging.Ctx(ctx).Error().Err(err).Str("directory", name).
			Msg("directory fetch failed, continuing with empty directory")
		metrics.DirectoryRefreshes.WithLabelValues(name, "error").Inc()
		return NewDirectory(nil)
	}

	d := NewDirectory(candidates)
	metrics.DirectoryRefreshes.WithLabelValues(name, "ok").Inc()
	logging.Info().Str("directory", name).Int("entries", d.Len()).
		Int("cities", len(d.byCity)).Msg("directory loaded")
	return d
}

// StaticProvider serves a fixed candidate list
type StaticProvider []models.LocationCandidate

// FetchAll returns a copy of the list
func (p StaticProvider) FetchAll(context.Context) ([]models.LocationCandidate, error) {
	out := make([]models.LocationCandidate, len(p))
	copy(out, p)
	return out, nil
}

// seedFile is the YAML layout of an offline directory seed:
//
//	bus:
//	  - {id: NAEK010, name: 서울경부}
//	rail:
//	  - {id: NAT010000, name: 서울, city: 서울}
type seedFile map[models.Mode][]models.LocationCandidate

// FileProvider reads one mode's candidates from a YAML seed file
type FileProvider struct {
	Path string
	Mode models.Mode
}

// FetchAll parses the file on every call so edits are picked up by refreshes
func (p FileProvider) FetchAll(context.Context) ([]models.LocationCandidate, error) {
	data, err := os.ReadFile(p.Path)
	if err != nil {
		return nil, fmt.Errorf("reading directory seed: %w", err)
	}

	var seed seedFile
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("parsing directory seed %s: %w", p.Path, err)
	}
	return seed[p.Mode], nil
}
