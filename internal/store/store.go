// Package store owns the catalog document and its durable mirror — a single
// JSON file that is fully read before every operation and atomically
// rewritten after every mutation.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/Youseb010/mada-server/internal/model"
	"github.com/Youseb010/mada-server/pkg/ident"
)

// DefaultChannelName is the name of the channel seeded on first startup.
const DefaultChannelName = "Madaa"

// Store holds the sole in-memory copy of the catalog. All access goes
// through View or Update, which serialize operations behind one mutex so no
// two operations can interleave their read-modify-write sequence.
type Store struct {
	// OnFlush, when set, observes the duration of every successful flush.
	// Assign before serving traffic.
	OnFlush func(time.Duration)

	mu      sync.Mutex
	path    string
	catalog model.Catalog
}

// Open loads the durable file at path. A missing file initializes an empty
// catalog; a present but unparsable file is an error — refusing to start
// beats silently discarding the catalog.
func Open(path string) (*Store, error) {
	s := &Store{path: path}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

// Path returns the location of the durable catalog file.
func (s *Store) Path() string {
	return s.path
}

// SeedIfEmpty creates the default channel if no channel has ever been
// persisted. Idempotent: later startups find the existing channel and leave
// the catalog untouched.
func (s *Store) SeedIfEmpty() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.load(); err != nil {
		return err
	}
	if len(s.catalog.Channels) > 0 {
		return nil
	}
	s.catalog.Channels = append(s.catalog.Channels, model.Channel{
		ID:   ident.New(),
		Name: DefaultChannelName,
	})
	return s.flush()
}

// View runs fn against a freshly loaded catalog under the exclusive lock.
// Reads take the same lock as writes: a reload must never race a concurrent
// flush.
func (s *Store) View(fn func(c *model.Catalog) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.load(); err != nil {
		return err
	}
	return fn(&s.catalog)
}

// Update runs fn against a freshly loaded catalog and flushes the result
// before returning. If fn or the flush fails the previous durable snapshot
// stays authoritative — the next operation reloads it from disk.
func (s *Store) Update(fn func(c *model.Catalog) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.load(); err != nil {
		return err
	}
	if err := fn(&s.catalog); err != nil {
		return err
	}
	return s.flush()
}

// Counts reports the catalog sizes as of the last completed operation,
// without touching disk. Used by metrics gauges.
func (s *Store) Counts() (channels, videos int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.catalog.Channels), len(s.catalog.Videos)
}

// Ping verifies the durable file is readable and parsable.
func (s *Store) Ping() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

func (s *Store) load() error {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		s.catalog = model.Catalog{Channels: []model.Channel{}, Videos: []model.Video{}}
		return nil
	}
	if err != nil {
		return fmt.Errorf("read catalog file %s: %w", s.path, err)
	}

	var cat model.Catalog
	if err := json.Unmarshal(data, &cat); err != nil {
		return fmt.Errorf("parse catalog file %s: %w", s.path, err)
	}
	if cat.Channels == nil {
		cat.Channels = []model.Channel{}
	}
	if cat.Videos == nil {
		cat.Videos = []model.Video{}
	}
	s.catalog = cat
	return nil
}

// flush atomically replaces the durable file: the catalog is written to a
// temp file in the same directory and renamed over the target, so a failed
// write never corrupts the previous snapshot.
func (s *Store) flush() error {
	start := time.Now()

	data, err := json.MarshalIndent(&s.catalog, "", "  ")
	if err != nil {
		return fmt.Errorf("encode catalog: %w", err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".catalog-*.json")
	if err != nil {
		return fmt.Errorf("create temp catalog file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write temp catalog file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("sync temp catalog file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp catalog file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace catalog file %s: %w", s.path, err)
	}

	if s.OnFlush != nil {
		s.OnFlush(time.Since(start))
	}
	return nil
}
