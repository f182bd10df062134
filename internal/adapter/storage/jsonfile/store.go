// Package jsonfile keeps the conversion history in a single JSON file. It is
// the history backend for deployments that do not want a database file.
package jsonfile

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/bnema/mediaconv/internal/domain"
	"github.com/bnema/mediaconv/internal/port"
)

const (
	DefaultListLimit = 50

	// DefaultMaxRecords bounds the file; the oldest records are dropped first.
	DefaultMaxRecords = 1000
)

type Store struct {
	mu         sync.RWMutex
	path       string
	maxRecords int
	records    map[string]*domain.ConversionRecord
}

func NewStore(dataDir string, maxRecords int) (*Store, error) {
	if maxRecords <= 0 {
		maxRecords = DefaultMaxRecords
	}
	store := &Store{
		path:       filepath.Join(dataDir, "conversions.json"),
		maxRecords: maxRecords,
		records:    make(map[string]*domain.ConversionRecord),
	}

	if err := store.load(); err != nil {
		if !os.IsNotExist(err) {
			return nil, err
		}
	}

	return store, nil
}

func (s *Store) load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		return err
	}

	if len(data) == 0 {
		return nil
	}

	var list []*domain.ConversionRecord
	if err := json.Unmarshal(data, &list); err != nil {
		return fmt.Errorf("decode %s: %w", s.path, err)
	}

	for _, r := range list {
		s.records[r.ID] = r
	}

	return nil
}

// sortedLocked returns the records newest first. Callers hold s.mu.
func (s *Store) sortedLocked() []*domain.ConversionRecord {
	list := make([]*domain.ConversionRecord, 0, len(s.records))
	for _, r := range s.records {
		list = append(list, r)
	}
	sort.Slice(list, func(i, j int) bool {
		if !list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].CreatedAt.After(list[j].CreatedAt)
		}
		return list[i].ID < list[j].ID
	})
	return list
}

// persistLocked writes the file through a rename so readers never see a
// partial document. Records beyond maxRecords leave the map only once the
// file is written. Callers hold s.mu.
func (s *Store) persistLocked() error {
	list := s.sortedLocked()
	keep := min(len(list), s.maxRecords)

	data, err := json.MarshalIndent(list[:keep], "", "  ")
	if err != nil {
		return err
	}

	tmpPath := s.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0600); err != nil {
		return err
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		return err
	}

	for _, r := range list[keep:] {
		delete(s.records, r.ID)
	}
	return nil
}

func (s *Store) Save(_ context.Context, r *domain.ConversionRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.records[r.ID]; exists {
		return fmt.Errorf("conversion %s already recorded", r.ID)
	}
	stored := *r
	s.records[r.ID] = &stored
	if err := s.persistLocked(); err != nil {
		delete(s.records, r.ID)
		return fmt.Errorf("persist conversion %s: %w", r.ID, err)
	}
	return nil
}

func (s *Store) Get(_ context.Context, id string) (*domain.ConversionRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.records[id]
	if !ok {
		return nil, domain.ErrNotFound
	}

	out := *r
	return &out, nil
}

func (s *Store) ListRecent(_ context.Context, limit int) ([]*domain.ConversionRecord, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	list := s.sortedLocked()
	list = list[:min(len(list), limit)]
	out := make([]*domain.ConversionRecord, len(list))
	for i, r := range list {
		c := *r
		out[i] = &c
	}
	return out, nil
}

var _ port.HistoryStore = (*Store)(nil)
