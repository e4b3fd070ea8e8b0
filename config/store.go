package config

import (
	"fmt"
	"sync"

	"github.com/ayush-zodape/UIDAI-Data-Hackathon-2026/models"
)

// NotLoadedError reports a read of a table role that was never uploaded.
type NotLoadedError struct {
	Role string
}

func (e *NotLoadedError) Error() string {
	return fmt.Sprintf("%s dataset not loaded", e.Role)
}

// DataStore holds the most-recently-uploaded tables, one slot per role.
// Set replaces the prior table unconditionally: last writer wins, with no
// versioned history and no merge. The mutex only keeps the map safe to
// read while an upload lands; concurrent uploads racing each other is a
// known limitation, not a guarantee.
type DataStore struct {
	mu      sync.RWMutex
	tables  map[string]*models.Table
	version uint64
}

func NewDataStore() *DataStore {
	return &DataStore{tables: make(map[string]*models.Table)}
}

// Store is the process-wide dataset store, read by every analysis request.
var Store = NewDataStore()

// Set commits a table for the given role, replacing any prior one, and bumps
// the store version used for cache keys.
func (s *DataStore) Set(role string, table *models.Table) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tables[role] = table
	s.version++
}

// Get returns the current table for a role or NotLoadedError.
func (s *DataStore) Get(role string) (*models.Table, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	table, ok := s.tables[role]
	if !ok {
		return nil, &NotLoadedError{Role: role}
	}
	return table, nil
}

// Loaded reports whether a role has been uploaded.
func (s *DataStore) Loaded(role string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.tables[role]
	return ok
}

// ReadyForAnalysis reports whether both mandatory tables are present.
func (s *DataStore) ReadyForAnalysis() bool {
	return s.Loaded(models.RoleEnrollment) && s.Loaded(models.RoleBiometric)
}

// Version identifies the current dataset generation for cache keying.
func (s *DataStore) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// Reset clears every slot. Used by tests.
func (s *DataStore) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tables = make(map[string]*models.Table)
	s.version++
}
