package replay

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore keeps failure records in memory. Intended for tests and
// for runs that opt out of persistence.
type MemoryStore struct {
	mu      sync.Mutex
	records map[string]Record // keyed by property + "\x00" + seed
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string]Record)}
}

// Put inserts or replaces the record for (record.Property, record.Seed).
func (s *MemoryStore) Put(record Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now()
	}
	s.records[record.Property+"\x00"+formatSeed(record.Seed)] = record
	return nil
}

// List returns the records for one property, oldest first.
func (s *MemoryStore) List(property string) ([]Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []Record
	for _, rec := range s.records {
		if rec.Property == property {
			out = append(out, rec)
		}
	}
	sortByAge(out)
	return out, nil
}

// All returns every record, oldest first.
func (s *MemoryStore) All() ([]Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Record, 0, len(s.records))
	for _, rec := range s.records {
		out = append(out, rec)
	}
	sortByAge(out)
	return out, nil
}

// Delete removes a record by ID.
func (s *MemoryStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for key, rec := range s.records {
		if rec.ID == id {
			delete(s.records, key)
			return nil
		}
	}
	return nil
}

// Prune removes records created before the cutoff.
func (s *MemoryStore) Prune(cutoff time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for key, rec := range s.records {
		if rec.CreatedAt.Before(cutoff) {
			delete(s.records, key)
			n++
		}
	}
	return n, nil
}

// Close is a no-op for the in-memory store.
func (s *MemoryStore) Close() error {
	return nil
}

func sortByAge(records []Record) {
	sort.Slice(records, func(i, j int) bool {
		return records[i].CreatedAt.Before(records[j].CreatedAt)
	})
}
