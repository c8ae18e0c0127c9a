package store

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"roster/internal/attendance/models"
)

// InMemory keeps attendance marks keyed by (employee, day). The map key is the
// uniqueness guard: concurrent marks for the same pair serialize on the lock and the
// last one wins.
type InMemory struct {
	mu      sync.RWMutex
	records map[string]*models.Record
	order   []string
}

// NewInMemory constructs an empty in-memory attendance store.
func NewInMemory() *InMemory {
	return &InMemory{records: make(map[string]*models.Record)}
}

func (s *InMemory) Upsert(_ context.Context, r *models.Record) (*models.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := r.Key()
	if existing, ok := s.records[key]; ok {
		existing.Status = r.Status
		existing.UpdatedAt = r.UpdatedAt
		out := *existing
		return &out, nil
	}

	stored := *r
	if stored.ID == "" {
		stored.ID = uuid.NewString()
	}
	s.records[key] = &stored
	s.order = append(s.order, key)
	out := stored
	return &out, nil
}

func (s *InMemory) List(_ context.Context) ([]*models.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*models.Record, 0, len(s.order))
	for _, key := range s.order {
		r := *s.records[key]
		out = append(out, &r)
	}
	return out, nil
}

func (s *InMemory) ListByEmployee(_ context.Context, employeeID string) ([]*models.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*models.Record
	for _, key := range s.order {
		if r := s.records[key]; r.EmployeeID == employeeID {
			cp := *r
			out = append(out, &cp)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func (s *InMemory) DeleteByEmployee(_ context.Context, employeeID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.order[:0]
	for _, key := range s.order {
		if s.records[key].EmployeeID == employeeID {
			delete(s.records, key)
			continue
		}
		kept = append(kept, key)
	}
	s.order = kept
	return nil
}
