package store

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"roster/internal/employee/models"
	"roster/pkg/platform/sentinel"
)

// InMemory keeps employees in process memory. Email uniqueness is enforced through a
// secondary index so create and update check and write under one lock.
type InMemory struct {
	mu        sync.RWMutex
	employees map[string]*models.Employee
	order     []string
	emails    map[string]string // email -> employee id
}

// NewInMemory constructs an empty in-memory employee store.
func NewInMemory() *InMemory {
	return &InMemory{
		employees: make(map[string]*models.Employee),
		emails:    make(map[string]string),
	}
}

func (s *InMemory) Create(_ context.Context, e *models.Employee) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.emails[e.Email]; taken {
		return sentinel.ErrAlreadyUsed
	}
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	stored := *e
	s.employees[e.ID] = &stored
	s.emails[e.Email] = e.ID
	s.order = append(s.order, e.ID)
	return nil
}

func (s *InMemory) List(_ context.Context) ([]*models.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*models.Employee, 0, len(s.order))
	for _, id := range s.order {
		e := *s.employees[id]
		out = append(out, &e)
	}
	return out, nil
}

func (s *InMemory) FindByID(_ context.Context, id string) (*models.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stored, ok := s.employees[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	e := *stored
	return &e, nil
}

func (s *InMemory) Update(_ context.Context, e *models.Employee) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.employees[e.ID]
	if !ok {
		return sentinel.ErrNotFound
	}
	if owner, taken := s.emails[e.Email]; taken && owner != e.ID {
		return sentinel.ErrAlreadyUsed
	}
	delete(s.emails, current.Email)
	s.emails[e.Email] = e.ID

	stored := *e
	stored.CreatedAt = current.CreatedAt
	s.employees[e.ID] = &stored
	return nil
}

func (s *InMemory) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.employees[id]
	if !ok {
		return nil
	}
	delete(s.employees, id)
	delete(s.emails, current.Email)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}
