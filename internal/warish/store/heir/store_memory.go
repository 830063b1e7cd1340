package heir

import (
	"context"
	"fmt"
	"sync"

	"warishd/internal/warish/models"
	"warishd/pkg/domain"
	"warishd/pkg/platform/sentinel"
)

// Error Contract:
// All store methods follow this pattern:
// - Return ErrNotFound (wrapped) when the requested record does not exist
// - Return nil for successful operations
// - Return wrapped errors with context for infrastructure failures

// InMemory keeps heir records in memory for tests and development. Records
// are copied on the way in and out so callers never share state with the
// store.
type InMemory struct {
	mu      sync.RWMutex
	records map[domain.HeirID]*models.HeirRecord
}

// NewInMemory constructs an empty in-memory heir store.
func NewInMemory() *InMemory {
	return &InMemory{records: make(map[domain.HeirID]*models.HeirRecord)}
}

func (s *InMemory) FindByApplication(_ context.Context, applicationID domain.ApplicationID) ([]*models.HeirRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*models.HeirRecord
	for _, rec := range s.records {
		if rec.ApplicationID == applicationID {
			out = append(out, rec.Clone())
		}
	}
	return out, nil
}

func (s *InMemory) FindByID(_ context.Context, id domain.HeirID) (*models.HeirRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[id]
	if !ok {
		return nil, fmt.Errorf("heir %s: %w", id, sentinel.ErrNotFound)
	}
	return rec.Clone(), nil
}

func (s *InMemory) FindChildren(_ context.Context, parentID domain.HeirID) ([]*models.HeirRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*models.HeirRecord
	for _, rec := range s.records {
		if rec.ParentID != nil && *rec.ParentID == parentID {
			out = append(out, rec.Clone())
		}
	}
	return out, nil
}

func (s *InMemory) Insert(_ context.Context, rec *models.HeirRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.records[rec.ID]; exists {
		return fmt.Errorf("heir %s already exists: %w", rec.ID, sentinel.ErrConflict)
	}
	s.records[rec.ID] = rec.Clone()
	return nil
}

func (s *InMemory) Update(_ context.Context, rec *models.HeirRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.records[rec.ID]; !ok {
		return fmt.Errorf("heir %s: %w", rec.ID, sentinel.ErrNotFound)
	}
	s.records[rec.ID] = rec.Clone()
	return nil
}

func (s *InMemory) Remove(_ context.Context, id domain.HeirID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.records[id]; !ok {
		return fmt.Errorf("heir %s: %w", id, sentinel.ErrNotFound)
	}
	delete(s.records, id)
	return nil
}

// RunInTx executes fn directly; the in-memory store has no transaction
// boundary, which also means a failing cascade leaves its partial progress
// visible, exactly the case CascadeError exists to report.
func (s *InMemory) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
