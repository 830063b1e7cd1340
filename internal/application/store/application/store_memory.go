package application

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"warishd/internal/application/models"
	"warishd/pkg/domain"
	"warishd/pkg/platform/sentinel"
)

// InMemory keeps applications in memory for tests and development.
type InMemory struct {
	mu      sync.RWMutex
	records map[domain.ApplicationID]*models.Application
}

// NewInMemory constructs an empty in-memory application store.
func NewInMemory() *InMemory {
	return &InMemory{records: make(map[domain.ApplicationID]*models.Application)}
}

func (s *InMemory) FindByID(_ context.Context, id domain.ApplicationID) (*models.Application, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[id]
	if !ok {
		return nil, fmt.Errorf("application %s: %w", id, sentinel.ErrNotFound)
	}
	return rec.Clone(), nil
}

func (s *InMemory) List(_ context.Context) ([]*models.Application, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.Application, 0, len(s.records))
	for _, rec := range s.records {
		out = append(out, rec.Clone())
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID.String() < out[j].ID.String()
	})
	return out, nil
}

func (s *InMemory) Insert(_ context.Context, rec *models.Application) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.records[rec.ID]; exists {
		return fmt.Errorf("application %s already exists: %w", rec.ID, sentinel.ErrConflict)
	}
	s.records[rec.ID] = rec.Clone()
	return nil
}

func (s *InMemory) Update(_ context.Context, rec *models.Application) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.records[rec.ID]; !ok {
		return fmt.Errorf("application %s: %w", rec.ID, sentinel.ErrNotFound)
	}
	s.records[rec.ID] = rec.Clone()
	return nil
}
