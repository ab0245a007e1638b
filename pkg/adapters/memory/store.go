package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/b5strbal/probability-models/pkg/domain"
)

// Store implements ports.ExperimentRepository in memory.
// Safe for concurrent use.
type Store struct {
	data map[string]*domain.Experiment
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[string]*domain.Experiment),
	}
}

// NewFromExperiments creates a store seeded with the given experiments.
func NewFromExperiments(experiments map[string]*domain.Experiment) (*Store, error) {
	s := NewStore()
	for name, exp := range experiments {
		if name == "" {
			return nil, fmt.Errorf("%w: experiment missing name", domain.ErrInvalidInput)
		}
		if exp == nil {
			return nil, fmt.Errorf("%w: experiment %q is nil", domain.ErrInvalidInput, name)
		}
		s.data[name] = exp
	}
	return s, nil
}

// Save registers the experiment. Experiments are immutable, so no copy is needed.
func (s *Store) Save(ctx context.Context, name string, exp *domain.Experiment) error {
	if exp == nil {
		return fmt.Errorf("%w: experiment %q is nil", domain.ErrInvalidInput, name)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[name] = exp
	return nil
}

// Get retrieves the experiment from memory.
func (s *Store) Get(ctx context.Context, name string) (*domain.Experiment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	exp, ok := s.data[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrExperimentNotFound, name)
	}
	return exp, nil
}

// Delete removes the experiment.
func (s *Store) Delete(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, name)
	return nil
}

// List returns registered names in sorted order.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.data))
	for name := range s.data {
		names = append(names, name)
	}
	sort.Strings(names) // Deterministic order
	return names, nil
}
