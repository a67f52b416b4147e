package dataset

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/matzehuels/barchart/pkg/errors"
)

// Store persists datasets by name.
type Store interface {
	// Get returns the named dataset or an error with code DATASET_NOT_FOUND.
	Get(ctx context.Context, name string) (*Dataset, error)
	// Put creates or replaces a dataset and stamps UpdatedAt.
	Put(ctx context.Context, ds *Dataset) error
	// Delete removes a dataset. Deleting a missing dataset is an error.
	Delete(ctx context.Context, name string) error
	// List returns all dataset names in sorted order.
	List(ctx context.Context) ([]string, error)
	// Close releases backend resources.
	Close(ctx context.Context) error
}

// MemoryStore is an in-process Store. Safe for concurrent use.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string]*Dataset
	now  func() time.Time
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: map[string]*Dataset{}, now: time.Now}
}

func (s *MemoryStore) Get(_ context.Context, name string) (*Dataset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ds, ok := s.data[name]
	if !ok {
		return nil, errors.New(errors.ErrCodeDatasetNotFound, "dataset %q not found", name)
	}
	return ds.Clone(), nil
}

func (s *MemoryStore) Put(_ context.Context, ds *Dataset) error {
	if err := errors.ValidateDatasetName(ds.Name); err != nil {
		return err
	}
	c := ds.Clone()
	c.UpdatedAt = s.now().UTC()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[c.Name] = c
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.data[name]; !ok {
		return errors.New(errors.ErrCodeDatasetNotFound, "dataset %q not found", name)
	}
	delete(s.data, name)
	return nil
}

func (s *MemoryStore) List(context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.data))
	for n := range s.data {
		names = append(names, n)
	}
	sort.Strings(names)
	return names, nil
}

func (s *MemoryStore) Close(context.Context) error { return nil }

var _ Store = (*MemoryStore)(nil)
