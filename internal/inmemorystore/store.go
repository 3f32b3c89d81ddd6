package inmemorystore

import (
	"sync"

	"github.com/specialistvlad/rigup/internal/state"
)

// Store is an in-memory implementation of state.Store. Completed ids live in
// a sync.Map; nothing survives the process.
type Store struct {
	done sync.Map // Key: component id, Value: struct{}

	// FailMarkDone, when set, is returned by MarkDone for matching ids.
	FailMarkDone func(id string) error
}

var _ state.Store = (*Store)(nil)

// New creates a new, empty store, optionally seeded with completed ids.
func New(completed ...string) *Store {
	s := &Store{}
	for _, id := range completed {
		s.done.Store(id, struct{}{})
	}
	return s
}

// IsDone implements state.Store.
func (s *Store) IsDone(id string) bool {
	_, ok := s.done.Load(id)
	return ok
}

// MarkDone implements state.Store.
func (s *Store) MarkDone(id string) error {
	if s.FailMarkDone != nil {
		if err := s.FailMarkDone(id); err != nil {
			return err
		}
	}
	s.done.Store(id, struct{}{})
	return nil
}

// Reset implements state.Store.
func (s *Store) Reset() error {
	s.done.Clear()
	return nil
}

// Close implements state.Store.
func (s *Store) Close() error { return nil }

// Completed returns every completed id, in no particular order.
func (s *Store) Completed() []string {
	var ids []string
	s.done.Range(func(key, _ any) bool {
		ids = append(ids, key.(string))
		return true
	})
	return ids
}
