// Package memory provides an in-process kv.Store used by tests and as the
// zero-configuration default backend. Contents vanish on exit.
package memory

import (
	"context"
	"sync"
)

type Store struct {
	mu    sync.Mutex
	slots map[string]string
}

func New() *Store {
	return &Store{slots: make(map[string]string)}
}

func (s *Store) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.slots[key]
	return v, ok, nil
}

func (s *Store) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.slots[key] = value
	return nil
}

func (s *Store) Close() error {
	return nil
}
