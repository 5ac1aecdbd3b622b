// Package memstore is an in-memory key/value Storage. It backs ephemeral
// runs and tests, and can be told to fail to exercise error paths.
package memstore

import (
	"context"
	"sync"
)

type Store struct {
	mu       sync.RWMutex
	items    map[string]string
	readErr  error
	writeErr error
	setCalls int
}

func New() *Store {
	return &Store{
		items: make(map[string]string),
	}
}

// FailReads makes every GetItem return err. Pass nil to recover.
func (s *Store) FailReads(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.readErr = err
}

// FailWrites makes every SetItem and RemoveItem return err. Pass nil to recover.
func (s *Store) FailWrites(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.writeErr = err
}

func (s *Store) GetItem(_ context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.readErr != nil {
		return "", false, s.readErr
	}
	v, ok := s.items[key]
	return v, ok, nil
}

func (s *Store) SetItem(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.writeErr != nil {
		return s.writeErr
	}
	s.items[key] = value
	s.setCalls++
	return nil
}

func (s *Store) RemoveItem(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.writeErr != nil {
		return s.writeErr
	}
	delete(s.items, key)
	return nil
}

// Put seeds a value directly, bypassing failure injection.
func (s *Store) Put(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[key] = value
}

// SetCalls reports how many successful SetItem calls were made.
func (s *Store) SetCalls() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.setCalls
}

// Len reports the number of stored keys.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}
