// Copyright (c) 2026 ChapterVault Authors
//
// This file is part of chaptervault.
//
// chaptervault is licensed under the GNU Affero General Public License v3.0
// (AGPL-3.0). See LICENSE file or visit https://www.gnu.org/licenses/agpl-3.0.html

// Package memory provides an in-memory implementation of the storage.MapStore
// contract. It uses a map with RWMutex for thread-safe operations and holds
// its contents for the lifetime of the store instance. No internal-failure
// path exists: memory cannot fail.
package memory

import (
	"context"
	"sync"

	"github.com/chaptervault/chaptervault/pkg/result"
	"github.com/chaptervault/chaptervault/pkg/storage"
)

// Store is an in-memory implementation of storage.MapStore. It is fully
// thread-safe.
type Store[K comparable, V any] struct {
	mu   sync.RWMutex
	data map[K]V
}

// New creates a new in-memory store. The returned store is ready to use.
func New[K comparable, V any]() *Store[K, V] {
	return &Store[K, V]{
		data: make(map[K]V),
	}
}

var _ storage.MapStore[string, string] = (*Store[string, string])(nil)

// List returns a snapshot of all currently stored keys.
func (s *Store[K, V]) List(_ context.Context) result.Result[[]K] {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]K, 0, len(s.data))
	for key := range s.data {
		keys = append(keys, key)
	}
	return result.Succeed(keys)
}

// Read returns the value for key, or a not-found failure if absent.
func (s *Store[K, V]) Read(_ context.Context, key K) result.Result[V] {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, exists := s.data[key]
	if !exists {
		return result.Fail[V](result.NotFound())
	}
	return result.Succeed(value)
}

// Write creates or overwrites the entry for key.
func (s *Store[K, V]) Write(_ context.Context, key K, value V) result.Result[result.Unit] {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data[key] = value
	return result.OK()
}

// Destroy removes the entry for key, or fails with not-found if absent.
func (s *Store[K, V]) Destroy(_ context.Context, key K) result.Result[result.Unit] {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.data[key]; !exists {
		return result.Fail[result.Unit](result.NotFound())
	}
	delete(s.data, key)
	return result.OK()
}
