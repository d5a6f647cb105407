// Copyright (c) 2026 ChapterVault Authors
//
// This file is part of chaptervault.
//
// chaptervault is licensed under the GNU Affero General Public License v3.0
// (AGPL-3.0). See LICENSE file or visit https://www.gnu.org/licenses/agpl-3.0.html

// Package directory provides a filesystem-backed implementation of the
// storage.MapStore contract: one regular file per key inside a root
// directory, created on first use. Keys are used verbatim as file names;
// translating them back to domain keys is the job of a wrapping combinator,
// not of this backend.
package directory

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/chaptervault/chaptervault/pkg/result"
	"github.com/chaptervault/chaptervault/pkg/storage"
)

const (
	dirPerms  = 0700
	filePerms = 0600
)

// Store is a filesystem-backed implementation of storage.MapStore over
// string keys and UTF-8 text values. It is thread-safe within one process;
// concurrent external modification of the files is undefined behavior.
type Store struct {
	mu      sync.RWMutex
	rootDir string
}

// New creates a Store rooted at rootDir, creating the directory
// recursively if it does not exist. An already-existing directory is
// accepted.
func New(rootDir string) (*Store, error) {
	if rootDir == "" {
		return nil, fmt.Errorf("directory storage: root directory cannot be empty")
	}
	if err := os.MkdirAll(rootDir, dirPerms); err != nil {
		return nil, fmt.Errorf("directory storage: failed to create root directory: %w", err)
	}
	return &Store{rootDir: rootDir}, nil
}

var _ storage.MapStore[string, string] = (*Store)(nil)

// List returns the directory's entry names verbatim. These are raw file
// names, not yet un-transformed keys.
func (s *Store) List(_ context.Context) result.Result[[]string] {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, err := os.ReadDir(s.rootDir)
	if err != nil {
		return result.Fail[[]string](result.Internalf("directory storage: failed to list %q: %w", s.rootDir, err))
	}

	keys := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.Type().IsRegular() {
			keys = append(keys, entry.Name())
		}
	}
	return result.Succeed(keys)
}

// Read returns the file content for key as UTF-8 text. An absent file maps
// to not-found; any other I/O error is internal.
func (s *Store) Read(_ context.Context, key string) result.Result[string] {
	s.mu.RLock()
	defer s.mu.RUnlock()

	path, err := s.keyPath(key)
	if err != nil {
		return result.Fail[string](result.Internal(err))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return result.Fail[string](result.NotFound())
		}
		return result.Fail[string](result.Internalf("directory storage: failed to read key %q: %w", key, err))
	}
	return result.Succeed(string(data))
}

// Write creates or truncates-and-rewrites the file for key.
func (s *Store) Write(_ context.Context, key, value string) result.Result[result.Unit] {
	s.mu.Lock()
	defer s.mu.Unlock()

	path, err := s.keyPath(key)
	if err != nil {
		return result.Fail[result.Unit](result.Internal(err))
	}

	if err := os.WriteFile(path, []byte(value), filePerms); err != nil {
		return result.Fail[result.Unit](result.Internalf("directory storage: failed to write key %q: %w", key, err))
	}
	return result.OK()
}

// Destroy removes exactly the single file belonging to key. The target is
// always the per-key file; a key that cannot resolve to one is rejected
// before anything touches the filesystem, so the root directory can never
// be the removal target.
func (s *Store) Destroy(_ context.Context, key string) result.Result[result.Unit] {
	s.mu.Lock()
	defer s.mu.Unlock()

	path, err := s.keyPath(key)
	if err != nil {
		return result.Fail[result.Unit](result.Internal(err))
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return result.Fail[result.Unit](result.NotFound())
		}
		return result.Fail[result.Unit](result.Internalf("directory storage: failed to stat key %q: %w", key, err))
	}
	if info.IsDir() {
		return result.Fail[result.Unit](result.Internalf("directory storage: key %q resolves to a directory", key))
	}

	if err := os.Remove(path); err != nil {
		return result.Fail[result.Unit](result.Internalf("directory storage: failed to delete key %q: %w", key, err))
	}
	return result.OK()
}

// keyPath resolves key to its per-key file path after validation. A key
// must name a single directory entry: no separators, no traversal, not
// empty. This guard is what keeps Destroy from ever targeting the root
// directory or escaping it.
func (s *Store) keyPath(key string) (string, error) {
	if err := validateKey(key); err != nil {
		return "", fmt.Errorf("directory storage: invalid key %q: %w", key, err)
	}
	return filepath.Join(s.rootDir, key), nil
}

func validateKey(key string) error {
	if key == "" {
		return fmt.Errorf("key cannot be empty")
	}
	if strings.Contains(key, "\x00") {
		return fmt.Errorf("key contains null byte")
	}
	if strings.ContainsRune(key, filepath.Separator) || strings.ContainsRune(key, '/') {
		return fmt.Errorf("key contains path separator")
	}
	if key == "." || key == ".." {
		return fmt.Errorf("key contains path traversal attempt")
	}
	return nil
}
