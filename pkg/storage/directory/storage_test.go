// Copyright (c) 2026 ChapterVault Authors
//
// This file is part of chaptervault.
//
// chaptervault is licensed under the GNU Affero General Public License v3.0
// (AGPL-3.0). See LICENSE file or visit https://www.gnu.org/licenses/agpl-3.0.html

package directory

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/chaptervault/chaptervault/pkg/result"
)

// TestNew verifies root directory creation, including nested paths and
// acceptance of an already-existing directory.
func TestNew(t *testing.T) {
	t.Run("creates missing directory recursively", func(t *testing.T) {
		root := filepath.Join(t.TempDir(), "a", "b", "c")
		if _, err := New(root); err != nil {
			t.Fatalf("New() error = %v", err)
		}
		info, err := os.Stat(root)
		if err != nil || !info.IsDir() {
			t.Errorf("root directory was not created: %v", err)
		}
	})

	t.Run("accepts existing directory", func(t *testing.T) {
		root := t.TempDir()
		if _, err := New(root); err != nil {
			t.Errorf("New() on existing directory error = %v", err)
		}
	})

	t.Run("rejects empty path", func(t *testing.T) {
		if _, err := New(""); err == nil {
			t.Error("New(\"\") should fail")
		}
	})
}

// TestRoundTrip verifies write-then-read returns the value exactly.
func TestRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := mustNew(t)

	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"plain text", "greeting", "hello"},
		{"empty value", "empty", ""},
		{"json text", "doc.json", "{\n   \"id\": 1\n}"},
		{"unicode", "unicode", "héllo wörld é"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if r := store.Write(ctx, tt.key, tt.value); r.IsFailure() {
				t.Fatalf("Write() failed: %v", result.Err(r))
			}
			got := store.Read(ctx, tt.key).MustValue()
			if got != tt.value {
				t.Errorf("Read() = %q, want %q", got, tt.value)
			}
		})
	}
}

// TestReadMissing verifies not-found for a never-written key.
func TestReadMissing(t *testing.T) {
	store := mustNew(t)

	r := store.Read(context.Background(), "ghost")
	if f, failed := r.Failure(); !failed || f.Kind != result.KindNotFound {
		t.Errorf("Read(missing) failure = %v, want not-found", f)
	}
}

// TestDestroyMissing verifies that destroying an absent key fails with
// not-found and leaves the directory untouched.
func TestDestroyMissing(t *testing.T) {
	root := t.TempDir()
	store, err := New(root)
	if err != nil {
		t.Fatal(err)
	}

	r := store.Destroy(context.Background(), "missing")
	if f, failed := r.Failure(); !failed || f.Kind != result.KindNotFound {
		t.Fatalf("Destroy(missing) failure = %v, want not-found", f)
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("Destroy(missing) created or left files: %v", entries)
	}
}

// TestDestroyRemovesOnlyTargetFile verifies that destroy removes the one
// per-key file and nothing else, and that the root directory survives.
func TestDestroyRemovesOnlyTargetFile(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	store, err := New(root)
	if err != nil {
		t.Fatal(err)
	}

	store.Write(ctx, "keep", "kept")
	store.Write(ctx, "drop", "dropped")

	if r := store.Destroy(ctx, "drop"); r.IsFailure() {
		t.Fatalf("Destroy() failed: %v", result.Err(r))
	}

	if got := store.Read(ctx, "keep").MustValue(); got != "kept" {
		t.Errorf("sibling file affected by Destroy: %q", got)
	}
	if info, err := os.Stat(root); err != nil || !info.IsDir() {
		t.Fatal("root directory must survive Destroy")
	}
}

// TestDestroyRejectsUnsafeKeys verifies that keys which cannot name a
// single entry never reach the filesystem.
func TestDestroyRejectsUnsafeKeys(t *testing.T) {
	ctx := context.Background()
	store := mustNew(t)
	store.Write(ctx, "innocent", "data")

	for _, key := range []string{"", ".", "..", "a/b", "../escape"} {
		r := store.Destroy(ctx, key)
		f, failed := r.Failure()
		if !failed || f.Kind != result.KindInternal {
			t.Errorf("Destroy(%q) = %v, want internal failure", key, f)
		}
	}

	// The guarded keys must not have removed anything.
	if got := store.Read(ctx, "innocent").MustValue(); got != "data" {
		t.Error("unsafe key reached the filesystem")
	}
}

// TestList verifies that listing returns raw file names verbatim and skips
// subdirectories.
func TestList(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	store, err := New(root)
	if err != nil {
		t.Fatal(err)
	}

	store.Write(ctx, "alpha.json", "{}")
	store.Write(ctx, "beta.json", "{}")
	if err := os.Mkdir(filepath.Join(root, "subdir"), 0700); err != nil {
		t.Fatal(err)
	}

	keys := store.List(ctx).MustValue()
	want := map[string]bool{"alpha.json": true, "beta.json": true}
	if len(keys) != 2 {
		t.Fatalf("List() = %v, want 2 file entries", keys)
	}
	for _, k := range keys {
		if !want[k] {
			t.Errorf("List() returned unexpected entry %q", k)
		}
	}
}

// TestWriteOverwrites verifies truncate-and-rewrite semantics.
func TestWriteOverwrites(t *testing.T) {
	ctx := context.Background()
	store := mustNew(t)

	store.Write(ctx, "doc", "a much longer original value")
	store.Write(ctx, "doc", "short")

	if got := store.Read(ctx, "doc").MustValue(); got != "short" {
		t.Errorf("Read() after overwrite = %q, want %q", got, "short")
	}
}

func mustNew(t *testing.T) *Store {
	t.Helper()
	store, err := New(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	return store
}
