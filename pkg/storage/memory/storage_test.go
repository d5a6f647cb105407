// Copyright (c) 2026 ChapterVault Authors
//
// This file is part of chaptervault.
//
// chaptervault is licensed under the GNU Affero General Public License v3.0
// (AGPL-3.0). See LICENSE file or visit https://www.gnu.org/licenses/agpl-3.0.html

package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/chaptervault/chaptervault/pkg/result"
)

// TestNew verifies that New() creates an empty, usable store.
func TestNew(t *testing.T) {
	store := New[string, string]()
	if store == nil {
		t.Fatal("New() returned nil")
	}

	keys := store.List(context.Background()).MustValue()
	if len(keys) != 0 {
		t.Errorf("new store should be empty, got %d keys", len(keys))
	}
}

// TestWriteListRead covers the fresh-store scenario: one write, then list
// and read observe exactly that entry.
func TestWriteListRead(t *testing.T) {
	ctx := context.Background()
	store := New[string, string]()

	if r := store.Write(ctx, "a", "hello"); r.IsFailure() {
		t.Fatalf("Write() failed: %v", result.Err(r))
	}

	keys := store.List(ctx).MustValue()
	if len(keys) != 1 || keys[0] != "a" {
		t.Errorf("List() = %v, want [a]", keys)
	}

	got := store.Read(ctx, "a").MustValue()
	if got != "hello" {
		t.Errorf("Read() = %q, want %q", got, "hello")
	}
}

// TestReadMissing verifies that reading a never-written key yields not-found.
func TestReadMissing(t *testing.T) {
	store := New[string, string]()

	r := store.Read(context.Background(), "ghost")
	f, failed := r.Failure()
	if !failed || f.Kind != result.KindNotFound {
		t.Errorf("Read(missing) = %v, want not-found", f)
	}
}

// TestWriteOverwrites verifies upsert semantics.
func TestWriteOverwrites(t *testing.T) {
	ctx := context.Background()
	store := New[string, int]()

	store.Write(ctx, "counter", 1)
	store.Write(ctx, "counter", 2)

	if got := store.Read(ctx, "counter").MustValue(); got != 2 {
		t.Errorf("Read() after overwrite = %d, want 2", got)
	}
	if keys := store.List(ctx).MustValue(); len(keys) != 1 {
		t.Errorf("List() after overwrite = %v, want one key", keys)
	}
}

// TestDestroy verifies removal and the not-found failure on absent keys.
func TestDestroy(t *testing.T) {
	ctx := context.Background()
	store := New[string, string]()

	store.Write(ctx, "doomed", "value")
	if r := store.Destroy(ctx, "doomed"); r.IsFailure() {
		t.Fatalf("Destroy() failed: %v", result.Err(r))
	}

	r := store.Read(ctx, "doomed")
	if f, failed := r.Failure(); !failed || f.Kind != result.KindNotFound {
		t.Error("Read() after Destroy() should be not-found")
	}

	d := store.Destroy(ctx, "doomed")
	if f, failed := d.Failure(); !failed || f.Kind != result.KindNotFound {
		t.Error("Destroy() on absent key should be not-found")
	}
}

// TestListSnapshot verifies that List returns a snapshot unaffected by
// later writes.
func TestListSnapshot(t *testing.T) {
	ctx := context.Background()
	store := New[string, string]()

	store.Write(ctx, "one", "1")
	keys := store.List(ctx).MustValue()
	store.Write(ctx, "two", "2")

	if len(keys) != 1 {
		t.Errorf("snapshot mutated by later write: %v", keys)
	}
}

// TestConcurrentAccess exercises the store from many goroutines. Run with
// -race to catch unsynchronized access.
func TestConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	store := New[string, int]()

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			key := fmt.Sprintf("key-%d", n)
			store.Write(ctx, key, n)
			store.Read(ctx, key)
			store.List(ctx)
			store.Destroy(ctx, key)
		}(i)
	}
	wg.Wait()

	if keys := store.List(ctx).MustValue(); len(keys) != 0 {
		t.Errorf("store should be empty after paired write/destroy, got %v", keys)
	}
}

// TestStructValues verifies the store works with non-string value types.
func TestStructValues(t *testing.T) {
	type doc struct {
		ID    int
		Title string
	}
	ctx := context.Background()
	store := New[int, doc]()

	store.Write(ctx, 7, doc{ID: 7, Title: "seven"})
	got := store.Read(ctx, 7).MustValue()
	if got.Title != "seven" {
		t.Errorf("Read() = %+v", got)
	}
}
