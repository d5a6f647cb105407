// Copyright (c) 2026 ChapterVault Authors
//
// This file is part of chaptervault.
//
// chaptervault is licensed under the GNU Affero General Public License v3.0
// (AGPL-3.0). See LICENSE file or visit https://www.gnu.org/licenses/agpl-3.0.html

package s3

import (
	"context"
	"errors"
	"sort"
	"strings"
	"testing"

	"github.com/chaptervault/chaptervault/pkg/result"
	"github.com/chaptervault/chaptervault/pkg/storage/s3/s3test"
)

func newTestStore() (*Store, *s3test.Client) {
	client := s3test.NewClient()
	return NewWithClient(client, "chapters", ""), client
}

func TestWriteRead(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore()

	if r := store.Write(ctx, "a", "hello"); r.IsFailure() {
		t.Fatalf("Write() failed: %v", result.Err(r))
	}
	if got := store.Read(ctx, "a").MustValue(); got != "hello" {
		t.Errorf("Read() = %q, want %q", got, "hello")
	}
}

func TestReadMissing(t *testing.T) {
	store, _ := newTestStore()

	r := store.Read(context.Background(), "ghost")
	if f, failed := r.Failure(); !failed || f.Kind != result.KindNotFound {
		t.Errorf("Read(missing) = %v, want not-found", f)
	}
}

func TestReadIOError(t *testing.T) {
	store, client := newTestStore()
	client.GetErr = errors.New("connection reset")

	r := store.Read(context.Background(), "a")
	f, failed := r.Failure()
	if !failed || f.Kind != result.KindInternal {
		t.Errorf("Read() under I/O error = %v, want internal", f)
	}
	if !strings.Contains(f.Err.Error(), "connection reset") {
		t.Errorf("internal failure should carry the cause, got %v", f.Err)
	}
}

func TestDestroy(t *testing.T) {
	ctx := context.Background()
	store, client := newTestStore()

	store.Write(ctx, "doomed", "x")
	if r := store.Destroy(ctx, "doomed"); r.IsFailure() {
		t.Fatalf("Destroy() failed: %v", result.Err(r))
	}
	if _, ok := client.Object("doomed"); ok {
		t.Error("object still present after Destroy")
	}
}

// TestDestroyMissing verifies the head-before-delete check: S3 deletes are
// idempotent, so absence must be detected explicitly.
func TestDestroyMissing(t *testing.T) {
	store, _ := newTestStore()

	r := store.Destroy(context.Background(), "missing")
	if f, failed := r.Failure(); !failed || f.Kind != result.KindNotFound {
		t.Errorf("Destroy(missing) = %v, want not-found", f)
	}
}

func TestListPaginates(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore()

	want := []string{"a", "b", "c", "d", "e"}
	for _, k := range want {
		store.Write(ctx, k, "v")
	}

	keys := store.List(ctx).MustValue()
	sort.Strings(keys)
	if len(keys) != len(want) {
		t.Fatalf("List() = %v, want %v", keys, want)
	}
	for i, k := range want {
		if keys[i] != k {
			t.Errorf("List()[%d] = %q, want %q", i, keys[i], k)
		}
	}
}

// TestListScopedToPrefix verifies that a prefixed store lists only its
// own objects when the bucket is shared, and returns them with the
// prefix intact.
func TestListScopedToPrefix(t *testing.T) {
	ctx := context.Background()
	client := s3test.NewClient()
	store := NewWithClient(client, "content", "chapters/")

	client.SetObject("roles/a.json", "{}")
	client.SetObject("permissions/alice:ch1.json", "{}")
	if r := store.Write(ctx, "chapters/intro.json", "{}"); r.IsFailure() {
		t.Fatalf("Write() failed: %v", result.Err(r))
	}

	keys := store.List(ctx).MustValue()
	if len(keys) != 1 || keys[0] != "chapters/intro.json" {
		t.Errorf("List() = %v, want [chapters/intro.json]", keys)
	}
}

func TestListEmpty(t *testing.T) {
	store, _ := newTestStore()

	keys := store.List(context.Background()).MustValue()
	if len(keys) != 0 {
		t.Errorf("List() on empty bucket = %v", keys)
	}
}

func TestListIOError(t *testing.T) {
	store, client := newTestStore()
	client.ListErr = errors.New("throttled")

	r := store.List(context.Background())
	if f, failed := r.Failure(); !failed || f.Kind != result.KindInternal {
		t.Errorf("List() under I/O error = %v, want internal", f)
	}
}

func TestNewValidatesConfig(t *testing.T) {
	if _, err := New(context.Background(), nil, ""); err == nil {
		t.Error("New(nil config) should fail")
	}
}
