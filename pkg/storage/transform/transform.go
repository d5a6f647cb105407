// Copyright (c) 2026 ChapterVault Authors
//
// This file is part of chaptervault.
//
// chaptervault is licensed under the GNU Affero General Public License v3.0
// (AGPL-3.0). See LICENSE file or visit https://www.gnu.org/licenses/agpl-3.0.html

// Package transform provides key-rewriting combinators over the
// storage.MapStore contract. A combinator wraps an inner store, applying a
// forward transform to every key on the way in and a backward transform to
// every listed key on the way out, passing values through untouched.
// Combinators nest; composition order is significant on both the write
// path and the list-unwrap path.
package transform

import (
	"context"
	"strings"

	"github.com/chaptervault/chaptervault/pkg/result"
	"github.com/chaptervault/chaptervault/pkg/storage"
)

// keyTransform adapts a MapStore over inner keys IK into one over outer
// keys K via a pair of pure functions.
type keyTransform[K, IK comparable, V any] struct {
	forward  func(K) IK
	backward func(IK) (K, bool)
	inner    storage.MapStore[IK, V]
}

// Key wraps inner in a bidirectional key transform. backward must invert
// forward on every key written through this wrapper: backward(forward(k))
// must yield (k, true). Inner keys that backward rejects are treated as
// foreign — written outside this wrapping — and are omitted from listings
// rather than surfaced as garbage.
func Key[K, IK comparable, V any](
	forward func(K) IK,
	backward func(IK) (K, bool),
	inner storage.MapStore[IK, V],
) storage.MapStore[K, V] {
	return &keyTransform[K, IK, V]{
		forward:  forward,
		backward: backward,
		inner:    inner,
	}
}

// List unwraps every inner key that backward accepts, skipping foreign
// keys, so the result is exactly the set of keys written through this
// wrapping.
func (t *keyTransform[K, IK, V]) List(ctx context.Context) result.Result[[]K] {
	return result.Map(t.inner.List(ctx), func(innerKeys []IK) []K {
		keys := make([]K, 0, len(innerKeys))
		for _, ik := range innerKeys {
			if k, ok := t.backward(ik); ok {
				keys = append(keys, k)
			}
		}
		return keys
	})
}

func (t *keyTransform[K, IK, V]) Read(ctx context.Context, key K) result.Result[V] {
	return t.inner.Read(ctx, t.forward(key))
}

func (t *keyTransform[K, IK, V]) Write(ctx context.Context, key K, value V) result.Result[result.Unit] {
	return t.inner.Write(ctx, t.forward(key), value)
}

func (t *keyTransform[K, IK, V]) Destroy(ctx context.Context, key K) result.Result[result.Unit] {
	return t.inner.Destroy(ctx, t.forward(key))
}

// WithNamespace prefixes every key with "<namespace>/" before it reaches
// the inner store and strips exactly that prefix from listed keys. Inner
// keys carrying a different prefix belong to another namespace and are
// filtered out of listings. It partitions one physical backend among
// multiple logical stores.
func WithNamespace[V any](namespace string, inner storage.MapStore[string, V]) storage.MapStore[string, V] {
	prefix := namespace + "/"
	return Key(
		func(key string) string { return prefix + key },
		func(innerKey string) (string, bool) { return strings.CutPrefix(innerKey, prefix) },
		inner,
	)
}

// WithFileExtension appends ".<ext>" to every key before it reaches the
// inner store and strips exactly that suffix from listed keys. Inner keys
// without the suffix (a stray file of another type, say) are filtered out
// of listings. This is fixed-suffix removal, not an extension parser.
func WithFileExtension[V any](ext string, inner storage.MapStore[string, V]) storage.MapStore[string, V] {
	suffix := "." + ext
	return Key(
		func(key string) string { return key + suffix },
		func(innerKey string) (string, bool) { return strings.CutSuffix(innerKey, suffix) },
		inner,
	)
}
