// Copyright (c) 2026 ChapterVault Authors
//
// This file is part of chaptervault.
//
// chaptervault is licensed under the GNU Affero General Public License v3.0
// (AGPL-3.0). See LICENSE file or visit https://www.gnu.org/licenses/agpl-3.0.html

package jsonmodel

import (
	"context"

	"github.com/chaptervault/chaptervault/pkg/result"
	"github.com/chaptervault/chaptervault/pkg/storage"
)

// Store wraps an inner MapStore[string,string] and exposes a typed
// MapStore[K,V] for model-validated key and value types. Failures from
// the inner store pass through unchanged; cast failures produced by the
// models are relabeled internal before they cross this boundary, since by
// then they are not caller-recoverable.
type Store[K comparable, V any] struct {
	inner  storage.MapStore[string, string]
	keys   KeyModel[K]
	values Model[V]
}

// Wrap builds the typed store from an inner string store and the key and
// value models.
func Wrap[K comparable, V any](
	inner storage.MapStore[string, string],
	keys KeyModel[K],
	values Model[V],
) *Store[K, V] {
	return &Store[K, V]{inner: inner, keys: keys, values: values}
}

var _ storage.MapStore[string, struct{}] = (*Store[string, struct{}])(nil)

// List reads the inner keys and decodes each through the key model. The
// first key that fails validation aborts the whole call with an internal
// failure wrapping the validation message: a single bad key poisons the
// entire listing.
func (s *Store[K, V]) List(ctx context.Context) result.Result[[]K] {
	return result.Then(s.inner.List(ctx), func(rawKeys []string) result.Result[[]K] {
		keys := make([]K, 0, len(rawKeys))
		for _, raw := range rawKeys {
			r := s.keys.DecodeKey(raw)
			if f, failed := r.Failure(); failed {
				return result.Fail[[]K](result.Internalf("invalid stored key %q: %s", raw, f.Message))
			}
			key, _ := r.Value()
			keys = append(keys, key)
		}
		return result.Succeed(keys)
	})
}

// Read fetches the raw text for key and decodes it through the value
// model. Not-found and internal failures from the inner store pass
// through; a decode rejection is relabeled internal.
func (s *Store[K, V]) Read(ctx context.Context, key K) result.Result[V] {
	raw := s.inner.Read(ctx, s.keys.EncodeKey(key))
	decoded := result.Then(raw, s.values.Decode)
	return result.MapFailure(decoded, func(f result.Failure) result.Failure {
		if f.Kind == result.KindCast {
			return result.Internalf("invalid stored value for key %v: %s", key, f.Message)
		}
		return f
	})
}

// Write encodes the value through the value model and delegates.
func (s *Store[K, V]) Write(ctx context.Context, key K, value V) result.Result[result.Unit] {
	return s.inner.Write(ctx, s.keys.EncodeKey(key), s.values.Encode(value))
}

// Destroy delegates directly after key serialization.
func (s *Store[K, V]) Destroy(ctx context.Context, key K) result.Result[result.Unit] {
	return s.inner.Destroy(ctx, s.keys.EncodeKey(key))
}
