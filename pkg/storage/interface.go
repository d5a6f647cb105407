// Copyright (c) 2026 ChapterVault Authors
//
// This file is part of chaptervault.
//
// chaptervault is licensed under the GNU Affero General Public License v3.0
// (AGPL-3.0). See LICENSE file or visit https://www.gnu.org/licenses/agpl-3.0.html

// Package storage defines the uniform key-value store contract implemented
// by every backend and combinator: list, read, write, destroy. A MapStore
// is a capability, not a class hierarchy — any value exposing the four
// operations satisfies it, and combinators wrap one MapStore into another
// without the inner store knowing.
//
// All operations return a result.Result rather than a bare error so that
// absence (not-found), I/O trouble (internal-failure), and model rejection
// (cast-failure) stay distinguishable across layer boundaries.
package storage

import (
	"context"

	"github.com/chaptervault/chaptervault/pkg/result"
)

// MapStore is the uniform key-value contract. Implementations must be safe
// for concurrent use; no operation is transactional with another, and
// callers composing multiple calls must tolerate interleaving.
type MapStore[K comparable, V any] interface {
	// List returns every currently stored key. No ordering is guaranteed,
	// though backends may sort for deterministic output. Fails only with
	// an internal failure.
	List(ctx context.Context) result.Result[[]K]

	// Read returns the stored value for key. Fails with not-found if the
	// key is absent, internal on I/O error.
	Read(ctx context.Context, key K) result.Result[V]

	// Write creates or overwrites the entry unconditionally (upsert).
	// Fails with internal on I/O error.
	Write(ctx context.Context, key K, value V) result.Result[result.Unit]

	// Destroy removes the entry. Fails with not-found if the key is
	// absent, internal on I/O error.
	Destroy(ctx context.Context, key K) result.Result[result.Unit]
}
