// Copyright (c) 2026 ChapterVault Authors
//
// This file is part of chaptervault.
//
// chaptervault is licensed under the GNU Affero General Public License v3.0
// (AGPL-3.0). See LICENSE file or visit https://www.gnu.org/licenses/agpl-3.0.html

// Package modelstore assembles a typed, model-validated MapStore from a
// storage configuration variant. The assembly policy per variant:
//
//	s3-json:    S3 string store → namespace → ".json" suffix → JSON model
//	local-json: directory store rooted at <dir>/<namespace> → ".json" suffix → JSON model
//	memory:     bare in-memory typed store (namespace and models unused)
//
// Callers only ever see the assembled MapStore[K,V]; an unrecognized
// variant is a construction-time error the caller must treat as fatal.
package modelstore

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/chaptervault/chaptervault/pkg/storage"
	"github.com/chaptervault/chaptervault/pkg/storage/directory"
	"github.com/chaptervault/chaptervault/pkg/storage/jsonmodel"
	"github.com/chaptervault/chaptervault/pkg/storage/memory"
	"github.com/chaptervault/chaptervault/pkg/storage/s3"
	"github.com/chaptervault/chaptervault/pkg/storage/transform"
)

// New builds the store for one (namespace, key model, value model) triple.
// The returned store is constructed once and held for the lifetime of the
// owning service; it carries no per-request state.
//
// The memory variant ignores namespace and models: it backs the typed
// contract directly with a process-local map, a deliberate simplification
// for testing and ephemeral use.
func New[K comparable, V any](
	ctx context.Context,
	cfg storage.Config,
	namespace string,
	keys jsonmodel.KeyModel[K],
	values jsonmodel.Model[V],
) (storage.MapStore[K, V], error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("modelstore: %w", err)
	}

	switch cfg.Backend {
	case storage.BackendMemory:
		return memory.New[K, V](), nil

	case storage.BackendLocalJSON:
		dir, err := directory.New(filepath.Join(cfg.Local.Directory, namespace))
		if err != nil {
			return nil, fmt.Errorf("modelstore: %w", err)
		}
		return jsonmodel.Wrap(
			transform.WithFileExtension[string]("json", dir),
			keys, values,
		), nil

	case storage.BackendS3JSON:
		// The listing prefix matches the namespace wrapper so a shared
		// bucket never surfaces another namespace's keys.
		bucket, err := s3.New(ctx, cfg.S3, namespace+"/")
		if err != nil {
			return nil, fmt.Errorf("modelstore: %w", err)
		}
		return NewS3JSON(bucket, namespace, keys, values), nil

	default:
		// Validate already rejected unknown variants; reaching here is a
		// programmer error.
		return nil, fmt.Errorf("modelstore: %w: %q", storage.ErrUnknownBackend, cfg.Backend)
	}
}

// NewS3JSON layers the namespace, extension, and model wrappers over an
// object store. The store's listing prefix must be namespace + "/" or
// listings will miss or leak keys. New uses it for the s3-json variant;
// callers managing their own client can assemble the same stack via
// s3.NewWithClient.
func NewS3JSON[K comparable, V any](
	bucket *s3.Store,
	namespace string,
	keys jsonmodel.KeyModel[K],
	values jsonmodel.Model[V],
) storage.MapStore[K, V] {
	return jsonmodel.Wrap(
		transform.WithFileExtension[string]("json",
			transform.WithNamespace[string](namespace, bucket)),
		keys, values,
	)
}
