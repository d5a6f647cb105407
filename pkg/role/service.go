// Copyright (c) 2026 ChapterVault Authors
//
// This file is part of chaptervault.
//
// chaptervault is licensed under the GNU Affero General Public License v3.0
// (AGPL-3.0). See LICENSE file or visit https://www.gnu.org/licenses/agpl-3.0.html

package role

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/chaptervault/chaptervault/pkg/result"
	"github.com/chaptervault/chaptervault/pkg/storage"
	"github.com/chaptervault/chaptervault/pkg/storage/jsonmodel"
)

// Namespace is the logical key prefix partitioning role data in a shared
// backend.
const Namespace = "roles"

// Model returns the value model for roles.
func Model() jsonmodel.Model[Role] {
	return jsonmodel.New(Validate)
}

// Keys returns the key model for role names.
func Keys() jsonmodel.KeyModel[string] {
	return jsonmodel.StringKeys(func(name string) error {
		if name == "" {
			return fmt.Errorf("role name cannot be empty")
		}
		return nil
	})
}

// Service manages roles, keyed by role name.
type Service struct {
	store  storage.MapStore[string, Role]
	logger *slog.Logger
}

// NewService creates a role service over store.
func NewService(store storage.MapStore[string, Role], logger *slog.Logger) *Service {
	return &Service{store: store, logger: logger}
}

// Save validates and upserts a role under its name.
func (s *Service) Save(ctx context.Context, r Role) error {
	if err := Validate(r); err != nil {
		return err
	}
	if err := result.Err(s.store.Write(ctx, r.Name, r)); err != nil {
		return fmt.Errorf("role: save %q: %w", r.Name, err)
	}
	s.logger.Info("role saved", "name", r.Name, "grants", len(r.Grants))
	return nil
}

// Get returns the role with the given name.
func (s *Service) Get(ctx context.Context, name string) (Role, error) {
	r := s.store.Read(ctx, name)
	if f, failed := r.Failure(); failed {
		if f.Kind == result.KindNotFound {
			return Role{}, fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		return Role{}, fmt.Errorf("role: read %q: %w", name, error(f))
	}
	role, _ := r.Value()
	return role, nil
}

// Delete removes the role with the given name.
func (s *Service) Delete(ctx context.Context, name string) error {
	if f, failed := s.store.Destroy(ctx, name).Failure(); failed {
		if f.Kind == result.KindNotFound {
			return fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		return fmt.Errorf("role: delete %q: %w", name, error(f))
	}
	s.logger.Info("role deleted", "name", name)
	return nil
}

// List returns the names of all roles.
func (s *Service) List(ctx context.Context) ([]string, error) {
	r := s.store.List(ctx)
	if f, failed := r.Failure(); failed {
		return nil, fmt.Errorf("role: list: %w", error(f))
	}
	names, _ := r.Value()
	return names, nil
}
