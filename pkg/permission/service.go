// Copyright (c) 2026 ChapterVault Authors
//
// This file is part of chaptervault.
//
// chaptervault is licensed under the GNU Affero General Public License v3.0
// (AGPL-3.0). See LICENSE file or visit https://www.gnu.org/licenses/agpl-3.0.html

package permission

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/chaptervault/chaptervault/pkg/result"
	"github.com/chaptervault/chaptervault/pkg/role"
	"github.com/chaptervault/chaptervault/pkg/storage"
	"github.com/chaptervault/chaptervault/pkg/storage/jsonmodel"
)

// Namespace is the logical key prefix partitioning binding data in a
// shared backend.
const Namespace = "permissions"

// Model returns the value model for bindings.
func Model() jsonmodel.Model[Binding] {
	return jsonmodel.New(Validate)
}

// Keys returns the key model for binding keys.
func Keys() jsonmodel.KeyModel[string] {
	return jsonmodel.StringKeys(func(key string) error {
		_, _, err := ParseKey(key)
		return err
	})
}

// RoleResolver looks up a role by name. *role.Service satisfies it.
type RoleResolver interface {
	Get(ctx context.Context, name string) (role.Role, error)
}

// Service manages role bindings and answers permission checks.
type Service struct {
	store  storage.MapStore[string, Binding]
	roles  RoleResolver
	logger *slog.Logger
}

// NewService creates a permission service over store, resolving role
// grants through roles.
func NewService(store storage.MapStore[string, Binding], roles RoleResolver, logger *slog.Logger) *Service {
	return &Service{store: store, roles: roles, logger: logger}
}

// Grant binds a role to a subject for a chapter, replacing any existing
// binding for the pair.
func (s *Service) Grant(ctx context.Context, b Binding) error {
	if err := Validate(b); err != nil {
		return err
	}
	// The role must exist before it can be bound.
	if _, err := s.roles.Get(ctx, b.Role); err != nil {
		return fmt.Errorf("permission: grant: %w", err)
	}

	key := Key(b.Subject, b.ChapterID)
	if err := result.Err(s.store.Write(ctx, key, b)); err != nil {
		return fmt.Errorf("permission: grant %q: %w", key, err)
	}
	s.logger.Info("permission granted", "subject", b.Subject, "chapter", b.ChapterID, "role", b.Role)
	return nil
}

// Revoke removes the binding for a subject and chapter.
func (s *Service) Revoke(ctx context.Context, subject, chapterID string) error {
	key := Key(subject, chapterID)
	if f, failed := s.store.Destroy(ctx, key).Failure(); failed {
		if f.Kind == result.KindNotFound {
			return fmt.Errorf("%w: %s", ErrNotFound, key)
		}
		return fmt.Errorf("permission: revoke %q: %w", key, error(f))
	}
	s.logger.Info("permission revoked", "subject", subject, "chapter", chapterID)
	return nil
}

// Binding returns the stored binding for a subject and chapter.
func (s *Service) Binding(ctx context.Context, subject, chapterID string) (Binding, error) {
	key := Key(subject, chapterID)
	r := s.store.Read(ctx, key)
	if f, failed := r.Failure(); failed {
		if f.Kind == result.KindNotFound {
			return Binding{}, fmt.Errorf("%w: %s", ErrNotFound, key)
		}
		return Binding{}, fmt.Errorf("permission: read %q: %w", key, error(f))
	}
	b, _ := r.Value()
	return b, nil
}

// Check reports whether subject may perform action on the chapter. A
// missing binding or missing role denies without error; storage trouble
// surfaces as an error.
func (s *Service) Check(ctx context.Context, subject, chapterID string, action role.Action) (bool, error) {
	b, err := s.Binding(ctx, subject, chapterID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return false, nil
		}
		return false, err
	}

	r, err := s.roles.Get(ctx, b.Role)
	if err != nil {
		if errors.Is(err, role.ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("permission: check: %w", err)
	}
	return r.Allows(action), nil
}
