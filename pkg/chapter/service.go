// Copyright (c) 2026 ChapterVault Authors
//
// This file is part of chaptervault.
//
// chaptervault is licensed under the GNU Affero General Public License v3.0
// (AGPL-3.0). See LICENSE file or visit https://www.gnu.org/licenses/agpl-3.0.html

package chapter

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/chaptervault/chaptervault/pkg/result"
	"github.com/chaptervault/chaptervault/pkg/storage"
	"github.com/chaptervault/chaptervault/pkg/storage/jsonmodel"
)

// Namespace is the logical key prefix partitioning chapter data in a
// shared backend.
const Namespace = "chapters"

// Model returns the value model for chapters.
func Model() jsonmodel.Model[Chapter] {
	return jsonmodel.New(Validate)
}

// Keys returns the key model for chapter IDs.
func Keys() jsonmodel.KeyModel[string] {
	return jsonmodel.StringKeys(func(id string) error {
		if id == "" {
			return fmt.Errorf("chapter id cannot be empty")
		}
		return nil
	})
}

// Service manages chapter content over an assembled MapStore. It holds no
// per-request state; one instance serves the process lifetime.
//
// Update performs read-modify-write without any concurrency check:
// concurrent updates to the same chapter race and the last write wins.
type Service struct {
	store  storage.MapStore[string, Chapter]
	logger *slog.Logger
	now    func() time.Time
}

// NewService creates a chapter service over store.
func NewService(store storage.MapStore[string, Chapter], logger *slog.Logger) *Service {
	return &Service{
		store:  store,
		logger: logger,
		now:    time.Now,
	}
}

// Create validates and stores a new chapter, assigning a fresh ID and
// timestamps. The input's ID, CreatedAt, and UpdatedAt are ignored.
func (s *Service) Create(ctx context.Context, c Chapter) (Chapter, error) {
	c.ID = uuid.NewString()
	now := s.now().UTC()
	c.CreatedAt = now
	c.UpdatedAt = now

	if err := Validate(c); err != nil {
		return Chapter{}, err
	}

	if err := result.Err(s.store.Write(ctx, c.ID, c)); err != nil {
		return Chapter{}, fmt.Errorf("chapter: create %q: %w", c.ID, err)
	}
	s.logger.Info("chapter created", "id", c.ID, "title", c.Title)
	return c, nil
}

// Get returns the chapter with the given ID.
func (s *Service) Get(ctx context.Context, id string) (Chapter, error) {
	return handleRead(s.store.Read(ctx, id), id)
}

// Update replaces the title, body, and author of an existing chapter,
// refreshing UpdatedAt and preserving identity and CreatedAt.
func (s *Service) Update(ctx context.Context, id string, c Chapter) (Chapter, error) {
	current, err := s.Get(ctx, id)
	if err != nil {
		return Chapter{}, err
	}

	current.Title = c.Title
	current.Body = c.Body
	current.Author = c.Author
	current.UpdatedAt = s.now().UTC()

	if err := Validate(current); err != nil {
		return Chapter{}, err
	}
	if err := result.Err(s.store.Write(ctx, id, current)); err != nil {
		return Chapter{}, fmt.Errorf("chapter: update %q: %w", id, err)
	}
	s.logger.Info("chapter updated", "id", id)
	return current, nil
}

// Delete removes the chapter with the given ID.
func (s *Service) Delete(ctx context.Context, id string) error {
	err := result.Handle(s.store.Destroy(ctx, id),
		func(result.Unit) error { return nil },
		func(f result.Failure) error {
			if f.Kind == result.KindNotFound {
				return fmt.Errorf("%w: %s", ErrNotFound, id)
			}
			return fmt.Errorf("chapter: delete %q: %w", id, error(f))
		})
	if err == nil {
		s.logger.Info("chapter deleted", "id", id)
	}
	return err
}

// List returns all chapters. Listing reads every chapter; a single entry
// that fails model validation fails the whole call.
func (s *Service) List(ctx context.Context) ([]Chapter, error) {
	ids, err := listIDs(ctx, s.store)
	if err != nil {
		return nil, fmt.Errorf("chapter: list: %w", err)
	}

	chapters := make([]Chapter, 0, len(ids))
	for _, id := range ids {
		c, err := s.Get(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("chapter: list: %w", err)
		}
		chapters = append(chapters, c)
	}
	return chapters, nil
}

func listIDs(ctx context.Context, store storage.MapStore[string, Chapter]) ([]string, error) {
	r := store.List(ctx)
	if f, failed := r.Failure(); failed {
		return nil, error(f)
	}
	ids, _ := r.Value()
	return ids, nil
}

func handleRead(r result.Result[Chapter], id string) (Chapter, error) {
	if f, failed := r.Failure(); failed {
		if f.Kind == result.KindNotFound {
			return Chapter{}, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return Chapter{}, fmt.Errorf("chapter: read %q: %w", id, error(f))
	}
	c, _ := r.Value()
	return c, nil
}
