// Copyright (c) 2026 ChapterVault Authors
//
// This file is part of chaptervault.
//
// chaptervault is licensed under the GNU Affero General Public License v3.0
// (AGPL-3.0). See LICENSE file or visit https://www.gnu.org/licenses/agpl-3.0.html

// Package chapter provides the chapter content type and its service. A
// chapter is the unit of content the system manages; the service consumes
// only the assembled MapStore surface and converts storage failures into
// domain errors at its boundary.
package chapter

import (
	"errors"
	"fmt"
	"time"
)

// Chapter is a unit of managed content.
type Chapter struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Author    string    `json:"author,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

var (
	// ErrNotFound is returned when a chapter does not exist.
	ErrNotFound = errors.New("chapter: not found")

	// ErrInvalid is returned when a chapter fails validation.
	ErrInvalid = errors.New("chapter: invalid")
)

// Validate checks the structural invariants of a stored chapter.
func Validate(c Chapter) error {
	if c.ID == "" {
		return fmt.Errorf("%w: id is required", ErrInvalid)
	}
	if c.Title == "" {
		return fmt.Errorf("%w: title is required", ErrInvalid)
	}
	return nil
}
