// Copyright (c) 2026 ChapterVault Authors
//
// This file is part of chaptervault.
//
// chaptervault is licensed under the GNU Affero General Public License v3.0
// (AGPL-3.0). See LICENSE file or visit https://www.gnu.org/licenses/agpl-3.0.html

// Package permission binds subjects to roles per chapter. A binding is
// keyed "<subject>:<chapterID>" so it names a single directory entry in
// filesystem-backed stores. Grant and revoke are read-modify-write free:
// each binding is one entry, and concurrent writes to the same binding
// race with last-writer-wins semantics.
package permission

import (
	"errors"
	"fmt"
	"strings"
)

// Binding assigns a role to a subject for one chapter.
type Binding struct {
	Subject   string `json:"subject"`
	ChapterID string `json:"chapterId"`
	Role      string `json:"role"`
}

var (
	// ErrNotFound is returned when no binding exists for a subject and
	// chapter.
	ErrNotFound = errors.New("permission: not found")

	// ErrInvalid is returned when a binding fails validation.
	ErrInvalid = errors.New("permission: invalid")
)

// Key returns the storage key for a subject and chapter pair.
func Key(subject, chapterID string) string {
	return subject + ":" + chapterID
}

// ParseKey splits a storage key back into its subject and chapter parts.
func ParseKey(key string) (subject, chapterID string, err error) {
	subject, chapterID, ok := strings.Cut(key, ":")
	if !ok || subject == "" || chapterID == "" {
		return "", "", fmt.Errorf("%w: malformed binding key %q", ErrInvalid, key)
	}
	return subject, chapterID, nil
}

// Validate checks the structural invariants of a stored binding.
func Validate(b Binding) error {
	if b.Subject == "" {
		return fmt.Errorf("%w: subject is required", ErrInvalid)
	}
	if b.ChapterID == "" {
		return fmt.Errorf("%w: chapter id is required", ErrInvalid)
	}
	if b.Role == "" {
		return fmt.Errorf("%w: role is required", ErrInvalid)
	}
	if strings.Contains(b.Subject, ":") {
		return fmt.Errorf("%w: subject cannot contain ':'", ErrInvalid)
	}
	return nil
}
