// Copyright (c) 2026 ChapterVault Authors
//
// This file is part of chaptervault.
//
// chaptervault is licensed under the GNU Affero General Public License v3.0
// (AGPL-3.0). See LICENSE file or visit https://www.gnu.org/licenses/agpl-3.0.html

// Package role provides named permission roles. A role is a set of actions
// a subject holding it may perform on a chapter.
package role

import (
	"errors"
	"fmt"
)

// Action is a permission a role can grant.
type Action string

const (
	ActionRead   Action = "read"
	ActionWrite  Action = "write"
	ActionManage Action = "manage"
)

// Role names a set of granted actions.
type Role struct {
	Name   string   `json:"name"`
	Grants []Action `json:"grants"`
}

var (
	// ErrNotFound is returned when a role does not exist.
	ErrNotFound = errors.New("role: not found")

	// ErrInvalid is returned when a role fails validation.
	ErrInvalid = errors.New("role: invalid")
)

// Allows reports whether the role grants the given action.
func (r Role) Allows(action Action) bool {
	for _, granted := range r.Grants {
		if granted == action {
			return true
		}
	}
	return false
}

// Validate checks the structural invariants of a stored role.
func Validate(r Role) error {
	if r.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalid)
	}
	for _, action := range r.Grants {
		switch action {
		case ActionRead, ActionWrite, ActionManage:
		default:
			return fmt.Errorf("%w: unknown action %q", ErrInvalid, action)
		}
	}
	return nil
}
