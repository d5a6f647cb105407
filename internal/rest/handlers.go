// Copyright (c) 2026 ChapterVault Authors
//
// This file is part of chaptervault.
//
// chaptervault is licensed under the GNU Affero General Public License v3.0
// (AGPL-3.0). See LICENSE file or visit https://www.gnu.org/licenses/agpl-3.0.html

package rest

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/chaptervault/chaptervault/pkg/chapter"
	"github.com/chaptervault/chaptervault/pkg/permission"
	"github.com/chaptervault/chaptervault/pkg/role"
)

// HandlerContext holds dependencies for REST handlers.
type HandlerContext struct {
	chapters    *chapter.Service
	roles       *role.Service
	permissions *permission.Service
	logger      *slog.Logger
}

// Health handles GET /healthz.
func (h *HandlerContext) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, HealthResponse{Status: "healthy"}, http.StatusOK)
}

// CreateChapter handles POST /api/v1/chapters.
func (h *HandlerContext) CreateChapter(w http.ResponseWriter, r *http.Request) {
	var req ChapterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	created, err := h.chapters.Create(r.Context(), chapter.Chapter{
		Title:  req.Title,
		Body:   req.Body,
		Author: req.Author,
	})
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeJSON(w, created, http.StatusCreated)
}

// ListChapters handles GET /api/v1/chapters.
func (h *HandlerContext) ListChapters(w http.ResponseWriter, r *http.Request) {
	chapters, err := h.chapters.List(r.Context())
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeJSON(w, chapters, http.StatusOK)
}

// GetChapter handles GET /api/v1/chapters/{id}.
func (h *HandlerContext) GetChapter(w http.ResponseWriter, r *http.Request) {
	c, err := h.chapters.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeJSON(w, c, http.StatusOK)
}

// UpdateChapter handles PUT /api/v1/chapters/{id}.
func (h *HandlerContext) UpdateChapter(w http.ResponseWriter, r *http.Request) {
	var req ChapterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	updated, err := h.chapters.Update(r.Context(), chi.URLParam(r, "id"), chapter.Chapter{
		Title:  req.Title,
		Body:   req.Body,
		Author: req.Author,
	})
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeJSON(w, updated, http.StatusOK)
}

// DeleteChapter handles DELETE /api/v1/chapters/{id}.
func (h *HandlerContext) DeleteChapter(w http.ResponseWriter, r *http.Request) {
	if err := h.chapters.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SaveRole handles PUT /api/v1/roles/{name}.
func (h *HandlerContext) SaveRole(w http.ResponseWriter, r *http.Request) {
	var req RoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	grants := make([]role.Action, len(req.Grants))
	for i, g := range req.Grants {
		grants[i] = role.Action(g)
	}

	saved := role.Role{Name: chi.URLParam(r, "name"), Grants: grants}
	if err := h.roles.Save(r.Context(), saved); err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeJSON(w, saved, http.StatusOK)
}

// ListRoles handles GET /api/v1/roles.
func (h *HandlerContext) ListRoles(w http.ResponseWriter, r *http.Request) {
	names, err := h.roles.List(r.Context())
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeJSON(w, names, http.StatusOK)
}

// GetRole handles GET /api/v1/roles/{name}.
func (h *HandlerContext) GetRole(w http.ResponseWriter, r *http.Request) {
	got, err := h.roles.Get(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeJSON(w, got, http.StatusOK)
}

// DeleteRole handles DELETE /api/v1/roles/{name}.
func (h *HandlerContext) DeleteRole(w http.ResponseWriter, r *http.Request) {
	if err := h.roles.Delete(r.Context(), chi.URLParam(r, "name")); err != nil {
		h.writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GrantPermission handles POST /api/v1/permissions.
func (h *HandlerContext) GrantPermission(w http.ResponseWriter, r *http.Request) {
	var req PermissionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	err := h.permissions.Grant(r.Context(), permission.Binding{
		Subject:   req.Subject,
		ChapterID: req.ChapterID,
		Role:      req.Role,
	})
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// RevokePermission handles DELETE /api/v1/permissions.
func (h *HandlerContext) RevokePermission(w http.ResponseWriter, r *http.Request) {
	var req PermissionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.permissions.Revoke(r.Context(), req.Subject, req.ChapterID); err != nil {
		h.writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// CheckPermission handles GET /api/v1/permissions/check.
func (h *HandlerContext) CheckPermission(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	subject := q.Get("subject")
	chapterID := q.Get("chapter")
	action := q.Get("action")
	if subject == "" || chapterID == "" || action == "" {
		writeError(w, "subject, chapter, and action are required", http.StatusBadRequest)
		return
	}

	allowed, err := h.permissions.Check(r.Context(), subject, chapterID, role.Action(action))
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeJSON(w, CheckResponse{Allowed: allowed}, http.StatusOK)
}

// writeDomainError maps domain errors to HTTP statuses: absence to 404,
// validation to 400, everything else to 500.
func (h *HandlerContext) writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, chapter.ErrNotFound),
		errors.Is(err, role.ErrNotFound),
		errors.Is(err, permission.ErrNotFound):
		writeError(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, chapter.ErrInvalid),
		errors.Is(err, role.ErrInvalid),
		errors.Is(err, permission.ErrInvalid):
		writeError(w, err.Error(), http.StatusBadRequest)
	default:
		h.logger.Error("internal error", "error", err)
		writeError(w, "internal error", http.StatusInternalServerError)
	}
}
