// Copyright (c) 2026 ChapterVault Authors
//
// This file is part of chaptervault.
//
// chaptervault is licensed under the GNU Affero General Public License v3.0
// (AGPL-3.0). See LICENSE file or visit https://www.gnu.org/licenses/agpl-3.0.html

package rest

import (
	"encoding/json"
	"net/http"
)

// ChapterRequest is the request body for chapter create and update.
type ChapterRequest struct {
	Title  string `json:"title"`
	Body   string `json:"body"`
	Author string `json:"author,omitempty"`
}

// RoleRequest is the request body for role upsert.
type RoleRequest struct {
	Grants []string `json:"grants"`
}

// PermissionRequest is the request body for grant and revoke.
type PermissionRequest struct {
	Subject   string `json:"subject"`
	ChapterID string `json:"chapterId"`
	Role      string `json:"role,omitempty"`
}

// CheckResponse is the response body for permission checks.
type CheckResponse struct {
	Allowed bool `json:"allowed"`
}

// ErrorResponse is the uniform error body.
type ErrorResponse struct {
	Error string `json:"error"`
}

// HealthResponse is the body of the health endpoint.
type HealthResponse struct {
	Status string `json:"status"`
}

func writeJSON(w http.ResponseWriter, v any, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, message string, status int) {
	writeJSON(w, ErrorResponse{Error: message}, status)
}
