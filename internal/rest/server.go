// Copyright (c) 2026 ChapterVault Authors
//
// This file is part of chaptervault.
//
// chaptervault is licensed under the GNU Affero General Public License v3.0
// (AGPL-3.0). See LICENSE file or visit https://www.gnu.org/licenses/agpl-3.0.html

// Package rest exposes the chapter, role, and permission services over
// HTTP. It is a thin surface: all semantics live in the services, which in
// turn depend only on the assembled MapStore contract.
package rest

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/chaptervault/chaptervault/pkg/chapter"
	"github.com/chaptervault/chaptervault/pkg/permission"
	"github.com/chaptervault/chaptervault/pkg/role"
)

// Server is the HTTP server for the chaptervault API.
type Server struct {
	server   *http.Server
	logger   *slog.Logger
	handlers *HandlerContext
}

// Config holds server construction parameters.
type Config struct {
	Host string
	Port int

	Chapters    *chapter.Service
	Roles       *role.Service
	Permissions *permission.Service

	Logger *slog.Logger
}

// NewServer creates the HTTP server and its router.
func NewServer(cfg Config) (*Server, error) {
	if cfg.Chapters == nil || cfg.Roles == nil || cfg.Permissions == nil {
		return nil, fmt.Errorf("rest: all services are required")
	}
	if cfg.Logger == nil {
		return nil, fmt.Errorf("rest: logger is required")
	}

	s := &Server{
		logger: cfg.Logger,
		handlers: &HandlerContext{
			chapters:    cfg.Chapters,
			roles:       cfg.Roles,
			permissions: cfg.Permissions,
			logger:      cfg.Logger,
		},
	}

	s.server = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:      s.router(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s, nil
}

// router configures the chi router with all routes and middleware.
func (s *Server) router() *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.loggingMiddleware)

	r.Get("/healthz", s.handlers.Health)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/chapters", s.handlers.CreateChapter)
		r.Get("/chapters", s.handlers.ListChapters)
		r.Get("/chapters/{id}", s.handlers.GetChapter)
		r.Put("/chapters/{id}", s.handlers.UpdateChapter)
		r.Delete("/chapters/{id}", s.handlers.DeleteChapter)

		r.Put("/roles/{name}", s.handlers.SaveRole)
		r.Get("/roles", s.handlers.ListRoles)
		r.Get("/roles/{name}", s.handlers.GetRole)
		r.Delete("/roles/{name}", s.handlers.DeleteRole)

		r.Post("/permissions", s.handlers.GrantPermission)
		r.Delete("/permissions", s.handlers.RevokePermission)
		r.Get("/permissions/check", s.handlers.CheckPermission)
	})

	return r
}

// Start begins serving. It blocks until the server stops.
func (s *Server) Start() error {
	s.logger.Info("starting HTTP server", "addr", s.server.Addr)
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("rest: server failed: %w", err)
	}
	return nil
}

// Stop shuts the server down gracefully.
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("stopping HTTP server")
	return s.server.Shutdown(ctx)
}

// Handler returns the configured router, used by tests to drive the API
// without a listener.
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
		)
	})
}
