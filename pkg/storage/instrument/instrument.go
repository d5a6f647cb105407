// Copyright (c) 2026 ChapterVault Authors
//
// This file is part of chaptervault.
//
// chaptervault is licensed under the GNU Affero General Public License v3.0
// (AGPL-3.0). See LICENSE file or visit https://www.gnu.org/licenses/agpl-3.0.html

// Package instrument provides Prometheus instrumentation for MapStore
// operations. Wrapping a store is transparent to its semantics: every
// result passes through unchanged while counters and latency histograms
// are recorded per store name, operation, and outcome.
package instrument

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/chaptervault/chaptervault/pkg/result"
	"github.com/chaptervault/chaptervault/pkg/storage"
)

const (
	// Namespace is the Prometheus namespace for all chaptervault metrics.
	Namespace = "chaptervault"

	// Label names
	LabelStore     = "store"
	LabelOperation = "operation"
	LabelStatus    = "status"

	// Status values
	StatusSuccess = "success"
	StatusError   = "error"

	// Operation names
	OpList    = "list"
	OpRead    = "read"
	OpWrite   = "write"
	OpDestroy = "destroy"
)

var (
	// OperationsTotal tracks store operations by store, operation, and status.
	OperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "storage_operations_total",
			Help:      "Total number of storage operations by store, operation, and status",
		},
		[]string{LabelStore, LabelOperation, LabelStatus},
	)

	// OperationDuration tracks storage operation latency in seconds.
	OperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "storage_operation_duration_seconds",
			Help:      "Duration of storage operations in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{LabelStore, LabelOperation},
	)
)

type instrumented[K comparable, V any] struct {
	name  string
	inner storage.MapStore[K, V]
}

// Wrap returns a MapStore that records metrics for every operation under
// the given store name (conventionally the namespace) before delegating.
func Wrap[K comparable, V any](name string, inner storage.MapStore[K, V]) storage.MapStore[K, V] {
	return &instrumented[K, V]{name: name, inner: inner}
}

func (s *instrumented[K, V]) List(ctx context.Context) result.Result[[]K] {
	start := time.Now()
	r := s.inner.List(ctx)
	s.record(OpList, start, r.IsSuccess())
	return r
}

func (s *instrumented[K, V]) Read(ctx context.Context, key K) result.Result[V] {
	start := time.Now()
	r := s.inner.Read(ctx, key)
	s.record(OpRead, start, r.IsSuccess())
	return r
}

func (s *instrumented[K, V]) Write(ctx context.Context, key K, value V) result.Result[result.Unit] {
	start := time.Now()
	r := s.inner.Write(ctx, key, value)
	s.record(OpWrite, start, r.IsSuccess())
	return r
}

func (s *instrumented[K, V]) Destroy(ctx context.Context, key K) result.Result[result.Unit] {
	start := time.Now()
	r := s.inner.Destroy(ctx, key)
	s.record(OpDestroy, start, r.IsSuccess())
	return r
}

func (s *instrumented[K, V]) record(op string, start time.Time, success bool) {
	status := StatusSuccess
	if !success {
		status = StatusError
	}
	OperationsTotal.WithLabelValues(s.name, op, status).Inc()
	OperationDuration.WithLabelValues(s.name, op).Observe(time.Since(start).Seconds())
}
