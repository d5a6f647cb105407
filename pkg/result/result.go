// Copyright (c) 2026 ChapterVault Authors
//
// This file is part of chaptervault.
//
// chaptervault is licensed under the GNU Affero General Public License v3.0
// (AGPL-3.0). See LICENSE file or visit https://www.gnu.org/licenses/agpl-3.0.html

// Package result provides the tagged success/failure outcome value used by
// the storage layer in place of thrown errors. A Result is exactly one of a
// success carrying a value or a failure carrying a typed Failure; it is
// immutable once constructed and is propagated, never panicked.
package result

import "fmt"

// Kind identifies the failure taxonomy. The set is closed: every failure
// a store operation can produce is one of these.
type Kind int

const (
	// KindNotFound indicates the requested key is absent. It is expected
	// and recoverable by callers.
	KindNotFound Kind = iota

	// KindInternal indicates an unexpected I/O, parse, or validation
	// failure. It carries the originating error for diagnostics.
	KindInternal

	// KindCast indicates model validation rejected raw data. It carries
	// a message describing the rejection.
	KindCast
)

// String returns the string representation of the failure kind.
func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not-found"
	case KindInternal:
		return "internal-failure"
	case KindCast:
		return "cast-failure"
	default:
		return "unknown"
	}
}

// Failure is the typed failure payload of a Result. Exactly one of Err or
// Message is meaningful depending on Kind: KindInternal carries Err,
// KindCast carries Message, KindNotFound carries neither.
type Failure struct {
	Kind    Kind
	Err     error
	Message string
}

// Error implements the error interface so failures can cross into code
// that speaks plain errors (logging, domain services).
func (f Failure) Error() string {
	switch f.Kind {
	case KindNotFound:
		return "not found"
	case KindInternal:
		if f.Err != nil {
			return fmt.Sprintf("internal failure: %v", f.Err)
		}
		return "internal failure"
	case KindCast:
		return fmt.Sprintf("cast failure: %s", f.Message)
	default:
		return "unknown failure"
	}
}

// Unwrap exposes the originating error of an internal failure to
// errors.Is/errors.As chains.
func (f Failure) Unwrap() error {
	return f.Err
}

// NotFound constructs the absence failure.
func NotFound() Failure {
	return Failure{Kind: KindNotFound}
}

// Internal constructs a failure wrapping an underlying error.
func Internal(err error) Failure {
	return Failure{Kind: KindInternal, Err: err}
}

// Internalf constructs an internal failure from a formatted message.
func Internalf(format string, args ...any) Failure {
	return Failure{Kind: KindInternal, Err: fmt.Errorf(format, args...)}
}

// Cast constructs a validation failure with the given message.
func Cast(message string) Failure {
	return Failure{Kind: KindCast, Message: message}
}

// Unit is the value type of operations that succeed without producing
// anything (write, destroy).
type Unit struct{}

// Result is a tagged union: either a success carrying a value of type T or
// a failure carrying a Failure. The zero value is a success carrying T's
// zero value; constructors should be preferred.
type Result[T any] struct {
	failed  bool
	value   T
	failure Failure
}

// Succeed constructs a success carrying v.
func Succeed[T any](v T) Result[T] {
	return Result[T]{value: v}
}

// Fail constructs a failure carrying f.
func Fail[T any](f Failure) Result[T] {
	return Result[T]{failed: true, failure: f}
}

// OK is the canonical value-less success.
func OK() Result[Unit] {
	return Succeed(Unit{})
}

// IsSuccess reports whether the result is a success.
func (r Result[T]) IsSuccess() bool {
	return !r.failed
}

// IsFailure reports whether the result is a failure.
func (r Result[T]) IsFailure() bool {
	return r.failed
}

// Value returns the success value and whether the result is a success.
func (r Result[T]) Value() (T, bool) {
	return r.value, !r.failed
}

// Failure returns the failure payload and whether the result is a failure.
func (r Result[T]) Failure() (Failure, bool) {
	return r.failure, r.failed
}

// MustValue returns the success value, panicking on failure. It is intended
// for tests and construction-time code where a failure is a programmer
// error.
func (r Result[T]) MustValue() T {
	if r.failed {
		panic(fmt.Sprintf("result: MustValue on failure: %v", r.failure))
	}
	return r.value
}

// Handle dispatches to the matching handler and returns its output. It is
// the exhaustive elimination form: both branches must be supplied.
func Handle[T, U any](r Result[T], onSuccess func(T) U, onFailure func(Failure) U) U {
	if r.failed {
		return onFailure(r.failure)
	}
	return onSuccess(r.value)
}

// Map transforms a success value, passing failures through unchanged.
func Map[T, U any](r Result[T], fn func(T) U) Result[U] {
	if r.failed {
		return Fail[U](r.failure)
	}
	return Succeed(fn(r.value))
}

// Then chains a dependent computation, short-circuiting to the first
// failure encountered.
func Then[T, U any](r Result[T], fn func(T) Result[U]) Result[U] {
	if r.failed {
		return Fail[U](r.failure)
	}
	return fn(r.value)
}

// Catch lets a later stage convert one failure into another (or recover
// into a success). Successes pass through unchanged.
func Catch[T any](r Result[T], fn func(Failure) Result[T]) Result[T] {
	if r.failed {
		return fn(r.failure)
	}
	return r
}

// MapFailure rewrites the failure payload, passing successes through
// unchanged.
func MapFailure[T any](r Result[T], fn func(Failure) Failure) Result[T] {
	if r.failed {
		return Fail[T](fn(r.failure))
	}
	return r
}

// Err converts a result into a plain error: nil on success, the Failure on
// failure. Domain services use it at the boundary where Result pipelines
// end.
func Err[T any](r Result[T]) error {
	if r.failed {
		return r.failure
	}
	return nil
}
