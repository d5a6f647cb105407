// Copyright (c) 2026 ChapterVault Authors
//
// This file is part of chaptervault.
//
// chaptervault is licensed under the GNU Affero General Public License v3.0
// (AGPL-3.0). See LICENSE file or visit https://www.gnu.org/licenses/agpl-3.0.html

package result

import (
	"errors"
	"testing"
)

func TestSucceed(t *testing.T) {
	r := Succeed(42)
	if !r.IsSuccess() {
		t.Fatal("Succeed() should be a success")
	}
	v, ok := r.Value()
	if !ok || v != 42 {
		t.Errorf("Value() = %v, %v; want 42, true", v, ok)
	}
	if _, failed := r.Failure(); failed {
		t.Error("Failure() should report false on success")
	}
}

func TestFail(t *testing.T) {
	r := Fail[string](NotFound())
	if !r.IsFailure() {
		t.Fatal("Fail() should be a failure")
	}
	f, ok := r.Failure()
	if !ok || f.Kind != KindNotFound {
		t.Errorf("Failure() = %v, %v; want not-found, true", f, ok)
	}
}

func TestKindString(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{KindNotFound, "not-found"},
		{KindInternal, "internal-failure"},
		{KindCast, "cast-failure"},
		{Kind(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("Kind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestFailureError(t *testing.T) {
	underlying := errors.New("disk on fire")
	tests := []struct {
		name    string
		failure Failure
		want    string
	}{
		{"not found", NotFound(), "not found"},
		{"internal with cause", Internal(underlying), "internal failure: disk on fire"},
		{"internal without cause", Failure{Kind: KindInternal}, "internal failure"},
		{"cast", Cast("bad id"), "cast failure: bad id"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.failure.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFailureUnwrap(t *testing.T) {
	underlying := errors.New("root cause")
	f := Internal(underlying)
	if !errors.Is(error(f), underlying) {
		t.Error("errors.Is should find the wrapped cause")
	}
}

func TestHandle(t *testing.T) {
	got := Handle(Succeed("hello"),
		func(v string) string { return "ok:" + v },
		func(f Failure) string { return "fail:" + f.Kind.String() })
	if got != "ok:hello" {
		t.Errorf("Handle(success) = %q", got)
	}

	got = Handle(Fail[string](Cast("nope")),
		func(v string) string { return "ok:" + v },
		func(f Failure) string { return "fail:" + f.Kind.String() })
	if got != "fail:cast-failure" {
		t.Errorf("Handle(failure) = %q", got)
	}
}

func TestMap(t *testing.T) {
	r := Map(Succeed(2), func(v int) int { return v * 3 })
	if v, _ := r.Value(); v != 6 {
		t.Errorf("Map(success) = %v, want 6", v)
	}

	r = Map(Fail[int](NotFound()), func(v int) int { return v * 3 })
	if f, ok := r.Failure(); !ok || f.Kind != KindNotFound {
		t.Error("Map(failure) should pass the failure through")
	}
}

func TestThenShortCircuits(t *testing.T) {
	called := false
	r := Then(Fail[int](NotFound()), func(v int) Result[string] {
		called = true
		return Succeed("never")
	})
	if called {
		t.Error("Then must not invoke fn on failure")
	}
	if f, ok := r.Failure(); !ok || f.Kind != KindNotFound {
		t.Error("Then should propagate the first failure")
	}

	r = Then(Succeed(7), func(v int) Result[string] {
		return Succeed("seven")
	})
	if v, _ := r.Value(); v != "seven" {
		t.Errorf("Then(success) = %v", v)
	}
}

func TestCatchRelabels(t *testing.T) {
	// A cast failure crossing a layer boundary becomes internal.
	r := Catch(Fail[int](Cast("bad payload")), func(f Failure) Result[int] {
		if f.Kind == KindCast {
			return Fail[int](Internalf("validation: %s", f.Message))
		}
		return Fail[int](f)
	})
	f, ok := r.Failure()
	if !ok || f.Kind != KindInternal {
		t.Fatalf("Catch should relabel cast to internal, got %v", f)
	}

	// Successes pass through untouched.
	r = Catch(Succeed(1), func(f Failure) Result[int] {
		t.Error("Catch must not invoke fn on success")
		return Fail[int](f)
	})
	if v, _ := r.Value(); v != 1 {
		t.Error("Catch(success) should pass through")
	}
}

func TestMapFailure(t *testing.T) {
	r := MapFailure(Fail[Unit](Cast("boom")), func(f Failure) Failure {
		return Internalf("wrapped: %s", f.Message)
	})
	f, _ := r.Failure()
	if f.Kind != KindInternal {
		t.Errorf("MapFailure kind = %v, want internal", f.Kind)
	}
}

func TestErr(t *testing.T) {
	if err := Err(OK()); err != nil {
		t.Errorf("Err(success) = %v, want nil", err)
	}
	err := Err(Fail[Unit](NotFound()))
	var f Failure
	if !errors.As(err, &f) || f.Kind != KindNotFound {
		t.Errorf("Err(failure) = %v, want not-found Failure", err)
	}
}

func TestMustValue(t *testing.T) {
	if v := Succeed("x").MustValue(); v != "x" {
		t.Errorf("MustValue = %q", v)
	}
	defer func() {
		if recover() == nil {
			t.Error("MustValue on failure should panic")
		}
	}()
	Fail[string](NotFound()).MustValue()
}
