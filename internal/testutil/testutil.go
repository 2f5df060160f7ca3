// Package testutil contains the assertion helpers the module's tests
// are written with.
package testutil

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

// Equals fails the test if got and want differ. Types that define an
// Equal method are compared with it.
func Equals[T any](t testing.TB, got, want T) {
	t.Helper()
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

// OK fails the test if err is non-nil.
func OK(t testing.TB, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// Error fails the test if err is nil.
func Error(t testing.TB, err error) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error, got nil")
	}
}

// FatalIf fails the test with the formatted message if cond is true.
func FatalIf(t testing.TB, cond bool, format string, args ...any) {
	t.Helper()
	if cond {
		t.Fatalf(format, args...)
	}
}
