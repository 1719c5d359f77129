// Package tester holds the tiny assertion helpers shared by tests that do
// not need the full testify surface.
package tester

import (
	"reflect"
	"testing"
)

// Eq fails the test unless got equals want, using reflect.DeepEqual so
// slices and maps compare by content.
func Eq[T any](t *testing.T, got, want T, msgAndArgs ...any) {
	t.Helper()
	if !reflect.DeepEqual(got, want) {
		if len(msgAndArgs) > 0 {
			t.Fatalf("%v: got=%v want=%v", msgAndArgs[0], got, want)
		}
		t.Fatalf("got=%v want=%v", got, want)
	}
}

// True fails the test unless cond holds.
func True(t *testing.T, cond bool, msgAndArgs ...any) {
	t.Helper()
	if !cond {
		if len(msgAndArgs) > 0 {
			t.Fatalf("%v", msgAndArgs[0])
		}
		t.Fatal("expected condition to hold")
	}
}

// False fails the test if cond holds.
func False(t *testing.T, cond bool, msgAndArgs ...any) {
	t.Helper()
	if cond {
		if len(msgAndArgs) > 0 {
			t.Fatalf("%v", msgAndArgs[0])
		}
		t.Fatal("expected condition not to hold")
	}
}

// NoErr fails the test if err is non-nil.
func NoErr(t *testing.T, err error, msgAndArgs ...any) {
	t.Helper()
	if err != nil {
		if len(msgAndArgs) > 0 {
			t.Fatalf("%v: %v", msgAndArgs[0], err)
		}
		t.Fatalf("unexpected error: %v", err)
	}
}

// Err fails the test if err is nil.
func Err(t *testing.T, err error, msgAndArgs ...any) {
	t.Helper()
	if err == nil {
		if len(msgAndArgs) > 0 {
			t.Fatalf("%v: expected an error", msgAndArgs[0])
		}
		t.Fatal("expected an error")
	}
}

// Len fails the test unless the slice has exactly n elements.
func Len[T any](t *testing.T, s []T, n int, msgAndArgs ...any) {
	t.Helper()
	if len(s) != n {
		if len(msgAndArgs) > 0 {
			t.Fatalf("%v: len=%d want=%d", msgAndArgs[0], len(s), n)
		}
		t.Fatalf("len=%d want=%d", len(s), n)
	}
}
