// Package assert contains minimal generic test assertions.
package assert

//
// assert.go
// Copyright (C) 2025 Karol Będkowski <Karol Będkowski@kkomp>
//
// Distributed under terms of the GPLv3 license.
//

import (
	"bytes"
	"errors"
	"reflect"
	"strings"
	"testing"
)

// Equal check if got equals want; values with Equal method (time.Time) are compared by it.
func Equal[T any](tb testing.TB, got, want T) bool {
	tb.Helper()

	if equal(got, want) {
		return true
	}

	tb.Errorf("\n got: %#v\nwant: %#v", got, want)

	return false
}

// Same check if got and want point to the same object.
func Same[T any](tb testing.TB, got, want *T) bool {
	tb.Helper()

	if got == want {
		return true
	}

	tb.Errorf("got pointer %p; want %p", got, want)

	return false
}

func True(tb testing.TB, got bool) bool {
	tb.Helper()

	if !got {
		tb.Error("expected true")
	}

	return got
}

func NoErr(tb testing.TB, err error) bool {
	tb.Helper()

	if err == nil {
		return true
	}

	tb.Errorf("unexpected error: %#+v", err)

	return false
}

func Err(tb testing.TB, err error) bool {
	tb.Helper()

	if err != nil {
		return true
	}

	tb.Error("expected error; got nil")

	return false
}

// ErrSpec check if err match `want`:
//   - string: error message contains it,
//   - error: errors.Is(err, want),
//   - reflect.Type: errors.As to that type succeed.
func ErrSpec(tb testing.TB, err error, want any) bool {
	tb.Helper()

	if err == nil {
		tb.Errorf("expected error matching %v; got nil", want)

		return false
	}

	var ok bool

	switch w := want.(type) {
	case string:
		ok = strings.Contains(err.Error(), w)
	case error:
		ok = errors.Is(err, w)
	case reflect.Type:
		ok = errors.As(err, reflect.New(w).Interface())
	default:
		tb.Fatalf("ErrSpec: unsupported want %T", want)
	}

	if !ok {
		tb.Errorf("error %T(%q) don't match %T(%v)", err, err.Error(), want, want)
	}

	return ok
}

//------------------------------------------------------------------------------

func equal[T any](got, want T) bool {
	if isNil(got) || isNil(want) {
		return isNil(got) && isNil(want)
	}

	switch g := any(got).(type) {
	case interface{ Equal(other T) bool }:
		return g.Equal(want)
	case []byte:
		w, _ := any(want).([]byte)

		return bytes.Equal(g, w)
	}

	return reflect.DeepEqual(got, want)
}

func isNil(v any) bool {
	if v == nil {
		return true
	}

	switch rv := reflect.ValueOf(v); rv.Kind() { //nolint:exhaustive
	case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map,
		reflect.Pointer, reflect.Slice, reflect.UnsafePointer:
		return rv.IsNil()
	default:
		return false
	}
}
