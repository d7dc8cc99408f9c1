// Package aerr implement application error with tags, metadata and user-facing messages.
package aerr

//
// apperror.go
// Copyright (C) 2025 Karol Będkowski <Karol Będkowski@kkomp>
//
// Distributed under terms of the GPLv3 license.
//

import (
	"errors"
	"fmt"
	"io"
	"maps"
	"runtime"
	"slices"
	"strconv"
	"strings"
)

// AppError is immutable; every With* method return modified copy.
type AppError struct {
	err     error
	kind    string
	tags    []string
	msg     string
	userMsg string
	meta    map[string]any
	stack   []string
}

// NewSimple create sentinel error. Errors derived from it by ApplyFor or With* match it in errors.Is.
func NewSimple(msg string, args ...any) AppError {
	msg = fmt.Sprintf(msg, args...)

	return AppError{msg: msg, kind: msg}
}

// New create error with message and caller stack.
func New(msg string, args ...any) AppError {
	return AppError{msg: fmt.Sprintf(msg, args...), stack: getStack()}
}

// Wrapf wrap `err` adding message and caller stack.
func Wrapf(err error, msg string, args ...any) AppError {
	return AppError{err: err, msg: fmt.Sprintf(msg, args...), stack: getStack()}
}

// ApplyFor create copy of sentinel `aerr` that wrap `err`; stack is set to the caller.
// Optional `msg` replace message and then user message; empty values are skipped.
func ApplyFor(aerr AppError, err error, msg ...string) AppError {
	if err == nil {
		panic("aerr.ApplyFor: nil error")
	}

	stack := getStack()

	return aerr.with(func(n *AppError) {
		n.err = err
		n.stack = stack

		if len(msg) > 0 && msg[0] != "" {
			n.msg = msg[0]
		}

		if len(msg) > 1 && msg[1] != "" {
			n.userMsg = msg[1]
		}
	})
}

func (a AppError) WithTag(tag string) AppError {
	if slices.Contains(a.tags, tag) {
		return a
	}

	return a.with(func(n *AppError) { n.tags = append(n.tags, tag) })
}

func (a AppError) WithUserMsg(msg string, args ...any) AppError {
	return a.with(func(n *AppError) { n.userMsg = fmt.Sprintf(msg, args...) })
}

// WithMeta add key-value pairs; non-string keys are formatted with %v.
func (a AppError) WithMeta(keyval ...any) AppError {
	if len(keyval)%2 != 0 {
		panic("aerr.WithMeta: odd number of arguments")
	}

	return a.with(func(n *AppError) {
		if n.meta == nil {
			n.meta = make(map[string]any, len(keyval)/2) //nolint:mnd
		}

		for kv := range slices.Chunk(keyval, 2) { //nolint:mnd
			n.meta[fmt.Sprint(kv[0])] = kv[1]
		}
	})
}

// with return deep copy of `a` modified by `mod`.
func (a AppError) with(mod func(n *AppError)) AppError {
	n := a
	n.tags = slices.Clone(a.tags)
	n.meta = maps.Clone(a.meta)

	mod(&n)

	return n
}

// Is match errors created from the same sentinel.
func (a AppError) Is(target error) bool {
	t, ok := target.(AppError) //nolint:errorlint

	return ok && t.kind != "" && t.kind == a.kind
}

func (a AppError) Error() string {
	parts := make([]string, 0, 2) //nolint:mnd

	if a.msg != "" {
		parts = append(parts, a.msg)
	}

	if a.err != nil {
		parts = append(parts, a.err.Error())
	}

	if len(parts) == 0 {
		return "unknown error"
	}

	return strings.Join(parts, ": ")
}

func (a AppError) Unwrap() error {
	return a.err
}

// Format support %+v: whole chain with tags, meta and location of each error.
func (a AppError) Format(state fmt.State, verb rune) {
	if verb != 'v' || !state.Flag('+') {
		_, _ = io.WriteString(state, a.Error())

		return
	}

	chain := Flatten(a)
	slices.Reverse(chain)

	for i, ae := range chain {
		if i > 0 {
			_, _ = io.WriteString(state, "\n  caused: ")
		}

		_, _ = io.WriteString(state, ae.Error())

		if len(ae.stack) > 0 {
			_, _ = fmt.Fprintf(state, " [%s]", ae.stack[0])
		}

		if len(ae.tags) > 0 || len(ae.meta) > 0 {
			_, _ = fmt.Fprintf(state, " tags=%v meta=%v", ae.tags, ae.meta)
		}
	}
}

//-------------------------------------------------------------

// Flatten return all AppError in `err` chain; the innermost first.
func Flatten(err error) []AppError {
	var errs []AppError

	for ; err != nil; err = errors.Unwrap(err) {
		if ae, ok := err.(AppError); ok { //nolint:errorlint
			errs = append(errs, ae)
		}
	}

	slices.Reverse(errs)

	return errs
}

func HasTag(err error, tag string) bool {
	return slices.Contains(GetTags(err), tag)
}

// GetTags return unique tags from whole chain.
func GetTags(err error) []string {
	var tags []string

	for _, ae := range Flatten(err) {
		for _, t := range ae.tags {
			if !slices.Contains(tags, t) {
				tags = append(tags, t)
			}
		}
	}

	return tags
}

// GetUserMessage return the innermost user message or empty string.
func GetUserMessage(err error) string {
	for _, ae := range Flatten(err) {
		if ae.userMsg != "" {
			return ae.userMsg
		}
	}

	return ""
}

// GetMeta merge metadata from chain; outer errors override inner values.
func GetMeta(err error) map[string]any {
	var meta map[string]any

	for _, ae := range Flatten(err) {
		if len(ae.meta) == 0 {
			continue
		}

		if meta == nil {
			meta = make(map[string]any, len(ae.meta))
		}

		maps.Copy(meta, ae.meta)
	}

	return meta
}

//-------------------------------------------------------------

const maxStackDepth = 10

func getStack() []string {
	pcs := make([]uintptr, maxStackDepth+2) //nolint:mnd

	// skip runtime.Callers, getStack and constructor
	n := runtime.Callers(3, pcs) //nolint:mnd
	if n == 0 {
		return nil
	}

	stack := make([]string, 0, n)
	frames := runtime.CallersFrames(pcs[:n])

	for frame, more := frames.Next(); len(stack) < maxStackDepth; frame, more = frames.Next() {
		if !strings.HasPrefix(frame.Function, "runtime.") {
			fn := frame.Function[strings.LastIndexByte(frame.Function, '/')+1:]
			stack = append(stack, frame.File+":"+strconv.Itoa(frame.Line)+" "+fn)
		}

		if !more {
			break
		}
	}

	return stack
}
