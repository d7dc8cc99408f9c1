package aerr

// zerolog.go
// Copyright (C) 2025 Karol Będkowski <Karol Będkowski@kkomp>
//
// Distributed under terms of the GPLv3 license.

import (
	"errors"
	"maps"
	"slices"

	"github.com/rs/zerolog"
)

type zerologErrorMarshaller struct {
	err error
}

// MarshalZerologObject write whole error chain: messages, user messages, tags, meta and the deepest stack.
func (m zerologErrorMarshaller) MarshalZerologObject(event *zerolog.Event) {
	var (
		errs, stack, usermsg, tags []string
		meta                       map[string]any
	)

	for err := m.err; err != nil; err = errors.Unwrap(err) {
		apperr, ok := err.(AppError) //nolint:errorlint
		if !ok {
			errs = append(errs, err.Error())

			continue
		}

		if apperr.msg != "" {
			errs = append(errs, apperr.msg)
		}

		if apperr.userMsg != "" && !slices.Contains(usermsg, apperr.userMsg) {
			usermsg = append(usermsg, apperr.userMsg)
		}

		if apperr.stack != nil {
			stack = apperr.stack
		}

		for _, t := range apperr.tags {
			if !slices.Contains(tags, t) {
				tags = append(tags, t)
			}
		}

		if apperr.meta != nil {
			if meta == nil {
				meta = make(map[string]any)
			}

			maps.Copy(meta, apperr.meta)
		}
	}

	event.Strs("errors", errs)

	if len(usermsg) > 0 {
		event.Strs("user_msg", usermsg)
	}

	if len(tags) > 0 {
		event.Strs("tags", tags)
	}

	if meta != nil {
		event.Any("meta", meta)
	}

	if stack != nil {
		event.Strs("stack", stack)
	}
}

// ErrorMarshalFunc is used as zerolog.ErrorMarshalFunc.
func ErrorMarshalFunc(err error) any {
	if err != nil {
		return zerologErrorMarshaller{err}
	}

	return err
}
