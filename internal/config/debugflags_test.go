package config

//
// debugflags_test.go
// Copyright (C) 2025 Karol Będkowski <Karol Będkowski@kkomp>
//
// Distributed under terms of the GPLv3 license.
//

import (
	"testing"

	"gitlab.com/kabes/go-quizmaster/internal/assert"
)

func TestDebugFlags(t *testing.T) {
	tests := []struct {
		input       string
		expected    []DebugFlag
		notexpected []DebugFlag
	}{
		{"", nil, []DebugFlag{DebugDo, DebugDBQueryMetrics}},
		{"xxx", nil, []DebugFlag{DebugDo, DebugDBQueryMetrics}},
		{"all", []DebugFlag{DebugDo, DebugDBQueryMetrics}, nil},
		{"do, xxx", []DebugFlag{DebugDo}, []DebugFlag{DebugDBQueryMetrics}},
		{"querymetrics,,", []DebugFlag{DebugDBQueryMetrics}, []DebugFlag{DebugDo}},
		{"do,querymetrics", []DebugFlag{DebugDo, DebugDBQueryMetrics}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			df := NewDebugFLags(tt.input)
			for _, e := range tt.expected {
				assert.True(t, df.HasFlag(e))
			}

			for _, e := range tt.notexpected {
				assert.True(t, !df.HasFlag(e))
			}
		})
	}
}
