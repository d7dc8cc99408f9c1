package config

//
// debugflags.go
// Copyright (C) 2025 Karol Będkowski <Karol Będkowski@kkomp>
//
// Distributed under terms of the GPLv3 license.
//

import (
	"strings"
)

// DebugFlag enable additional diagnostics selected by --debug.
type DebugFlag string

const (
	// DebugDo log samber/do events and print injector content.
	DebugDo = DebugFlag("do")
	// DebugDBQueryMetrics collect query duration histogram.
	DebugDBQueryMetrics = DebugFlag("querymetrics")
	// DebugAll enable every flag.
	DebugAll = DebugFlag("all")
)

// DebugFlags is set of enabled flags.
type DebugFlags map[DebugFlag]struct{}

// NewDebugFLags parse comma-separated list of flags; unknown names are kept and ignored.
func NewDebugFLags(flags string) DebugFlags {
	df := make(DebugFlags)

	for name := range strings.SplitSeq(flags, ",") {
		if name = strings.ToLower(strings.TrimSpace(name)); name != "" {
			df[DebugFlag(name)] = struct{}{}
		}
	}

	return df
}

func (d DebugFlags) HasFlag(flag DebugFlag) bool {
	_, all := d[DebugAll]
	_, ok := d[flag]

	return all || ok
}
