package config

//
// version.go
// Copyright (C) 2025 Karol Będkowski <Karol Będkowski@kkomp>
//
// Distributed under terms of the GPLv3 license.
//

import (
	"fmt"
	"runtime/debug"
)

// Build information; set by ldflags (-X gitlab.com/kabes/go-quizmaster/internal/config.Version=...).
var (
	Version   = "dev"
	Revision  = ""
	BuildDate = ""
	BuildUser = ""
	Branch    = ""
)

// VersionString is human-readable version shown by `--version`.
var VersionString = buildVersionString(Version)

func buildVersionString(version string) string {
	if version != "dev" {
		return fmt.Sprintf("%s (rev %s, built %s by %s, branch %s)",
			version, Revision, BuildDate, BuildUser, Branch)
	}

	info, ok := debug.ReadBuildInfo()
	if !ok {
		return version
	}

	modified := false

	for _, kv := range info.Settings {
		switch kv.Key {
		case "vcs.revision":
			Revision = kv.Value
		case "vcs.time":
			BuildDate = kv.Value
		case "vcs.modified":
			modified = kv.Value == "true"
		}
	}

	if Revision == "" {
		return version
	}

	if modified {
		return fmt.Sprintf("dev (rev %s at %s, modified)", Revision, BuildDate)
	}

	return fmt.Sprintf("dev (rev %s at %s)", Revision, BuildDate)
}
