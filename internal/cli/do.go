package cli

//
// do.go
// Copyright (C) 2025 Karol Będkowski <Karol Będkowski@kkomp>
//
// Distributed under terms of the GPLv3 license.
//

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/samber/do/v2"
	"gitlab.com/kabes/go-quizmaster/internal/config"
	"gitlab.com/kabes/go-quizmaster/internal/db"
)

// createInjector build root scope with settings and database; database is created on first use.
func createInjector(ctx context.Context, settings config.Settings, debugFlags config.DebugFlags) *do.RootScope {
	logger := log.Ctx(ctx)

	opts := &do.InjectorOpts{} //nolint:exhaustruct
	if debugFlags.HasFlag(config.DebugDo) {
		opts.Logf = func(format string, args ...any) {
			logger.Debug().Str("mod", "do").Msgf(format, args...)
		}
	}

	injector := do.NewWithOpts(opts, db.Package)
	do.ProvideValue[config.Settings](injector, settings)

	if debugFlags.HasFlag(config.DebugDo) {
		logger.Debug().Msgf("available services: %v", injector.ListProvidedServices())
	}

	return injector
}

func shutdownInjector(ctx context.Context, injector *do.RootScope) {
	logger := log.Ctx(ctx)
	logger.Debug().Msg("shutting down...")

	if report := injector.ShutdownWithContext(ctx); !report.Succeed {
		logger.Error().Msgf("shutdown error: %s", report.Error())
	}

	logger.Debug().Msg("shutdown finished")
}

//nolint:forbidigo
func explainInjector(injector do.Injector) {
	explanation := do.ExplainInjector(injector)
	fmt.Println(explanation.String())
}
