package cli

//
// common.go
// Copyright (C) 2025 Karol Będkowski <Karol Będkowski@kkomp>
//
// Distributed under terms of the GPLv3 license.
//

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/xid"
	"github.com/rs/zerolog/log"
	"github.com/samber/do/v2"
	"github.com/urfave/cli/v3"
	"gitlab.com/kabes/go-quizmaster/internal/aerr"
	"gitlab.com/kabes/go-quizmaster/internal/config"
	"gitlab.com/kabes/go-quizmaster/internal/db"
)

// wrap prepare logger, settings and injector for command; shutdown injector after command finish.
func wrap(
	cmdfunc func(ctx context.Context, clicmd *cli.Command, i do.Injector) error,
) func(ctx context.Context, clicmd *cli.Command) error {
	return func(ctx context.Context, clicmd *cli.Command) error {
		if err := initializeLogger(clicmd.String("log.level"), clicmd.String("log.format")); err != nil {
			return err
		}

		logger := log.Logger.With().Str("run_id", xid.New().String()).Logger()
		ctx = logger.WithContext(ctx)

		settings, err := config.NewEnvSettings(clicmd.StringSlice("env-file")...)
		if err != nil {
			return aerr.Wrapf(err, "load settings failed")
		}

		debugFlags := config.NewDebugFLags(clicmd.String("debug"))
		injector := createInjector(ctx, settings, debugFlags)

		defer shutdownInjector(ctx, injector)

		if path := clicmd.String("metrics.textfile"); path != "" {
			registry := prometheus.NewRegistry()
			if err := db.RegisterMetrics(injector, registry, debugFlags.HasFlag(config.DebugDBQueryMetrics)); err != nil {
				return err
			}

			defer writeMetrics(ctx, path, registry)
		}

		return cmdfunc(ctx, clicmd, injector)
	}
}

func writeMetrics(ctx context.Context, path string, gatherer prometheus.Gatherer) {
	logger := log.Ctx(ctx)

	if err := prometheus.WriteToTextfile(path, gatherer); err != nil {
		logger.Error().Err(err).Msgf("write metrics to %q failed", path)

		return
	}

	logger.Debug().Msgf("metrics written to %q", path)
}
