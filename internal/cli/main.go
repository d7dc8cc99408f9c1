package cli

//
// main.go
// Copyright (C) 2025 Karol Będkowski <Karol Będkowski@kkomp>
//
// Distributed under terms of the GPLv3 license.
//

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"
	"gitlab.com/kabes/go-quizmaster/internal/aerr"
	"gitlab.com/kabes/go-quizmaster/internal/config"
)

// Main run quizmaster command line; exit with status 1 on error.
func Main() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "show version and exit",
	}

	rootCmd := newRootCmd()
	if err := rootCmd.Run(context.Background(), os.Args); err != nil {
		reportError(rootCmd, err)
		os.Exit(1)
	}
}

// reportError print user message when available; full error chain is logged on debug level.
func reportError(rootCmd *cli.Command, err error) {
	msg := aerr.GetUserMessage(err)
	if msg == "" {
		msg = err.Error()
	}

	fmt.Fprintf(os.Stderr, "quizmaster: %s\n", msg)

	if rootCmd.String("log.level") == "debug" {
		log.Debug().Err(err).Msgf("command failed: %+v", err)
	}
}

func newRootCmd() *cli.Command {
	return &cli.Command{
		Name:    "quizmaster",
		Usage:   "quiz_master database tool",
		Version: config.VersionString,
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:      "env-file",
				Usage:     "file with DB_* settings; environment variables take precedence (default: .env if exists)",
				Aliases:   []string{"e"},
				Sources:   cli.EnvVars("QUIZMASTER_ENV_FILE"),
				TakesFile: true,
			},
			&cli.StringFlag{
				Name:    "log.level",
				Value:   "info",
				Usage:   "Log level (debug, info, warn, error)",
				Sources: cli.EnvVars("QUIZMASTER_LOGLEVEL"),
				Config:  cli.StringConfig{TrimSpace: true},
			},
			&cli.StringFlag{
				Name:    "log.format",
				Value:   "console",
				Usage:   "Log format (console, logfmt, json, journald)",
				Sources: cli.EnvVars("QUIZMASTER_LOGFORMAT"),
				Config:  cli.StringConfig{TrimSpace: true},
			},
			&cli.StringFlag{
				Name:      "metrics.textfile",
				Usage:     "write database metrics to file on exit (prometheus textfile format)",
				Sources:   cli.EnvVars("QUIZMASTER_METRICS_TEXTFILE"),
				Config:    cli.StringConfig{TrimSpace: true},
				TakesFile: true,
			},
			&cli.StringFlag{Name: "debug", Usage: "Debug flags (do, querymetrics, all)", Sources: cli.EnvVars("QUIZMASTER_DEBUG")},
		},
		Commands: []*cli.Command{
			databaseSubCmd(),
			quizSubCmd(),
		},
	}
}

func databaseSubCmd() *cli.Command {
	return &cli.Command{
		Name:  "database",
		Usage: "inspect database connection",
		Commands: []*cli.Command{
			newDatabaseInfoCmd(),
			newDatabasePingCmd(),
		},
	}
}

func quizSubCmd() *cli.Command {
	return &cli.Command{
		Name:  "quiz",
		Usage: "manage quizzes",
		Commands: []*cli.Command{
			newListQuizzesCmd(),
			newShowQuizCmd(),
			newAddQuizCmd(),
			newDeleteQuizCmd(),
		},
	}
}
