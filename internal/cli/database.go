package cli

//
// database.go
// Copyright (C) 2025 Karol Będkowski <Karol Będkowski@kkomp>
//
// Distributed under terms of the GPLv3 license.
//

import (
	"context"
	"fmt"
	"time"

	"github.com/samber/do/v2"
	"github.com/urfave/cli/v3"
	"gitlab.com/kabes/go-quizmaster/internal/aerr"
	"gitlab.com/kabes/go-quizmaster/internal/config"
	"gitlab.com/kabes/go-quizmaster/internal/db"
)

func newDatabaseInfoCmd() *cli.Command {
	return &cli.Command{
		Name:   "info",
		Usage:  "show effective database configuration",
		Action: wrap(databaseInfoCmd),
	}
}

//nolint:forbidigo
func databaseInfoCmd(_ context.Context, clicmd *cli.Command, injector do.Injector) error {
	database, err := do.InvokeNamed[*db.Database](injector, db.DatabaseConnection)
	if err != nil {
		return aerr.Wrapf(err, "get database failed")
	}

	conf := database.Config()

	fmt.Printf("%-10s %s\n", "Host:", conf.Host)
	fmt.Printf("%-10s %d\n", "Port:", conf.Port)
	fmt.Printf("%-10s %s\n", "User:", conf.User)
	fmt.Printf("%-10s %s\n", "Password:", "***")
	fmt.Printf("%-10s %s\n", "Database:", conf.Database)

	if config.NewDebugFLags(clicmd.String("debug")).HasFlag(config.DebugDo) {
		explainInjector(injector)
	}

	return nil
}

//------------------------------------------------------------------------------

func newDatabasePingCmd() *cli.Command {
	return &cli.Command{
		Name:  "ping",
		Usage: "check connection to database",
		Flags: []cli.Flag{
			&cli.DurationFlag{Name: "timeout", Value: 5 * time.Second, Usage: "ping timeout"}, //nolint:mnd
		},
		Action: wrap(databasePingCmd),
	}
}

//nolint:forbidigo
func databasePingCmd(ctx context.Context, clicmd *cli.Command, injector do.Injector) error {
	database, err := do.Invoke[*db.Database](injector)
	if err != nil {
		return aerr.Wrapf(err, "get database failed")
	}

	ctx, cancel := context.WithTimeout(ctx, clicmd.Duration("timeout"))
	defer cancel()

	start := time.Now()

	if err := database.Ping(ctx); err != nil {
		return err
	}

	fmt.Printf("Database %s: OK (%s)\n", database.Config(), time.Since(start).Round(time.Millisecond))

	return nil
}
