package cli

//
// cli_test.go
// Copyright (C) 2025 Karol Będkowski <Karol Będkowski@kkomp>
//
// Distributed under terms of the GPLv3 license.
//

import (
	"context"
	"testing"

	"github.com/samber/do/v2"
	"gitlab.com/kabes/go-quizmaster/internal/aerr"
	"gitlab.com/kabes/go-quizmaster/internal/assert"
	"gitlab.com/kabes/go-quizmaster/internal/config"
	"gitlab.com/kabes/go-quizmaster/internal/db"
)

func TestInitializeLogger(t *testing.T) {
	assert.NoErr(t, initializeLogger("debug", "json"))

	err := initializeLogger("verbose", "json")
	assert.ErrSpec(t, err, aerr.ErrInvalidConf)
	assert.Equal(t, aerr.GetUserMessage(err), `unknown log level "verbose"`)
}

func TestCheckFormat(t *testing.T) {
	assert.Equal(t, checkFormat("logfmt"), "logfmt")
	assert.Equal(t, checkFormat("journald"), "journald")
	assert.True(t, checkFormat("xml") != "xml")
}

func TestRootCmdCommands(t *testing.T) {
	root := newRootCmd()

	names := map[string][]string{}
	for _, c := range root.Commands {
		for _, sub := range c.Commands {
			names[c.Name] = append(names[c.Name], sub.Name)
		}
	}

	assert.Equal(t, names["database"], []string{"info", "ping"})
	assert.Equal(t, names["quiz"], []string{"list", "show", "add", "delete"})
}

func TestCreateInjector(t *testing.T) {
	ctx := context.Background()
	settings := config.MapSettings{"DB_HOST": "db.internal", "DB_PORT": "5433"}

	injector := createInjector(ctx, settings, config.NewDebugFLags("do"))
	defer shutdownInjector(ctx, injector)

	typed := do.MustInvoke[*db.Database](injector)
	named := do.MustInvokeNamed[*db.Database](injector.Scope("command"), db.DatabaseConnection)

	assert.Same(t, typed, named)
	assert.Equal(t, typed.Config().Host, "db.internal")
	assert.Equal(t, typed.Config().Port, 5433)
}
