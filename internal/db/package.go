package db

//
// package.go
// Copyright (C) 2025 Karol Będkowski <Karol Będkowski@kkomp>
//
// Distributed under terms of the GPLv3 license.
//

import "github.com/samber/do/v2"

// DatabaseConnection is name under which *Database is also available in injector.
const DatabaseConnection = "DATABASE_CONNECTION"

// Package register lazy *Database in injector (root scope; visible in all child scopes)
// and alias it under DatabaseConnection. Require config.Settings in injector.
//
//nolint:gochecknoglobals
var Package = do.Package(
	do.Lazy(NewDatabaseI),
	do.BindNamed[*Database, *Database](do.NameOf[*Database](), DatabaseConnection),
)
