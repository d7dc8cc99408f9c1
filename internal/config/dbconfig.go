package config

//
// dbconfig.go
// Copyright (C) 2025 Karol Będkowski <Karol Będkowski@kkomp>
//
// Distributed under terms of the GPLv3 license.
//

import (
	"fmt"
	"strings"

	"gitlab.com/kabes/go-quizmaster/internal/aerr"
)

const (
	KeyDBHost     = "DB_HOST"
	KeyDBPort     = "DB_PORT"
	KeyDBUser     = "DB_USER"
	KeyDBPassword = "DB_PASSWORD"
	KeyDBName     = "DB_NAME"

	DefaultDBHost     = "localhost"
	DefaultDBPort     = 5432
	DefaultDBUser     = "postgres"
	DefaultDBPassword = "postgres"
	DefaultDBName     = "quiz_master"
)

const maxPort = 65535

// DBConfig is configuration of connection pool.
type DBConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
}

// LoadDBConfig read DB_* settings; missing settings get default values.
func LoadDBConfig(s Settings) (DBConfig, error) {
	port, err := Int(s, KeyDBPort, DefaultDBPort)
	if err != nil {
		return DBConfig{}, err
	}

	if port < 1 || port > maxPort {
		return DBConfig{}, aerr.ErrInvalidConf.WithUserMsg("invalid %s value; port out of range", KeyDBPort).
			WithMeta("value", port)
	}

	return DBConfig{
		Host:     String(s, KeyDBHost, DefaultDBHost),
		Port:     port,
		User:     String(s, KeyDBUser, DefaultDBUser),
		Password: String(s, KeyDBPassword, DefaultDBPassword),
		Database: String(s, KeyDBName, DefaultDBName),
	}, nil
}

// ConnString build keyword/value connection string. Every value is quoted so it is
// passed to the driver unchanged (socket directories, spaces, quotes).
func (d DBConfig) ConnString() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s",
		quoteConnValue(d.Host), d.Port, quoteConnValue(d.User),
		quoteConnValue(d.Password), quoteConnValue(d.Database))
}

// String return description of configuration without password.
func (d DBConfig) String() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=*** database=%s",
		d.Host, d.Port, d.User, d.Database)
}

var connValueEscaper = strings.NewReplacer(`\`, `\\`, `'`, `\'`)

func quoteConnValue(v string) string {
	return "'" + connValueEscaper.Replace(v) + "'"
}
