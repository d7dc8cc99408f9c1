package config

//
// dbconfig_test.go
// Copyright (C) 2025 Karol Będkowski <Karol Będkowski@kkomp>
//
// Distributed under terms of the GPLv3 license.
//

import (
	"testing"

	"gitlab.com/kabes/go-quizmaster/internal/aerr"
	"gitlab.com/kabes/go-quizmaster/internal/assert"
)

func TestLoadDBConfigDefaults(t *testing.T) {
	conf, err := LoadDBConfig(MapSettings{})
	assert.NoErr(t, err)
	assert.Equal(t, conf, DBConfig{
		Host:     "localhost",
		Port:     5432,
		User:     "postgres",
		Password: "postgres",
		Database: "quiz_master",
	})
}

func TestLoadDBConfigPartial(t *testing.T) {
	conf, err := LoadDBConfig(MapSettings{"DB_HOST": "db.internal", "DB_PORT": "5433"})
	assert.NoErr(t, err)
	assert.Equal(t, conf, DBConfig{
		Host:     "db.internal",
		Port:     5433,
		User:     "postgres",
		Password: "postgres",
		Database: "quiz_master",
	})
}

func TestLoadDBConfigVerbatim(t *testing.T) {
	settings := MapSettings{
		"DB_HOST":     " pg-1.example.com",
		"DB_PORT":     "6543",
		"DB_USER":     "Quiz Admin",
		"DB_PASSWORD": "p@ss:w/rd ",
		"DB_NAME":     "quiz_master_test",
	}

	conf, err := LoadDBConfig(settings)
	assert.NoErr(t, err)
	assert.Equal(t, conf.Host, " pg-1.example.com")
	assert.Equal(t, conf.Port, 6543)
	assert.Equal(t, conf.User, "Quiz Admin")
	assert.Equal(t, conf.Password, "p@ss:w/rd ")
	assert.Equal(t, conf.Database, "quiz_master_test")
}

func TestLoadDBConfigEachSetting(t *testing.T) {
	defaults := DBConfig{
		Host: DefaultDBHost, Port: DefaultDBPort, User: DefaultDBUser,
		Password: DefaultDBPassword, Database: DefaultDBName,
	}

	tests := []struct {
		key   string
		value string
		mod   func(*DBConfig)
	}{
		{KeyDBHost, "h1", func(c *DBConfig) { c.Host = "h1" }},
		{KeyDBPort, "1", func(c *DBConfig) { c.Port = 1 }},
		{KeyDBUser, "u1", func(c *DBConfig) { c.User = "u1" }},
		{KeyDBPassword, "", func(c *DBConfig) { c.Password = "" }},
		{KeyDBName, "n1", func(c *DBConfig) { c.Database = "n1" }},
	}

	for _, tc := range tests {
		t.Run(tc.key, func(t *testing.T) {
			conf, err := LoadDBConfig(MapSettings{tc.key: tc.value})
			assert.NoErr(t, err)
			want := defaults
			tc.mod(&want)
			assert.Equal(t, conf, want)
		})
	}
}

func TestLoadDBConfigInvalidPort(t *testing.T) {
	for _, port := range []string{"abc", "", "0", "70000", "-1"} {
		t.Run(port, func(t *testing.T) {
			_, err := LoadDBConfig(MapSettings{"DB_PORT": port})
			assert.ErrSpec(t, err, aerr.ErrInvalidConf)
			assert.True(t, aerr.HasTag(err, aerr.ConfigurationError))
		})
	}
}

func TestDBConfigConnString(t *testing.T) {
	conf := DBConfig{Host: "db.internal", Port: 5433, User: "postgres", Password: "p@ss/1", Database: "quiz_master"}
	assert.Equal(t, conf.ConnString(),
		"host='db.internal' port=5433 user='postgres' password='p@ss/1' dbname='quiz_master'")
	assert.Equal(t, conf.String(), "host=db.internal port=5433 user=postgres password=*** database=quiz_master")
}

func TestDBConfigConnStringQuoting(t *testing.T) {
	tests := []struct {
		name string
		conf DBConfig
		want string
	}{
		{
			"socket dir",
			DBConfig{Host: "/var/run/postgresql", Port: 5432, User: "postgres", Password: "", Database: "quiz_master"},
			"host='/var/run/postgresql' port=5432 user='postgres' password='' dbname='quiz_master'",
		},
		{
			"spaces",
			DBConfig{Host: " pg-1.example.com", Port: 6543, User: "Quiz Admin", Password: "p w ", Database: "q"},
			"host=' pg-1.example.com' port=6543 user='Quiz Admin' password='p w ' dbname='q'",
		},
		{
			"quote and backslash",
			DBConfig{Host: "h", Port: 1, User: "o'neil", Password: `a\b'c`, Database: "d"},
			`host='h' port=1 user='o\'neil' password='a\\b\'c' dbname='d'`,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.conf.ConnString(), tc.want)
		})
	}
}
