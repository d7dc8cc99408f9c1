package config

//
// settings.go
// Copyright (C) 2025 Karol Będkowski <Karol Będkowski@kkomp>
//
// Distributed under terms of the GPLv3 license.
//

import (
	"errors"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gitlab.com/kabes/go-quizmaster/internal/aerr"
)

// DefaultEnvFile is loaded when no env file is given explicitly and the file exists.
const DefaultEnvFile = ".env"

// Settings give access to named configuration values.
type Settings interface {
	// Lookup return value for `key` and true when value is set (also when it is empty).
	Lookup(key string) (string, bool)
}

// String return setting `key` or `def` when setting is not set.
func String(s Settings, key, def string) string {
	if v, ok := s.Lookup(key); ok {
		return v
	}

	return def
}

// Int return setting `key` parsed as int or `def` when setting is not set.
func Int(s Settings, key string, def int) (int, error) {
	v, ok := s.Lookup(key)
	if !ok {
		return def, nil
	}

	i, err := strconv.Atoi(v)
	if err != nil {
		return def, aerr.ApplyFor(aerr.ErrInvalidConf, err, "", "invalid "+key+" value; expected number").
			WithMeta("key", key, "value", v)
	}

	return i, nil
}

//-------------------------------------------------------------

// MapSettings is static settings source.
type MapSettings map[string]string

func (m MapSettings) Lookup(key string) (string, bool) {
	v, ok := m[key]

	return v, ok
}

//-------------------------------------------------------------

// EnvSettings read values from process environment; values from env files are used
// only for keys missing in environment.
type EnvSettings struct {
	fileValues map[string]string
	lookupEnv  func(string) (string, bool)
}

// NewEnvSettings create settings backed by environment and optional env files.
// When no `envfiles` are given, DefaultEnvFile is loaded if exists.
func NewEnvSettings(envfiles ...string) (*EnvSettings, error) {
	if len(envfiles) == 0 {
		if _, err := os.Stat(DefaultEnvFile); err == nil {
			envfiles = []string{DefaultEnvFile}
		} else if !errors.Is(err, fs.ErrNotExist) {
			return nil, aerr.ApplyFor(aerr.ErrInvalidConf, err, "", "can't access "+DefaultEnvFile)
		}
	}

	values := map[string]string{}

	if len(envfiles) > 0 {
		var err error

		values, err = godotenv.Read(envfiles...)
		if err != nil {
			return nil, aerr.ApplyFor(aerr.ErrInvalidConf, err, "", "load env file failed").
				WithMeta("files", envfiles)
		}
	}

	return &EnvSettings{
		fileValues: values,
		lookupEnv:  os.LookupEnv,
	}, nil
}

func (e *EnvSettings) Lookup(key string) (string, bool) {
	if v, ok := e.lookupEnv(key); ok {
		return v, true
	}

	v, ok := e.fileValues[key]

	return v, ok
}
