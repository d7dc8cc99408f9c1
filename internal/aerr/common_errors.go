package aerr

// common_errors.go
// Copyright (C) 2025 Karol Będkowski <Karol Będkowski@kkomp>
//
// Distributed under terms of the GPLv3 license.

// Tags used to classify errors.
const (
	InternalError      = "internal error"
	ValidationError    = "validation error"
	DataError          = "data error"
	ConfigurationError = "configuration error"
)

// Sentinels; use ApplyFor to wrap underlying error and errors.Is to check kind.
var (
	ErrValidation  = NewSimple("validation failed").WithTag(ValidationError)
	ErrInvalidConf = NewSimple("invalid configuration").WithTag(ConfigurationError)
	ErrDatabase    = NewSimple("database error").WithTag(InternalError).WithUserMsg("database error")
	ErrNotFound    = NewSimple("not found").WithTag(DataError).WithUserMsg("not found")
)
