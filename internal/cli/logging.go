package cli

//
// logging.go
// Copyright (C) 2025 Karol Będkowski <Karol Będkowski@kkomp>
//
// Distributed under terms of the GPLv3 license.
//

import (
	"fmt"
	"io"
	stdlog "log"
	"maps"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/journald"
	"github.com/rs/zerolog/log"
	"gitlab.com/kabes/go-quizmaster/internal/aerr"
)

// logWriters map --log.format value to writer constructor.
var logWriters = map[string]func() io.Writer{
	"console":  consoleWriter,
	"logfmt":   logfmtWriter,
	"json":     func() io.Writer { return os.Stderr },
	"journald": journald.NewJournalDWriter,
}

// initializeLogger configure global logger. Logger is also used for contexts without own logger.
func initializeLogger(level, format string) error {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || lvl == zerolog.NoLevel {
		if err == nil {
			err = aerr.New("empty level")
		}

		return aerr.ApplyFor(aerr.ErrInvalidConf, err, "", fmt.Sprintf("unknown log level %q", level))
	}

	zerolog.ErrorMarshalFunc = aerr.ErrorMarshalFunc //nolint:reassign
	zerolog.SetGlobalLevel(lvl)

	newWriter := logWriters[checkFormat(format)]
	log.Logger = zerolog.New(newWriter()).With().Timestamp().Caller().Str("app", "quizmaster").Logger()
	zerolog.DefaultContextLogger = &log.Logger

	// libraries using standard logger (pgx stdlib) go through zerolog
	stdlog.SetFlags(0)
	stdlog.SetOutput(log.Logger)

	return nil
}

// checkFormat return known format; for unknown one use console when stderr is terminal or logfmt.
func checkFormat(format string) string {
	format = strings.ToLower(format)
	if _, ok := logWriters[format]; ok {
		return format
	}

	if format != "" {
		fmt.Fprintf(os.Stderr, "unknown log format %q; supported: %s\n",
			format, strings.Join(slices.Sorted(maps.Keys(logWriters)), ", "))
	}

	if stderrIsTerminal() {
		return "console"
	}

	return "logfmt"
}

func stderrIsTerminal() bool {
	fileInfo, err := os.Stderr.Stat()

	return err == nil && fileInfo.Mode()&os.ModeCharDevice != 0
}

func consoleWriter() io.Writer {
	terminal := stderrIsTerminal()

	writer := zerolog.ConsoleWriter{ //nolint:exhaustruct
		Out:        os.Stderr,
		NoColor:    !terminal,
		TimeFormat: time.RFC3339,
	}

	if terminal {
		writer.TimeFormat = time.TimeOnly
	}

	return writer
}

// logfmtWriter write every field as key=value.
func logfmtWriter() io.Writer {
	value := func(i any) string {
		if i == nil {
			return ""
		}

		s := fmt.Sprint(i)
		if s == "" || strings.ContainsAny(s, " \"=\t") {
			return strconv.Quote(s)
		}

		return s
	}

	prefixed := func(key string) zerolog.Formatter {
		return func(i any) string {
			if i == nil {
				return ""
			}

			return key + "=" + value(i)
		}
	}

	return zerolog.ConsoleWriter{ //nolint:exhaustruct
		Out:                 os.Stderr,
		NoColor:             true,
		TimeFormat:          time.RFC3339,
		FormatTimestamp:     prefixed("ts"),
		FormatLevel:         prefixed("level"),
		FormatCaller:        prefixed("caller"),
		FormatMessage:       func(i any) string { return "msg=" + strconv.Quote(fmt.Sprint(i)) },
		FormatFieldName:     func(i any) string { return fmt.Sprint(i) + "=" },
		FormatFieldValue:    value,
		FormatErrFieldName:  func(i any) string { return fmt.Sprint(i) + "=" },
		FormatErrFieldValue: value,
	}
}
