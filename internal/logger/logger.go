// Package logger wraps zerolog behind the small leveled API used across the
// application.
package logger

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

var log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()

// Init configures the global logger. Development uses a human-readable
// console writer; production emits JSON lines.
func Init(level zerolog.Level, output io.Writer, pretty bool) {
	if output == nil {
		output = os.Stdout
	}
	if pretty {
		output = zerolog.ConsoleWriter{Out: output}
	}
	log = zerolog.New(output).Level(level).With().Timestamp().Logger()
}

// ParseLogLevel parses a string log level, defaulting to info on anything
// unrecognized.
func ParseLogLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warning", "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// GetLevel returns the current log level.
func GetLevel() zerolog.Level {
	return log.GetLevel()
}

func Debug(format string, v ...interface{}) {
	log.Debug().Msgf(format, v...)
}

func Info(format string, v ...interface{}) {
	log.Info().Msgf(format, v...)
}

func Warning(format string, v ...interface{}) {
	log.Warn().Msgf(format, v...)
}

func Error(format string, v ...interface{}) {
	log.Error().Msgf(format, v...)
}

// Fatal logs an error message and exits the program.
func Fatal(format string, v ...interface{}) {
	log.Fatal().Msgf(format, v...)
}
