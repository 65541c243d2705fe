// Package logger provides verbose logging for the NordVPN CLI.
// When verbose mode is enabled via the --verbose flag, debug messages
// are printed to stderr to help users follow server selection and
// Tunnelblick control.
package logger

import (
	"io"
	"os"
	"sync"

	"github.com/rs/zerolog"
)

var (
	mu  sync.RWMutex
	log = newLogger(os.Stderr, zerolog.WarnLevel)
)

func newLogger(w io.Writer, level zerolog.Level) zerolog.Logger {
	console := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: "15:04:05",
	}
	return zerolog.New(console).Level(level).With().Timestamp().Logger()
}

// SetVerbose enables or disables verbose logging.
// Verbose mode lowers the level to debug; otherwise only warnings print.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	if v {
		log = log.Level(zerolog.DebugLevel)
	} else {
		log = log.Level(zerolog.WarnLevel)
	}
}

// IsVerbose returns true if verbose mode is enabled.
func IsVerbose() bool {
	mu.RLock()
	defer mu.RUnlock()
	return log.GetLevel() <= zerolog.DebugLevel
}

// SetOutput sets the output writer for logs.
// Defaults to os.Stderr. Useful for testing.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	log = newLogger(w, log.GetLevel())
}

// Debug logs a message when verbose mode is enabled.
func Debug(format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	log.Debug().Msgf(format, args...)
}

// Info logs an informational message when verbose mode is enabled.
func Info(format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	log.Info().Msgf(format, args...)
}

// Warn logs a warning message. Warnings print even without verbose mode.
func Warn(format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	log.Warn().Msgf(format, args...)
}
