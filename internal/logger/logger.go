package logger

import (
	"fmt"
	"os"
	"time"

	"fyne.io/fyne/v2/data/binding"
	"github.com/rs/zerolog"

	"github.com/mangoba/admute/internal/constants"
)

// AppLogger writes to the terminal via zerolog and mirrors everything except
// debug output into an optional fyne string list for the UI log view.
type AppLogger struct {
	z           zerolog.Logger
	dataBinding binding.StringList
}

// New creates a logger. data may be nil (headless mode); debug output is
// console-only either way to keep the UI readable.
func New(verbose bool, data binding.StringList) *AppLogger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	cw := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: "15:04:05"}
	return &AppLogger{
		z:           zerolog.New(cw).Level(level).With().Timestamp().Logger(),
		dataBinding: data,
	}
}

// Info logs an informational message
func (l *AppLogger) Info(format string, args ...interface{}) {
	l.z.Info().Msgf(format, args...)
	l.append("INFO", format, args...)
}

// Warn logs a recoverable problem (actuator misses, empty template sets)
func (l *AppLogger) Warn(format string, args ...interface{}) {
	l.z.Warn().Msgf(format, args...)
	l.append("WARN", format, args...)
}

// Error logs an error message
func (l *AppLogger) Error(format string, args ...interface{}) {
	l.z.Error().Msgf(format, args...)
	l.append("ERROR", format, args...)
}

// Debug logs to the console only
func (l *AppLogger) Debug(format string, args ...interface{}) {
	l.z.Debug().Msgf(format, args...)
}

func (l *AppLogger) append(level, format string, args ...interface{}) {
	if l.dataBinding == nil {
		return
	}
	msg := fmt.Sprintf(format, args...)
	timestamp := time.Now().Format("15:04:05")
	l.dataBinding.Append(fmt.Sprintf("[%s] %s: %s", timestamp, level, msg))

	// Keep log size manageable
	list, _ := l.dataBinding.Get()
	if len(list) > constants.MaxLogLines {
		l.dataBinding.Set(list[len(list)-constants.MaxLogLines:])
	}
}
