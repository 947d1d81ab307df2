// Package audit provides the append-only audit log for update cycles.
//
// Every phase transition and tool invocation is written to a timestamped log
// file, and the console mirrors the same stream at a coarser verbosity. The
// file sink always records debug detail; the console level defaults to info
// and drops to debug in verbose mode.
//
// Components log through the Sink interface so tests can substitute a
// recording sink.
package audit

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Sink is the logging interface components write audit entries through.
//
// The production implementation is *Log. Tests use *Recorder to capture
// entries for assertions.
type Sink interface {
	// Debugf writes a debug level entry (file only at default verbosity).
	Debugf(format string, args ...any)

	// Infof writes an info level entry (file and console).
	Infof(format string, args ...any)

	// Warnf writes a warning level entry (file and console).
	Warnf(format string, args ...any)

	// Errorf writes an error level entry (file and console).
	Errorf(format string, args ...any)
}

// Options configures a new audit Log.
//
// Fields:
//   - FilePath: Path of the append-only audit log file; empty disables the file sink
//   - Console: Console writer; defaults to os.Stderr when nil
//   - ConsoleLevel: Minimum level mirrored to the console
type Options struct {
	// FilePath is the audit log file path. Empty disables file logging.
	FilePath string

	// Console receives the mirrored stream. Defaults to os.Stderr.
	Console io.Writer

	// ConsoleLevel is the minimum level mirrored to the console.
	ConsoleLevel zapcore.Level
}

// Log is the production audit sink backed by zap.
//
// It tees every entry into an append-only file core (debug level) and a
// console core at the configured coarser level.
type Log struct {
	sugar        *zap.SugaredLogger
	file         *os.File
	consoleLevel zap.AtomicLevel
}

// fileEncoder builds the encoder for the audit file: ISO8601 timestamps,
// plain capital levels (no ANSI codes in the file).
func fileEncoder() zapcore.Encoder {
	return zapcore.NewConsoleEncoder(zapcore.EncoderConfig{
		MessageKey:       "message",
		LevelKey:         "level",
		TimeKey:          "time",
		LineEnding:       zapcore.DefaultLineEnding,
		EncodeLevel:      zapcore.CapitalLevelEncoder,
		EncodeTime:       zapcore.ISO8601TimeEncoder,
		EncodeDuration:   zapcore.StringDurationEncoder,
		ConsoleSeparator: ", ",
	})
}

// consoleEncoder builds the encoder for the console mirror: colored levels,
// no timestamps (the terminal reader does not need them, the file keeps them).
func consoleEncoder() zapcore.Encoder {
	return zapcore.NewConsoleEncoder(zapcore.EncoderConfig{
		MessageKey:       "message",
		LevelKey:         "level",
		LineEnding:       zapcore.DefaultLineEnding,
		EncodeLevel:      zapcore.CapitalColorLevelEncoder,
		EncodeDuration:   zapcore.StringDurationEncoder,
		ConsoleSeparator: ", ",
	})
}

// New creates an audit Log from the given options.
//
// It performs the following operations:
//   - Opens the audit file in append mode when FilePath is set
//   - Builds a debug-level file core and a console core at ConsoleLevel
//   - Tees both cores into one logger
//
// Parameters:
//   - opts: Audit log configuration
//
// Returns:
//   - *Log: The audit log ready for writing
//   - error: When the audit file cannot be opened; returns nil on success
func New(opts Options) (*Log, error) {
	console := opts.Console
	if console == nil {
		console = os.Stderr
	}

	consoleLevel := zap.NewAtomicLevelAt(opts.ConsoleLevel)
	cores := []zapcore.Core{
		zapcore.NewCore(consoleEncoder(), zapcore.AddSync(console), consoleLevel),
	}

	var file *os.File
	if opts.FilePath != "" {
		if dir := filepath.Dir(opts.FilePath); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("failed to create audit log directory %s: %w", dir, err)
			}
		}
		f, err := os.OpenFile(opts.FilePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, fmt.Errorf("failed to open audit log %s: %w", opts.FilePath, err)
		}
		file = f
		cores = append(cores, zapcore.NewCore(fileEncoder(), zapcore.AddSync(f), zapcore.DebugLevel))
	}

	logger := zap.New(zapcore.NewTee(cores...))

	return &Log{
		sugar:        logger.Sugar(),
		file:         file,
		consoleLevel: consoleLevel,
	}, nil
}

// NewNop returns an audit Log that discards everything.
//
// Returns:
//   - *Log: A no-op audit log, useful as a default and in tests
func NewNop() *Log {
	return &Log{
		sugar:        zap.NewNop().Sugar(),
		consoleLevel: zap.NewAtomicLevelAt(zapcore.InfoLevel),
	}
}

// Debugf writes a debug level entry.
func (l *Log) Debugf(format string, args ...any) {
	l.sugar.Debugf(format, args...)
}

// Infof writes an info level entry.
func (l *Log) Infof(format string, args ...any) {
	l.sugar.Infof(format, args...)
}

// Warnf writes a warning level entry.
func (l *Log) Warnf(format string, args ...any) {
	l.sugar.Warnf(format, args...)
}

// Errorf writes an error level entry.
func (l *Log) Errorf(format string, args ...any) {
	l.sugar.Errorf(format, args...)
}

// SetConsoleLevel changes the minimum level mirrored to the console.
//
// The audit file keeps recording debug detail regardless.
//
// Parameters:
//   - level: New minimum console level
func (l *Log) SetConsoleLevel(level zapcore.Level) {
	l.consoleLevel.SetLevel(level)
}

// Sync flushes buffered entries.
//
// Returns:
//   - error: Any error reported by the underlying cores
func (l *Log) Sync() error {
	return l.sugar.Sync()
}

// Close flushes and closes the audit file.
//
// Returns:
//   - error: When closing the file fails; returns nil otherwise
func (l *Log) Close() error {
	_ = l.sugar.Sync()
	if l.file != nil {
		return l.file.Close()
	}
	return nil
}

// ParseLevel converts a string into a zap log level.
//
// Parameters:
//   - s: Level name ("debug", "info", "warn", "error"), case-insensitive
//
// Returns:
//   - zapcore.Level: The parsed level, info when unrecognized
//   - bool: true if the input named a known level
func ParseLevel(s string) (zapcore.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return zapcore.DebugLevel, true
	case "info":
		return zapcore.InfoLevel, true
	case "warn", "warning":
		return zapcore.WarnLevel, true
	case "error":
		return zapcore.ErrorLevel, true
	default:
		return zapcore.InfoLevel, false
	}
}
