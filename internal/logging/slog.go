package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

// SlogLogger adapts *slog.Logger to Logger.
type SlogLogger struct {
	l *slog.Logger
}

func NewSlogLogger(l *slog.Logger) *SlogLogger {
	return &SlogLogger{l: l}
}

// NewJSONLogger logs JSON records to stdout. The server uses it.
func NewJSONLogger(level string) *SlogLogger {
	h := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: ParseLevel(level)})
	return NewSlogLogger(slog.New(h))
}

// FileParams configures NewFileLogger.
type FileParams struct {
	FileName string
	Level    string
	// MaxSizeMB is the size at which the file is rotated.
	MaxSizeMB int
	// Mirror, when non-nil, receives a copy of every record.
	Mirror io.Writer
}

// NewFileLogger writes text records into a size-rotated log file. The
// interactive client owns stdout, so its logs go here instead.
func NewFileLogger(p FileParams) (*SlogLogger, io.Closer) {
	if !strings.HasSuffix(p.FileName, ".log") {
		p.FileName += ".log"
	}
	if p.MaxSizeMB <= 0 {
		p.MaxSizeMB = 10
	}

	lj := &lumberjack.Logger{
		Filename: p.FileName,
		MaxSize:  p.MaxSizeMB,
		Compress: true,
	}

	var w io.Writer = lj
	if p.Mirror != nil {
		w = io.MultiWriter(lj, p.Mirror)
	}

	h := slog.NewTextHandler(w, &slog.HandlerOptions{Level: ParseLevel(p.Level)})
	return NewSlogLogger(slog.New(h)), lj
}

// ParseLevel maps a level name to slog.Level; unknown names mean info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func (s *SlogLogger) Debug(ctx context.Context, msg string, args ...any) {
	s.l.DebugContext(ctx, msg, args...)
}

func (s *SlogLogger) Info(ctx context.Context, msg string, args ...any) {
	s.l.InfoContext(ctx, msg, args...)
}

func (s *SlogLogger) Warn(ctx context.Context, msg string, args ...any) {
	s.l.WarnContext(ctx, msg, args...)
}

func (s *SlogLogger) Error(ctx context.Context, msg string, args ...any) {
	s.l.ErrorContext(ctx, msg, args...)
}

func (s *SlogLogger) With(args ...any) Logger {
	return &SlogLogger{l: s.l.With(args...)}
}

// Discard returns a logger that drops everything. Handy in tests.
func Discard() Logger {
	return NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}
