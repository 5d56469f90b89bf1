package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/GhostWriters/dotenv/internal/console"

	"github.com/lmittmann/tint"
)

// Custom log levels. Notice is the default console level.
const (
	LevelTrace  = slog.Level(-8)
	LevelDebug  = slog.LevelDebug
	LevelInfo   = slog.Level(-2)
	LevelNotice = slog.LevelInfo
	LevelWarn   = slog.LevelWarn
	LevelError  = slog.LevelError
	LevelFatal  = slog.Level(12)
)

// LevelVar allows dynamic changing of the console log level
var LevelVar = new(slog.LevelVar)

// FileLevelVar is the level of the log file handler.
var FileLevelVar = new(slog.LevelVar)

func init() {
	LevelVar.Set(LevelNotice)
	FileLevelVar.Set(LevelInfo)
}

// SetLevel changes the console level. The file level follows it when it is
// more verbose than Info.
func SetLevel(level slog.Level) {
	LevelVar.Set(level)
	if level < LevelInfo {
		FileLevelVar.Set(level)
	} else {
		FileLevelVar.Set(LevelInfo)
	}
}

const (
	ansiReset  = "\x1b[0m"
	ansiBlue   = "\x1b[34m"
	ansiGreen  = "\x1b[32m"
	ansiYellow = "\x1b[33m"
	ansiRed    = "\x1b[31m"
	ansiRedBg  = "\x1b[41m\x1b[37m"
)

var levelNames = map[slog.Level]string{
	LevelTrace:  "[TRACE ]",
	LevelDebug:  "[DEBUG ]",
	LevelInfo:   "[INFO  ]",
	LevelNotice: "[NOTICE]",
	LevelWarn:   "[WARN  ]",
	LevelError:  "[ERROR ]",
	LevelFatal:  "[FATAL ]",
}

var levelColors = map[slog.Level]string{
	LevelTrace:  ansiBlue,
	LevelDebug:  ansiBlue,
	LevelInfo:   ansiBlue,
	LevelNotice: ansiGreen,
	LevelWarn:   ansiYellow,
	LevelError:  ansiRed,
	LevelFatal:  ansiRedBg,
}

// replaceLevel renders the level attribute with fixed width names,
// colored when color is true.
func replaceLevel(color bool) func([]string, slog.Attr) slog.Attr {
	return func(groups []string, a slog.Attr) slog.Attr {
		if a.Key != slog.LevelKey {
			return a
		}
		level := a.Value.Any().(slog.Level)
		name, ok := levelNames[level]
		if !ok {
			name = "[" + level.String() + "]"
		}
		if color {
			name = levelColors[level] + name + ansiReset
		}
		a.Value = slog.StringValue(name + "  ")
		return a
	}
}

// NewHandler returns a tint handler writing to w at the given level.
func NewHandler(w io.Writer, level slog.Leveler, color bool) slog.Handler {
	return tint.NewHandler(w, &tint.Options{
		Level:       level,
		TimeFormat:  "2006-01-02 15:04:05",
		NoColor:     !color,
		ReplaceAttr: replaceLevel(color),
	})
}

// NewLogger builds the application logger: a console handler on stderr and,
// when logFile is not empty, a plain handler appending to that file.
// The returned function closes the log file.
func NewLogger(logFile string) (*slog.Logger, func()) {
	handlers := []slog.Handler{
		NewHandler(os.Stderr, LevelVar, console.IsTerminal(os.Stderr)),
	}

	closeFn := func() {}
	if logFile != "" {
		f, err := openLogFile(logFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open log file: %v\n", err)
		} else {
			handlers = append(handlers, NewHandler(f, FileLevelVar, false))
			closeFn = func() { _ = f.Close() }
		}
	}

	return slog.New(&FanoutHandler{handlers: handlers}), closeFn
}

func openLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}
	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
}

// FanoutHandler broadcasts records to multiple handlers
type FanoutHandler struct {
	handlers []slog.Handler
}

func NewFanoutHandler(handlers ...slog.Handler) *FanoutHandler {
	return &FanoutHandler{handlers: handlers}
}

func (h *FanoutHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, handler := range h.handlers {
		if handler.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (h *FanoutHandler) Handle(ctx context.Context, r slog.Record) error {
	var firstErr error
	for _, handler := range h.handlers {
		if handler.Enabled(ctx, r.Level) {
			if err := handler.Handle(ctx, r.Clone()); err != nil && firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

func (h *FanoutHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	newHandlers := make([]slog.Handler, len(h.handlers))
	for i, handler := range h.handlers {
		newHandlers[i] = handler.WithAttrs(attrs)
	}
	return &FanoutHandler{handlers: newHandlers}
}

func (h *FanoutHandler) WithGroup(name string) slog.Handler {
	newHandlers := make([]slog.Handler, len(h.handlers))
	for i, handler := range h.handlers {
		newHandlers[i] = handler.WithGroup(name)
	}
	return &FanoutHandler{handlers: newHandlers}
}

// log formats msg with args when it contains verbs and splits multi-line
// messages into one record per line.
func log(ctx context.Context, level slog.Level, msg string, args ...any) {
	h := slog.Default().Handler()
	if !h.Enabled(ctx, level) {
		return
	}

	if len(args) > 0 && strings.Contains(msg, "%") {
		msg = fmt.Sprintf(msg, args...)
		args = nil
	}

	now := time.Now()
	for i, line := range strings.Split(msg, "\n") {
		r := slog.NewRecord(now, level, line, 0)
		if i == 0 {
			r.Add(args...)
		}
		_ = h.Handle(ctx, r)
	}
}

func Trace(ctx context.Context, msg string, args ...any) {
	log(ctx, LevelTrace, msg, args...)
}

func Debug(ctx context.Context, msg string, args ...any) {
	log(ctx, LevelDebug, msg, args...)
}

func Info(ctx context.Context, msg string, args ...any) {
	log(ctx, LevelInfo, msg, args...)
}

func Notice(ctx context.Context, msg string, args ...any) {
	log(ctx, LevelNotice, msg, args...)
}

func Warn(ctx context.Context, msg string, args ...any) {
	log(ctx, LevelWarn, msg, args...)
}

func Error(ctx context.Context, msg string, args ...any) {
	log(ctx, LevelError, msg, args...)
}

// Fatal logs a message at LevelFatal and panics with FatalError so the
// main run loop can clean up before exiting.
func Fatal(ctx context.Context, msg string, args ...any) {
	log(ctx, LevelFatal, msg, args...)
	panic(FatalError{})
}

// FatalError is a special error used to panic from Fatal logger calls
type FatalError struct{}
