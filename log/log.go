// Copyright (c) 2025 The NomadLink developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package log

import (
	"io"
	"log/slog"
	"os"
	"sync/atomic"
)

// Logger is the logging surface used across the module. It is a thin
// wrapper over log/slog with key/value context.
type Logger interface {
	Debug(msg string, ctx ...any)
	Info(msg string, ctx ...any)
	Warn(msg string, ctx ...any)
	Error(msg string, ctx ...any)
	With(ctx ...any) Logger
}

// logger resolves the root handler at call time, so loggers created at
// package init pick up a handler installed later via SetDefault.
type logger struct {
	ctx []any
}

func (l *logger) out() *slog.Logger {
	out := rootSlog.Load()
	if len(l.ctx) > 0 {
		out = out.With(l.ctx...)
	}
	return out
}

func (l *logger) Debug(msg string, ctx ...any) { l.out().Debug(msg, ctx...) }
func (l *logger) Info(msg string, ctx ...any)  { l.out().Info(msg, ctx...) }
func (l *logger) Warn(msg string, ctx ...any)  { l.out().Warn(msg, ctx...) }
func (l *logger) Error(msg string, ctx ...any) { l.out().Error(msg, ctx...) }

func (l *logger) With(ctx ...any) Logger {
	merged := make([]any, 0, len(l.ctx)+len(ctx))
	merged = append(merged, l.ctx...)
	merged = append(merged, ctx...)
	return &logger{ctx: merged}
}

var rootSlog atomic.Pointer[slog.Logger]

func init() {
	rootSlog.Store(slog.New(DiscardHandler()))
}

// Root returns the root logger.
func Root() Logger {
	return &logger{}
}

// SetDefault sets the root logger from the given handler.
func SetDefault(handler slog.Handler) {
	rootSlog.Store(slog.New(handler))
}

// WithContext returns the root logger extended with the given context.
func WithContext(ctx ...any) Logger {
	return Root().With(ctx...)
}

// NewTextHandler returns a text handler writing to w at the given level.
func NewTextHandler(w io.Writer, level slog.Level) slog.Handler {
	return slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
}

// NewJSONHandler returns a JSON handler writing to w at the given level.
func NewJSONHandler(w io.Writer, level slog.Level) slog.Handler {
	return slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
}

// StderrHandler is a convenience text handler at info level.
func StderrHandler() slog.Handler {
	return NewTextHandler(os.Stderr, slog.LevelInfo)
}
