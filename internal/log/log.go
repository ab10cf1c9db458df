// Copyright 2024 The evmcfg Authors
// This file is part of the evmcfg library.
//
// The evmcfg library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The evmcfg library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the evmcfg library. If not, see <http://www.gnu.org/licenses/>.

// Package log is a small adaptation of go-ethereum's log package: a
// log/slog-backed logger exposing the same package-level Trace/Debug/
// Info/Warn/Error call shape, trimmed to what this repository's
// diagnostics actually need (no vmodule, no Splunk/JSON handlers, no
// glog-style verbosity tree).
package log

import (
	"context"
	"log/slog"
	"os"
)

// Level mirrors go-ethereum's log.Level, with an extra Trace rung below
// slog's own Debug.
type Level slog.Level

const (
	LevelTrace Level = Level(slog.LevelDebug) - 4
	LevelDebug Level = Level(slog.LevelDebug)
	LevelInfo  Level = Level(slog.LevelInfo)
	LevelWarn  Level = Level(slog.LevelWarn)
	LevelError Level = Level(slog.LevelError)
)

var root = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

// SetLevel adjusts the root logger's minimum emitted level.
func SetLevel(lvl Level) {
	root = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.Level(lvl)}))
}

func log(ctx context.Context, lvl Level, msg string, ctxPairs ...any) {
	root.Log(ctx, slog.Level(lvl), msg, ctxPairs...)
}

// Trace logs at the finest level — one call per symbolic-stack step, say.
func Trace(msg string, ctx ...any) { log(context.Background(), LevelTrace, msg, ctx...) }

// Debug logs analysis decisions (undecodable bytes, dropped edges).
func Debug(msg string, ctx ...any) { log(context.Background(), LevelDebug, msg, ctx...) }

// Info logs coarse progress (program parsed, N blocks found).
func Info(msg string, ctx ...any) { log(context.Background(), LevelInfo, msg, ctx...) }

// Warn logs a recoverable analysis anomaly.
func Warn(msg string, ctx ...any) { log(context.Background(), LevelWarn, msg, ctx...) }

// Error logs an unexpected condition that did not rise to a panic.
func Error(msg string, ctx ...any) { log(context.Background(), LevelError, msg, ctx...) }
