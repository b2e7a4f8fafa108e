// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

// Package logging constructs the charmbracelet/log loggers used by the jflat
// command-line tool.
package logging

import (
	"context"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
)

// Field names for structured log entries.
const (
	FieldError  = "error"
	FieldPath   = "path"
	FieldTokens = "tokens"
	FieldBytes  = "bytes"
	FieldQuery  = "query"
	FieldFormat = "format"
	FieldFlows  = "flows"
)

var (
	defaultMu     sync.Mutex
	defaultLogger *log.Logger
)

// New constructs a logger writing to stderr at the named level. Recognized
// levels are "debug", "info", "warn", "error", and "fatal", without regard to case;
// any other value selects "info".
func New(level string) *log.Logger { return NewWriter(os.Stderr, level) }

// NewWriter constructs a logger writing to w at the named level.
func NewWriter(w io.Writer, level string) *log.Logger {
	lg := log.NewWithOptions(w, log.Options{Prefix: "jflat"})
	lg.SetLevel(parseLevel(level))
	return lg
}

func parseLevel(level string) log.Level {
	level = strings.ToLower(level)
	if level == "warning" {
		return log.WarnLevel
	}
	if lvl, err := log.ParseLevel(level); err == nil {
		return lvl
	}
	return log.InfoLevel
}

// Default returns the package default logger, creating it at "info" level on
// first use.
func Default() *log.Logger {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	if defaultLogger == nil {
		defaultLogger = New("info")
	}
	return defaultLogger
}

// SetDefault replaces the package default logger.
func SetDefault(lg *log.Logger) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultLogger = lg
}

// SetLevel sets the level of the default logger.
func SetLevel(level string) { Default().SetLevel(parseLevel(level)) }

type loggerKey struct{}

// WithLogger returns a copy of ctx carrying lg.
func WithLogger(ctx context.Context, lg *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, lg)
}

// FromContext returns the logger carried by ctx, or the default logger.
func FromContext(ctx context.Context) *log.Logger {
	if ctx != nil {
		if lg, ok := ctx.Value(loggerKey{}).(*log.Logger); ok && lg != nil {
			return lg
		}
	}
	return Default()
}
