/*
NAME
  diagnostics.go

DESCRIPTION
  diagnostics.go wires an optional rotating file-backed logger for
  applications embedding the codec that want durable logs from long
  encode/decode runs without writing their own logging.Logger.

AUTHOR
  PXF contributors

LICENSE
  Copyright (C) 2026 the PXF contributors. All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the PXF contributors.
*/

// Package diagnostics provides an optional rotating-file logger for
// applications embedding the codec that do not want to supply their
// own logging.Logger.
package diagnostics

import (
	"github.com/ausocean/utils/logging"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Rotation defaults chosen for long-running encode/decode soak tests.
const (
	DefaultMaxSizeMB  = 100
	DefaultMaxBackups = 5
	DefaultMaxAgeDays = 28
)

// FileLoggerOptions configures NewFileLogger.
type FileLoggerOptions struct {
	Path       string
	Level      int8
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Suppress   bool
}

// NewFileLogger returns a logging.Logger that writes to a
// lumberjack-rotated file at opts.Path, applying default rotation
// limits for any zero field.
func NewFileLogger(opts FileLoggerOptions) logging.Logger {
	if opts.MaxSizeMB == 0 {
		opts.MaxSizeMB = DefaultMaxSizeMB
	}
	if opts.MaxBackups == 0 {
		opts.MaxBackups = DefaultMaxBackups
	}
	if opts.MaxAgeDays == 0 {
		opts.MaxAgeDays = DefaultMaxAgeDays
	}
	fileLog := &lumberjack.Logger{
		Filename:   opts.Path,
		MaxSize:    opts.MaxSizeMB,
		MaxBackups: opts.MaxBackups,
		MaxAge:     opts.MaxAgeDays,
	}
	return logging.New(opts.Level, fileLog, opts.Suppress)
}
