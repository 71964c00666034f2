// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package telemetry is the logging and metrics surface cmd/blockdemo wires
// up; the library packages (block, slice, ...) neither take nor construct
// it. It holds a Logger interface
// in the teacher's own shape (With/Info/Warn/Error over zap.Field), backed
// by go.uber.org/zap, plus a narrow set of prometheus counters for the
// three operations worth observing in production: encode, extract and
// slice decode.
//
// The teacher's own log package wraps github.com/luxfi/log, an internal
// module not present anywhere in this module's dependency graph; rather
// than carry a require on a module nothing else here can resolve, this
// package talks to zap directly and keeps only the teacher's method
// shape, not its indirection through a second logging façade.
package telemetry

import (
	"go.uber.org/zap"
)

// Logger is the structured logging interface cmd/blockdemo logs through.
// Callers without a configured logger should use NoLog.
type Logger interface {
	With(fields ...zap.Field) Logger
	Info(msg string, fields ...zap.Field)
	Warn(msg string, fields ...zap.Field)
	Error(msg string, fields ...zap.Field)
}

// zapLogger adapts a *zap.Logger to Logger.
type zapLogger struct {
	l *zap.Logger
}

// NewLogger wraps an existing *zap.Logger.
func NewLogger(l *zap.Logger) Logger {
	return zapLogger{l: l}
}

// NewProductionLogger builds a Logger using zap's production defaults.
func NewProductionLogger() (Logger, error) {
	l, err := zap.NewProduction()
	if err != nil {
		return nil, err
	}
	return NewLogger(l), nil
}

func (z zapLogger) With(fields ...zap.Field) Logger {
	return zapLogger{l: z.l.With(fields...)}
}

func (z zapLogger) Info(msg string, fields ...zap.Field) {
	z.l.Info(msg, fields...)
}

func (z zapLogger) Warn(msg string, fields ...zap.Field) {
	z.l.Warn(msg, fields...)
}

func (z zapLogger) Error(msg string, fields ...zap.Field) {
	z.l.Error(msg, fields...)
}

// NoLog is a Logger that discards everything, for callers that have not
// configured one.
type NoLog struct{}

func (NoLog) With(...zap.Field) Logger     { return NoLog{} }
func (NoLog) Info(string, ...zap.Field)    {}
func (NoLog) Warn(string, ...zap.Field)    {}
func (NoLog) Error(string, ...zap.Field)   {}
