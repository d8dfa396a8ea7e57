// Copyright 2025 Dominik Honnef and contributors
// SPDX-License-Identifier: Apache-2.0 OR MIT

package profiler

import (
	"log/slog"
	"time"
)

type ProfilerGroup interface {
	Start(label string) ProfilerGroup
	End()
}

// Noop discards all spans.
func Noop() ProfilerGroup {
	return noopGroup{}
}

type noopGroup struct{}

func (noopGroup) Start(label string) ProfilerGroup { return noopGroup{} }
func (noopGroup) End()                             {}

// Log returns a group that logs every span's duration at debug level.
func Log(logger *slog.Logger) ProfilerGroup {
	return &logGroup{logger: logger}
}

type logGroup struct {
	logger *slog.Logger
	label  string
	begin  time.Time
}

func (g *logGroup) Start(label string) ProfilerGroup {
	full := label
	if g.label != "" {
		full = g.label + "/" + label
	}
	return &logGroup{
		logger: g.logger,
		label:  full,
		begin:  time.Now(),
	}
}

func (g *logGroup) End() {
	if g.label == "" {
		return
	}
	g.logger.Debug("span", "label", g.label, "duration", time.Since(g.begin))
}
