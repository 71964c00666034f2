// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics is the set of counters this module exposes for the three
// operations worth observing in production, grounded on the teacher's own
// metrics.Metrics (a thin registerer wrapper) and api/metrics.Registry
// (the gatherer-facing side), narrowed here to a fixed, named counter
// vector instead of an open registration surface, since this module has a
// small, enumerable set of events rather than the teacher's open set of
// per-subsystem collectors.
type Metrics struct {
	encode  *prometheus.CounterVec
	extract *prometheus.CounterVec
	decode  *prometheus.CounterVec
}

// Outcome labels a counter increment.
type Outcome string

const (
	OutcomeOK      Outcome = "ok"
	OutcomeFailure Outcome = "failure"
)

// NewMetrics registers and returns a Metrics bound to reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		encode: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "contentblock_encode_total",
			Help: "Block.Encode calls by outcome.",
		}, []string{"outcome"}),
		extract: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "contentblock_extract_total",
			Help: "Block.Extract calls by outcome.",
		}, []string{"outcome"}),
		decode: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "contentblock_slice_decode_total",
			Help: "Slice.Decode calls by outcome.",
		}, []string{"outcome"}),
	}
	for _, c := range []prometheus.Collector{m.encode, m.extract, m.decode} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// ObserveEncode records a Block.Encode outcome.
func (m *Metrics) ObserveEncode(o Outcome) {
	if m == nil {
		return
	}
	m.encode.WithLabelValues(string(o)).Inc()
}

// ObserveExtract records a Block.Extract outcome.
func (m *Metrics) ObserveExtract(o Outcome) {
	if m == nil {
		return
	}
	m.extract.WithLabelValues(string(o)).Inc()
}

// ObserveDecode records a Slice.Decode outcome.
func (m *Metrics) ObserveDecode(o Outcome) {
	if m == nil {
		return
	}
	m.decode.WithLabelValues(string(o)).Inc()
}
