// Copyright 2020 Denis Bernard <db047h@gmail.com>. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package context

import (
	"github.com/db47h/bigfloat"
	"github.com/prometheus/client_golang/prometheus"
)

// Stats counts the operations performed by Contexts and the conditions they
// raised. It implements prometheus.Collector and may be shared by several
// Contexts. A nil *Stats is valid and counts nothing.
type Stats struct {
	ops    *prometheus.CounterVec
	conds  *prometheus.CounterVec
	errors *prometheus.CounterVec
}

// NewStats returns a new Stats whose metrics are prefixed with namespace. The
// returned collector still needs to be registered with a prometheus registry.
func NewStats(namespace string) *Stats {
	return &Stats{
		ops: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "bigfloat",
			Name:      "operations_total",
			Help:      "Number of operations performed, by operation.",
		}, []string{"op"}),
		conds: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "bigfloat",
			Name:      "conditions_total",
			Help:      "Number of conditions raised, by operation and condition.",
		}, []string{"op", "condition"}),
		errors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "bigfloat",
			Name:      "errors_total",
			Help:      "Number of failed operations, by operation.",
		}, []string{"op"}),
	}
}

// Describe implements prometheus.Collector.
func (s *Stats) Describe(ch chan<- *prometheus.Desc) {
	s.ops.Describe(ch)
	s.conds.Describe(ch)
	s.errors.Describe(ch)
}

// Collect implements prometheus.Collector.
func (s *Stats) Collect(ch chan<- prometheus.Metric) {
	s.ops.Collect(ch)
	s.conds.Collect(ch)
	s.errors.Collect(ch)
}

func (s *Stats) observe(op string, flags bigfloat.Condition, err error) {
	if s == nil {
		return
	}
	s.ops.WithLabelValues(op).Inc()
	if err != nil {
		s.errors.WithLabelValues(op).Inc()
		return
	}
	for f := bigfloat.Inexact; f <= bigfloat.DomainError; f <<= 1 {
		if flags&f != 0 {
			s.conds.WithLabelValues(op, f.String()).Inc()
		}
	}
}
