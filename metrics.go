// Copyright 2019 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package merger

import "github.com/prometheus/client_golang/prometheus"

// Metrics holds Prometheus counters fed by merging iterators. A single Metrics
// may be shared by any number of iterators, including concurrently used ones.
type Metrics struct {
	SeekGE            prometheus.Counter
	SeekGEFastPath    prometheus.Counter
	DirectionSwitches prometheus.Counter
	ScanVisited       prometheus.Counter
	PinFailures       prometheus.Counter
}

// NewMetrics creates the counters and registers them with reg, if non-nil.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	counter := func(name, help string) prometheus.Counter {
		return prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "merger",
			Subsystem: "iter",
			Name:      name,
			Help:      help,
		})
	}
	m := &Metrics{
		SeekGE:            counter("seek_ge_total", "Number of SeekGE calls."),
		SeekGEFastPath:    counter("seek_ge_fast_path_total", "Number of SeekGE calls that only moved the current child."),
		DirectionSwitches: counter("direction_switches_total", "Number of iteration direction reversals."),
		ScanVisited:       counter("scan_visited_total", "Number of entries visited by forward scans."),
		PinFailures:       counter("pin_failures_total", "Number of failed Pin calls."),
	}
	if reg != nil {
		reg.MustRegister(m.SeekGE, m.SeekGEFastPath, m.DirectionSwitches, m.ScanVisited, m.PinFailures)
	}
	return m
}

func (m *Metrics) incSeekGE() {
	if m != nil {
		m.SeekGE.Inc()
	}
}

func (m *Metrics) incSeekGEFastPath() {
	if m != nil {
		m.SeekGEFastPath.Inc()
	}
}

func (m *Metrics) incDirectionSwitches() {
	if m != nil {
		m.DirectionSwitches.Inc()
	}
}

func (m *Metrics) addScanVisited(n int) {
	if m != nil && n > 0 {
		m.ScanVisited.Add(float64(n))
	}
}

func (m *Metrics) incPinFailures() {
	if m != nil {
		m.PinFailures.Inc()
	}
}
