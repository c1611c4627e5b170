// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package merger

import (
	"testing"

	"github.com/cockroachdb/redact"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/sortedmerge/merger/internal/itertest"
	"github.com/stretchr/testify/require"
)

func TestIterStatsString(t *testing.T) {
	s := IterStats{
		SeekGECount:         4,
		SeekGEFastPathCount: 1,
		DirectionSwitches:   2,
		DuplicatesSkipped:   3,
		HeapComparisons:     17,
	}
	require.Equal(t,
		"seeks: 4 (fast-path: 1); direction switches: 2; duplicates skipped: 3; heap comparisons: 17",
		s.String())

	s.Merge(IterStats{ScanVisited: 9, PinFailures: 1, SeekGECount: 1})
	require.Equal(t,
		"seeks: 5 (fast-path: 1); direction switches: 2; duplicates skipped: 3; heap comparisons: 17; scanned: 9; pin failures: 1",
		s.String())
	// Counters are safe for redaction.
	require.Equal(t, redact.RedactableString(s.String()), redact.Sprint(&s).Redact())
}

func TestIterStatsShared(t *testing.T) {
	var stats IterStats
	opts := &Options{Stats: &stats}
	for i := 0; i < 2; i++ {
		m := NewMergingIter(opts, itertest.ParseFakeIter("a c"), itertest.ParseFakeIter("b c"))
		kv := m.SeekGE([]byte("a"))
		for kv != nil {
			kv = m.Next()
		}
		m.SeekToLast()
		m.Next()
		require.NoError(t, m.Close())
	}
	require.Equal(t, uint64(2), stats.SeekGECount)
	require.Equal(t, uint64(2), stats.DuplicatesSkipped)
	require.NotZero(t, stats.HeapComparisons)
}

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewMetrics(reg)
	m := NewMergingIter(&Options{Metrics: metrics},
		itertest.ParseFakeIter("a c e"), itertest.ParseFakeIter("b d"))
	m.SeekToFirst()
	m.SeekGE([]byte("c"))
	m.SeekGE([]byte("a"))
	m.Prev()
	m.SeekToFirst()
	m.ScanForward(DefaultComparer, nil, nil, func(k, v []byte) bool { return true })
	require.NoError(t, m.Close())

	require.Equal(t, 2.0, testutil.ToFloat64(metrics.SeekGE))
	require.Equal(t, 1.0, testutil.ToFloat64(metrics.SeekGEFastPath))
	require.Equal(t, 1.0, testutil.ToFloat64(metrics.DirectionSwitches))
	require.Equal(t, 5.0, testutil.ToFloat64(metrics.ScanVisited))
	require.Equal(t, 0.0, testutil.ToFloat64(metrics.PinFailures))

	n, err := testutil.GatherAndCount(reg)
	require.NoError(t, err)
	require.Equal(t, 5, n)
}
