// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package merger

import "github.com/cockroachdb/redact"

// IterStats holds statistics about the work done by a merging iterator. The
// counters only ever increase; a single IterStats may be shared by several
// iterators that are used from the same goroutine.
type IterStats struct {
	// SeekGECount is the number of calls to SeekGE.
	SeekGECount uint64
	// SeekGEFastPathCount is the number of SeekGE calls that were satisfied
	// by moving only the current child forward.
	SeekGEFastPathCount uint64
	// DirectionSwitches is the number of times the iterator reversed
	// direction and had to resynchronize the non-current children.
	DirectionSwitches uint64
	// DuplicatesSkipped is the number of child entries that were skipped
	// because a higher-priority child had an entry with the same key.
	DuplicatesSkipped uint64
	// HeapComparisons is the number of key comparisons made to maintain the
	// heaps.
	HeapComparisons uint64
	// ScanVisited is the number of entries visited by forward scans.
	ScanVisited uint64
	// PinFailures is the number of calls to Pin that failed.
	PinFailures uint64
}

// Merge adds the counters of from into s.
func (s *IterStats) Merge(from IterStats) {
	s.SeekGECount += from.SeekGECount
	s.SeekGEFastPathCount += from.SeekGEFastPathCount
	s.DirectionSwitches += from.DirectionSwitches
	s.DuplicatesSkipped += from.DuplicatesSkipped
	s.HeapComparisons += from.HeapComparisons
	s.ScanVisited += from.ScanVisited
	s.PinFailures += from.PinFailures
}

// String pretty-prints the stats.
func (s *IterStats) String() string {
	return redact.StringWithoutMarkers(s)
}

// SafeFormat implements the redact.SafeFormatter interface.
func (s *IterStats) SafeFormat(w redact.SafePrinter, _ rune) {
	w.Printf("seeks: %d (fast-path: %d); direction switches: %d",
		redact.Safe(s.SeekGECount), redact.Safe(s.SeekGEFastPathCount),
		redact.Safe(s.DirectionSwitches))
	w.Printf("; duplicates skipped: %d; heap comparisons: %d",
		redact.Safe(s.DuplicatesSkipped), redact.Safe(s.HeapComparisons))
	if s.ScanVisited > 0 {
		w.Printf("; scanned: %d", redact.Safe(s.ScanVisited))
	}
	if s.PinFailures > 0 {
		w.Printf("; pin failures: %d", redact.Safe(s.PinFailures))
	}
}
