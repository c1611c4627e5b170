// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package merger

import (
	"github.com/cockroachdb/errors"
	"github.com/sortedmerge/merger/internal/base"
	"github.com/sortedmerge/merger/internal/invariants"
)

// ScanForward implements base.ForwardScanner. Rather than merging entry by
// entry, it hands the scan to the current child for the whole range of user
// keys that no other child can contribute to: up to the smaller of upper and
// the user key of the second child in the heap. Children without a native
// ScanForward are scanned with base.ScanForwardByNext.
//
// When the next child is positioned at the same user key as the current
// child, the current entry is emitted on its own and the iterator then moves
// past every entry with that user key, so each user key is emitted at most
// once per child boundary.
//
// If the iterator was iterating in reverse it is first switched to forward
// iteration, as Next would. REQUIRES: Valid().
func (m *MergingIter) ScanForward(
	ucmp *base.Comparer, upper []byte, filter base.KeyFilter, emit base.ScanCallback,
) base.ScanForwardResult {
	var res base.ScanForwardResult
	if m.current < 0 {
		if invariants.Enabled {
			panic(errors.AssertionFailedf("merger: ScanForward called on an unpositioned iterator"))
		}
		res.ReachedUpperBound = true
		return res
	}
	ucmp = ucmp.EnsureDefaults()
	if len(upper) == 0 {
		upper = nil
	}
	if m.dir != dirForward {
		m.switchToMinHeap()
	}
	defer func() {
		m.stats.ScanVisited += uint64(res.Visited)
		m.metrics.addScanVisited(res.Visited)
	}()

	for m.current >= 0 {
		cur := &m.levels[m.current]
		userKey := ucmp.UserKey(cur.key())
		if upper != nil && ucmp.Compare(userKey, upper) >= 0 {
			break
		}

		bound := upper
		if m.minHeap.len() > 1 {
			nextUserKey := ucmp.UserKey(m.levels[m.minHeap.secondTop()].key())
			if ucmp.Equal(userKey, nextUserKey) {
				res.Visited++
				if filter == nil || !filter(userKey) {
					if !emit(userKey, cur.iterKV.V) {
						return res
					}
				}
				res.Visited += m.skipUserKey(ucmp, userKey)
				continue
			}
			bound = base.MinUserKey(ucmp.Compare, upper, nextUserKey)
		}

		r := base.ScanForward(cur.iter, ucmp, bound, filter, emit)
		res.Visited += r.Visited
		// The child moved without going through its handle.
		cur.update()
		m.updateHeapAfterNext()
		if !r.ReachedUpperBound {
			return res
		}
	}
	res.ReachedUpperBound = true
	return res
}

// skipUserKey moves the iterator past every entry whose user key is
// userKey, and returns the number of entries moved past, not counting the
// entry the iterator was positioned at. Unlike Next it steps one child entry
// at a time, so entries with byte-identical keys in several children are all
// counted.
func (m *MergingIter) skipUserKey(ucmp *base.Comparer, userKey []byte) int {
	m.scanKeyBuf = append(m.scanKeyBuf[:0], userKey...)
	var n int
	for {
		m.keyBuf = append(m.keyBuf[:0], m.levels[m.current].key()...)
		m.levels[m.current].next()
		m.updateHeapAfterNext()
		if m.current < 0 {
			return n
		}
		key := m.levels[m.current].key()
		if !ucmp.Equal(ucmp.UserKey(key), m.scanKeyBuf) {
			return n
		}
		n++
		if m.cmp(key, m.keyBuf) == 0 {
			m.stats.DuplicatesSkipped++
		}
	}
}
