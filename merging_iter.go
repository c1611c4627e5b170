// Copyright 2018 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

// Package merger provides a merging iterator: a single ordered, bidirectional
// view over any number of sorted sources, each of which is itself exposed as
// an InternalIterator.
package merger

import (
	"bytes"
	"fmt"
	"slices"

	"github.com/cockroachdb/errors"
	"github.com/sortedmerge/merger/internal/base"
	"github.com/sortedmerge/merger/internal/invariants"
)

type direction int8

const (
	dirForward direction = iota
	dirReverse
)

// MergingIter provides a merged view of multiple iterators. Walking the
// iterator returns the entries of all children in key order, as defined by
// the comparer.
//
// The children's key ranges may overlap. When several children hold an entry
// with the same key, the entry is surfaced once, from the child that was
// registered first; the entries of the other children are skipped. Children
// are therefore expected to be registered in order of decreasing priority
// (e.g. newest source first).
//
// The iterator maintains a min-heap of the children when iterating forward
// and a max-heap when iterating in reverse. The heaps hold indices into the
// level slice and the top of the active heap is the current child. Switching
// direction repositions every child other than the current one relative to
// the current key.
//
// A MergingIter is not goroutine-safe.
type MergingIter struct {
	cmp       base.Compare
	formatKey base.FormatKey
	logger    base.Logger
	stats     *IterStats
	metrics   *Metrics
	arenaMode bool

	levels []mergingIterLevel
	dir    direction
	// current is the index of the level the iterator is positioned at, or -1.
	current int32
	pinned  bool

	minHeap binaryHeap[int32]
	// maxHeap is created on the first reverse positioning.
	maxHeap *binaryHeap[int32]

	// keyBuf holds a copy of the key that was just left by Next or Prev, so
	// that duplicates of it in other children can be skipped.
	keyBuf []byte
	// scanKeyBuf holds the user key ScanForward is moving past.
	scanKeyBuf []byte

	ownStats   IterStats
	closeCheck invariants.CloseChecker
}

// MergingIter implements the InternalIterator and ForwardScanner interfaces.
var _ base.InternalIteratorWithScan = (*MergingIter)(nil)

// NewMergingIter returns an iterator that merges its input. The children are
// listed in priority order. None of the iters may be nil. The merging
// iterator takes ownership of the children: closing it closes them, unless
// opts.Arena is set.
func NewMergingIter(opts *Options, iters ...base.InternalIterator) *MergingIter {
	m := &MergingIter{}
	m.init(opts, iters...)
	return m
}

// NewIter returns an iterator over the merged contents of iters. Unlike
// NewMergingIter it avoids the merging iterator entirely for zero or one
// child.
func NewIter(opts *Options, iters ...base.InternalIterator) base.InternalIterator {
	switch len(iters) {
	case 0:
		return base.NewEmptyIter()
	case 1:
		return iters[0]
	default:
		return NewMergingIter(opts, iters...)
	}
}

func (m *MergingIter) init(opts *Options, iters ...base.InternalIterator) {
	o := opts.EnsureDefaults()
	m.cmp = o.Comparer.Compare
	m.formatKey = o.Comparer.FormatKey
	m.logger = o.Logger
	m.stats = o.Stats
	if m.stats == nil {
		m.stats = &m.ownStats
	}
	m.metrics = o.Metrics
	m.arenaMode = o.Arena != nil
	m.levels = make([]mergingIterLevel, len(iters))
	for i := range iters {
		m.levels[i] = mergingIterLevel{index: int32(i), iter: iters[i]}
		m.levels[i].update()
	}
	m.minHeap = binaryHeap[int32]{
		less:     m.lessForward,
		items:    make([]int32, 0, len(iters)),
		cmpCount: &m.stats.HeapComparisons,
	}
	m.initMinHeap()
}

// lessForward orders levels by ascending key, lower index first among equal
// keys.
func (m *MergingIter) lessForward(a, b int32) bool {
	la, lb := &m.levels[a], &m.levels[b]
	if c := m.cmp(la.key(), lb.key()); c != 0 {
		return c < 0
	}
	return la.index < lb.index
}

// lessReverse orders levels by descending key, lower index first among equal
// keys.
func (m *MergingIter) lessReverse(a, b int32) bool {
	la, lb := &m.levels[a], &m.levels[b]
	if c := m.cmp(la.key(), lb.key()); c != 0 {
		return c > 0
	}
	return la.index < lb.index
}

// initMinHeap rebuilds the forward heap from the valid levels and switches to
// forward iteration.
func (m *MergingIter) initMinHeap() {
	m.dir = dirForward
	m.initHeap(&m.minHeap)
	m.currentForward()
}

// initMaxHeap rebuilds the reverse heap from the valid levels and switches to
// reverse iteration. The reverse heap is created on first use.
func (m *MergingIter) initMaxHeap() {
	m.dir = dirReverse
	if m.maxHeap == nil {
		m.maxHeap = &binaryHeap[int32]{
			less:     m.lessReverse,
			items:    make([]int32, 0, len(m.levels)),
			cmpCount: &m.stats.HeapComparisons,
		}
	}
	m.initHeap(m.maxHeap)
	m.currentReverse()
}

func (m *MergingIter) initHeap(h *binaryHeap[int32]) {
	h.clear()
	for i := range m.levels {
		if m.levels[i].valid() {
			h.items = append(h.items, int32(i))
		}
	}
	h.init()
}

func (m *MergingIter) activeHeap() *binaryHeap[int32] {
	if m.dir == dirReverse {
		return m.maxHeap
	}
	return &m.minHeap
}

func (m *MergingIter) currentForward() {
	if invariants.Enabled && m.dir != dirForward {
		panic(errors.AssertionFailedf("merger: forward heap used while iterating in reverse"))
	}
	if m.minHeap.len() == 0 {
		m.current = -1
		return
	}
	m.current = m.minHeap.top()
}

func (m *MergingIter) currentReverse() {
	if invariants.Enabled && m.dir != dirReverse {
		panic(errors.AssertionFailedf("merger: reverse heap used while iterating forward"))
	}
	if m.maxHeap.len() == 0 {
		m.current = -1
		return
	}
	m.current = m.maxHeap.top()
}

// assertCurrentIsTop checks that the current level is the top of the active
// heap and, some of the time, that no level in the heap sorts before it.
func (m *MergingIter) assertCurrentIsTop() {
	h := m.activeHeap()
	if m.current < 0 {
		if h.len() != 0 {
			panic(errors.AssertionFailedf("merger: no current level but %d levels in heap", h.len()))
		}
		return
	}
	if h.top() != m.current {
		panic(errors.AssertionFailedf("merger: current level %d is not the heap top %d", m.current, h.top()))
	}
	if !invariants.Sometimes(25) {
		return
	}
	for _, i := range h.items {
		if i != m.current && h.less(i, m.current) {
			panic(errors.AssertionFailedf("merger: level %d sorts before current level %d", i, m.current))
		}
	}
}

// SeekGE implements base.InternalIterator. It moves the iterator to the first
// entry whose key is greater than or equal to key.
//
// If the iterator is iterating forward and positioned at a key smaller than
// the target, every child is already positioned at or after the current key,
// so only the children positioned before the target need to be re-seeked.
// Those children surface at the top of the heap one at a time.
func (m *MergingIter) SeekGE(key []byte) *base.KV {
	m.stats.SeekGECount++
	m.metrics.incSeekGE()
	if m.dir == dirForward && m.current >= 0 {
		c := m.cmp(m.levels[m.current].key(), key)
		if c <= 0 {
			m.stats.SeekGEFastPathCount++
			m.metrics.incSeekGEFastPath()
			for c < 0 {
				m.levels[m.current].seekGE(key)
				m.updateHeapAfterNext()
				if m.current < 0 {
					break
				}
				c = m.cmp(m.levels[m.current].key(), key)
			}
			return m.Entry()
		}
	}

	for i := range m.levels {
		m.levels[i].seekGE(key)
	}
	m.initMinHeap()
	return m.Entry()
}

// SeekToFirst implements base.InternalIterator.
func (m *MergingIter) SeekToFirst() *base.KV {
	for i := range m.levels {
		m.levels[i].seekToFirst()
	}
	m.initMinHeap()
	return m.Entry()
}

// SeekToLast implements base.InternalIterator.
func (m *MergingIter) SeekToLast() *base.KV {
	for i := range m.levels {
		m.levels[i].seekToLast()
	}
	m.initMaxHeap()
	return m.Entry()
}

// Next implements base.InternalIterator.
func (m *MergingIter) Next() *base.KV {
	if m.current < 0 {
		if invariants.Enabled {
			panic(errors.AssertionFailedf("merger: Next called on an unpositioned iterator"))
		}
		return nil
	}
	if m.dir != dirForward {
		m.switchToMinHeap()
	}

	// If another level is positioned at the current key, it sorts right
	// after the current level and is therefore the second top.
	dup := m.minHeap.len() > 1 &&
		m.cmp(m.levels[m.minHeap.secondTop()].key(), m.levels[m.current].key()) == 0
	if dup {
		m.keyBuf = append(m.keyBuf[:0], m.levels[m.current].key()...)
	}
	m.levels[m.current].next()
	m.updateHeapAfterNext()
	if dup {
		m.skipForward(m.keyBuf)
	}
	if invariants.Enabled {
		m.assertCurrentIsTop()
	}
	return m.Entry()
}

// Prev implements base.InternalIterator.
func (m *MergingIter) Prev() *base.KV {
	if m.current < 0 {
		if invariants.Enabled {
			panic(errors.AssertionFailedf("merger: Prev called on an unpositioned iterator"))
		}
		return nil
	}
	if m.dir != dirReverse {
		m.switchToMaxHeap()
	}

	dup := m.maxHeap.len() > 1 &&
		m.cmp(m.levels[m.maxHeap.secondTop()].key(), m.levels[m.current].key()) == 0
	if dup {
		m.keyBuf = append(m.keyBuf[:0], m.levels[m.current].key()...)
	}
	m.levels[m.current].prev()
	m.updateHeapAfterPrev()
	if dup {
		m.skipReverse(m.keyBuf)
	}
	if invariants.Enabled {
		m.assertCurrentIsTop()
	}
	return m.Entry()
}

// updateHeapAfterNext re-settles the forward heap after the current level
// was moved forward.
func (m *MergingIter) updateHeapAfterNext() {
	if m.levels[m.current].valid() {
		m.minHeap.replaceTop(m.current)
	} else {
		m.minHeap.pop()
	}
	m.currentForward()
}

// updateHeapAfterPrev re-settles the reverse heap after the current level
// was moved backward.
func (m *MergingIter) updateHeapAfterPrev() {
	if m.levels[m.current].valid() {
		m.maxHeap.replaceTop(m.current)
	} else {
		m.maxHeap.pop()
	}
	m.currentReverse()
}

// skipForward advances every level positioned at key.
func (m *MergingIter) skipForward(key []byte) {
	for m.current >= 0 && m.cmp(m.levels[m.current].key(), key) == 0 {
		m.stats.DuplicatesSkipped++
		m.levels[m.current].next()
		m.updateHeapAfterNext()
	}
}

// skipReverse moves back every level positioned at key.
func (m *MergingIter) skipReverse(key []byte) {
	for m.current >= 0 && m.cmp(m.levels[m.current].key(), key) == 0 {
		m.stats.DuplicatesSkipped++
		m.levels[m.current].prev()
		m.updateHeapAfterPrev()
	}
}

// switchToMinHeap switches from reverse to forward iteration. Every level
// other than the current one is positioned at the first key greater than the
// current key. The current key is owned by the current level, which is not
// moved, so it stays valid throughout.
func (m *MergingIter) switchToMinHeap() {
	m.stats.DirectionSwitches++
	m.metrics.incDirectionSwitches()
	cur := m.current
	key := m.levels[cur].key()
	for i := range m.levels {
		if int32(i) == cur {
			continue
		}
		l := &m.levels[i]
		l.seekGE(key)
		if l.valid() && m.cmp(key, l.key()) == 0 {
			l.next()
		}
	}
	m.initMinHeap()
	if invariants.Enabled && m.current != cur {
		panic(errors.AssertionFailedf("merger: level %d not at the top after switching to forward", cur))
	}
}

// switchToMaxHeap switches from forward to reverse iteration. Every level
// other than the current one is positioned at the last key smaller than the
// current key.
func (m *MergingIter) switchToMaxHeap() {
	m.stats.DirectionSwitches++
	m.metrics.incDirectionSwitches()
	cur := m.current
	key := m.levels[cur].key()
	for i := range m.levels {
		if int32(i) == cur {
			continue
		}
		l := &m.levels[i]
		l.seekGE(key)
		if l.valid() {
			l.prev()
		} else {
			// Every key of the level is smaller than key.
			l.seekToLast()
		}
	}
	m.initMaxHeap()
}

// Entry implements base.InternalIterator.
func (m *MergingIter) Entry() *base.KV {
	if m.current < 0 {
		return nil
	}
	return m.levels[m.current].iterKV
}

// Valid implements base.InternalIterator.
func (m *MergingIter) Valid() bool {
	return m.current >= 0
}

// Key implements base.InternalIterator.
func (m *MergingIter) Key() []byte {
	if m.current < 0 {
		return nil
	}
	return m.levels[m.current].key()
}

// Value implements base.InternalIterator.
func (m *MergingIter) Value() []byte {
	if m.current < 0 {
		return nil
	}
	return m.levels[m.current].iterKV.V
}

// Error implements base.InternalIterator. It returns the error of the first
// child, in registration order, that has one.
func (m *MergingIter) Error() error {
	for i := range m.levels {
		if err := m.levels[i].iter.Error(); err != nil {
			return err
		}
	}
	return nil
}

// Pin implements base.InternalIterator. Pin is all or nothing: if a child
// fails to pin, the children pinned so far are unpinned again and the
// iterator remains unpinned. Pinning a pinned iterator is a no-op.
func (m *MergingIter) Pin() error {
	if m.pinned {
		return nil
	}
	for i := range m.levels {
		if err := m.levels[i].iter.Pin(); err != nil {
			for j := 0; j < i; j++ {
				if uerr := m.levels[j].iter.Unpin(); uerr != nil {
					m.logger.Errorf("merger: unable to unpin %s after failing to pin %s: %v",
						m.levels[j].iter, m.levels[i].iter, uerr)
				}
			}
			m.stats.PinFailures++
			m.metrics.incPinFailures()
			return errors.Mark(errors.Wrapf(err, "pinning level %d (%s)", i, m.levels[i].iter), base.ErrPinFailed)
		}
	}
	m.pinned = true
	return nil
}

// Unpin implements base.InternalIterator. Every child is unpinned, even if
// some fail; the first failure is returned. Unpinning an unpinned iterator is
// a no-op.
func (m *MergingIter) Unpin() error {
	if !m.pinned {
		return nil
	}
	var err error
	for i := range m.levels {
		if uerr := m.levels[i].iter.Unpin(); uerr != nil && err == nil {
			err = errors.Wrapf(uerr, "unpinning level %d (%s)", i, m.levels[i].iter)
		}
	}
	m.pinned = false
	return err
}

// IsPinned returns true if Pin has succeeded and Unpin has not been called
// since.
func (m *MergingIter) IsPinned() bool {
	return m.pinned
}

// IsKeyPinned implements base.InternalIterator.
func (m *MergingIter) IsKeyPinned() bool {
	if m.current < 0 {
		if invariants.Enabled {
			panic(errors.AssertionFailedf("merger: IsKeyPinned called on an unpositioned iterator"))
		}
		return false
	}
	return m.levels[m.current].iter.IsKeyPinned()
}

// AddIterator registers another child with the lowest priority. The child
// is pinned if the iterator is pinned. If pinning fails the child is not
// registered and remains owned by the caller.
//
// REQUIRES: the iterator is iterating forward.
func (m *MergingIter) AddIterator(iter base.InternalIterator) error {
	if m.dir != dirForward {
		panic(errors.AssertionFailedf("merger: AddIterator called while iterating in reverse"))
	}
	if m.pinned {
		if err := iter.Pin(); err != nil {
			m.stats.PinFailures++
			m.metrics.incPinFailures()
			return errors.Mark(errors.Wrapf(err, "pinning %s", iter), base.ErrPinFailed)
		}
	}
	idx := int32(len(m.levels))
	m.levels = append(m.levels, mergingIterLevel{index: idx, iter: iter})
	l := &m.levels[idx]
	l.update()
	if l.valid() {
		m.minHeap.push(idx)
	}
	m.currentForward()
	return nil
}

// Close implements base.InternalIterator. The children are closed unless
// their lifetime is tied to an arena, and the first error is returned.
func (m *MergingIter) Close() error {
	m.closeCheck.Close()
	var err error
	for i := range m.levels {
		if cerr := m.levels[i].close(m.arenaMode); cerr != nil && err == nil {
			err = cerr
		}
	}
	m.levels = nil
	m.minHeap.items = nil
	m.maxHeap = nil
	m.current = -1
	return err
}

// Stats returns the statistics accumulated by the iterator.
func (m *MergingIter) Stats() IterStats {
	return *m.stats
}

// String implements fmt.Stringer.
func (m *MergingIter) String() string {
	return fmt.Sprintf("merging(%d)", len(m.levels))
}

// DebugString returns the keys of the active heap in iteration order. The
// iterator is not disturbed.
func (m *MergingIter) DebugString() string {
	active := m.activeHeap()
	if active == nil {
		return ""
	}
	h := binaryHeap[int32]{less: active.less, items: slices.Clone(active.items)}
	var buf bytes.Buffer
	sep := ""
	for h.len() > 0 {
		i := h.pop()
		fmt.Fprintf(&buf, "%s%s", sep, m.formatKey(m.levels[i].key()))
		sep = " "
	}
	return buf.String()
}
