// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package merger

import "github.com/sortedmerge/merger/internal/base"

// mergingIterLevel is the merging iterator's handle on one child. It caches
// the child's current entry so that heap comparisons do not need to call
// through the iterator interface. Every repositioning of the child must go
// through the handle, or be followed by a call to update.
type mergingIterLevel struct {
	// index is the registration order of the child. Lower indices take
	// precedence when two children are positioned at equal keys.
	index int32
	iter  base.InternalIterator
	// iterKV caches the entry the child is positioned at, or nil if the child
	// is exhausted or failed.
	iterKV *base.KV
}

func (l *mergingIterLevel) update() {
	l.iterKV = l.iter.Entry()
}

func (l *mergingIterLevel) seekGE(key []byte) {
	l.iterKV = l.iter.SeekGE(key)
}

func (l *mergingIterLevel) seekToFirst() {
	l.iterKV = l.iter.SeekToFirst()
}

func (l *mergingIterLevel) seekToLast() {
	l.iterKV = l.iter.SeekToLast()
}

func (l *mergingIterLevel) next() {
	l.iterKV = l.iter.Next()
}

func (l *mergingIterLevel) prev() {
	l.iterKV = l.iter.Prev()
}

func (l *mergingIterLevel) valid() bool {
	return l.iterKV != nil
}

// key returns the cached key. REQUIRES: valid().
func (l *mergingIterLevel) key() []byte {
	return l.iterKV.K
}

// close closes the child unless its lifetime is tied to an arena.
func (l *mergingIterLevel) close(arenaMode bool) error {
	l.iterKV = nil
	if arenaMode || l.iter == nil {
		return nil
	}
	return l.iter.Close()
}
