// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package sortedrun

import (
	"fmt"
	"sort"

	"github.com/cockroachdb/errors"
	"github.com/sortedmerge/merger/internal/base"
)

// Iter iterates over a Run.
//
// Unless the iterator is pinned, the key it returns is materialized in a
// buffer owned by the iterator and overwritten by the next positioning call,
// mirroring block iterators that reassemble prefix-compressed keys. While
// pinned, keys point directly into the run and stay valid until Unpin.
type Iter struct {
	run *Run
	// index is -1 when positioned before the first entry and run.Len() when
	// positioned after the last.
	index  int
	kv     base.KV
	keyBuf []byte
	pinned bool
	closed bool
}

var _ base.InternalIteratorWithScan = (*Iter)(nil)

func (i *Iter) setIndex(index int) *base.KV {
	i.index = index
	if index < 0 || index >= len(i.run.keys) {
		return nil
	}
	if i.pinned {
		i.kv.K = i.run.keys[index]
	} else {
		i.keyBuf = append(i.keyBuf[:0], i.run.keys[index]...)
		i.kv.K = i.keyBuf
	}
	i.kv.V = i.run.vals[index]
	return &i.kv
}

// SeekGE implements base.InternalIterator.
func (i *Iter) SeekGE(key []byte) *base.KV {
	cmp := i.run.cmp.Compare
	return i.setIndex(sort.Search(len(i.run.keys), func(j int) bool {
		return cmp(i.run.keys[j], key) >= 0
	}))
}

// SeekToFirst implements base.InternalIterator.
func (i *Iter) SeekToFirst() *base.KV {
	return i.setIndex(0)
}

// SeekToLast implements base.InternalIterator.
func (i *Iter) SeekToLast() *base.KV {
	return i.setIndex(len(i.run.keys) - 1)
}

// Next implements base.InternalIterator.
func (i *Iter) Next() *base.KV {
	if i.index >= len(i.run.keys) {
		return nil
	}
	return i.setIndex(i.index + 1)
}

// Prev implements base.InternalIterator.
func (i *Iter) Prev() *base.KV {
	if i.index < 0 {
		return nil
	}
	return i.setIndex(i.index - 1)
}

// Entry implements base.InternalIterator.
func (i *Iter) Entry() *base.KV {
	if !i.Valid() {
		return nil
	}
	return &i.kv
}

// Valid implements base.InternalIterator.
func (i *Iter) Valid() bool {
	return i.index >= 0 && i.index < len(i.run.keys)
}

// Key implements base.InternalIterator.
func (i *Iter) Key() []byte {
	return i.kv.K
}

// Value implements base.InternalIterator.
func (i *Iter) Value() []byte {
	return i.kv.V
}

// Error implements base.InternalIterator.
func (i *Iter) Error() error {
	return nil
}

// Pin implements base.InternalIterator.
func (i *Iter) Pin() error {
	if i.closed {
		return base.PinErrorf("sortedrun: pinning a closed iterator")
	}
	i.pinned = true
	if i.Valid() {
		i.kv.K = i.run.keys[i.index]
	}
	return nil
}

// Unpin implements base.InternalIterator.
func (i *Iter) Unpin() error {
	if !i.pinned {
		return base.ErrNotPinned
	}
	i.pinned = false
	return nil
}

// IsKeyPinned implements base.InternalIterator.
func (i *Iter) IsKeyPinned() bool {
	return i.pinned
}

// ScanForward implements base.ForwardScanner. It walks the run directly
// rather than materializing every key.
func (i *Iter) ScanForward(
	ucmp *base.Comparer, upper []byte, filter base.KeyFilter, emit base.ScanCallback,
) base.ScanForwardResult {
	var res base.ScanForwardResult
	j := i.index
	for ; j >= 0 && j < len(i.run.keys); j++ {
		userKey := ucmp.UserKey(i.run.keys[j])
		if len(upper) > 0 && ucmp.Compare(userKey, upper) >= 0 {
			break
		}
		res.Visited++
		if filter != nil && filter(userKey) {
			continue
		}
		if !emit(userKey, i.run.vals[j]) {
			i.setIndex(j)
			return res
		}
	}
	i.setIndex(j)
	res.ReachedUpperBound = true
	return res
}

// Close implements base.InternalIterator.
func (i *Iter) Close() error {
	if i.closed {
		return errors.AssertionFailedf("sortedrun: iterator closed twice")
	}
	i.closed = true
	i.pinned = false
	i.keyBuf = nil
	return nil
}

// Closed returns true once Close has been called.
func (i *Iter) Closed() bool {
	return i.closed
}

// String implements fmt.Stringer.
func (i *Iter) String() string {
	return fmt.Sprintf("sortedrun(%d)", len(i.run.keys))
}
