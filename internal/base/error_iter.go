// Copyright 2018 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package base

// errorIter is an iterator that is never positioned at an entry and reports a
// fixed error. With a nil error it is the empty iterator.
type errorIter struct {
	err error
}

var _ InternalIteratorWithScan = (*errorIter)(nil)

// NewEmptyIter returns an iterator over no entries.
func NewEmptyIter() InternalIterator {
	return &errorIter{}
}

// NewErrorIter returns an iterator over no entries whose Error method returns
// err.
func NewErrorIter(err error) InternalIterator {
	return &errorIter{err: err}
}

func (c *errorIter) SeekGE(key []byte) *KV { return nil }

func (c *errorIter) SeekToFirst() *KV { return nil }

func (c *errorIter) SeekToLast() *KV { return nil }

func (c *errorIter) Next() *KV { return nil }

func (c *errorIter) Prev() *KV { return nil }

func (c *errorIter) Entry() *KV { return nil }

func (c *errorIter) Valid() bool { return false }

func (c *errorIter) Key() []byte { return nil }

func (c *errorIter) Value() []byte { return nil }

func (c *errorIter) Error() error { return c.err }

func (c *errorIter) Pin() error { return nil }

func (c *errorIter) Unpin() error { return nil }

func (c *errorIter) IsKeyPinned() bool { return false }

func (c *errorIter) Close() error { return c.err }

func (c *errorIter) ScanForward(
	ucmp *Comparer, upper []byte, filter KeyFilter, emit ScanCallback,
) ScanForwardResult {
	return ScanForwardResult{ReachedUpperBound: true}
}

func (c *errorIter) String() string {
	if c.err == nil {
		return "empty"
	}
	return "error"
}
